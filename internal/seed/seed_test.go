package seed

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/app/repositories/memory"
	"github.com/yigit/cems/internal/pkg/auth"
)

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	for i := 0; i < 2; i++ {
		if err := CreateDefaultData(ctx, repos, zerolog.Nop()); err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
	}

	users, err := repos.Users.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != len(defaultUsers) {
		t.Fatalf("users = %d, want %d", len(users), len(defaultUsers))
	}
	count, err := repos.Events.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != int64(len(defaultEvents)) {
		t.Fatalf("events = %d, want %d", count, len(defaultEvents))
	}
}

func TestDefaultDataShape(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	if err := CreateDefaultData(ctx, repos, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}

	admin, err := repos.Users.GetByEmail(ctx, "admin@college.edu")
	if err != nil {
		t.Fatal(err)
	}
	if admin.RoleType != models.RoleAdmin || !auth.CheckPassword(admin.Password, "admin123") {
		t.Fatalf("unexpected admin %+v", admin)
	}

	coordinator, err := repos.Users.GetByEmail(ctx, "coordinator@college.edu")
	if err != nil {
		t.Fatal(err)
	}
	owned, err := repos.Events.ListByCreator(ctx, coordinator.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(owned) != len(defaultEvents) {
		t.Fatalf("coordinator owns %d events, want %d", len(owned), len(defaultEvents))
	}

	upcoming, err := repos.Events.ListUpcoming(ctx, time.Now(), 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(upcoming) != len(defaultEvents) {
		t.Fatalf("upcoming = %d, want all sample events", len(upcoming))
	}
}
