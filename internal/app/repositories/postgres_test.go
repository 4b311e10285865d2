package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/yigit/cems/internal/app/migrations"
	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/pkg/apperrors"
)

// newTestRepositories migrates a throwaway schema on DATABASE_URL
func newTestRepositories(t *testing.T) *Repositories {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	schema := "cems_test_" + uuid.NewString()[:8]
	admin, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := admin.Ping(ctx); err != nil {
		admin.Close()
		t.Skipf("postgres unreachable: %v", err)
	}
	if _, err := admin.Exec(ctx, "CREATE SCHEMA "+schema); err != nil {
		admin.Close()
		t.Fatalf("create schema: %v", err)
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		t.Fatal(err)
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		pool.Close()
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		admin.Close()
	})

	migrator := migrations.NewMigrator(pool, zerolog.Nop())
	if err := migrator.MigrateFromDirectory(ctx, "../../../migrations"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepositories(pool)
}

func createUser(t *testing.T, repos *Repositories, email string, role models.RoleType) *models.User {
	t.Helper()
	u := &models.User{Name: "User", Email: email, Password: "hash", RoleType: role}
	if err := repos.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func createEvent(t *testing.T, repos *Repositories, capacity int, owner *int64) *models.Event {
	t.Helper()
	e := &models.Event{
		Title:       "Workshop",
		Description: "Hands-on session",
		Category:    models.CategoryWorkshop,
		Date:        time.Now().Add(24 * time.Hour).UTC(),
		Time:        "10:00 AM",
		Venue:       "Lab 2",
		College:     models.DefaultEventCollege,
		Organizer:   "Club",
		Image:       models.DefaultEventImage,
		Capacity:    capacity,
		Status:      models.StatusUpcoming,
		CreatedByID: owner,
	}
	if err := repos.Events.Create(context.Background(), e); err != nil {
		t.Fatalf("create event: %v", err)
	}
	return e
}

func TestPostgresRegistrationCountTracksRows(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories(t)
	e := createEvent(t, repos, 2, nil)
	a := createUser(t, repos, "a@x.io", models.RoleStudent)
	b := createUser(t, repos, "b@x.io", models.RoleStudent)
	c := createUser(t, repos, "c@x.io", models.RoleStudent)

	if _, err := repos.Registrations.Register(ctx, 999999, a.ID, models.RegistrationDetails{}); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("missing event err = %v", err)
	}
	if _, err := repos.Registrations.Register(ctx, e.ID, a.ID, models.RegistrationDetails{Phone: "555"}); err != nil {
		t.Fatal(err)
	}
	if _, err := repos.Registrations.Register(ctx, e.ID, a.ID, models.RegistrationDetails{}); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("duplicate err = %v", err)
	}
	state, err := repos.Registrations.Register(ctx, e.ID, b.ID, models.RegistrationDetails{})
	if err != nil || state.RegistrationCount != 2 || state.Capacity != 2 {
		t.Fatalf("state = %+v, %v", state, err)
	}
	if _, err := repos.Registrations.Register(ctx, e.ID, c.ID, models.RegistrationDetails{}); !errors.Is(err, apperrors.ErrCapacityExceeded) {
		t.Fatalf("full err = %v", err)
	}

	state, err = repos.Registrations.Unregister(ctx, e.ID, a.ID)
	if err != nil || state.RegistrationCount != 1 {
		t.Fatalf("unregister = %+v, %v", state, err)
	}
	if _, err := repos.Registrations.Unregister(ctx, e.ID, a.ID); !errors.Is(err, apperrors.ErrNotRegistered) {
		t.Fatalf("second unregister err = %v", err)
	}

	got, err := repos.Events.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	regs, err := repos.Events.GetRegistrations(ctx, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.RegistrationCount != len(regs) || len(regs) != 1 {
		t.Errorf("count = %d, rows = %d", got.RegistrationCount, len(regs))
	}
}

func TestPostgresConcurrentRegistrationLastSeat(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories(t)
	e := createEvent(t, repos, 1, nil)

	const n = 10
	students := make([]*models.User, n)
	for i := range students {
		students[i] = createUser(t, repos, fmt.Sprintf("s%d@x.io", i), models.RoleStudent)
	}

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		full      atomic.Int32
	)
	for _, s := range students {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := repos.Registrations.Register(ctx, e.ID, userID, models.RegistrationDetails{})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, apperrors.ErrCapacityExceeded):
				full.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(s.ID)
	}
	wg.Wait()

	if succeeded.Load() != 1 || full.Load() != n-1 {
		t.Fatalf("succeeded=%d full=%d", succeeded.Load(), full.Load())
	}
	got, _ := repos.Events.GetByID(ctx, e.ID)
	if got.RegistrationCount != 1 {
		t.Errorf("stored count = %d, want 1", got.RegistrationCount)
	}
}

func TestPostgresDeleteUserReleasesSeats(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories(t)
	member := createUser(t, repos, "m@x.io", models.RoleEventMember)
	s := createUser(t, repos, "s@x.io", models.RoleStudent)
	other := createUser(t, repos, "o@x.io", models.RoleStudent)
	e := createEvent(t, repos, 5, &member.ID)
	for _, u := range []*models.User{s, other} {
		if _, err := repos.Registrations.Register(ctx, e.ID, u.ID, models.RegistrationDetails{}); err != nil {
			t.Fatal(err)
		}
	}

	if err := repos.Users.Delete(ctx, s.ID); err != nil {
		t.Fatal(err)
	}
	got, _ := repos.Events.GetByID(ctx, e.ID)
	regs, _ := repos.Events.GetRegistrations(ctx, e.ID)
	if got.RegistrationCount != 1 || len(regs) != 1 {
		t.Errorf("count = %d, rows = %d after deleting a registrant", got.RegistrationCount, len(regs))
	}

	if err := repos.Users.Delete(ctx, member.ID); err != nil {
		t.Fatal(err)
	}
	got, _ = repos.Events.GetByID(ctx, e.ID)
	if got.CreatedByID != nil {
		t.Errorf("event still owned after creator deleted")
	}

	if err := repos.Users.Delete(ctx, member.ID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

func TestPostgresDeleteEventCascades(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories(t)
	s := createUser(t, repos, "s@x.io", models.RoleStudent)
	e := createEvent(t, repos, 5, nil)
	if _, err := repos.Registrations.Register(ctx, e.ID, s.ID, models.RegistrationDetails{}); err != nil {
		t.Fatal(err)
	}

	if err := repos.Events.Delete(ctx, e.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := repos.Events.GetByID(ctx, e.ID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("get after delete err = %v", err)
	}
	registered, err := repos.Events.ListRegisteredByUser(ctx, s.ID)
	if err != nil || len(registered) != 0 {
		t.Errorf("registered events = %d, %v", len(registered), err)
	}
}

func TestPostgresConversationStore(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories(t)
	owner := createUser(t, repos, "chat@x.io", models.RoleStudent)

	old := time.Now().Add(-48 * time.Hour).UTC()
	conv := &models.Conversation{
		ConversationID: "chat_1_abc",
		UserID:         &owner.ID,
		Title:          models.DefaultConversationTitle,
		Messages:       []*models.ChatMessage{{Role: models.ChatRoleAssistant, Content: "Hi!", Timestamp: old}},
		CreatedAt:      old,
		UpdatedAt:      old,
	}
	if err := repos.Conversations.Create(ctx, conv); err != nil {
		t.Fatal(err)
	}
	if err := repos.Conversations.Create(ctx, conv); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("duplicate err = %v", err)
	}
	guest := &models.Conversation{ConversationID: "chat_guest", Title: models.DefaultConversationTitle, CreatedAt: old, UpdatedAt: old}
	if err := repos.Conversations.Create(ctx, guest); err != nil {
		t.Fatal(err)
	}

	err := repos.Conversations.AppendMessages(ctx, conv.ConversationID, "Any workshops?",
		&models.ChatMessage{Role: models.ChatRoleUser, Content: "Any workshops?", Timestamp: time.Now().UTC()},
		&models.ChatMessage{Role: models.ChatRoleAssistant, Content: "Yes", Timestamp: time.Now().UTC()},
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := repos.Conversations.AppendMessages(ctx, "missing", "x"); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("append to missing err = %v", err)
	}

	got, err := repos.Conversations.Get(ctx, conv.ConversationID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Any workshops?" || len(got.Messages) != 3 || got.Messages[1].Role != models.ChatRoleUser {
		t.Fatalf("unexpected conversation %+v", got)
	}
	history, err := repos.Conversations.ListByUser(ctx, owner.ID)
	if err != nil || len(history) != 1 {
		t.Fatalf("history = %d, %v", len(history), err)
	}

	removed, err := repos.Conversations.DeleteIdleBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil || removed != 1 {
		t.Fatalf("idle sweep removed %d, %v", removed, err)
	}
	if err := repos.Conversations.DeleteByUser(ctx, owner.ID); err != nil {
		t.Fatal(err)
	}
	if err := repos.Conversations.Delete(ctx, conv.ConversationID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("delete after DeleteByUser err = %v", err)
	}
}
