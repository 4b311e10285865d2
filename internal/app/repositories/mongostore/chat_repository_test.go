package mongostore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/pkg/apperrors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newTestRepository connects to MONGO_URI and uses a throwaway database
func newTestRepository(t *testing.T) *ConversationRepository {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("mongo unreachable: %v", err)
	}

	database := client.Database("cems_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		_ = database.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	repo := NewConversationRepository(database)
	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	return repo
}

func TestConversationRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	owner := int64(7)

	conv := &models.Conversation{
		ConversationID: "chat_1_abc",
		UserID:         &owner,
		Title:          models.DefaultConversationTitle,
		Messages:       []*models.ChatMessage{{Role: models.ChatRoleAssistant, Content: "Hi!", Timestamp: time.Now().UTC()}},
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	if err := repo.Create(ctx, conv); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, conv); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("duplicate Create err = %v", err)
	}

	err := repo.AppendMessages(ctx, conv.ConversationID, "Any workshops?",
		&models.ChatMessage{Role: models.ChatRoleUser, Content: "Any workshops?", Timestamp: time.Now().UTC()},
		&models.ChatMessage{Role: models.ChatRoleAssistant, Content: "Yes", Timestamp: time.Now().UTC()},
	)
	if err != nil {
		t.Fatalf("AppendMessages: %v", err)
	}

	got, err := repo.Get(ctx, conv.ConversationID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Any workshops?" || len(got.Messages) != 3 || got.Messages[1].Role != models.ChatRoleUser {
		t.Fatalf("unexpected conversation %+v", got)
	}

	history, err := repo.ListByUser(ctx, owner)
	if err != nil || len(history) != 1 {
		t.Fatalf("ListByUser = %v, %v", history, err)
	}

	if err := repo.Delete(ctx, conv.ConversationID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, conv.ConversationID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("Get after delete err = %v", err)
	}
}

func TestDeleteIdleBefore(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	old := time.Now().UTC().Add(-48 * time.Hour)
	for _, c := range []*models.Conversation{
		{ConversationID: "stale", Title: models.DefaultConversationTitle, CreatedAt: old, UpdatedAt: old},
		{ConversationID: "fresh", Title: models.DefaultConversationTitle, CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()},
	} {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := repo.DeleteIdleBefore(ctx, time.Now().UTC().Add(-24*time.Hour))
	if err != nil || removed != 1 {
		t.Fatalf("DeleteIdleBefore = %d, %v", removed, err)
	}
	if _, err := repo.Get(ctx, "fresh"); err != nil {
		t.Fatalf("fresh conversation evicted: %v", err)
	}
}
