// Package mongostore keeps chatbot conversations in a MongoDB collection.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the collection holding one document per conversation
const CollectionName = "conversations"

// ConversationRepository stores each conversation as a single document
// with its messages embedded
type ConversationRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewConversationRepository creates the repository over database
func NewConversationRepository(database *mongo.Database) *ConversationRepository {
	return &ConversationRepository{
		coll: database.Collection(CollectionName),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// EnsureIndexes creates the unique conversation id index and the lookup indexes
func (r *ConversationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "conversationId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "updatedAt", Value: -1}}},
		{Keys: bson.D{{Key: "updatedAt", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("error creating conversation indexes: %w", err)
	}
	return nil
}

// Create inserts a new conversation document
func (r *ConversationRepository) Create(ctx context.Context, conv *models.Conversation) error {
	if conv.Messages == nil {
		conv.Messages = []*models.ChatMessage{}
	}
	if _, err := r.coll.InsertOne(ctx, conv); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrConversationExists
		}
		return fmt.Errorf("error creating conversation: %w", err)
	}
	return nil
}

// Get loads a conversation by id
func (r *ConversationRepository) Get(ctx context.Context, conversationID string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.coll.FindOne(ctx, bson.M{"conversationId": conversationID}).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, fmt.Errorf("error getting conversation: %w", err)
	}
	if conv.Messages == nil {
		conv.Messages = []*models.ChatMessage{}
	}
	return &conv, nil
}

// AppendMessages pushes messages onto the document and sets the title
func (r *ConversationRepository) AppendMessages(ctx context.Context, conversationID, title string, msgs ...*models.ChatMessage) error {
	update := bson.M{
		"$push": bson.M{"messages": bson.M{"$each": msgs}},
		"$set":  bson.M{"title": title, "updatedAt": r.now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"conversationId": conversationID}, update)
	if err != nil {
		return fmt.Errorf("error appending chat messages: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrConversationNotFound
	}
	return nil
}

// Delete removes a conversation
func (r *ConversationRepository) Delete(ctx context.Context, conversationID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"conversationId": conversationID})
	if err != nil {
		return fmt.Errorf("error deleting conversation: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrConversationNotFound
	}
	return nil
}

// ListByUser returns the user's conversations, most recently updated first
func (r *ConversationRepository) ListByUser(ctx context.Context, userID int64) ([]*models.ConversationSummary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetProjection(bson.M{"messages": 0})

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing conversations: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]*models.ConversationSummary, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding conversations: %w", err)
	}
	return out, nil
}

// DeleteByUser removes every conversation owned by userID
func (r *ConversationRepository) DeleteByUser(ctx context.Context, userID int64) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("error deleting conversations of user %d: %w", userID, err)
	}
	return nil
}

// DeleteIdleBefore evicts conversations untouched since cutoff
func (r *ConversationRepository) DeleteIdleBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"updatedAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("error evicting idle conversations: %w", err)
	}
	return res.DeletedCount, nil
}
