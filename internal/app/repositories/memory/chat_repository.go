package memory

import (
	"context"
	"sort"
	"time"

	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/pkg/apperrors"
)

// ConversationRepository keeps chatbot transcripts in the store
type ConversationRepository struct {
	s *Store
}

func copyConversation(c *models.Conversation) *models.Conversation {
	out := *c
	out.UserID = copyInt64(c.UserID)
	out.Messages = make([]*models.ChatMessage, len(c.Messages))
	for i, m := range c.Messages {
		mc := *m
		out.Messages[i] = &mc
	}
	return &out
}

// Create stores a new conversation
func (r *ConversationRepository) Create(_ context.Context, conv *models.Conversation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.conversations[conv.ConversationID]; ok {
		return apperrors.ErrConversationExists
	}
	r.s.conversations[conv.ConversationID] = copyConversation(conv)
	return nil
}

// Get returns a copy of the conversation
func (r *ConversationRepository) Get(_ context.Context, conversationID string) (*models.Conversation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.conversations[conversationID]
	if !ok {
		return nil, apperrors.ErrConversationNotFound
	}
	return copyConversation(c), nil
}

// AppendMessages adds messages, sets the title and bumps UpdatedAt
func (r *ConversationRepository) AppendMessages(_ context.Context, conversationID, title string, msgs ...*models.ChatMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.conversations[conversationID]
	if !ok {
		return apperrors.ErrConversationNotFound
	}
	for _, m := range msgs {
		mc := *m
		c.Messages = append(c.Messages, &mc)
	}
	c.Title = title
	c.UpdatedAt = r.s.now()
	return nil
}

// Delete removes a conversation
func (r *ConversationRepository) Delete(_ context.Context, conversationID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.conversations[conversationID]; !ok {
		return apperrors.ErrConversationNotFound
	}
	delete(r.s.conversations, conversationID)
	return nil
}

// ListByUser returns the user's conversations, most recently updated first
func (r *ConversationRepository) ListByUser(_ context.Context, userID int64) ([]*models.ConversationSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.ConversationSummary, 0)
	for _, c := range r.s.conversations {
		if c.IsOwnedBy(userID) {
			out = append(out, &models.ConversationSummary{
				ConversationID: c.ConversationID,
				Title:          c.Title,
				CreatedAt:      c.CreatedAt,
				UpdatedAt:      c.UpdatedAt,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// DeleteByUser removes every conversation owned by userID
func (r *ConversationRepository) DeleteByUser(_ context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, c := range r.s.conversations {
		if c.IsOwnedBy(userID) {
			delete(r.s.conversations, id)
		}
	}
	return nil
}

// DeleteIdleBefore evicts conversations untouched since cutoff
func (r *ConversationRepository) DeleteIdleBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, c := range r.s.conversations {
		if c.UpdatedAt.Before(cutoff) {
			delete(r.s.conversations, id)
			n++
		}
	}
	return n, nil
}
