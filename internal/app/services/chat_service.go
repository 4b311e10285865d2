package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	authz "github.com/yigit/cems/internal/app/auth"
	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/app/models/dto"
	"github.com/yigit/cems/internal/app/repositories"
	"github.com/yigit/cems/internal/pkg/apperrors"
	"github.com/yigit/cems/internal/pkg/chatbot"
	"github.com/yigit/cems/internal/pkg/helpers"
)

// Greeting opens every conversation started through Start
const Greeting = "Hi! I'm CEMS AI Assistant. How can I help you with events today?"

// TitleLength is the number of runes of the first message kept as title
const TitleLength = 30

// ChatService defines the chatbot conversation endpoints
type ChatService interface {
	// Start opens a conversation holding the greeting; userID is nil for guests
	Start(ctx context.Context, userID *int64) (*dto.ConversationResponse, error)
	// SendMessage appends the user message and the assistant reply, creating
	// the conversation on first use
	SendMessage(ctx context.Context, req *dto.SendMessageRequest, userID *int64) (*dto.ConversationResponse, error)
	Get(ctx context.Context, conversationID string) (*models.Conversation, error)
	Delete(ctx context.Context, requester *models.User, conversationID string) error
	History(ctx context.Context, requester *models.User, ownerID int64) (*dto.ChatHistoryResponse, error)
	// SweepIdle deletes conversations not updated within retention
	SweepIdle(ctx context.Context, retention time.Duration) (int64, error)
}

type chatServiceImpl struct {
	conversations repositories.IConversationRepository
	responder     chatbot.Responder
	logger        zerolog.Logger
	now           func() time.Time
}

// NewChatService creates a new ChatService
func NewChatService(conversations repositories.IConversationRepository, responder chatbot.Responder, logger zerolog.Logger) ChatService {
	return &chatServiceImpl{
		conversations: conversations,
		responder:     responder,
		logger:        logger,
		now:           time.Now,
	}
}

// NewConversationID returns an id of the form chat_<unix ms>_<9 chars>
func NewConversationID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("chat_%d_%s", now.UnixMilli(), suffix)
}

func toConversationResponse(c *models.Conversation) *dto.ConversationResponse {
	return &dto.ConversationResponse{ConversationID: c.ConversationID, Messages: c.Messages}
}

// Start opens a new conversation
func (s *chatServiceImpl) Start(ctx context.Context, userID *int64) (*dto.ConversationResponse, error) {
	now := s.now()
	conv := &models.Conversation{
		ConversationID: NewConversationID(now),
		UserID:         userID,
		Title:          models.DefaultConversationTitle,
		Messages: []*models.ChatMessage{
			{Role: models.ChatRoleAssistant, Content: Greeting, Timestamp: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.conversations.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("error creating conversation: %w", err)
	}

	s.logger.Debug().Str("conversationID", conv.ConversationID).Bool("guest", userID == nil).Msg("Conversation started")
	return toConversationResponse(conv), nil
}

// load returns the conversation, creating an empty one titled after message
func (s *chatServiceImpl) load(ctx context.Context, conversationID, message string, userID *int64) (*models.Conversation, error) {
	conv, err := s.conversations.Get(ctx, conversationID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	now := s.now()
	conv = &models.Conversation{
		ConversationID: conversationID,
		UserID:         userID,
		Title:          helpers.TruncateTitle(message, TitleLength),
		Messages:       []*models.ChatMessage{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.conversations.Create(ctx, conv); err != nil {
		// A concurrent first message created it
		if errors.Is(err, apperrors.ErrConflict) {
			return s.conversations.Get(ctx, conversationID)
		}
		return nil, err
	}
	return conv, nil
}

// SendMessage runs one chat turn
func (s *chatServiceImpl) SendMessage(ctx context.Context, req *dto.SendMessageRequest, userID *int64) (*dto.ConversationResponse, error) {
	conversationID := strings.TrimSpace(req.ConversationID)
	message := strings.TrimSpace(req.Message)
	if conversationID == "" || message == "" {
		return nil, apperrors.NewBadRequestError("Conversation ID and message are required")
	}

	conv, err := s.load(ctx, conversationID, message, userID)
	if err != nil {
		return nil, err
	}

	userMsg := &models.ChatMessage{Role: models.ChatRoleUser, Content: message, Timestamp: s.now()}
	reply := s.responder.Respond(ctx, message)
	botMsg := &models.ChatMessage{Role: models.ChatRoleAssistant, Content: reply, Timestamp: s.now()}

	// The first user message after the greeting names the conversation
	title := conv.Title
	if title == models.DefaultConversationTitle && len(conv.Messages) == 1 {
		title = helpers.TruncateTitle(message, TitleLength)
	}

	if err := s.conversations.AppendMessages(ctx, conversationID, title, userMsg, botMsg); err != nil {
		return nil, err
	}

	updated, err := s.conversations.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return toConversationResponse(updated), nil
}

// Get returns a conversation with its transcript
func (s *chatServiceImpl) Get(ctx context.Context, conversationID string) (*models.Conversation, error) {
	return s.conversations.Get(ctx, conversationID)
}

// Delete removes a conversation. Guest conversations may be deleted by any
// signed-in user; owned ones only by the owner or an admin.
func (s *chatServiceImpl) Delete(ctx context.Context, requester *models.User, conversationID string) error {
	conv, err := s.conversations.Get(ctx, conversationID)
	if err != nil {
		return err
	}

	if conv.UserID != nil && !conv.IsOwnedBy(requester.ID) && requester.RoleType != models.RoleAdmin {
		return apperrors.NewForbiddenError("Not authorized to delete this conversation")
	}

	if err := s.conversations.Delete(ctx, conversationID); err != nil {
		return err
	}
	s.logger.Info().Str("conversationID", conversationID).Int64("deletedBy", requester.ID).Msg("Conversation deleted")
	return nil
}

// History lists the conversations of ownerID, most recent first
func (s *chatServiceImpl) History(ctx context.Context, requester *models.User, ownerID int64) (*dto.ChatHistoryResponse, error) {
	if err := authz.AuthorizeChatHistory(requester.RoleType, requester.ID, ownerID); err != nil {
		return nil, err
	}

	summaries, err := s.conversations.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing conversations: %w", err)
	}
	return dto.ToChatHistoryResponse(summaries), nil
}

// SweepIdle evicts idle conversations
func (s *chatServiceImpl) SweepIdle(ctx context.Context, retention time.Duration) (int64, error) {
	return s.conversations.DeleteIdleBefore(ctx, s.now().Add(-retention))
}

// StartJanitor sweeps idle conversations every interval until ctx is done
func StartJanitor(ctx context.Context, chat ChatService, interval, retention time.Duration, logger zerolog.Logger) {
	if interval <= 0 || retention <= 0 {
		logger.Info().Msg("Conversation janitor disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info().Msg("Conversation janitor stopping")
				return
			case <-ticker.C:
				removed, err := chat.SweepIdle(ctx, retention)
				if err != nil {
					logger.Error().Err(err).Msg("Failed to sweep idle conversations")
				} else if removed > 0 {
					logger.Info().Int64("removed", removed).Msg("Swept idle conversations")
				}
			}
		}
	}()
}
