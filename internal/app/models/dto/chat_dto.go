package dto

import (
	"time"

	"github.com/yigit/cems/internal/app/models"
)

// SendMessageRequest represents the body of POST /chat/message
type SendMessageRequest struct {
	ConversationID string `json:"conversationId" binding:"required,max=100" example:"chat_1735689600000_k3j9x2m1q"`
	Message        string `json:"message" binding:"required,max=2000" example:"What technical events are coming up?"`
}

// ConversationResponse is a conversation id with its transcript
type ConversationResponse struct {
	ConversationID string                `json:"conversationId"`
	Messages       []*models.ChatMessage `json:"messages"`
}

// ChatHistoryItem is one conversation in a user's history
type ChatHistoryItem struct {
	ConversationID string    `json:"conversationId"`
	Title          string    `json:"title"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ChatHistoryResponse lists a user's conversations, most recent first
type ChatHistoryResponse struct {
	Count         int               `json:"count"`
	Conversations []ChatHistoryItem `json:"conversations"`
}

// ToChatHistoryResponse maps stored summaries to the history shape
func ToChatHistoryResponse(summaries []*models.ConversationSummary) *ChatHistoryResponse {
	items := make([]ChatHistoryItem, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, ChatHistoryItem{
			ConversationID: s.ConversationID,
			Title:          s.Title,
			UpdatedAt:      s.UpdatedAt,
		})
	}
	return &ChatHistoryResponse{Count: len(items), Conversations: items}
}
