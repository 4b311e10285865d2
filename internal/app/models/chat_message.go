package models

import "time"

// ChatRole identifies the author of a chat message
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// DefaultConversationTitle is used until the first user message arrives
const DefaultConversationTitle = "New Conversation"

// ChatMessage is one turn of a conversation
type ChatMessage struct {
	Role      ChatRole  `json:"role" bson:"role" db:"role"`
	Content   string    `json:"content" bson:"content" db:"content"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp" db:"created_at"`
}

// Conversation is a chatbot transcript keyed by its conversation id
type Conversation struct {
	ConversationID string         `json:"conversationId" bson:"conversationId" db:"conversation_id"`
	UserID         *int64         `json:"userId,omitempty" bson:"userId,omitempty" db:"user_id"`
	Title          string         `json:"title" bson:"title" db:"title"`
	Messages       []*ChatMessage `json:"messages" bson:"messages"`
	CreatedAt      time.Time      `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" bson:"updatedAt" db:"updated_at"`
}

// IsOwnedBy reports whether the conversation belongs to userID
func (c *Conversation) IsOwnedBy(userID int64) bool {
	return c.UserID != nil && *c.UserID == userID
}

// ConversationSummary is a history entry without the message bodies
type ConversationSummary struct {
	ConversationID string    `json:"conversationId" bson:"conversationId"`
	Title          string    `json:"title" bson:"title"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}
