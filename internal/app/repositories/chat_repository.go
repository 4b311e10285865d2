package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/db"
	"github.com/yigit/cems/internal/pkg/apperrors"
	"github.com/yigit/cems/internal/pkg/dberrors"
)

// ConversationRepository stores chatbot transcripts in chat_conversations and chat_messages
type ConversationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(db *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ConversationRepository) insertMessages(ctx context.Context, tx pgx.Tx, conversationID string, msgs []*models.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	q := r.sb.Insert("chat_messages").Columns("conversation_id", "role", "content", "created_at")
	for _, m := range msgs {
		q = q.Values(conversationID, m.Role, m.Content, m.Timestamp)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("error building chat message insert: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting chat messages: %w", err)
	}
	return nil
}

// Create inserts a conversation with its initial messages
func (r *ConversationRepository) Create(ctx context.Context, conv *models.Conversation) error {
	sql, args, err := r.sb.Insert("chat_conversations").
		Columns("conversation_id", "user_id", "title", "created_at", "updated_at").
		Values(conv.ConversationID, conv.UserID, conv.Title, conv.CreatedAt, conv.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building conversation insert: %w", err)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrConversationExists
			}
			return fmt.Errorf("error creating conversation: %w", err)
		}
		return r.insertMessages(ctx, tx, conv.ConversationID, conv.Messages)
	})
}

// Get loads a conversation with its messages in order
func (r *ConversationRepository) Get(ctx context.Context, conversationID string) (*models.Conversation, error) {
	sql, args, err := r.sb.Select("conversation_id", "user_id", "title", "created_at", "updated_at").
		From("chat_conversations").
		Where(squirrel.Eq{"conversation_id": conversationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building conversation query: %w", err)
	}

	conv := &models.Conversation{}
	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&conv.ConversationID, &conv.UserID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, fmt.Errorf("error getting conversation: %w", err)
	}

	sql, args, err = r.sb.Select("role", "content", "created_at").
		From("chat_messages").
		Where(squirrel.Eq{"conversation_id": conversationID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building chat message query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error loading chat messages: %w", err)
	}
	defer rows.Close()

	conv.Messages = make([]*models.ChatMessage, 0)
	for rows.Next() {
		m := &models.ChatMessage{}
		if err := rows.Scan(&m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("error scanning chat message: %w", err)
		}
		conv.Messages = append(conv.Messages, m)
	}
	return conv, rows.Err()
}

// AppendMessages adds messages and updates the title in one transaction
func (r *ConversationRepository) AppendMessages(ctx context.Context, conversationID, title string, msgs ...*models.ChatMessage) error {
	sql, args, err := r.sb.Update("chat_conversations").
		Set("title", title).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"conversation_id": conversationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building conversation update: %w", err)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error updating conversation: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrConversationNotFound
		}
		return r.insertMessages(ctx, tx, conversationID, msgs)
	})
}

func (r *ConversationRepository) deleteWhere(ctx context.Context, pred squirrel.Sqlizer) (int64, error) {
	sql, args, err := r.sb.Delete("chat_conversations").Where(pred).ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building conversation delete: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete removes a conversation; its messages go by cascade
func (r *ConversationRepository) Delete(ctx context.Context, conversationID string) error {
	n, err := r.deleteWhere(ctx, squirrel.Eq{"conversation_id": conversationID})
	if err != nil {
		return fmt.Errorf("error deleting conversation: %w", err)
	}
	if n == 0 {
		return apperrors.ErrConversationNotFound
	}
	return nil
}

// ListByUser returns the user's conversations, most recently updated first
func (r *ConversationRepository) ListByUser(ctx context.Context, userID int64) ([]*models.ConversationSummary, error) {
	sql, args, err := r.sb.Select("conversation_id", "title", "created_at", "updated_at").
		From("chat_conversations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("updated_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building conversation list: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing conversations: %w", err)
	}
	defer rows.Close()

	out := make([]*models.ConversationSummary, 0)
	for rows.Next() {
		s := &models.ConversationSummary{}
		if err := rows.Scan(&s.ConversationID, &s.Title, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning conversation: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteByUser removes every conversation owned by userID
func (r *ConversationRepository) DeleteByUser(ctx context.Context, userID int64) error {
	if _, err := r.deleteWhere(ctx, squirrel.Eq{"user_id": userID}); err != nil {
		return fmt.Errorf("error deleting conversations of user %d: %w", userID, err)
	}
	return nil
}

// DeleteIdleBefore evicts conversations untouched since cutoff
func (r *ConversationRepository) DeleteIdleBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.deleteWhere(ctx, squirrel.Lt{"updated_at": cutoff})
	if err != nil {
		return 0, fmt.Errorf("error evicting idle conversations: %w", err)
	}
	return n, nil
}
