package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/pkg/apperrors"
)

var contactColumns = []string{
	"c.id", "c.name", "c.email", "c.issue_type", "c.subject", "c.message", "c.status",
	"c.response", "c.responded_by", "c.responded_at", "c.user_id", "c.created_at", "c.updated_at",
	"u.name", "u.email",
}

// ContactRepository handles contact message database operations
type ContactRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanContact(row pgx.Row) (*models.ContactMessage, error) {
	var (
		c              models.ContactMessage
		responderName  *string
		responderEmail *string
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.IssueType, &c.Subject, &c.Message, &c.Status,
		&c.Response, &c.RespondedByID, &c.RespondedAt, &c.UserID, &c.CreatedAt, &c.UpdatedAt,
		&responderName, &responderEmail,
	)
	if err != nil {
		return nil, err
	}
	if c.RespondedByID != nil && responderName != nil {
		c.RespondedBy = &models.UserRef{ID: *c.RespondedByID, Name: *responderName, Email: *responderEmail}
	}
	return &c, nil
}

func (r *ContactRepository) selectContacts() squirrel.SelectBuilder {
	return r.sb.Select(contactColumns...).
		From("contact_messages c").
		LeftJoin("users u ON u.id = c.responded_by")
}

// Create inserts a contact message
func (r *ContactRepository) Create(ctx context.Context, c *models.ContactMessage) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO contact_messages (name, email, issue_type, subject, message, status, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		c.Name, c.Email, c.IssueType, c.Subject, c.Message, c.Status, c.UserID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating contact message: %w", err)
	}
	return nil
}

// GetByID retrieves a contact message
func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*models.ContactMessage, error) {
	sql, args, err := r.selectContacts().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	c, err := scanContact(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, fmt.Errorf("error getting contact message %d: %w", id, err)
	}
	return c, nil
}

// List returns one page of contact messages, newest first
func (r *ContactRepository) List(ctx context.Context, filter models.ContactFilter) ([]*models.ContactMessage, int64, error) {
	where := squirrel.And{}
	if filter.Status != "" {
		where = append(where, squirrel.Eq{"c.status": filter.Status})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("contact_messages c").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting contact messages: %w", err)
	}

	sql, args, err := r.selectContacts().
		Where(where).
		OrderBy("c.created_at DESC", "c.id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	contacts := make([]*models.ContactMessage, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning contact message: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, total, rows.Err()
}

// Update writes the status and response fields
func (r *ContactRepository) Update(ctx context.Context, c *models.ContactMessage) error {
	err := r.db.QueryRow(ctx, `
		UPDATE contact_messages
		SET status = $2, response = $3, responded_by = $4, responded_at = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		c.ID, c.Status, c.Response, c.RespondedByID, c.RespondedAt,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrContactNotFound
		}
		return fmt.Errorf("error updating contact message %d: %w", c.ID, err)
	}
	return nil
}

// Delete removes a contact message
func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting contact message %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrContactNotFound
	}
	return nil
}

// Stats counts messages per status and per issue type
func (r *ContactRepository) Stats(ctx context.Context) (*models.ContactStats, error) {
	stats := &models.ContactStats{ByIssueType: make(map[models.IssueType]int64)}

	rows, err := r.db.Query(ctx, `SELECT status, issue_type, COUNT(*) FROM contact_messages GROUP BY status, issue_type`)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status    models.ContactStatus
			issueType models.IssueType
			n         int64
		)
		if err := rows.Scan(&status, &issueType, &n); err != nil {
			return nil, fmt.Errorf("error scanning contact stats: %w", err)
		}
		stats.Add(status, issueType, n)
	}
	return stats, rows.Err()
}
