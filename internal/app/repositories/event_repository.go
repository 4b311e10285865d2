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
	"github.com/yigit/cems/internal/pkg/apperrors"
	"github.com/yigit/cems/internal/pkg/helpers"
)

var eventColumns = []string{
	"e.id", "e.title", "e.description", "e.category", "e.date", "e.time", "e.venue",
	"e.college", "e.organizer", "e.capacity", "e.image", "e.status", "e.created_by",
	"e.registration_count", "e.registration_version", "e.created_at", "e.updated_at",
	"u.name", "u.email",
}

// EventRepository handles event database operations
type EventRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *EventRepository) selectEvents() squirrel.SelectBuilder {
	return r.sb.Select(eventColumns...).
		From("events e").
		LeftJoin("users u ON u.id = e.created_by")
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var (
		e            models.Event
		creatorName  *string
		creatorEmail *string
	)
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Category, &e.Date, &e.Time, &e.Venue,
		&e.College, &e.Organizer, &e.Capacity, &e.Image, &e.Status, &e.CreatedByID,
		&e.RegistrationCount, &e.RegistrationVersion, &e.CreatedAt, &e.UpdatedAt,
		&creatorName, &creatorEmail,
	)
	if err != nil {
		return nil, err
	}
	if e.CreatedByID != nil && creatorName != nil {
		e.CreatedBy = &models.UserRef{ID: *e.CreatedByID, Name: *creatorName, Email: *creatorEmail}
	}
	return &e, nil
}

func (r *EventRepository) queryEvents(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Event, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Create inserts a new event with a zero registration count
func (r *EventRepository) Create(ctx context.Context, e *models.Event) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO events (title, description, category, date, time, venue, college, organizer, capacity, image, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, registration_count, created_at, updated_at`,
		e.Title, e.Description, e.Category, e.Date, e.Time, e.Venue, e.College, e.Organizer,
		e.Capacity, e.Image, e.Status, e.CreatedByID,
	).Scan(&e.ID, &e.RegistrationCount, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}
	return nil
}

// GetByID retrieves an event with its creator
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	sql, args, err := r.selectEvents().Where(squirrel.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	e, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error getting event %d: %w", id, err)
	}
	return e, nil
}

// GetRegistrations lists the registrants of an event
func (r *EventRepository) GetRegistrations(ctx context.Context, eventID int64) ([]*models.Registration, error) {
	sql, args, err := r.sb.Select(
		"er.event_id", "er.user_id", "er.registered_at", "er.phone", "er.college",
		"er.year_of_study", "er.department", "er.special_requirements", "u.name", "u.email",
	).
		From("event_registrations er").
		Join("users u ON u.id = er.user_id").
		Where(squirrel.Eq{"er.event_id": eventID}).
		OrderBy("er.registered_at ASC", "er.user_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	regs := make([]*models.Registration, 0)
	for rows.Next() {
		reg := &models.Registration{User: &models.UserRef{}}
		err := rows.Scan(
			&reg.EventID, &reg.UserID, &reg.RegisteredAt, &reg.Phone, &reg.College,
			&reg.YearOfStudy, &reg.Department, &reg.SpecialRequirements,
			&reg.User.Name, &reg.User.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning registration: %w", err)
		}
		reg.User.ID = reg.UserID
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// List returns events filtered by category and a case-insensitive search over title and description
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]*models.Event, error) {
	q := r.selectEvents()
	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"e.category": filter.Category})
	}
	if filter.Search != "" {
		pattern := "%" + helpers.EscapeLike(filter.Search) + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"e.title": pattern},
			squirrel.ILike{"e.description": pattern},
		})
	}
	return r.queryEvents(ctx, q.OrderBy("e.date ASC", "e.id ASC"))
}

// Update writes the editable columns of an event
func (r *EventRepository) Update(ctx context.Context, e *models.Event) error {
	sql, args, err := r.sb.Update("events").
		SetMap(map[string]interface{}{
			"title":       e.Title,
			"description": e.Description,
			"category":    e.Category,
			"date":        e.Date,
			"time":        e.Time,
			"venue":       e.Venue,
			"college":     e.College,
			"organizer":   e.Organizer,
			"capacity":    e.Capacity,
			"image":       e.Image,
			"status":      e.Status,
			"updated_at":  squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": e.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrEventNotFound
		}
		return fmt.Errorf("error updating event %d: %w", e.ID, err)
	}
	return nil
}

// Delete removes an event; registrations go with it by cascade
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting event %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// Count returns the number of events
func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting events: %w", err)
	}
	return n, nil
}

// ListUpcoming returns up to limit events dated at or after from
func (r *EventRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*models.Event, error) {
	q := r.selectEvents().
		Where(squirrel.GtOrEq{"e.date": from}).
		OrderBy("e.date ASC", "e.id ASC").
		Limit(uint64(limit))
	return r.queryEvents(ctx, q)
}

// ListByCreator returns the events a user created
func (r *EventRepository) ListByCreator(ctx context.Context, userID int64) ([]*models.Event, error) {
	q := r.selectEvents().
		Where(squirrel.Eq{"e.created_by": userID}).
		OrderBy("e.date ASC", "e.id ASC")
	return r.queryEvents(ctx, q)
}

// ListRegisteredByUser returns the events a user is registered for
func (r *EventRepository) ListRegisteredByUser(ctx context.Context, userID int64) ([]*models.Event, error) {
	q := r.selectEvents().
		Join("event_registrations er ON er.event_id = e.id").
		Where(squirrel.Eq{"er.user_id": userID}).
		OrderBy("e.date ASC", "e.id ASC")
	return r.queryEvents(ctx, q)
}
