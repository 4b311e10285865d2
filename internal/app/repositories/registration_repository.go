package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/db"
	"github.com/yigit/cems/internal/pkg/apperrors"
)

// RegistrationRepository handles the event_registrations table together with
// the registration_count column it keeps in step
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// lockEvent takes the row lock that serializes registrations for one event
func lockEvent(ctx context.Context, tx pgx.Tx, eventID int64) (*models.RegistrationState, error) {
	state := &models.RegistrationState{EventID: eventID}
	err := tx.QueryRow(ctx, `
		SELECT capacity, registration_count
		FROM events
		WHERE id = $1
		FOR UPDATE`,
		eventID).Scan(&state.Capacity, &state.RegistrationCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error locking event %d: %w", eventID, err)
	}
	return state, nil
}

// rowQuerier is satisfied by both the pool and a transaction
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func isRegistered(ctx context.Context, q rowQuerier, eventID, userID int64) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM event_registrations WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking registration: %w", err)
	}
	return exists, nil
}

// Register adds userID to the event under the event row lock
func (r *RegistrationRepository) Register(ctx context.Context, eventID, userID int64, details models.RegistrationDetails) (*models.RegistrationState, error) {
	var state *models.RegistrationState
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		state, err = lockEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}

		registered, err := isRegistered(ctx, tx, eventID, userID)
		if err != nil {
			return err
		}
		if registered {
			return apperrors.ErrAlreadyRegistered
		}

		if state.RegistrationCount >= state.Capacity {
			return apperrors.ErrEventFull
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO event_registrations (event_id, user_id, phone, college, year_of_study, department, special_requirements)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			eventID, userID, details.Phone, details.College, details.YearOfStudy, details.Department, details.SpecialRequirements)
		if err != nil {
			return fmt.Errorf("error inserting registration: %w", err)
		}

		err = tx.QueryRow(ctx, `
			UPDATE events
			SET registration_count = (SELECT COUNT(*) FROM event_registrations WHERE event_id = $1),
				registration_version = registration_version + 1,
				updated_at = NOW()
			WHERE id = $1
			RETURNING registration_count, registration_version`,
			eventID).Scan(&state.RegistrationCount, &state.Version)
		if err != nil {
			return fmt.Errorf("error updating registration count: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Unregister removes userID from the event under the event row lock
func (r *RegistrationRepository) Unregister(ctx context.Context, eventID, userID int64) (*models.RegistrationState, error) {
	var state *models.RegistrationState
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		state, err = lockEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM event_registrations WHERE event_id = $1 AND user_id = $2`, eventID, userID)
		if err != nil {
			return fmt.Errorf("error deleting registration: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotRegistered
		}

		err = tx.QueryRow(ctx, `
			UPDATE events
			SET registration_count = (SELECT COUNT(*) FROM event_registrations WHERE event_id = $1),
				registration_version = registration_version + 1,
				updated_at = NOW()
			WHERE id = $1
			RETURNING registration_count, registration_version`,
			eventID).Scan(&state.RegistrationCount, &state.Version)
		if err != nil {
			return fmt.Errorf("error updating registration count: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}
