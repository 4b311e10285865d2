package memory

import (
	"context"

	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/pkg/apperrors"
)

// RegistrationRepository applies registrations under the store mutex
type RegistrationRepository struct {
	s *Store
}

// indexOf returns the position of userID among the event's registrants, or -1
func (s *Store) indexOf(eventID, userID int64) int {
	for i, reg := range s.registrations[eventID] {
		if reg.UserID == userID {
			return i
		}
	}
	return -1
}

func (s *Store) state(e *models.Event) *models.RegistrationState {
	return &models.RegistrationState{
		EventID:           e.ID,
		RegistrationCount: len(s.registrations[e.ID]),
		Capacity:          e.Capacity,
		Version:           e.RegistrationVersion,
	}
}

// Register checks existence, duplicate and capacity before appending
func (r *RegistrationRepository) Register(_ context.Context, eventID, userID int64, details models.RegistrationDetails) (*models.RegistrationState, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.events[eventID]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	if r.s.indexOf(eventID, userID) >= 0 {
		return nil, apperrors.ErrAlreadyRegistered
	}
	if len(r.s.registrations[eventID]) >= e.Capacity {
		return nil, apperrors.ErrEventFull
	}

	now := r.s.now()
	r.s.registrations[eventID] = append(r.s.registrations[eventID], &models.Registration{
		EventID:             eventID,
		UserID:              userID,
		RegisteredAt:        now,
		RegistrationDetails: details,
	})
	e.RegistrationCount = len(r.s.registrations[eventID])
	e.RegistrationVersion++
	e.UpdatedAt = now
	return r.s.state(e), nil
}

// Unregister removes userID from the event
func (r *RegistrationRepository) Unregister(_ context.Context, eventID, userID int64) (*models.RegistrationState, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.events[eventID]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	i := r.s.indexOf(eventID, userID)
	if i < 0 {
		return nil, apperrors.ErrNotRegistered
	}

	regs := r.s.registrations[eventID]
	r.s.registrations[eventID] = append(regs[:i:i], regs[i+1:]...)
	e.RegistrationCount = len(r.s.registrations[eventID])
	e.RegistrationVersion++
	e.UpdatedAt = r.s.now()
	return r.s.state(e), nil
}
