package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/pkg/apperrors"
)

// EventRepository is the in-memory events table
type EventRepository struct {
	s *Store
}

// byDate orders events by date, then id
func byDate(events []*models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date.Equal(events[j].Date) {
			return events[i].ID < events[j].ID
		}
		return events[i].Date.Before(events[j].Date)
	})
}

// collect copies every event accepted by keep, sorted by date
func (r *EventRepository) collect(keep func(e *models.Event) bool) []*models.Event {
	events := make([]*models.Event, 0)
	for _, e := range r.s.events {
		if keep(e) {
			events = append(events, r.s.copyEvent(e))
		}
	}
	byDate(events)
	return events
}

// Create stores a new event with a zero registration count
func (r *EventRepository) Create(_ context.Context, e *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextEventID++
	now := r.s.now()
	e.ID = r.s.nextEventID
	e.RegistrationCount = 0
	e.CreatedAt = now
	e.UpdatedAt = now

	stored := *e
	stored.CreatedByID = copyInt64(e.CreatedByID)
	stored.CreatedBy = nil
	stored.RegisteredUsers = nil
	r.s.events[e.ID] = &stored
	return nil
}

// GetByID returns a copy of the event with its creator
func (r *EventRepository) GetByID(_ context.Context, id int64) (*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return r.s.copyEvent(e), nil
}

// GetRegistrations returns the registrants in registration order
func (r *EventRepository) GetRegistrations(_ context.Context, eventID int64) ([]*models.Registration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	regs := make([]*models.Registration, 0, len(r.s.registrations[eventID]))
	for _, reg := range r.s.registrations[eventID] {
		c := *reg
		c.User = r.s.userRef(&reg.UserID)
		regs = append(regs, &c)
	}
	return regs, nil
}

// List filters by category and a case-insensitive search over title and description
func (r *EventRepository) List(_ context.Context, filter models.EventFilter) ([]*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	return r.collect(func(e *models.Event) bool {
		if filter.Category != "" && e.Category != filter.Category {
			return false
		}
		if search == "" {
			return true
		}
		return strings.Contains(strings.ToLower(e.Title), search) ||
			strings.Contains(strings.ToLower(e.Description), search)
	}), nil
}

// Update replaces the editable fields of an event
func (r *EventRepository) Update(_ context.Context, e *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.events[e.ID]
	if !ok {
		return apperrors.ErrEventNotFound
	}
	stored.Title = e.Title
	stored.Description = e.Description
	stored.Category = e.Category
	stored.Date = e.Date
	stored.Time = e.Time
	stored.Venue = e.Venue
	stored.College = e.College
	stored.Organizer = e.Organizer
	stored.Capacity = e.Capacity
	stored.Image = e.Image
	stored.Status = e.Status
	stored.UpdatedAt = r.s.now()
	e.UpdatedAt = stored.UpdatedAt
	return nil
}

// Delete removes the event and its registrations
func (r *EventRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(r.s.events, id)
	delete(r.s.registrations, id)
	return nil
}

// Count returns the number of events
func (r *EventRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.events)), nil
}

// ListUpcoming returns up to limit events dated at or after from
func (r *EventRepository) ListUpcoming(_ context.Context, from time.Time, limit int) ([]*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	events := r.collect(func(e *models.Event) bool { return !e.Date.Before(from) })
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// ListByCreator returns the events a user created
func (r *EventRepository) ListByCreator(_ context.Context, userID int64) ([]*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.collect(func(e *models.Event) bool { return e.IsOwnedBy(userID) }), nil
}

// ListRegisteredByUser returns the events a user is registered for
func (r *EventRepository) ListRegisteredByUser(_ context.Context, userID int64) ([]*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.collect(func(e *models.Event) bool {
		return r.s.indexOf(e.ID, userID) >= 0
	}), nil
}
