package memory

import (
	"context"
	"sort"

	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/pkg/apperrors"
	"github.com/yigit/cems/internal/pkg/helpers"
)

// ContactRepository is the in-memory contact_messages table
type ContactRepository struct {
	s *Store
}

func (s *Store) copyContact(c *models.ContactMessage) *models.ContactMessage {
	out := *c
	out.Response = copyString(c.Response)
	out.RespondedByID = copyInt64(c.RespondedByID)
	out.RespondedAt = copyTime(c.RespondedAt)
	out.UserID = copyInt64(c.UserID)
	out.RespondedBy = s.userRef(c.RespondedByID)
	return &out
}

// Create stores a contact message
func (r *ContactRepository) Create(_ context.Context, c *models.ContactMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextContactID++
	now := r.s.now()
	c.ID = r.s.nextContactID
	c.CreatedAt = now
	c.UpdatedAt = now
	r.s.contacts[c.ID] = r.s.copyContact(c)
	return nil
}

// GetByID returns a copy of the contact message
func (r *ContactRepository) GetByID(_ context.Context, id int64) (*models.ContactMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.contacts[id]
	if !ok {
		return nil, apperrors.ErrContactNotFound
	}
	return r.s.copyContact(c), nil
}

// List returns one page, newest first, with the total matching count
func (r *ContactRepository) List(_ context.Context, filter models.ContactFilter) ([]*models.ContactMessage, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]*models.ContactMessage, 0)
	for _, c := range r.s.contacts {
		if filter.Status == "" || c.Status == filter.Status {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start, end := helpers.SliceBounds(filter.Offset, filter.Limit, len(matched))

	page := make([]*models.ContactMessage, 0, end-start)
	for _, c := range matched[start:end] {
		page = append(page, r.s.copyContact(c))
	}
	return page, total, nil
}

// Update writes the status and response fields
func (r *ContactRepository) Update(_ context.Context, c *models.ContactMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.contacts[c.ID]
	if !ok {
		return apperrors.ErrContactNotFound
	}
	stored.Status = c.Status
	stored.Response = copyString(c.Response)
	stored.RespondedByID = copyInt64(c.RespondedByID)
	stored.RespondedAt = copyTime(c.RespondedAt)
	stored.UpdatedAt = r.s.now()
	c.UpdatedAt = stored.UpdatedAt
	return nil
}

// Delete removes a contact message
func (r *ContactRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.contacts[id]; !ok {
		return apperrors.ErrContactNotFound
	}
	delete(r.s.contacts, id)
	return nil
}

// Stats counts messages per status and per issue type
func (r *ContactRepository) Stats(_ context.Context) (*models.ContactStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stats := &models.ContactStats{ByIssueType: make(map[models.IssueType]int64)}
	for _, c := range r.s.contacts {
		stats.Add(c.Status, c.IssueType, 1)
	}
	return stats, nil
}
