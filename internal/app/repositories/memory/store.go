// Package memory keeps every repository in process memory. It backs the
// "memory" database driver and the service and HTTP tests.
package memory

import (
	"sync"
	"time"

	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/app/repositories"
)

// Store is the shared state behind the in-memory repositories. A single
// mutex guards it, so every repository call is atomic.
type Store struct {
	mu sync.RWMutex

	nextUserID    int64
	nextEventID   int64
	nextContactID int64

	users         map[int64]*models.User
	events        map[int64]*models.Event
	registrations map[int64][]*models.Registration
	contacts      map[int64]*models.ContactMessage
	conversations map[string]*models.Conversation

	now func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:         make(map[int64]*models.User),
		events:        make(map[int64]*models.Event),
		registrations: make(map[int64][]*models.Registration),
		contacts:      make(map[int64]*models.ContactMessage),
		conversations: make(map[string]*models.Conversation),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// NewRepositories wires every in-memory repository over one store
func NewRepositories() *repositories.Repositories {
	s := NewStore()
	return &repositories.Repositories{
		Users:         &UserRepository{s: s},
		Events:        &EventRepository{s: s},
		Registrations: &RegistrationRepository{s: s},
		Contacts:      &ContactRepository{s: s},
		Conversations: &ConversationRepository{s: s},
	}
}

func (s *Store) userRef(id *int64) *models.UserRef {
	if id == nil {
		return nil
	}
	u, ok := s.users[*id]
	if !ok {
		return nil
	}
	return u.Ref()
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

// copyEvent returns a detached event with its creator resolved
func (s *Store) copyEvent(e *models.Event) *models.Event {
	c := *e
	if e.CreatedByID != nil {
		id := *e.CreatedByID
		c.CreatedByID = &id
	}
	c.CreatedBy = s.userRef(c.CreatedByID)
	c.RegistrationCount = len(s.registrations[e.ID])
	c.RegisteredUsers = nil
	return &c
}

func copyInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
