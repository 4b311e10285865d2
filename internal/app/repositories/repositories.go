package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/cems/internal/app/models"
)

// IUserRepository defines user persistence
type IUserRepository interface {
	// Create stores user and fills ID and timestamps. A taken email yields apperrors.ErrEmailAlreadyExists.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
	// Delete removes the user and their registrations and orphans the events they created.
	Delete(ctx context.Context, id int64) error
}

// IEventRepository defines event persistence
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	// GetRegistrations returns the registrants of an event in registration order.
	GetRegistrations(ctx context.Context, eventID int64) ([]*models.Registration, error)
	// List returns events matching filter ordered by date ascending.
	List(ctx context.Context, filter models.EventFilter) ([]*models.Event, error)
	// Update writes every editable column of event. Registration data is untouched.
	Update(ctx context.Context, event *models.Event) error
	// Delete removes the event and all of its registrations.
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*models.Event, error)
	ListByCreator(ctx context.Context, userID int64) ([]*models.Event, error)
	ListRegisteredByUser(ctx context.Context, userID int64) ([]*models.Event, error)
}

// IRegistrationRepository applies the registration workflow atomically per event
type IRegistrationRepository interface {
	// Register checks existence, duplicate and capacity, in that order, and
	// appends the registration as one unit.
	Register(ctx context.Context, eventID, userID int64, details models.RegistrationDetails) (*models.RegistrationState, error)
	Unregister(ctx context.Context, eventID, userID int64) (*models.RegistrationState, error)
}

// IContactRepository defines contact message persistence
type IContactRepository interface {
	Create(ctx context.Context, contact *models.ContactMessage) error
	GetByID(ctx context.Context, id int64) (*models.ContactMessage, error)
	// List returns one page, newest first, and the total matching count.
	List(ctx context.Context, filter models.ContactFilter) ([]*models.ContactMessage, int64, error)
	Update(ctx context.Context, contact *models.ContactMessage) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.ContactStats, error)
}

// IConversationRepository defines chatbot transcript persistence
type IConversationRepository interface {
	// Create stores a new conversation. An existing id yields apperrors.ErrConflict.
	Create(ctx context.Context, conv *models.Conversation) error
	Get(ctx context.Context, conversationID string) (*models.Conversation, error)
	// AppendMessages adds messages, sets the title and bumps UpdatedAt.
	AppendMessages(ctx context.Context, conversationID, title string, msgs ...*models.ChatMessage) error
	Delete(ctx context.Context, conversationID string) error
	// ListByUser returns the user's conversations, most recently updated first.
	ListByUser(ctx context.Context, userID int64) ([]*models.ConversationSummary, error)
	DeleteByUser(ctx context.Context, userID int64) error
	// DeleteIdleBefore evicts conversations not updated since cutoff.
	DeleteIdleBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	Users         IUserRepository
	Events        IEventRepository
	Registrations IRegistrationRepository
	Contacts      IContactRepository
	Conversations IConversationRepository
}

// NewRepositories wires the PostgreSQL implementations
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		Events:        NewEventRepository(db),
		Registrations: NewRegistrationRepository(db),
		Contacts:      NewContactRepository(db),
		Conversations: NewConversationRepository(db),
	}
}
