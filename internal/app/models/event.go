package models

import "time"

// Event defaults applied on creation
const (
	DefaultEventCapacity = 100
	DefaultEventCollege  = "Unknown College"
	DefaultEventImage    = "https://images.unsplash.com/photo-1540575467063-178a50c2df87?w=800&h=400&fit=crop"
)

// Event represents an event in the 'events' table
type Event struct {
	ID                  int64         `json:"id" db:"id"`
	Title               string        `json:"title" db:"title"`
	Description         string        `json:"description" db:"description"`
	Category            EventCategory `json:"category" db:"category"`
	Date                time.Time     `json:"date" db:"date"`
	Time                string        `json:"time" db:"time"`
	Venue               string        `json:"venue" db:"venue"`
	College             string        `json:"college" db:"college"`
	Organizer           string        `json:"organizer" db:"organizer"`
	Capacity            int           `json:"capacity" db:"capacity"`
	Image               string        `json:"image" db:"image"`
	Status              EventStatus   `json:"status" db:"status"`
	CreatedByID         *int64        `json:"-" db:"created_by"`
	RegistrationCount   int           `json:"registrationCount" db:"registration_count"`
	RegistrationVersion int64         `json:"-" db:"registration_version"`
	CreatedAt           time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time     `json:"updatedAt" db:"updated_at"`

	// Related entities
	CreatedBy       *UserRef        `json:"createdBy"`
	RegisteredUsers []*Registration `json:"registeredUsers,omitempty"`
}

// IsOwnedBy reports whether userID created the event
func (e *Event) IsOwnedBy(userID int64) bool {
	return e.CreatedByID != nil && *e.CreatedByID == userID
}

// IsFull reports whether no more registrations can be accepted
func (e *Event) IsFull() bool {
	return e.RegistrationCount >= e.Capacity
}

// RegistrationDetails are the optional fields a student supplies when registering
type RegistrationDetails struct {
	Phone               string `json:"phone,omitempty" db:"phone"`
	College             string `json:"college,omitempty" db:"college"`
	YearOfStudy         string `json:"yearOfStudy,omitempty" db:"year_of_study"`
	Department          string `json:"department,omitempty" db:"department"`
	SpecialRequirements string `json:"specialRequirements,omitempty" db:"special_requirements"`
}

// Registration links a user to an event in the 'event_registrations' table
type Registration struct {
	EventID      int64     `json:"-" db:"event_id"`
	UserID       int64     `json:"-" db:"user_id"`
	RegisteredAt time.Time `json:"registeredAt" db:"registered_at"`
	RegistrationDetails

	// Related entities
	User *UserRef `json:"user"`
}

// RegistrationState is the count of an event right after a register or unregister
type RegistrationState struct {
	EventID           int64
	RegistrationCount int
	Capacity          int
	// Version grows with every change to the event's registrant list
	Version int64
}

// EventFilter narrows an event listing
type EventFilter struct {
	Category EventCategory
	Search   string
}
