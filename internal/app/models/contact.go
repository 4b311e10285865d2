package models

import "time"

// IssueType classifies a contact message
type IssueType string

const (
	IssueEventRegistration IssueType = "event-registration"
	IssueAccountAccess     IssueType = "account-access"
	IssueEventCancellation IssueType = "event-cancellation"
	IssueTechnical         IssueType = "technical-issue"
	IssueEventInquiry      IssueType = "event-inquiry"
	IssueFeedback          IssueType = "feedback"
	IssueOther             IssueType = "other"
)

// Valid reports whether t is a known issue type
func (t IssueType) Valid() bool {
	switch t {
	case IssueEventRegistration, IssueAccountAccess, IssueEventCancellation,
		IssueTechnical, IssueEventInquiry, IssueFeedback, IssueOther:
		return true
	}
	return false
}

// ContactStatus tracks the handling of a contact message
type ContactStatus string

const (
	ContactPending    ContactStatus = "pending"
	ContactInProgress ContactStatus = "in-progress"
	ContactResolved   ContactStatus = "resolved"
	ContactClosed     ContactStatus = "closed"
)

// Valid reports whether s is a known contact status
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactPending, ContactInProgress, ContactResolved, ContactClosed:
		return true
	}
	return false
}

// ContactMessage represents a row of the 'contact_messages' table
type ContactMessage struct {
	ID            int64         `json:"id" db:"id"`
	Name          string        `json:"name" db:"name"`
	Email         string        `json:"email" db:"email"`
	IssueType     IssueType     `json:"issueType" db:"issue_type"`
	Subject       string        `json:"subject" db:"subject"`
	Message       string        `json:"message" db:"message"`
	Status        ContactStatus `json:"status" db:"status"`
	Response      *string       `json:"response,omitempty" db:"response"`
	RespondedByID *int64        `json:"-" db:"responded_by"`
	RespondedAt   *time.Time    `json:"respondedAt,omitempty" db:"responded_at"`
	UserID        *int64        `json:"userId,omitempty" db:"user_id"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`

	// Related entities
	RespondedBy *UserRef `json:"respondedBy,omitempty"`
}

// ContactFilter narrows and pages a contact listing
type ContactFilter struct {
	Status ContactStatus
	Offset int
	Limit  int
}

// ContactStats summarizes the contact queue
type ContactStats struct {
	Total       int64
	Pending     int64
	InProgress  int64
	Resolved    int64
	Closed      int64
	ByIssueType map[IssueType]int64
}

// Add folds n messages of the given status and issue type into the totals
func (s *ContactStats) Add(status ContactStatus, issueType IssueType, n int64) {
	if s.ByIssueType == nil {
		s.ByIssueType = make(map[IssueType]int64)
	}
	s.Total += n
	s.ByIssueType[issueType] += n
	switch status {
	case ContactPending:
		s.Pending += n
	case ContactInProgress:
		s.InProgress += n
	case ContactResolved:
		s.Resolved += n
	case ContactClosed:
		s.Closed += n
	}
}
