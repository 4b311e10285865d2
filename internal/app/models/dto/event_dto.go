package dto

import "github.com/yigit/cems/internal/app/models"

// CreateEventRequest represents the body of POST /events
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required,max=100" example:"TechFest 2025"`
	Description string `json:"description" binding:"required,max=1000" example:"Annual technical festival"`
	Category    string `json:"category" binding:"required,oneof=technical cultural sports workshop" example:"technical"`
	Date        string `json:"date" binding:"required" example:"2025-03-15"`
	Time        string `json:"time" binding:"required" example:"10:00 AM"`
	Venue       string `json:"venue" binding:"required" example:"Main Auditorium"`
	College     string `json:"college" example:"MIT College of Engineering"`
	Organizer   string `json:"organizer" example:"Tech Club"`
	Capacity    *int   `json:"capacity" binding:"omitempty,min=1" example:"500"`
	Image       string `json:"image" binding:"omitempty,url"`
	Status      string `json:"status" binding:"omitempty,oneof=upcoming ongoing completed cancelled" example:"upcoming"`
}

// UpdateEventRequest is a partial patch; absent fields keep their value
type UpdateEventRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Category    *string `json:"category" binding:"omitempty,oneof=technical cultural sports workshop"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Venue       *string `json:"venue"`
	College     *string `json:"college"`
	Organizer   *string `json:"organizer"`
	Capacity    *int    `json:"capacity" binding:"omitempty,min=1"`
	Image       *string `json:"image" binding:"omitempty,url"`
	Status      *string `json:"status" binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

// RegisterEventRequest carries the optional registration details
type RegisterEventRequest struct {
	Phone               string `json:"phone" binding:"max=20" example:"+91 98765 43210"`
	College             string `json:"college" binding:"max=100" example:"MIT College of Engineering"`
	YearOfStudy         string `json:"yearOfStudy" binding:"max=20" example:"3rd Year"`
	Department          string `json:"department" binding:"max=100" example:"Computer Science"`
	SpecialRequirements string `json:"specialRequirements" binding:"max=500"`
}

// Details converts the request into the stored registration details
func (r *RegisterEventRequest) Details() models.RegistrationDetails {
	if r == nil {
		return models.RegistrationDetails{}
	}
	return models.RegistrationDetails{
		Phone:               r.Phone,
		College:             r.College,
		YearOfStudy:         r.YearOfStudy,
		Department:          r.Department,
		SpecialRequirements: r.SpecialRequirements,
	}
}

// EventFilterRequest are the query parameters of GET /events
type EventFilterRequest struct {
	Category string `form:"category" binding:"omitempty,oneof=technical cultural sports workshop"`
	Search   string `form:"search"`
}

// EventListResponse is a list of events with its size
type EventListResponse struct {
	Count  int             `json:"count" example:"5"`
	Events []*models.Event `json:"events"`
}

// RegistrationResponse reports the event state after a register or unregister
type RegistrationResponse struct {
	EventID           int64 `json:"eventId" example:"1"`
	RegistrationCount int   `json:"registrationCount" example:"43"`
	Capacity          int   `json:"capacity" example:"500"`
}
