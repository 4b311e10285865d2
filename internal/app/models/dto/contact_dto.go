package dto

import "github.com/yigit/cems/internal/app/models"

// ContactRequest represents the body of POST /contact
type ContactRequest struct {
	Name      string `json:"name" binding:"required,max=100" example:"John Student"`
	Email     string `json:"email" binding:"required,email" example:"john@student.edu"`
	IssueType string `json:"issueType" binding:"required,oneof=event-registration account-access event-cancellation technical-issue event-inquiry feedback other" example:"event-inquiry"`
	Subject   string `json:"subject" binding:"required,max=200" example:"Question about TechFest"`
	Message   string `json:"message" binding:"required,max=5000" example:"Is there an on-spot registration?"`
}

// UpdateContactRequest changes the status and/or records an admin response
type UpdateContactRequest struct {
	Status   *string `json:"status" binding:"omitempty,oneof=pending in-progress resolved closed" example:"resolved"`
	Response *string `json:"response" binding:"omitempty,max=5000" example:"Yes, on-spot registration opens at 9 AM."`
}

// ContactFilterRequest are the query parameters of GET /contact
type ContactFilterRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=pending in-progress resolved closed"`
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=50" binding:"min=1,max=100"`
}

// ContactListResponse is a page of contact messages
type ContactListResponse struct {
	Contacts   []*models.ContactMessage `json:"contacts"`
	Pagination PaginationInfo           `json:"pagination"`
}

// ContactStatusCounts breaks the queue down by status
type ContactStatusCounts struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
	Closed     int64 `json:"closed"`
}

// ContactStatsResponse is the admin summary of the contact queue
type ContactStatsResponse struct {
	Total       int64               `json:"total"`
	ByStatus    ContactStatusCounts `json:"byStatus"`
	ByIssueType map[string]int64    `json:"byIssueType"`
}

// ToContactStatsResponse maps the stored counters to the response shape
func ToContactStatsResponse(stats *models.ContactStats) *ContactStatsResponse {
	byIssue := make(map[string]int64, len(stats.ByIssueType))
	for k, v := range stats.ByIssueType {
		byIssue[string(k)] = v
	}
	return &ContactStatsResponse{
		Total: stats.Total,
		ByStatus: ContactStatusCounts{
			Pending:    stats.Pending,
			InProgress: stats.InProgress,
			Resolved:   stats.Resolved,
			Closed:     stats.Closed,
		},
		ByIssueType: byIssue,
	}
}
