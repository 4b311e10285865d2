package dto

import "time"

// StructuredResponse is the success envelope of every JSON endpoint
type StructuredResponse struct {
	Success   bool        `json:"success" example:"true"`
	Message   string      `json:"message,omitempty" example:"Operation completed successfully"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewStructuredResponse creates a standard structured API response
func NewStructuredResponse(data interface{}, message string) StructuredResponse {
	return StructuredResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// PaginationInfo represents pagination metadata
type PaginationInfo struct {
	CurrentPage int   `json:"page" example:"1"`
	TotalPages  int   `json:"pages" example:"3"`
	PageSize    int   `json:"limit" example:"50"`
	TotalItems  int64 `json:"total" example:"120"`
}
