package dto

import (
	"time"

	"github.com/yigit/cems/internal/app/models"
)

// SignupRequest represents a user registration request
type SignupRequest struct {
	Name     string          `json:"name" binding:"required,max=50" example:"John Student"`
	Email    string          `json:"email" binding:"required,email" example:"john@student.edu"`
	Password string          `json:"password" binding:"required,min=6" example:"student123"`
	Role     models.RoleType `json:"role" binding:"omitempty,oneof=student event-member admin" example:"student"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"john@student.edu"`
	Password string `json:"password" binding:"required" example:"student123"`
}

// UserResponse represents public user information
type UserResponse struct {
	ID        int64     `json:"id" example:"1"`
	Name      string    `json:"name" example:"John Student"`
	Email     string    `json:"email" example:"john@student.edu"`
	Role      string    `json:"role" example:"student"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse represents a successful signup or login
type AuthResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType" example:"Bearer"`
	ExpiresIn int          `json:"expiresIn" example:"2592000"`
	User      UserResponse `json:"user"`
}

// ProfileResponse is the current user with the computed event views
type ProfileResponse struct {
	UserResponse
	RegisteredEvents []*models.Event `json:"registeredEvents"`
	CreatedEvents    []*models.Event `json:"createdEvents"`
}

// ToUserResponse maps a user model to its public shape
func ToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.RoleType),
		CreatedAt: user.CreatedAt,
	}
}

// ToUserResponses maps a user list
func ToUserResponses(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
