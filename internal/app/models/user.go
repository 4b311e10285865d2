package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Name      string    `json:"name" db:"name" example:"John Student"`
	Email     string    `json:"email" db:"email" example:"john@student.edu"`
	Password  string    `json:"-" db:"password"`
	RoleType  RoleType  `json:"role" db:"role" example:"student"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2025-01-01T10:00:00Z"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2025-01-02T15:30:00Z"`
}

// UserRef is the public identity of a user embedded in other resources
type UserRef struct {
	ID    int64  `json:"id" example:"1"`
	Name  string `json:"name" example:"John Student"`
	Email string `json:"email" example:"john@student.edu"`
}

// Ref returns the embeddable identity of u
func (u *User) Ref() *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}
