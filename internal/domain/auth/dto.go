package auth

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest for POST /auth/register
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest for POST /auth/login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse represents the current admin in API responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt string    `json:"created_at"`
}

// NewUserResponse builds a response DTO from user fields
func NewUserResponse(id uuid.UUID, username string, createdAt time.Time) *UserResponse {
	return &UserResponse{
		ID:        id,
		Username:  username,
		CreatedAt: createdAt.Format(time.RFC3339),
	}
}
