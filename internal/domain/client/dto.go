package client

import (
	"time"
)

// CreateClientRequest for POST /clients
type CreateClientRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateClientRequest for PUT /clients/{id}. The access token is not
// updatable; it is absent here on purpose.
type UpdateClientRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Description string `json:"description" validate:"max=2000"`
}

// ClientResponse represents a client in admin API responses
type ClientResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Description  string  `json:"description,omitempty"`
	AccessToken  string  `json:"access_token"`
	AccessCount  int64   `json:"access_count"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	LastAccessed *string `json:"last_accessed"`
}

// ClientResponseFromEntity converts entity to admin response DTO
func ClientResponseFromEntity(c *Client) *ClientResponse {
	resp := &ClientResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Email:       c.Email,
		Description: c.Description,
		AccessToken: c.AccessToken,
		AccessCount: c.AccessCount,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
	if c.LastAccessed != nil {
		la := c.LastAccessed.Format(time.RFC3339)
		resp.LastAccessed = &la
	}
	return resp
}

// PublicClientResponse is the gallery-visible view of a client. No
// email, no internal IDs; the caller already holds the access token.
type PublicClientResponse struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// PublicClientResponseFromEntity converts entity to public response DTO
func PublicClientResponseFromEntity(c *Client) *PublicClientResponse {
	return &PublicClientResponse{
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
}
