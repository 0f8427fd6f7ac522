package video

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/framevault/framevault-api/internal/pkg/response"
	"github.com/framevault/framevault-api/internal/pkg/validator"
	"github.com/framevault/framevault-api/internal/pkg/youtube"
)

// Resolver maps a public gallery access token to a client ID
type Resolver interface {
	ResolveClientID(ctx context.Context, accessToken string) (uuid.UUID, error)
}

// Handler handles video HTTP requests
type Handler struct {
	service  *Service
	resolver Resolver
}

// NewHandler creates video handler
func NewHandler(service *Service, resolver Resolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

// Create handles POST /videos
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	v, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, youtube.ErrInvalidURL):
			response.ValidationError(w, map[string]string{"youtube_url": "Not a valid YouTube video URL"})
		case errors.Is(err, ErrClientNotFound):
			response.NotFound(w, "Client not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, VideoResponseFromEntity(v))
}

// List handles GET /videos?client_id=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var clientID *uuid.UUID
	if raw := r.URL.Query().Get("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid client ID")
			return
		}
		clientID = &id
	}

	videos, err := h.service.List(r.Context(), clientID)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*VideoResponse, len(videos))
	for i, v := range videos {
		items[i] = VideoResponseFromEntity(v)
	}
	response.OK(w, items)
}

// Delete handles DELETE /videos/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid video ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			response.NotFound(w, "Video not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// PublicList handles GET /public/clients/{accessToken}/videos
func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	clientID, err := h.resolver.ResolveClientID(r.Context(), chi.URLParam(r, "accessToken"))
	if err != nil {
		// Only a genuinely unknown token is a dead link; a failing
		// backend must not masquerade as one
		if errors.Is(err, ErrClientNotFound) {
			response.NotFound(w, "Invalid or expired link")
			return
		}
		response.InternalError(w)
		return
	}

	videos, err := h.service.ListByClient(r.Context(), clientID)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*VideoResponse, len(videos))
	for i, v := range videos {
		items[i] = VideoResponseFromEntity(v)
	}
	response.OK(w, items)
}
