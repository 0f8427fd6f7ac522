package client

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/framevault/framevault-api/internal/pkg/response"
	"github.com/framevault/framevault-api/internal/pkg/validator"
)

// Handler handles client HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates client handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /clients
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*ClientResponse, len(clients))
	for i, c := range clients {
		items[i] = ClientResponseFromEntity(c)
	}
	response.OK(w, items)
}

// Get handles GET /clients/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid client ID")
		return
	}

	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			response.NotFound(w, "Client not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, ClientResponseFromEntity(c))
}

// Create handles POST /clients
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	c, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, ClientResponseFromEntity(c))
}

// Update handles PUT /clients/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid client ID")
		return
	}

	var req UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	c, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			response.NotFound(w, "Client not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, ClientResponseFromEntity(c))
}

// Delete handles DELETE /clients/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid client ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrClientNotFound) {
			response.NotFound(w, "Client not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// ResolvePublic handles GET /public/clients/{accessToken}. Unknown and
// malformed tokens get the same 404.
func (h *Handler) ResolvePublic(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Resolve(r.Context(), chi.URLParam(r, "accessToken"))
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			response.NotFound(w, "Invalid or expired link")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, PublicClientResponseFromEntity(c))
}
