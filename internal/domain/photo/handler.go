package photo

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/framevault/framevault-api/internal/pkg/response"
	"github.com/framevault/framevault-api/internal/pkg/storage"
	"github.com/framevault/framevault-api/internal/pkg/validator"
)

// Resolver maps a public gallery access token to a client ID
type Resolver interface {
	ResolveClientID(ctx context.Context, accessToken string) (uuid.UUID, error)
}

// Handler handles photo HTTP requests
type Handler struct {
	service  *Service
	resolver Resolver
	maxBytes int64
}

// NewHandler creates photo handler. maxBytes caps the whole multipart
// request body; per-file limits are enforced by the service.
func NewHandler(service *Service, resolver Resolver, maxBytes int64) *Handler {
	return &Handler{service: service, resolver: resolver, maxBytes: maxBytes}
}

// Create handles POST /photos (multipart/form-data: title, client_id,
// description?, one-or-many "files" parts)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.PayloadTooLarge(w, "Upload too large")
			return
		}
		response.BadRequest(w, "Malformed multipart body")
		return
	}

	clientID, err := uuid.Parse(r.FormValue("client_id"))
	if err != nil {
		response.BadRequest(w, "Invalid client ID")
		return
	}

	req := CreatePhotosRequest{
		Title:       r.FormValue("title"),
		ClientID:    clientID,
		Description: r.FormValue("description"),
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		headers = r.MultipartForm.File["file"]
	}
	if len(headers) == 0 {
		response.BadRequest(w, "No files in upload")
		return
	}

	uploads := make([]UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			response.InternalError(w)
			return
		}
		defer f.Close()
		uploads = append(uploads, UploadFile{Name: fh.Filename, Reader: f})
	}

	photos, err := h.service.Upload(r.Context(), &req, uploads)
	if err != nil {
		switch {
		case errors.Is(err, ErrClientNotFound):
			response.NotFound(w, "Client not found")
		case errors.Is(err, storage.ErrFileTooLarge):
			response.PayloadTooLarge(w, "A file exceeds the upload size limit")
		case errors.Is(err, storage.ErrInvalidMimeType), errors.Is(err, storage.ErrEmptyFile):
			response.UnsupportedMediaType(w, "Only JPEG, PNG, GIF, WebP and SVG images are allowed")
		case errors.Is(err, ErrTooManyFiles):
			response.BadRequest(w, "Too many files in one upload")
		default:
			response.InternalError(w)
		}
		return
	}

	base := requestBaseURL(r)
	items := make([]*PhotoResponse, len(photos))
	for i, p := range photos {
		items[i] = PhotoResponseFromEntity(p, base)
	}
	response.Created(w, items)
}

// List handles GET /photos?client_id=
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

	photos, err := h.service.List(r.Context(), clientID)
	if err != nil {
		response.InternalError(w)
		return
	}

	base := requestBaseURL(r)
	items := make([]*PhotoResponse, len(photos))
	for i, p := range photos {
		items[i] = PhotoResponseFromEntity(p, base)
	}
	response.OK(w, items)
}

// Delete handles DELETE /photos/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid photo ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			response.NotFound(w, "Photo not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// PublicList handles GET /public/clients/{accessToken}/photos
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

	photos, err := h.service.ListByClient(r.Context(), clientID)
	if err != nil {
		response.InternalError(w)
		return
	}

	base := requestBaseURL(r)
	items := make([]*PhotoResponse, len(photos))
	for i, p := range photos {
		items[i] = PhotoResponseFromEntity(p, base)
	}
	response.OK(w, items)
}

// requestBaseURL reconstructs "scheme://host" of the serving request,
// honoring proxy headers.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
