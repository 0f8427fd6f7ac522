package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/framevault/framevault-api/internal/middleware"
	"github.com/framevault/framevault-api/internal/pkg/response"
	"github.com/framevault/framevault-api/internal/pkg/validator"
)

// CookieConfig controls how the session cookie is issued
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// Handler handles auth HTTP requests
type Handler struct {
	service *Service
	cookie  CookieConfig
}

// NewHandler creates auth handler
func NewHandler(service *Service, cookie CookieConfig) *Handler {
	return &Handler{service: service, cookie: cookie}
}

// Register handles POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, sessionID, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			response.Conflict(w, "Username already taken")
			return
		}
		response.InternalError(w)
		return
	}

	h.setSessionCookie(w, sessionID)
	response.Created(w, NewUserResponse(u.ID, u.Username, u.CreatedAt))
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, sessionID, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, "Invalid username or password")
			return
		}
		response.InternalError(w)
		return
	}

	h.setSessionCookie(w, sessionID)
	response.OK(w, NewUserResponse(u.ID, u.Username, u.CreatedAt))
}

// Logout handles POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	if sessionID != "" {
		if err := h.service.Logout(r.Context(), sessionID); err != nil {
			response.InternalError(w)
			return
		}
	}

	h.clearSessionCookie(w)
	response.NoContent(w)
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	u, err := h.service.CurrentUser(r.Context(), userID)
	if err != nil {
		response.Unauthorized(w, "Session expired or invalid")
		return
	}

	response.OK(w, NewUserResponse(u.ID, u.Username, u.CreatedAt))
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
