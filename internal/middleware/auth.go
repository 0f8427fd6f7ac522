package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/framevault/framevault-api/internal/pkg/response"
	"github.com/framevault/framevault-api/internal/pkg/session"
)

type contextKey string

const (
	// UserIDKey holds the authenticated admin's user ID
	UserIDKey contextKey = "user_id"
	// SessionIDKey holds the current session ID
	SessionIDKey contextKey = "session_id"
)

// UserChecker reports whether a user ID still maps to an existing user.
// Sessions outlive user deletion, so the guard re-checks on every request.
type UserChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// SessionAuth returns middleware that gates admin routes behind a valid
// session cookie. Requests without a valid, non-expired session mapped to
// an existing user are rejected and the handler is never invoked.
func SessionAuth(store session.Store, users UserChecker, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				response.Unauthorized(w, "Authentication required")
				return
			}

			userID, err := store.Get(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, session.ErrNotFound) {
					response.Unauthorized(w, "Session expired or invalid")
				} else {
					response.InternalError(w)
				}
				return
			}

			exists, err := users.Exists(r.Context(), userID)
			if err != nil {
				response.InternalError(w)
				return
			}
			if !exists {
				_ = store.Delete(r.Context(), cookie.Value)
				response.Unauthorized(w, "Session expired or invalid")
				return
			}

			// Sliding expiry: an authenticated request extends the
			// session to a full TTL. Best effort; the request already
			// authenticated.
			_ = store.Refresh(r.Context(), cookie.Value)

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, SessionIDKey, cookie.Value)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user ID from context
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetSessionID extracts the session ID from context
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(SessionIDKey).(string); ok {
		return id
	}
	return ""
}
