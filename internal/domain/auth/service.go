package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/framevault/framevault-api/internal/domain/user"
	"github.com/framevault/framevault-api/internal/pkg/password"
	"github.com/framevault/framevault-api/internal/pkg/session"
)

// Service handles admin authentication business logic
type Service struct {
	userRepo user.Repository
	sessions session.Store
}

// NewService creates auth service
func NewService(userRepo user.Repository, sessions session.Store) *Service {
	return &Service{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// Register creates a new admin account and starts a session for it.
// Returns the user and the new session ID.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*user.User, string, error) {
	username := normalizeUsername(req.Username)

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrUsernameTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, "", err
	}

	u := &user.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	sessionID, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}

	return u, sessionID, nil
}

// Login verifies credentials and starts a session.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*user.User, string, error) {
	u, err := s.userRepo.GetByUsername(ctx, normalizeUsername(req.Username))
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		// Burn a hash comparison so missing users cost the same as bad passwords
		password.Verify(req.Password, "$2a$12$XXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX")
		return nil, "", ErrInvalidCredentials
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	sessionID, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}

	return u, sessionID, nil
}

// Logout ends the session
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// CurrentUser loads the user owning a session's user ID
func (s *Service) CurrentUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
