package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/config"
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/gateway"
	"github.com/spec-kit/clinic-portal/internal/session"
	apperrors "github.com/spec-kit/clinic-portal/pkg/util"
)

// AuthService coordinates login and logout against the external auth server.
// The portal never verifies credentials itself.
type AuthService struct {
	backend  *gateway.Client
	sessions session.Store
	ttl      time.Duration
}

// NewAuthService builds the service.
func NewAuthService(backend *gateway.Client, sessions session.Store, cfg config.SessionConfig) *AuthService {
	return &AuthService{backend: backend, sessions: sessions, ttl: cfg.TTL()}
}

// Login exchanges credentials for a backend token and opens a portal session.
// The role claim comes from the token response when present, otherwise from
// /api/users/me. The session never outlives the token's exp claim.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username and password required", nil)
	}

	token, err := s.backend.PasswordGrant(ctx, username, password)
	if err != nil {
		return nil, err
	}

	role := domain.Role(token.Role)
	if !role.Valid() {
		me, err := s.backend.CurrentUser(ctx, token.AccessToken)
		if err != nil {
			return nil, err
		}
		role = domain.Role(me.Role)
	}
	if !role.Valid() {
		return nil, apperrors.NewUnauthorized("backend returned unknown role")
	}

	ttl := s.ttl
	if tokenTTL, ok := auth.TokenTTL(token.AccessToken, time.Now()); ok && tokenTTL < ttl {
		ttl = tokenTTL
	}

	id, err := s.sessions.Set(ctx, token.AccessToken, role, ttl)
	if err != nil {
		return nil, err
	}
	return &domain.Session{ID: id, Token: token.AccessToken, Role: role}, nil
}

// Logout clears the session. Logging out without a session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Clear(ctx, sessionID)
}
