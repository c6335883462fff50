package dto

import "github.com/spec-kit/clinic-portal/internal/domain"

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse echoes the current actor's role. The token itself never
// leaves the portal.
type SessionResponse struct {
	Role domain.Role `json:"role"`
}
