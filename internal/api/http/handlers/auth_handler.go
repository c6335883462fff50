package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/api/dto"
	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/config"
	"github.com/spec-kit/clinic-portal/internal/service"
	apperrors "github.com/spec-kit/clinic-portal/pkg/util"
)

// AuthHandler manages login, logout and the current-session probe.
type AuthHandler struct {
	service      *service.AuthService
	cookieName   string
	cookieSecure bool
	ttl          time.Duration
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{
		service:      authService,
		cookieName:   cfg.CookieName,
		cookieSecure: cfg.CookieSecure,
		ttl:          cfg.TTL(),
	}
}

// LoginPage GET /login. Where unauthenticated navigation lands.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "login required"}})
}

// Login POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sess, err := h.service.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    sess.ID,
		Expires:  time.Now().Add(h.ttl),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: "Lax",
	})
	return c.JSON(fiber.Map{"data": dto.SessionResponse{Role: sess.Role}})
}

// Logout POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess, ok := auth.CurrentSession(c); ok {
		if err := h.service.Logout(c.UserContext(), sess.ID); err != nil {
			return err
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: "Lax",
	})
	return c.Redirect(auth.LoginRoute, fiber.StatusFound)
}

// Me GET /me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess, ok := auth.CurrentSession(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}
	return c.JSON(fiber.Map{"data": dto.SessionResponse{Role: sess.Role}})
}
