package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/session"
	apperrors "github.com/spec-kit/clinic-portal/pkg/util"
)

const sessionLocalsKey = "portal_session"

// LoginRoute is where unauthenticated or mis-roled navigation lands.
const LoginRoute = "/login"

// SessionLoader resolves the session cookie on every request. The lookup is
// never cached across navigations: logout can clear the session independently
// of route changes, so each navigation must see the store's current state.
func SessionLoader(store session.Store, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(cookieName)
		if id != "" {
			sess, err := store.Get(c.UserContext(), id)
			switch {
			case err == nil:
				c.Locals(sessionLocalsKey, sess)
			case errors.Is(err, session.ErrNoSession):
				// stale cookie, proceed unauthenticated
			default:
				return apperrors.MapError(err)
			}
		}
		return c.Next()
	}
}

// CurrentSession retrieves the session loaded for this request.
func CurrentSession(c *fiber.Ctx) (*domain.Session, bool) {
	val := c.Locals(sessionLocalsKey)
	if val == nil {
		return nil, false
	}
	sess, ok := val.(*domain.Session)
	return sess, ok
}

// RequireRole gates a route on an allowed-role set. A missing session or a
// role outside the set redirects to the login route. An empty set only
// requires that some session exists.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		sess, ok := CurrentSession(c)
		if !ok {
			return c.Redirect(LoginRoute, fiber.StatusFound)
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[sess.Role]; !exists {
			return c.Redirect(LoginRoute, fiber.StatusFound)
		}
		return c.Next()
	}
}
