package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/session"
)

const testCookie = "portal_session"

func newGuardApp(t *testing.T) (*fiber.App, session.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := session.NewStore(client, time.Hour)

	app := fiber.New()
	app.Use(SessionLoader(store, testCookie))
	app.Get("/patients/1", RequireRole(domain.RoleDoctor, domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("patient data")
	})
	app.Get("/appointments", RequireRole(domain.RolePatient, domain.RoleDoctor, domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("appointments")
	})
	return app, store
}

func doGet(t *testing.T, app *fiber.App, path, sessionID string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: sessionID})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestGuardRedirectsUnauthenticated(t *testing.T) {
	app, _ := newGuardApp(t)

	resp := doGet(t, app, "/appointments", "")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, LoginRoute, resp.Header.Get("Location"))
}

func TestGuardRedirectsWrongRoleEveryNavigation(t *testing.T) {
	app, store := newGuardApp(t)
	ctx := context.Background()

	doctorID, err := store.Set(ctx, "tok-doc", domain.RoleDoctor, 0)
	require.NoError(t, err)
	patientID, err := store.Set(ctx, "tok-pat", domain.RolePatient, 0)
	require.NoError(t, err)

	// A successful doctor visit must not prime any cache that would later let
	// a patient through.
	resp := doGet(t, app, "/patients/1", doctorID)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for i := 0; i < 3; i++ {
		resp = doGet(t, app, "/patients/1", patientID)
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, LoginRoute, resp.Header.Get("Location"))
	}

	// The patient still reaches shared screens.
	resp = doGet(t, app, "/appointments", patientID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGuardSeesLogoutMidSession(t *testing.T) {
	app, store := newGuardApp(t)
	ctx := context.Background()

	id, err := store.Set(ctx, "tok-doc", domain.RoleDoctor, 0)
	require.NoError(t, err)

	resp := doGet(t, app, "/patients/1", id)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, store.Clear(ctx, id))

	resp = doGet(t, app, "/patients/1", id)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, LoginRoute, resp.Header.Get("Location"))
}

func TestGuardIgnoresStaleCookie(t *testing.T) {
	app, _ := newGuardApp(t)

	resp := doGet(t, app, "/appointments", "stale-session-id")
	require.Equal(t, http.StatusFound, resp.StatusCode)
}
