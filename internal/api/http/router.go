package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/api/http/handlers"
	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/session"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Appointments  *handlers.AppointmentsHandler
	Consultations *handlers.ConsultationsHandler
	Patients      *handlers.PatientsHandler
	SessionLoader fiber.Handler
	Inflight      *session.Guard
}

// RegisterRoutes wires HTTP routes. Role guards are declared per route group;
// the session loader in front of them re-resolves the session on every
// navigation.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Use(cfg.SessionLoader)

	app.Get("/login", cfg.Auth.LoginPage)
	app.Post("/login", cfg.Auth.Login)
	app.Post("/logout", cfg.Auth.Logout)
	app.Get("/me", auth.RequireRole(), cfg.Auth.Me)

	appointments := app.Group("/appointments",
		auth.RequireRole(domain.RolePatient, domain.RoleDoctor, domain.RoleAdmin))
	appointments.Get("/", cfg.Appointments.List)
	appointments.Post("/",
		InflightGuard(cfg.Inflight, "appointment_create"),
		cfg.Appointments.Create)
	appointments.Post("/:id/cancel",
		InflightGuard(cfg.Inflight, "appointment_cancel"),
		cfg.Appointments.Cancel)

	// Doctor console screens.
	app.Post("/consultations",
		auth.RequireRole(domain.RoleDoctor, domain.RoleAdmin),
		InflightGuard(cfg.Inflight, "consultation_submit"),
		cfg.Consultations.Submit)
	app.Get("/patients/:id",
		auth.RequireRole(domain.RoleDoctor, domain.RoleAdmin),
		cfg.Patients.Get)
}
