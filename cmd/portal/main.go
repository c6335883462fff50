package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/clinic-portal/internal/api/http"
	"github.com/spec-kit/clinic-portal/internal/api/http/handlers"
	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/config"
	"github.com/spec-kit/clinic-portal/internal/events"
	"github.com/spec-kit/clinic-portal/internal/gateway"
	"github.com/spec-kit/clinic-portal/internal/observability"
	"github.com/spec-kit/clinic-portal/internal/persistence"
	"github.com/spec-kit/clinic-portal/internal/service"
	"github.com/spec-kit/clinic-portal/internal/session"
	"github.com/spec-kit/clinic-portal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	backend := gateway.NewClient(cfg.Backend.BaseURL, logger,
		gateway.WithTimeout(cfg.Backend.Timeout()),
		gateway.WithMetrics(metrics))

	sessions := session.NewStore(redis.Client, cfg.Session.TTL())
	inflight := session.NewGuard(redis.Client, cfg.App.RequestTimeout())

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(backend, sessions, cfg.Session)
	appointmentService := service.NewAppointmentService(backend, dispatcher, logger)
	consultationService := service.NewConsultationService(backend, dispatcher, logger)
	patientService := service.NewPatientService(backend)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis, backend, metrics),
		Auth:          handlers.NewAuthHandler(authService, cfg.Session),
		Appointments:  handlers.NewAppointmentsHandler(appointmentService),
		Consultations: handlers.NewConsultationsHandler(consultationService),
		Patients:      handlers.NewPatientsHandler(patientService),
		SessionLoader: auth.SessionLoader(sessions, cfg.Session.CookieName),
		Inflight:      inflight,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
