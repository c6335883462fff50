package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/api/http/handlers"
	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/config"
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/events"
	"github.com/spec-kit/clinic-portal/internal/gateway"
	"github.com/spec-kit/clinic-portal/internal/observability"
	"github.com/spec-kit/clinic-portal/internal/persistence"
	"github.com/spec-kit/clinic-portal/internal/service"
	"github.com/spec-kit/clinic-portal/internal/session"
)

const testCookieName = "portal_session"

// fakeClinic simulates the external backend: auth server plus record store.
type fakeClinic struct {
	mu           sync.Mutex
	appointments []domain.Appointment
	nextID       int
	consultas    int
}

func (f *fakeClinic) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		user, pass := r.PostForm.Get("username"), r.PostForm.Get("password")
		switch {
		case user == "ana@clinic.test" && pass == "secret":
			_ = json.NewEncoder(w).Encode(gateway.TokenResponse{AccessToken: "tok-pat", TokenType: "bearer", Role: "patient"})
		case user == "dr@clinic.test" && pass == "secret":
			_ = json.NewEncoder(w).Encode(gateway.TokenResponse{AccessToken: "tok-doc", TokenType: "bearer", Role: "doctor"})
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"invalid credentials"}`))
		}
	})

	authorized := func(r *http.Request) bool {
		bearer := r.Header.Get("Authorization")
		return bearer == "Bearer tok-pat" || bearer == "Bearer tok-doc"
	}

	mux.HandleFunc("GET /appointments/", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(f.appointments)
	})

	mux.HandleFunc("POST /appointments/", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var req gateway.CreateAppointmentRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		defer f.mu.Unlock()
		f.nextID++
		created := domain.Appointment{
			ID:          fmt.Sprintf("%d", f.nextID),
			PatientID:   req.PatientID,
			ScheduledAt: req.ScheduledAt,
			Reason:      req.Reason,
			Status:      domain.AppointmentStatusScheduled,
		}
		f.appointments = append(f.appointments, created)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created)
	})

	mux.HandleFunc("POST /appointments/{id}/cancel", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		id := r.PathValue("id")
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.appointments {
			if f.appointments[i].ID == id {
				if f.appointments[i].Status == domain.AppointmentStatusCancelled {
					w.WriteHeader(http.StatusConflict)
					_, _ = w.Write([]byte(`{"detail":"already cancelled"}`))
					return
				}
				f.appointments[i].Status = domain.AppointmentStatusCancelled
				_, _ = w.Write([]byte(`{}`))
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"appointment not found"}`))
	})

	mux.HandleFunc("GET /patients/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.PathValue("id") != "7" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"patient not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(domain.Patient{ID: "7", Name: "Carlos Lopez", Age: 54})
	})

	mux.HandleFunc("POST /consultas", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.mu.Lock()
		f.consultas++
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	})

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func (f *fakeClinic) consultaCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.consultas
}

func newPortal(t *testing.T) (*fiber.App, *fakeClinic) {
	t.Helper()
	clinic := &fakeClinic{
		appointments: []domain.Appointment{
			{ID: "1", PatientID: "7", ScheduledAt: "2025-01-20T10:00:00", Reason: "checkup", Status: domain.AppointmentStatusScheduled},
			{ID: "2", PatientID: "7", ScheduledAt: "2025-01-22T14:00:00", Reason: "headache", Status: domain.AppointmentStatusScheduled},
		},
		nextID: 2,
	}
	backendServer := clinic.server(t)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	backend := gateway.NewClient(backendServer.URL, logger, gateway.WithMetrics(metrics))

	sessionCfg := config.SessionConfig{TTLMinutes: 60, CookieName: testCookieName}
	sessions := session.NewStore(redisClient, sessionCfg.TTL())
	inflight := session.NewGuard(redisClient, 30*time.Second)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, config.NotificationConfig{})
	notificationService.RegisterHandlers()

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:        handlers.NewHealthHandler("clinic-portal", "test", &persistence.Redis{Client: redisClient}, backend, metrics),
		Auth:          handlers.NewAuthHandler(service.NewAuthService(backend, sessions, sessionCfg), sessionCfg),
		Appointments:  handlers.NewAppointmentsHandler(service.NewAppointmentService(backend, dispatcher, logger)),
		Consultations: handlers.NewConsultationsHandler(service.NewConsultationService(backend, dispatcher, logger)),
		Patients:      handlers.NewPatientsHandler(service.NewPatientService(backend)),
		SessionLoader: auth.SessionLoader(sessions, testCookieName),
		Inflight:      inflight,
	})
	return app, clinic
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == testCookieName {
			return cookie.Value
		}
	}
	t.Fatal("login did not set a session cookie")
	return ""
}

func request(t *testing.T, app *fiber.App, method, path, sessionID string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: sessionID})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestPatientBookingScenario(t *testing.T) {
	app, _ := newPortal(t)

	sessionID := login(t, app, "ana@clinic.test", "secret")

	// List the seeded appointments.
	resp := request(t, app, http.MethodGet, "/appointments", sessionID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []map[string]any
	decodeData(t, resp, &listed)
	require.Len(t, listed, 2)
	require.Equal(t, "2025-01-20", listed[0]["date"])
	require.Equal(t, "10:00", listed[0]["time"])

	// Book a new one; the portal combines date and time.
	resp = request(t, app, http.MethodPost, "/appointments", sessionID, map[string]string{
		"patient_id": "7",
		"date":       "2025-02-01",
		"time":       "09:30",
		"reason":     "follow-up",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]any
	decodeData(t, resp, &created)
	require.Equal(t, "2025-02-01T09:30:00", created["scheduled_at"])

	// Cancel the first entry with confirmation; the refreshed list must not
	// show it as scheduled.
	resp = request(t, app, http.MethodPost, "/appointments/1/cancel", sessionID, map[string]bool{"confirm": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var refreshed []map[string]any
	decodeData(t, resp, &refreshed)
	for _, appointment := range refreshed {
		if appointment["id"] == "1" {
			require.Equal(t, string(domain.AppointmentStatusCancelled), appointment["status"])
		}
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	app, _ := newPortal(t)
	sessionID := login(t, app, "ana@clinic.test", "secret")

	resp := request(t, app, http.MethodPost, "/appointments", sessionID, map[string]string{
		"patient_id": "7",
		"date":       "",
		"time":       "10:00",
		"reason":     "checkup",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
}

func TestCancelWithoutConfirmationRejected(t *testing.T) {
	app, clinic := newPortal(t)
	sessionID := login(t, app, "ana@clinic.test", "secret")

	resp := request(t, app, http.MethodPost, "/appointments/1/cancel", sessionID, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The backend never saw the cancel.
	clinic.mu.Lock()
	status := clinic.appointments[0].Status
	clinic.mu.Unlock()
	require.Equal(t, domain.AppointmentStatusScheduled, status)
}

func TestDoubleCancelSurfacesConflictNotCrash(t *testing.T) {
	app, _ := newPortal(t)
	sessionID := login(t, app, "ana@clinic.test", "secret")

	resp := request(t, app, http.MethodPost, "/appointments/1/cancel", sessionID, map[string]bool{"confirm": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = request(t, app, http.MethodPost, "/appointments/1/cancel", sessionID, map[string]bool{"confirm": true})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPatientCannotReachDoctorScreens(t *testing.T) {
	app, _ := newPortal(t)

	doctorID := login(t, app, "dr@clinic.test", "secret")
	resp := request(t, app, http.MethodGet, "/patients/7", doctorID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// A prior doctor visit must not open the door for a patient session.
	patientID := login(t, app, "ana@clinic.test", "secret")
	for i := 0; i < 2; i++ {
		resp = request(t, app, http.MethodGet, "/patients/7", patientID, nil)
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, auth.LoginRoute, resp.Header.Get("Location"))
	}
}

func TestPatientViewerRedirectsOnMissingRecord(t *testing.T) {
	app, _ := newPortal(t)
	doctorID := login(t, app, "dr@clinic.test", "secret")

	resp := request(t, app, http.MethodGet, "/patients/999", doctorID, nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/appointments"))
	require.Contains(t, resp.Header.Get("Location"), "warning")
}

func TestConsultationValidationBlocksSubmit(t *testing.T) {
	app, clinic := newPortal(t)
	doctorID := login(t, app, "dr@clinic.test", "secret")

	resp := request(t, app, http.MethodPost, "/consultations", doctorID, map[string]string{
		"appointment_id": "1",
		"reason":         "headache",
		"symptoms":       "pain",
		"diagnosis":      "",
		"treatment":      "rest",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Zero(t, clinic.consultaCount(), "no backend call for invalid consultation")

	// The submitted fields come back so the form is not lost.
	var envelope struct {
		Error struct {
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	form, ok := envelope.Error.Details["form"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "headache", form["reason"])
}

func TestConsultationSubmitRedirectsToAppointments(t *testing.T) {
	app, clinic := newPortal(t)
	doctorID := login(t, app, "dr@clinic.test", "secret")

	resp := request(t, app, http.MethodPost, "/consultations", doctorID, map[string]string{
		"appointment_id": "1",
		"reason":         "headache",
		"symptoms":       "throbbing pain",
		"diagnosis":      "migraine",
		"treatment":      "sumatriptan",
		"observations":   "",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, clinic.consultaCount())

	var data map[string]any
	decodeData(t, resp, &data)
	require.Equal(t, "/appointments", data["redirect"])
}

func TestLogoutEndsSession(t *testing.T) {
	app, _ := newPortal(t)
	sessionID := login(t, app, "ana@clinic.test", "secret")

	resp := request(t, app, http.MethodPost, "/logout", sessionID, nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	resp = request(t, app, http.MethodGet, "/appointments", sessionID, nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, auth.LoginRoute, resp.Header.Get("Location"))
}

func TestLoginRejectedCredentialsStayOnLogin(t *testing.T) {
	app, _ := newPortal(t)

	body, _ := json.Marshal(map[string]string{"username": "ana@clinic.test", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Empty(t, resp.Cookies())
}

func TestHealthEndpoints(t *testing.T) {
	app, _ := newPortal(t)

	resp := request(t, app, http.MethodGet, "/health/live", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = request(t, app, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
