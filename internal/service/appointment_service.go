package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/events"
	"github.com/spec-kit/clinic-portal/internal/gateway"
	apperrors "github.com/spec-kit/clinic-portal/pkg/util"
)

// AppointmentService implements the scheduling workflow on top of the clinic
// backend. Mutations never patch local state: after a cancel the list is
// re-fetched so the portal always reflects the last known server state, even
// when the backend applies side effects such as freeing the slot.
type AppointmentService struct {
	backend    *gateway.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAppointmentService builds the service.
func NewAppointmentService(backend *gateway.Client, dispatcher events.Dispatcher, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{backend: backend, dispatcher: dispatcher, logger: logger}
}

// AppointmentCreateInput carries the scheduling form fields. Date and Time
// stay separate until validation passes.
type AppointmentCreateInput struct {
	PatientID string
	Date      string
	Time      string
	Reason    string
}

// List fetches the current actor's appointments. The backend normally orders
// them chronologically; the list is only re-sorted when it did not.
func (s *AppointmentService) List(ctx context.Context, sess *domain.Session) ([]domain.Appointment, error) {
	appointments, err := s.backend.ListAppointments(ctx, sess.Token)
	if err != nil {
		return nil, err
	}

	less := func(i, j int) bool {
		return appointments[i].ScheduledAt < appointments[j].ScheduledAt
	}
	if !sort.SliceIsSorted(appointments, less) {
		sort.SliceStable(appointments, less)
	}
	return appointments, nil
}

// Create validates the form locally and books the appointment. A blank
// required field raises a validation error before any network call is made.
func (s *AppointmentService) Create(ctx context.Context, sess *domain.Session, in AppointmentCreateInput) (*domain.Appointment, error) {
	details := map[string]any{}
	if strings.TrimSpace(in.PatientID) == "" {
		details["patient_id"] = "required"
	}
	if strings.TrimSpace(in.Date) == "" {
		details["date"] = "required"
	}
	if strings.TrimSpace(in.Time) == "" {
		details["time"] = "required"
	}
	if strings.TrimSpace(in.Reason) == "" {
		details["reason"] = "required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("complete all appointment fields", details)
	}

	req := gateway.CreateAppointmentRequest{
		PatientID:   in.PatientID,
		ScheduledAt: domain.CombineSchedule(in.Date, in.Time),
		Reason:      in.Reason,
	}
	appointment, err := s.backend.CreateAppointment(ctx, sess.Token, req)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, sess, events.EventAppointmentCreated, events.AppointmentCreatedPayload{
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		ScheduledAt:   appointment.ScheduledAt,
		Reason:        appointment.Reason,
	})
	return appointment, nil
}

// Cancel flips the appointment to cancelled and returns the re-fetched list.
// Cancellation is irreversible, so it refuses to run without explicit
// confirmation from the caller.
func (s *AppointmentService) Cancel(ctx context.Context, sess *domain.Session, id string, confirmed bool) ([]domain.Appointment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("appointment id required", nil)
	}
	if !confirmed {
		return nil, apperrors.NewValidationError("cancellation requires confirmation", nil)
	}

	if err := s.backend.CancelAppointment(ctx, sess.Token, id); err != nil {
		return nil, err
	}

	s.publish(ctx, sess, events.EventAppointmentCancelled, events.AppointmentCancelledPayload{
		AppointmentID: id,
	})
	return s.List(ctx, sess)
}

func (s *AppointmentService) publish(ctx context.Context, sess *domain.Session, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Role:      sess.Role,
		Timestamp: time.Now(),
		Payload:   payload,
	})
	if err != nil {
		s.logger.Warn("event publish failed", zap.String("type", string(eventType)), zap.Error(err))
	}
}
