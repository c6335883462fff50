package gateway

import (
	"context"
	"net/http"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

// CreateAppointmentRequest is the backend's create payload.
type CreateAppointmentRequest struct {
	PatientID   string `json:"patient_id"`
	ScheduledAt string `json:"scheduled_at"`
	Reason      string `json:"reason"`
}

// ListAppointments fetches the current actor's appointments. Ordering is
// whatever the backend returned; callers decide whether to re-sort.
func (c *Client) ListAppointments(ctx context.Context, token string) ([]domain.Appointment, error) {
	raw, err := c.request(ctx, http.MethodGet, "/appointments/", token, nil)
	if err != nil {
		return nil, err
	}

	var appointments []domain.Appointment
	if err := decodeInto(raw, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// CreateAppointment books a new appointment.
func (c *Client) CreateAppointment(ctx context.Context, token string, req CreateAppointmentRequest) (*domain.Appointment, error) {
	raw, err := c.request(ctx, http.MethodPost, "/appointments/", token, req)
	if err != nil {
		return nil, err
	}

	var appointment domain.Appointment
	if err := decodeInto(raw, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// CancelAppointment flips the appointment's status to cancelled. The backend
// owns the transition; the record is never deleted.
func (c *Client) CancelAppointment(ctx context.Context, token, id string) error {
	_, err := c.request(ctx, http.MethodPost, "/appointments/"+id+"/cancel", token, nil)
	return err
}
