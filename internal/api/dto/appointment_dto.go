package dto

import "github.com/spec-kit/clinic-portal/internal/domain"

// CreateAppointmentRequest payload. Date and time arrive as separate form
// fields and are combined server-side.
type CreateAppointmentRequest struct {
	PatientID string `json:"patient_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Reason    string `json:"reason"`
}

// CancelAppointmentRequest payload. Cancellation is irreversible and must be
// explicitly confirmed.
type CancelAppointmentRequest struct {
	Confirm bool `json:"confirm"`
}

// AppointmentResponse response. Date and Time carry the display split of
// ScheduledAt; unparseable timestamps show a placeholder.
type AppointmentResponse struct {
	ID          string                   `json:"id"`
	PatientID   string                   `json:"patient_id"`
	ScheduledAt string                   `json:"scheduled_at"`
	Date        string                   `json:"date"`
	Time        string                   `json:"time"`
	Reason      string                   `json:"reason"`
	Status      domain.AppointmentStatus `json:"status"`
}
