package events

import (
	"time"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAppointmentCreated   EventType = "appointment_created"
	EventAppointmentCancelled EventType = "appointment_cancelled"
	EventConsultationRecorded EventType = "consultation_recorded"
)

// Event represents a workflow event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Role      domain.Role `json:"role"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AppointmentCreatedPayload payload.
type AppointmentCreatedPayload struct {
	AppointmentID string `json:"appointment_id"`
	PatientID     string `json:"patient_id"`
	ScheduledAt   string `json:"scheduled_at"`
	Reason        string `json:"reason,omitempty"`
}

// AppointmentCancelledPayload payload.
type AppointmentCancelledPayload struct {
	AppointmentID string `json:"appointment_id"`
}

// ConsultationRecordedPayload payload.
type ConsultationRecordedPayload struct {
	AppointmentID string `json:"appointment_id"`
	Diagnosis     string `json:"diagnosis"`
}
