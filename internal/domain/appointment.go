package domain

import "time"

// AppointmentStatus enumerates lifecycle states for appointments. Cancellation
// is a status transition, never a deletion; the backend owns the record.
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a scheduled patient-doctor encounter as returned by the
// clinic backend. ScheduledAt stays in wire form (YYYY-MM-DDTHH:MM:SS) so the
// portal never re-interprets timezone-naive backend timestamps.
type Appointment struct {
	ID          string            `json:"id"`
	PatientID   string            `json:"patient_id"`
	ScheduledAt string            `json:"scheduled_at"`
	Reason      string            `json:"reason"`
	Status      AppointmentStatus `json:"status"`
}

const scheduleLayout = "2006-01-02T15:04:05"

// SchedulePlaceholder is shown when a stored timestamp cannot be split for
// display.
const SchedulePlaceholder = "N/A"

// CombineSchedule joins the form's date and time inputs into the backend
// timestamp format, e.g. ("2025-01-20", "10:00") -> "2025-01-20T10:00:00".
func CombineSchedule(date, clock string) string {
	return date + "T" + clock + ":00"
}

// SplitSchedule breaks a stored timestamp back into display date and time.
// Unparseable values yield the placeholder, never an error.
func SplitSchedule(ts string) (date, clock string) {
	parsed, err := time.Parse(scheduleLayout, ts)
	if err != nil {
		return SchedulePlaceholder, SchedulePlaceholder
	}
	return parsed.Format("2006-01-02"), parsed.Format("15:04")
}
