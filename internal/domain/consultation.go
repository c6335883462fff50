package domain

// ConsultationNote is the free-text clinical record tied to an appointment.
// Immutable once submitted; the portal has no edit flow.
type ConsultationNote struct {
	AppointmentID string `json:"appointment_id"`
	Reason        string `json:"reason"`
	Symptoms      string `json:"symptoms"`
	Diagnosis     string `json:"diagnosis"`
	Treatment     string `json:"treatment"`
	Observations  string `json:"observations,omitempty"`
}
