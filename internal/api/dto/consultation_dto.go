package dto

// SubmitConsultationRequest payload. Observations is the only optional field.
type SubmitConsultationRequest struct {
	AppointmentID string `json:"appointment_id"`
	Reason        string `json:"reason"`
	Symptoms      string `json:"symptoms"`
	Diagnosis     string `json:"diagnosis"`
	Treatment     string `json:"treatment"`
	Observations  string `json:"observations"`
}
