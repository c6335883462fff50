package dto

// PatientResponse is the read-only patient profile.
type PatientResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DocumentNumber string `json:"document_number"`
	Age            int    `json:"age"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	InsurancePlan  string `json:"insurance_plan"`
	MedicalHistory string `json:"medical_history"`
}
