package domain

// Patient is the read-only record owned by the backend record store.
type Patient struct {
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
