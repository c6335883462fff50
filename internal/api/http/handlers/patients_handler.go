package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/api/dto"
	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/service"
	apperrors "github.com/spec-kit/clinic-portal/pkg/util"
)

// PatientsHandler serves the read-only patient profile view.
type PatientsHandler struct {
	service *service.PatientService
}

// NewPatientsHandler constructs handler.
func NewPatientsHandler(patientService *service.PatientService) *PatientsHandler {
	return &PatientsHandler{service: patientService}
}

// Get GET /patients/:id. A read path with no mutation: not-found or backend
// failure aborts the view and sends the caller back to the appointment list
// with a warning.
func (h *PatientsHandler) Get(c *fiber.Ctx) error {
	sess, ok := auth.CurrentSession(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}

	patient, err := h.service.Get(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		if apperrors.IsValidation(err) {
			return err
		}
		return c.Redirect("/appointments?warning=patient_unavailable", fiber.StatusFound)
	}
	return c.JSON(fiber.Map{"data": patientResponse(patient)})
}

func patientResponse(patient *domain.Patient) dto.PatientResponse {
	return dto.PatientResponse{
		ID:             patient.ID,
		Name:           patient.Name,
		DocumentNumber: patient.DocumentNumber,
		Age:            patient.Age,
		Phone:          patient.Phone,
		Email:          patient.Email,
		Address:        patient.Address,
		InsurancePlan:  patient.InsurancePlan,
		MedicalHistory: patient.MedicalHistory,
	}
}
