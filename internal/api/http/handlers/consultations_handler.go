package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/api/dto"
	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/service"
	apperrors "github.com/spec-kit/clinic-portal/pkg/util"
)

// ConsultationsHandler records clinical notes.
type ConsultationsHandler struct {
	service *service.ConsultationService
}

// NewConsultationsHandler constructs handler.
func NewConsultationsHandler(consultationService *service.ConsultationService) *ConsultationsHandler {
	return &ConsultationsHandler{service: consultationService}
}

// Submit POST /consultations. Success points the client back to the
// appointment list; any failure echoes the submitted fields so the form is
// never cleared on error.
func (h *ConsultationsHandler) Submit(c *fiber.Ctx) error {
	sess, ok := auth.CurrentSession(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}

	var req dto.SubmitConsultationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.ConsultationInput{
		AppointmentID: req.AppointmentID,
		Reason:        req.Reason,
		Symptoms:      req.Symptoms,
		Diagnosis:     req.Diagnosis,
		Treatment:     req.Treatment,
		Observations:  req.Observations,
	}
	if err := h.service.Submit(c.UserContext(), sess, input); err != nil {
		domainErr := apperrors.ToDomainError(err)
		if domainErr.Details == nil {
			domainErr.Details = map[string]any{}
		}
		domainErr.Details["form"] = req
		return domainErr
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"redirect": "/appointments"}})
}
