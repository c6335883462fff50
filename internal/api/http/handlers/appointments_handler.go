package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/api/dto"
	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/service"
	apperrors "github.com/spec-kit/clinic-portal/pkg/util"
)

// AppointmentsHandler manages the scheduling screens.
type AppointmentsHandler struct {
	service *service.AppointmentService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointmentService *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{service: appointmentService}
}

// List GET /appointments.
func (h *AppointmentsHandler) List(c *fiber.Ctx) error {
	sess, ok := auth.CurrentSession(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}

	appointments, err := h.service.List(c.UserContext(), sess)
	if err != nil {
		// A stale token surfaces here first; send the user back to login.
		if apperrors.UpstreamStatus(err) == http.StatusUnauthorized {
			return c.Redirect(auth.LoginRoute, fiber.StatusFound)
		}
		return err
	}

	items := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		items = append(items, appointmentResponse(&appointments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /appointments.
func (h *AppointmentsHandler) Create(c *fiber.Ctx) error {
	sess, ok := auth.CurrentSession(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}

	var req dto.CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.AppointmentCreateInput{
		PatientID: req.PatientID,
		Date:      req.Date,
		Time:      req.Time,
		Reason:    req.Reason,
	}
	appointment, err := h.service.Create(c.UserContext(), sess, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": appointmentResponse(appointment)})
}

// Cancel POST /appointments/:id/cancel. Responds with the re-fetched list.
func (h *AppointmentsHandler) Cancel(c *fiber.Ctx) error {
	sess, ok := auth.CurrentSession(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}

	req := dto.CancelAppointmentRequest{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	appointments, err := h.service.Cancel(c.UserContext(), sess, c.Params("id"), req.Confirm)
	if err != nil {
		return err
	}

	items := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		items = append(items, appointmentResponse(&appointments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func appointmentResponse(appointment *domain.Appointment) dto.AppointmentResponse {
	date, clock := domain.SplitSchedule(appointment.ScheduledAt)
	return dto.AppointmentResponse{
		ID:          appointment.ID,
		PatientID:   appointment.PatientID,
		ScheduledAt: appointment.ScheduledAt,
		Date:        date,
		Time:        clock,
		Reason:      appointment.Reason,
		Status:      appointment.Status,
	}
}
