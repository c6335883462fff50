package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/events"
	"github.com/spec-kit/clinic-portal/internal/gateway"
	apperrors "github.com/spec-kit/clinic-portal/pkg/util"
)

// ConsultationService records clinical notes against appointments. Notes are
// write-once; a failed submission surfaces the error and the caller keeps the
// typed fields, re-entering a clinical note is costly.
type ConsultationService struct {
	backend    *gateway.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewConsultationService builds the service.
func NewConsultationService(backend *gateway.Client, dispatcher events.Dispatcher, logger *zap.Logger) *ConsultationService {
	return &ConsultationService{backend: backend, dispatcher: dispatcher, logger: logger}
}

// ConsultationInput carries the consultation form fields. Observations is the
// only optional field.
type ConsultationInput struct {
	AppointmentID string
	Reason        string
	Symptoms      string
	Diagnosis     string
	Treatment     string
	Observations  string
}

// Submit validates the note locally and posts it. A blank mandatory field
// blocks submission with no backend call.
func (s *ConsultationService) Submit(ctx context.Context, sess *domain.Session, in ConsultationInput) error {
	details := map[string]any{}
	if strings.TrimSpace(in.AppointmentID) == "" {
		details["appointment_id"] = "required"
	}
	if strings.TrimSpace(in.Reason) == "" {
		details["reason"] = "required"
	}
	if strings.TrimSpace(in.Symptoms) == "" {
		details["symptoms"] = "required"
	}
	if strings.TrimSpace(in.Diagnosis) == "" {
		details["diagnosis"] = "required"
	}
	if strings.TrimSpace(in.Treatment) == "" {
		details["treatment"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("complete all mandatory consultation fields", details)
	}

	note := domain.ConsultationNote{
		AppointmentID: in.AppointmentID,
		Reason:        in.Reason,
		Symptoms:      in.Symptoms,
		Diagnosis:     in.Diagnosis,
		Treatment:     in.Treatment,
		Observations:  in.Observations,
	}
	if err := s.backend.SubmitConsultation(ctx, sess.Token, note); err != nil {
		return err
	}

	if s.dispatcher != nil {
		err := s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventConsultationRecorded,
			Role:      sess.Role,
			Timestamp: time.Now(),
			Payload: events.ConsultationRecordedPayload{
				AppointmentID: in.AppointmentID,
				Diagnosis:     in.Diagnosis,
			},
		})
		if err != nil {
			s.logger.Warn("event publish failed", zap.Error(err))
		}
	}
	return nil
}
