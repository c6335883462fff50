package service

import (
	"context"
	"strings"

	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/gateway"
	apperrors "github.com/spec-kit/clinic-portal/pkg/util"
)

// PatientService is the read-only patient profile view. Failures here are
// non-destructive: the caller abandons the view and navigates back to the
// appointment list.
type PatientService struct {
	backend *gateway.Client
}

// NewPatientService builds the service.
func NewPatientService(backend *gateway.Client) *PatientService {
	return &PatientService{backend: backend}
}

// Get fetches one patient record.
func (s *PatientService) Get(ctx context.Context, sess *domain.Session, id string) (*domain.Patient, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("patient id required", nil)
	}
	return s.backend.GetPatient(ctx, sess.Token, id)
}
