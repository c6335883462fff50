package gateway

import (
	"context"
	"net/http"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

// GetPatient fetches a single patient record.
func (c *Client) GetPatient(ctx context.Context, token, id string) (*domain.Patient, error) {
	raw, err := c.request(ctx, http.MethodGet, "/patients/"+id, token, nil)
	if err != nil {
		return nil, err
	}

	var patient domain.Patient
	if err := decodeInto(raw, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}
