package gateway

import (
	"context"
	"net/http"

	"github.com/spec-kit/clinic-portal/internal/domain"
)

// SubmitConsultation posts a full consultation note. Notes are write-once;
// there is no update endpoint.
func (c *Client) SubmitConsultation(ctx context.Context, token string, note domain.ConsultationNote) error {
	_, err := c.request(ctx, http.MethodPost, "/consultas", token, note)
	return err
}
