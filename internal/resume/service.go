// ABOUTME: Stateless résumé service over the transport client
// ABOUTME: list/get/generate/update/delete with normalized results

package resume

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/markalston/resume-builder/internal/client"
)

// Doer is the slice of the transport client the service needs
type Doer interface {
	Do(ctx context.Context, method, path string, in, out any) error
}

// Service holds no state beyond its transport
type Service struct {
	api      Doer
	validate *validator.Validate
}

// NewService creates a résumé service on top of api
func NewService(api Doer) *Service {
	return &Service{api: api, validate: validator.New()}
}

// GenerateRequest is the POST /resumes/generate body
type GenerateRequest struct {
	TargetRole string `json:"target_role" validate:"required"`
}

// ErrTargetRoleRequired is returned before any network call for a blank role
var ErrTargetRoleRequired = errors.New("target role is required")

// List returns every résumé owned by the session's user, in service order
func (s *Service) List(ctx context.Context) ([]Resume, error) {
	var raw []apiResume
	if err := s.api.Do(ctx, http.MethodGet, "/resumes", nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return normalizeAll(raw), nil
}

// Get fetches one résumé with its projects. A null body yields (nil, nil).
func (s *Service) Get(ctx context.Context, id int64) (*Resume, error) {
	var raw *apiResume
	if err := s.api.Do(ctx, http.MethodGet, resumePath(id), nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get resume %d: %w", id, err)
	}
	if raw == nil {
		return nil, nil
	}
	r := Normalize(*raw)
	return &r, nil
}

// Generate asks the service to build a new résumé for targetRole
func (s *Service) Generate(ctx context.Context, targetRole string) (*Resume, error) {
	req := GenerateRequest{TargetRole: strings.TrimSpace(targetRole)}
	if err := s.validate.Struct(req); err != nil {
		return nil, ErrTargetRoleRequired
	}

	var raw apiResume
	if err := s.api.Do(ctx, http.MethodPost, "/resumes/generate", req, &raw); err != nil {
		return nil, fmt.Errorf("failed to generate resume: %w", err)
	}
	r := Normalize(raw)
	return &r, nil
}

// Update sends the fields set in u and returns the stored résumé
func (s *Service) Update(ctx context.Context, id int64, u UpdateRequest) (*Resume, error) {
	var raw apiResume
	if err := s.api.Do(ctx, http.MethodPut, resumePath(id), denormalizeUpdate(u), &raw); err != nil {
		return nil, fmt.Errorf("failed to update resume %d: %w", id, err)
	}
	r := Normalize(raw)
	return &r, nil
}

// Delete removes a résumé. The response has no body.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.api.Do(ctx, http.MethodDelete, resumePath(id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete resume %d: %w", id, err)
	}
	return nil
}

// IsNotFound reports whether err came from a 404 response
func IsNotFound(err error) bool {
	return client.StatusCode(err) == http.StatusNotFound
}

func resumePath(id int64) string {
	return fmt.Sprintf("/resumes/%d", id)
}
