package funding

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/equitybridge-backend/internal/domain"
	"github.com/heartmarshall/equitybridge-backend/pkg/ctxutil"
)

// ListInput holds the paging parameters for listing funding requests.
// A zero Limit selects the configured default page size.
type ListInput struct {
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate(maxLimit int) error {
	var errs []domain.FieldError
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > maxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("max %d", maxLimit)})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// List returns the calling client's funding requests, newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.FundingRequestSummary, error) {
	clientID, ok := ctxutil.ClientIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrClientNotOnboarded
	}

	if err := input.Validate(s.cfg.MaxPageSize); err != nil {
		return nil, err
	}
	limit := input.Limit
	if limit == 0 {
		limit = s.cfg.DefaultPageSize
	}

	items, err := s.requests.ListByClient(ctx, clientID, limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list funding requests: %w", err)
	}
	return items, nil
}

// Get returns one of the calling client's funding requests with its document
// references. Requests of other clients are reported as domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.FundingRequest, error) {
	clientID, ok := ctxutil.ClientIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrClientNotOnboarded
	}
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	fr, err := s.requests.GetByID(ctx, clientID, id)
	if err != nil {
		return nil, fmt.Errorf("get funding request: %w", err)
	}
	return fr, nil
}
