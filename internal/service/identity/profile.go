package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/equitybridge-backend/internal/auth"
	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

// CreateOrGetProfile returns the client mapped to p, creating it from input
// when none exists. An existing client is returned unchanged and input is
// ignored. created reports whether this call inserted the row.
func (s *Service) CreateOrGetProfile(ctx context.Context, p auth.Principal, input ProfileInput) (*domain.Client, bool, error) {
	if p.ID == "" {
		return nil, false, domain.ErrUnauthenticated
	}

	existing, err := s.clients.GetByPrincipal(ctx, p.ID)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, false, fmt.Errorf("get client by principal: %w", err)
	}

	input = input.normalize(p.Email)
	if err := input.Validate(); err != nil {
		return nil, false, err
	}

	principalID := p.ID
	created, err := s.clients.Create(ctx, &domain.Client{
		ID:                  uuid.New(),
		ExternalPrincipalID: &principalID,
		FullName:            input.FullName,
		Email:               input.Email,
		PhoneNumber:         input.PhoneNumber,
		CompanyName:         input.CompanyName,
		CompanyRegNumber:    input.CompanyRegNumber,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return nil, false, fmt.Errorf("create client: %w", err)
		}
		// Lost a race with a concurrent onboarding of the same principal.
		winner, getErr := s.clients.GetByPrincipal(ctx, p.ID)
		if getErr != nil {
			return nil, false, fmt.Errorf("re-read client after conflict: %w", getErr)
		}
		return winner, false, nil
	}

	s.log.InfoContext(ctx, "client onboarded",
		slog.String("client_id", created.ID.String()),
		slog.String("principal_id", p.ID),
	)

	return created, true, nil
}

// GetProfile returns the client mapped to p.
func (s *Service) GetProfile(ctx context.Context, p auth.Principal) (*domain.Client, error) {
	c, err := s.clients.GetByPrincipal(ctx, p.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrClientNotOnboarded
		}
		return nil, fmt.Errorf("get client by principal: %w", err)
	}
	return c, nil
}
