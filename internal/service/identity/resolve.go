package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/equitybridge-backend/internal/auth"
	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

// Authenticate verifies token within the configured timeout. Every failure,
// including a verifier outage, is reported as domain.ErrUnauthenticated.
func (s *Service) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Principal{}, fmt.Errorf("%w: missing token", domain.ErrUnauthenticated)
	}

	vctx, cancel := context.WithTimeout(ctx, s.verifyTimeout)
	defer cancel()

	p, err := s.verifier.Verify(vctx, token)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidToken) {
			s.log.WarnContext(ctx, "token verification failed", slog.String("error", err.Error()))
		}
		return auth.Principal{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if p.ID == "" {
		return auth.Principal{}, fmt.Errorf("%w: empty principal", domain.ErrUnauthenticated)
	}
	return p, nil
}

// ResolveClient returns the client id mapped to p.
func (s *Service) ResolveClient(ctx context.Context, p auth.Principal) (uuid.UUID, error) {
	c, err := s.clients.GetByPrincipal(ctx, p.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return uuid.Nil, domain.ErrClientNotOnboarded
		}
		return uuid.Nil, fmt.Errorf("get client by principal: %w", err)
	}
	return c.ID, nil
}

// Resolve authenticates token and returns the client it belongs to.
func (s *Service) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	p, err := s.Authenticate(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	return s.ResolveClient(ctx, p)
}
