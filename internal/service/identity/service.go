package identity

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/equitybridge-backend/internal/auth"
	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

// principalVerifier turns a bearer token into a verified principal.
type principalVerifier interface {
	Verify(ctx context.Context, token string) (auth.Principal, error)
}

// clientRepo defines the client repository interface needed by identity service.
type clientRepo interface {
	GetByPrincipal(ctx context.Context, principalID string) (*domain.Client, error)
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
}

// Service maps bearer tokens to principals and principals to onboarded clients.
type Service struct {
	verifier      principalVerifier
	clients       clientRepo
	verifyTimeout time.Duration
	log           *slog.Logger
}

// NewService creates a new identity service.
func NewService(
	log *slog.Logger,
	verifier principalVerifier,
	clients clientRepo,
	verifyTimeout time.Duration,
) *Service {
	return &Service{
		verifier:      verifier,
		clients:       clients,
		verifyTimeout: verifyTimeout,
		log:           log.With("service", "identity"),
	}
}
