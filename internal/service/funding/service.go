package funding

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/equitybridge-backend/internal/config"
	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

// blobStore persists one document payload and returns a resolvable reference.
type blobStore interface {
	Store(ctx context.Context, payload []byte, suggestedName, namespace string) (string, error)
}

// requestRepo defines the funding request repository interface needed by funding service.
type requestRepo interface {
	Create(ctx context.Context, fr *domain.FundingRequest) error
	ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]domain.FundingRequestSummary, error)
	GetByID(ctx context.Context, clientID, id uuid.UUID) (*domain.FundingRequest, error)
}

// txManager defines the transaction manager interface needed by funding service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service runs funding request submissions and serves the client's history.
type Service struct {
	store    blobStore
	requests requestRepo
	tx       txManager
	cfg      config.FundingConfig
	metrics  *Metrics
	log      *slog.Logger

	required      []domain.DocumentKind
	retryInterval time.Duration
	newID         func() uuid.UUID
}

// NewService creates a new funding service. metrics may be nil.
func NewService(
	log *slog.Logger,
	store blobStore,
	requests requestRepo,
	tx txManager,
	cfg config.FundingConfig,
	metrics *Metrics,
) *Service {
	return &Service{
		store:         store,
		requests:      requests,
		tx:            tx,
		cfg:           cfg,
		metrics:       metrics,
		log:           log.With("service", "funding"),
		required:      domain.RequiredDocuments,
		retryInterval: 200 * time.Millisecond,
		newID:         uuid.New,
	}
}
