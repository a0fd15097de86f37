package funding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/equitybridge-backend/internal/domain"
	"github.com/heartmarshall/equitybridge-backend/pkg/ctxutil"
)

var errEmptyReference = errors.New("store returned an empty reference")

// SubmitResult describes a committed funding request.
type SubmitResult struct {
	RequestID uuid.UUID
	Status    domain.FundingStatus
	Documents map[domain.DocumentKind]string
	CreatedAt time.Time
}

// Submit validates a submission, uploads its documents in declared order and
// records the funding request. Nothing is uploaded unless validation passes;
// nothing is recorded unless every upload succeeded. Blobs uploaded before a
// later failure are left in the store and logged.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	clientID, ok := ctxutil.ClientIDFromCtx(ctx)
	if !ok {
		s.metrics.outcome(OutcomeRejected)
		return nil, domain.ErrClientNotOnboarded
	}

	f, err := input.validateFields()
	if err != nil {
		s.metrics.outcome(OutcomeRejected)
		return nil, err
	}

	files, err := ValidateDocuments(s.required, input.Documents)
	if err != nil {
		s.metrics.outcome(OutcomeRejected)
		s.log.InfoContext(ctx, "submission rejected",
			slog.String("client_id", clientID.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	requestID := s.newID()
	log := s.log.With(
		slog.String("client_id", clientID.String()),
		slog.String("request_id", requestID.String()),
	)

	refs, err := s.uploadAll(ctx, log, clientID, requestID, files)
	if err != nil {
		s.metrics.outcome(OutcomePartiallyUploaded)
		return nil, err
	}

	fr := &domain.FundingRequest{
		ID:                requestID,
		ClientID:          clientID,
		CompanyName:       f.companyName,
		EndUserDepartment: f.endUserDepartment,
		FundingType:       f.fundingType,
		FundingAmount:     f.amount,
		Status:            domain.FundingStatusPending,
		Documents:         refs,
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.requests.Create(ctx, fr)
	})
	if err != nil {
		s.metrics.outcome(OutcomePersistFailed)
		log.ErrorContext(ctx, "persist funding request failed", slog.String("error", err.Error()))
		logOrphans(ctx, log, refs)
		return nil, &domain.PersistenceError{Orphaned: refs, Err: err}
	}

	s.metrics.outcome(OutcomeCommitted)
	log.InfoContext(ctx, "funding request submitted",
		slog.String("funding_type", fr.FundingType),
		slog.String("funding_amount", fr.FundingAmount.StringFixed(2)),
	)

	return &SubmitResult{
		RequestID: requestID,
		Status:    fr.Status,
		Documents: refs,
		CreatedAt: fr.CreatedAt,
	}, nil
}

// uploadAll stores every selected file. Uploads are issued in declared order,
// at most cfg.UploadConcurrency at a time. After the first failure or caller
// cancellation no further uploads start; uploads already running finish.
func (s *Service) uploadAll(
	ctx context.Context,
	log *slog.Logger,
	clientID, requestID uuid.UUID,
	files map[domain.DocumentKind]DocumentFile,
) (map[domain.DocumentKind]string, error) {
	refs := make([]string, len(s.required))
	errs := make([]error, len(s.required))
	var failed atomic.Bool

	g := new(errgroup.Group)
	g.SetLimit(max(1, s.cfg.UploadConcurrency))

	for i, kind := range s.required {
		g.Go(func() error {
			if failed.Load() {
				return nil
			}
			if err := ctx.Err(); err != nil {
				errs[i] = err
				failed.Store(true)
				return nil
			}

			ref, err := s.upload(ctx, log, kind, files[kind], namespace(clientID, requestID, kind))
			if err != nil {
				errs[i] = err
				failed.Store(true)
				return nil
			}
			refs[i] = ref
			return nil
		})
	}
	_ = g.Wait()

	uploaded := make(map[domain.DocumentKind]string, len(s.required))
	var uploadErr *domain.UploadError
	for i, kind := range s.required {
		if refs[i] != "" {
			uploaded[kind] = refs[i]
		}
		if errs[i] != nil && uploadErr == nil {
			uploadErr = &domain.UploadError{Document: kind, Err: errs[i]}
		}
	}

	if uploadErr != nil {
		uploadErr.Uploaded = uploaded
		log.ErrorContext(ctx, "document upload failed",
			slog.String("document", uploadErr.Document.String()),
			slog.String("error", uploadErr.Err.Error()),
		)
		logOrphans(ctx, log, uploaded)
		return nil, uploadErr
	}
	return uploaded, nil
}

// upload stores one file, retrying with exponential backoff. Each attempt is
// detached from caller cancellation and bounded by cfg.UploadTimeout.
func (s *Service) upload(
	ctx context.Context,
	log *slog.Logger,
	kind domain.DocumentKind,
	file DocumentFile,
	ns string,
) (string, error) {
	name := file.Filename
	if name == "" {
		name = kind.String()
	}

	attempt := func() (string, error) {
		actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.UploadTimeout)
		defer cancel()

		ref, err := s.store.Store(actx, file.Content, name, ns)
		if err != nil {
			return "", err
		}
		if ref == "" {
			return "", backoff.Permanent(errEmptyReference)
		}
		return ref, nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.retryInterval
	b.MaxInterval = 10 * s.retryInterval

	start := time.Now()
	ref, err := backoff.Retry(ctx, attempt,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(max(1, s.cfg.UploadMaxAttempts))),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.WarnContext(ctx, "document upload failed, retrying",
				slog.String("document", kind.String()),
				slog.Duration("backoff", next),
				slog.String("error", err.Error()),
			)
		}),
	)
	s.metrics.upload(kind.String(), err == nil, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("store %s: %w", kind, err)
	}
	return ref, nil
}

func namespace(clientID, requestID uuid.UUID, kind domain.DocumentKind) string {
	return fmt.Sprintf("clients/%s/requests/%s/%s", clientID, requestID, kind)
}

// logOrphans records references that were stored but will never be linked
// to a funding request.
func logOrphans(ctx context.Context, log *slog.Logger, refs map[domain.DocumentKind]string) {
	if len(refs) == 0 {
		return
	}
	attrs := make([]any, 0, len(refs)+1)
	attrs = append(attrs, slog.Int("count", len(refs)))
	for kind, ref := range refs {
		attrs = append(attrs, slog.String(kind.String(), ref))
	}
	log.WarnContext(ctx, "orphaned documents left in store", slog.Group("orphaned", attrs...))
}
