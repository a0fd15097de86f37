// Package fundingrequest implements the FundingRequest repository using PostgreSQL.
package fundingrequest

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/equitybridge-backend/internal/adapter/postgres"
	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

const table = "funding_requests"

// Repo provides funding request persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new funding request repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts fr with all of its document references in a single
// statement and fills fr.CreatedAt. A client_id without a matching client
// fails with domain.ErrConstraintViolation.
func (r *Repo) Create(ctx context.Context, fr *domain.FundingRequest) error {
	cols := []string{"id", "client_id", "company_name", "end_user_department", "funding_type", "funding_amount", "status"}
	vals := []any{
		fr.ID,
		fr.ClientID,
		fr.CompanyName,
		fr.EndUserDepartment,
		fr.FundingType,
		sq.Expr("?::text::numeric", fr.FundingAmount.String()),
		sq.Expr("?::text::funding_status", fr.Status.String()),
	}
	if !fr.HasAllDocuments() {
		return fmt.Errorf("funding_request %s: %w", fr.ID, domain.ErrMissingDocument)
	}
	for _, kind := range domain.RequiredDocuments {
		cols = append(cols, kind.String())
		vals = append(vals, fr.Documents[kind])
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns(cols...).
		Values(vals...).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&fr.CreatedAt); err != nil {
		return postgres.MapError(err, "funding_request", fr.ID)
	}
	fr.CreatedAt = fr.CreatedAt.UTC()
	return nil
}

// ListByClient returns the client's funding request summaries, newest first.
// Ties on created_at are broken by id descending so pages are stable.
func (r *Repo) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]domain.FundingRequestSummary, error) {
	query, args, err := postgres.Builder().
		Select("id", "funding_type", "status::text", "created_at").
		From(table).
		Where(sq.Eq{"client_id": clientID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "funding_request", clientID)
	}
	defer rows.Close()

	summaries := make([]domain.FundingRequestSummary, 0, limit)
	for rows.Next() {
		var (
			s      domain.FundingRequestSummary
			status string
		)
		if err := rows.Scan(&s.ID, &s.FundingType, &status, &s.CreatedAt); err != nil {
			return nil, postgres.MapError(err, "funding_request", clientID)
		}
		s.Status = domain.FundingStatus(status)
		s.CreatedAt = s.CreatedAt.UTC()
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "funding_request", clientID)
	}

	return summaries, nil
}

// GetByID returns the funding request id owned by clientID. Requests of other
// clients are reported as domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, clientID, id uuid.UUID) (*domain.FundingRequest, error) {
	cols := []string{
		"id", "client_id", "company_name", "end_user_department", "funding_type",
		"funding_amount::text", "status::text", "created_at",
	}
	for _, kind := range domain.RequiredDocuments {
		cols = append(cols, kind.String())
	}

	query, args, err := postgres.Builder().
		Select(cols...).
		From(table).
		Where(sq.Eq{"id": id, "client_id": clientID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	fr, err := scanFundingRequest(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "funding_request", id)
	}
	return fr, nil
}

func scanFundingRequest(row pgx.Row) (*domain.FundingRequest, error) {
	var (
		fr     domain.FundingRequest
		amount string
		status string
		refs   = make([]string, len(domain.RequiredDocuments))
	)

	dest := []any{
		&fr.ID, &fr.ClientID, &fr.CompanyName, &fr.EndUserDepartment, &fr.FundingType,
		&amount, &status, &fr.CreatedAt,
	}
	for i := range refs {
		dest = append(dest, &refs[i])
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse funding_amount %q: %w", amount, err)
	}
	fr.FundingAmount = parsed
	fr.Status = domain.FundingStatus(status)
	fr.CreatedAt = fr.CreatedAt.UTC()

	fr.Documents = make(map[domain.DocumentKind]string, len(refs))
	for i, kind := range domain.RequiredDocuments {
		fr.Documents[kind] = refs[i]
	}

	return &fr, nil
}
