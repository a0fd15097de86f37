// Package client implements the Client repository using PostgreSQL.
package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/equitybridge-backend/internal/adapter/postgres"
	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

const table = "clients"

var columns = []string{
	"id", "external_principal_id", "full_name", "email",
	"phone_number", "company_name", "company_reg_number", "created_at",
}

// Repo provides client persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new client repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByPrincipal returns the client mapped to an external principal.
func (r *Repo) GetByPrincipal(ctx context.Context, principalID string) (*domain.Client, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where("external_principal_id = ?", principalID).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	c, err := scanClient(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "client", principalID)
	}
	return c, nil
}

// GetByID returns a client by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	c, err := scanClient(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "client", id)
	}
	return c, nil
}

// Create inserts a client and returns the persisted row. A second client for
// the same principal fails with domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "external_principal_id", "full_name", "email", "phone_number", "company_name", "company_reg_number").
		Values(c.ID, c.ExternalPrincipalID, c.FullName, c.Email, c.PhoneNumber, c.CompanyName, c.CompanyRegNumber).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	created, err := scanClient(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "client", c.ID)
	}
	return created, nil
}

// LinkLegacy attaches principalID to the legacy client registered under
// email, so that the principal resolves to it from then on. It fails with
// domain.ErrNotFound when no unlinked client has that email and with
// domain.ErrAlreadyExists when the principal is mapped to another client.
func (r *Repo) LinkLegacy(ctx context.Context, email, principalID string) (*domain.Client, error) {
	query, args, err := postgres.Builder().
		Update(table).
		Set("external_principal_id", principalID).
		Where("lower(email) = lower(?)", email).
		Where("external_principal_id IS NULL").
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	c, err := scanClient(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "client", email)
	}
	return c, nil
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ID,
		&c.ExternalPrincipalID,
		&c.FullName,
		&c.Email,
		&c.PhoneNumber,
		&c.CompanyName,
		&c.CompanyRegNumber,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}
