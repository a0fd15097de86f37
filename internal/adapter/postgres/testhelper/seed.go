package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedClient inserts a client mapped to a fresh external principal.
func SeedClient(t *testing.T, pool *pgxpool.Pool) domain.Client {
	t.Helper()

	suffix := uniqueSuffix()
	principal := "principal-" + suffix
	c := domain.Client{
		ID:                  uuid.New(),
		ExternalPrincipalID: &principal,
		FullName:            "Test Client " + suffix,
		Email:               "client-" + suffix + "@example.com",
		PhoneNumber:         "+27 11 555 0100",
		CompanyName:         "Acme " + suffix + " (Pty) Ltd",
		CompanyRegNumber:    "2020/" + suffix + "/07",
		CreatedAt:           time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO clients (id, external_principal_id, full_name, email, phone_number, company_name, company_reg_number, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.ExternalPrincipalID, c.FullName, c.Email, c.PhoneNumber, c.CompanyName, c.CompanyRegNumber, c.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedClient: %v", err)
	}

	return c
}

// SeedLegacyClient inserts a client without an external principal.
func SeedLegacyClient(t *testing.T, pool *pgxpool.Pool, email string) domain.Client {
	t.Helper()

	c := domain.Client{
		ID:          uuid.New(),
		FullName:    "Legacy Client",
		Email:       email,
		CompanyName: "Legacy Holdings",
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO clients (id, full_name, email, company_name, created_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.FullName, c.Email, c.CompanyName, c.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLegacyClient: %v", err)
	}

	return c
}

// DocumentRefs returns a complete document reference mapping for tests.
func DocumentRefs(prefix string) map[domain.DocumentKind]string {
	refs := make(map[domain.DocumentKind]string, len(domain.RequiredDocuments))
	for _, kind := range domain.RequiredDocuments {
		refs[kind] = prefix + "/" + kind.String() + ".pdf"
	}
	return refs
}

// CountFundingRequests returns the number of funding requests of a client.
func CountFundingRequests(t *testing.T, pool *pgxpool.Pool, clientID uuid.UUID) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM funding_requests WHERE client_id = $1`, clientID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountFundingRequests: %v", err)
	}
	return n
}
