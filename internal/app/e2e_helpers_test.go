//go:build e2e

package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/equitybridge-backend/internal/adapter/blobstore/local"
	"github.com/heartmarshall/equitybridge-backend/internal/adapter/postgres"
	clientrepo "github.com/heartmarshall/equitybridge-backend/internal/adapter/postgres/client"
	fundingrepo "github.com/heartmarshall/equitybridge-backend/internal/adapter/postgres/fundingrequest"
	"github.com/heartmarshall/equitybridge-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/equitybridge-backend/internal/auth"
	"github.com/heartmarshall/equitybridge-backend/internal/config"
	"github.com/heartmarshall/equitybridge-backend/internal/domain"
	"github.com/heartmarshall/equitybridge-backend/internal/service/funding"
	"github.com/heartmarshall/equitybridge-backend/internal/service/identity"
	"github.com/heartmarshall/equitybridge-backend/internal/transport/middleware"
	"github.com/heartmarshall/equitybridge-backend/internal/transport/rest"
)

const (
	jwtSecret = "test-secret-at-least-32-chars-long!!"
	jwtIssuer = "test-issuer"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	Store  *faultyStore
	jwt    *auth.JWTVerifier
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// faultyStore wraps the local store and fails every upload from call number
// failOn (1-based) onward when set.
type faultyStore struct {
	inner  *local.Store
	calls  atomic.Int64
	failOn atomic.Int64
}

func (s *faultyStore) Store(ctx context.Context, payload []byte, name, namespace string) (string, error) {
	n := s.calls.Add(1)
	if fail := s.failOn.Load(); fail > 0 && n >= fail {
		return "", fmt.Errorf("faulty store: %w", domain.ErrStoreUnavailable)
	}
	return s.inner.Store(ctx, payload, name, namespace)
}

func (s *faultyStore) Ping(ctx context.Context) error { return s.inner.Ping(ctx) }

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper) and a temporary local store.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	ls, err := local.New(config.LocalConfig{Root: t.TempDir(), BaseURL: "http://documents.test"}, logger)
	require.NoError(t, err)
	store := &faultyStore{inner: ls}

	jwt := auth.NewJWTVerifier(jwtSecret, jwtIssuer, "")

	fundingCfg := config.FundingConfig{
		UploadTimeout:     5 * time.Second,
		UploadMaxAttempts: 1,
		UploadConcurrency: 3,
		MaxDocumentBytes:  1 << 20,
		MaxRequestBytes:   16 << 20,
		DefaultPageSize:   50,
		MaxPageSize:       200,
	}

	reg := prometheus.NewRegistry()
	identityService := identity.NewService(logger, jwt, clientrepo.New(pool), 2*time.Second)
	fundingService := funding.NewService(
		logger, store, fundingrepo.New(pool), postgres.NewTxManager(pool),
		fundingCfg, funding.NewMetrics(reg),
	)

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	handler := rest.NewRouter(rest.RouterDeps{
		Logger:          logger,
		CORS:            config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,OPTIONS", AllowedHeaders: "Authorization,Content-Type"},
		Health:          rest.NewHealthHandler(map[string]rest.Pinger{"database": pool, "storage": store}, "test-version"),
		Client:          rest.NewClientHandler(identityService, logger),
		Funding:         rest.NewFundingHandler(fundingService, fundingCfg, logger),
		Identity:        identityService,
		RateLimiter:     limiter,
		SubmitPerMinute: 100,
		Metrics:         promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		Store:  store,
		jwt:    jwt,
	}
}

// token mints a bearer token for principal.
func (ts *testServer) token(t *testing.T, principal, email string) string {
	t.Helper()
	tok, err := ts.jwt.Issue(auth.Principal{ID: principal, Email: email}, 15*time.Minute)
	require.NoError(t, err)
	return tok
}

// do sends a request and decodes a JSON response body into a map.
func (ts *testServer) do(t *testing.T, req *http.Request, token string) (int, map[string]any) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	}
	return resp.StatusCode, body
}

func (ts *testServer) getJSON(t *testing.T, path, token string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err)
	return ts.do(t, req, token)
}

func (ts *testServer) postJSON(t *testing.T, path, token string, payload any) (int, map[string]any) {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return ts.do(t, req, token)
}

// onboard creates a client profile for a fresh principal and returns its token.
func (ts *testServer) onboard(t *testing.T, principal string) string {
	t.Helper()
	tok := ts.token(t, principal, principal+"@example.com")
	status, body := ts.postJSON(t, "/api/client/profile", tok, map[string]string{
		"full_name":    "Thandi Nkosi",
		"company_name": "Nkosi Logistics",
	})
	require.Equal(t, http.StatusCreated, status, "onboard: %v", body)
	return tok
}

// submission describes a multipart funding request.
type submission struct {
	fields map[string]string
	// files maps part name to file name; content is derived from the name.
	files map[string]string
}

func completeSubmission() submission {
	s := submission{
		fields: map[string]string{
			"company_name":        "Nkosi Logistics",
			"end_user_department": "Fleet",
			"funding_type":        "Purchase Order Funding",
			"funding_amount":      "125000.50",
		},
		files: make(map[string]string),
	}
	for _, kind := range domain.RequiredDocuments {
		s.files[kind.String()] = kind.String() + ".pdf"
	}
	return s
}

func (ts *testServer) submit(t *testing.T, token string, s submission) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range s.fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, name := range s.files {
		fw, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4\n" + field))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/funding-requests", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return ts.do(t, req, token)
}

// countRequests returns the number of funding requests stored for the
// client mapped to principal.
func (ts *testServer) countRequests(t *testing.T, principal string) int {
	t.Helper()
	var n int
	err := ts.Pool.QueryRow(context.Background(), `
		SELECT count(*)
		FROM funding_requests fr
		JOIN clients c ON c.id = fr.client_id
		WHERE c.external_principal_id = $1`, principal).Scan(&n)
	require.NoError(t, err)
	return n
}
