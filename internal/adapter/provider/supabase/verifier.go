package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/equitybridge-backend/internal/auth"
)

// retryDelay is a variable for testing purposes.
var retryDelay = 500 * time.Millisecond

// Verifier resolves bearer tokens by asking the hosted auth service who owns them.
type Verifier struct {
	userURL    string
	serviceKey string
	httpClient *http.Client
	log        *slog.Logger
}

// NewVerifier creates a Supabase token verifier.
// Parameters come from config.AuthConfig: SupabaseURL, SupabaseServiceKey.
func NewVerifier(baseURL, serviceKey string, logger *slog.Logger) *Verifier {
	return &Verifier{
		userURL:    strings.TrimRight(baseURL, "/") + "/auth/v1/user",
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "supabase_auth"),
	}
}

// userResponse is the subset of the /auth/v1/user payload we rely on.
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Verify returns the principal that owns token.
// Rejected tokens fail with auth.ErrInvalidToken; transport failures do not.
func (v *Verifier) Verify(ctx context.Context, token string) (auth.Principal, error) {
	if token == "" {
		return auth.Principal{}, fmt.Errorf("%w: token is empty", auth.ErrInvalidToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.userURL, nil)
	if err != nil {
		return auth.Principal{}, fmt.Errorf("create user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.serviceKey)
	req.Header.Set("Accept", "application/json")

	resp, err := v.doWithRetry(ctx, req)
	if err != nil {
		v.log.ErrorContext(ctx, "supabase user lookup failed", slog.String("error", err.Error()))
		return auth.Principal{}, fmt.Errorf("supabase unavailable: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusNotFound:
		return auth.Principal{}, fmt.Errorf("%w: rejected by auth service (status %d)", auth.ErrInvalidToken, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		v.log.ErrorContext(ctx, "supabase user lookup failed", slog.Int("status", resp.StatusCode))
		return auth.Principal{}, fmt.Errorf("supabase unavailable: status %d", resp.StatusCode)
	}

	var user userResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		v.log.ErrorContext(ctx, "supabase user lookup failed", slog.String("error", "invalid json"))
		return auth.Principal{}, fmt.Errorf("supabase: invalid user response: %w", err)
	}
	if user.ID == "" {
		return auth.Principal{}, fmt.Errorf("%w: user response has no id", auth.ErrInvalidToken)
	}

	v.log.DebugContext(ctx, "supabase token verified", slog.String("principal_id", user.ID))

	return auth.Principal{ID: user.ID, Email: user.Email}, nil
}

// doWithRetry retries once on 5xx or network errors after retryDelay.
// GET requests carry no body, so the request can be reissued as is.
func (v *Verifier) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err == nil && resp.StatusCode < 500 {
		return resp, nil
	}
	if resp != nil {
		resp.Body.Close()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	select {
	case <-time.After(retryDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return v.httpClient.Do(req)
}
