package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/equitybridge-backend/internal/auth"
	"github.com/heartmarshall/equitybridge-backend/internal/domain"
	"github.com/heartmarshall/equitybridge-backend/pkg/ctxutil"
)

type authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Principal, error)
}

type clientResolver interface {
	ResolveClient(ctx context.Context, p auth.Principal) (uuid.UUID, error)
}

// Auth rejects requests without a valid bearer token and stores the verified
// principal in the request context.
func Auth(a authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
				return
			}
			p, err := a.Authenticate(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
				return
			}
			ctx := ctxutil.WithPrincipal(r.Context(), p.ID, p.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireClient resolves the authenticated principal to an onboarded client
// and stores the client id in the request context. It must run after Auth.
func RequireClient(resolver clientResolver, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, email, ok := ctxutil.PrincipalFromCtx(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
				return
			}
			clientID, err := resolver.ResolveClient(r.Context(), auth.Principal{ID: id, Email: email})
			if err != nil {
				if errors.Is(err, domain.ErrClientNotOnboarded) {
					writeError(w, http.StatusForbidden, "client_not_onboarded", "Client mapping not found")
					return
				}
				logger.ErrorContext(r.Context(), "resolve client failed", slog.String("error", err.Error()))
				writeError(w, http.StatusInternalServerError, "internal", "internal error")
				return
			}
			recordClientID(w, clientID.String())
			ctx := ctxutil.WithClientID(r.Context(), clientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromRequest returns the principal stored by Auth.
func PrincipalFromRequest(r *http.Request) (auth.Principal, bool) {
	id, email, ok := ctxutil.PrincipalFromCtx(r.Context())
	return auth.Principal{ID: id, Email: email}, ok
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
