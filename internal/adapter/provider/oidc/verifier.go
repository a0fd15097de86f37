package oidc

import (
	"context"
	"fmt"
	"log/slog"

	gooidc "github.com/coreos/go-oidc/v3/oidc"

	"github.com/heartmarshall/equitybridge-backend/internal/auth"
)

// Verifier validates ID tokens issued by an OpenID Connect provider.
type Verifier struct {
	verifier *gooidc.IDTokenVerifier
	log      *slog.Logger
}

// NewVerifier discovers the issuer's configuration and signing keys.
// Parameters come from config.AuthConfig: OIDCIssuerURL, OIDCClientID.
func NewVerifier(ctx context.Context, issuerURL, clientID string, logger *slog.Logger) (*Verifier, error) {
	provider, err := gooidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery %s: %w", issuerURL, err)
	}
	return &Verifier{
		verifier: provider.Verifier(&gooidc.Config{ClientID: clientID}),
		log:      logger.With("adapter", "oidc"),
	}, nil
}

// idClaims are the ID token claims mapped onto a principal.
type idClaims struct {
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
}

// Verify checks the token signature, issuer, audience and expiry.
func (v *Verifier) Verify(ctx context.Context, token string) (auth.Principal, error) {
	if token == "" {
		return auth.Principal{}, fmt.Errorf("%w: token is empty", auth.ErrInvalidToken)
	}

	idToken, err := v.verifier.Verify(ctx, token)
	if err != nil {
		v.log.DebugContext(ctx, "oidc token rejected", slog.String("error", err.Error()))
		return auth.Principal{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	if idToken.Subject == "" {
		return auth.Principal{}, fmt.Errorf("%w: missing subject", auth.ErrInvalidToken)
	}

	var claims idClaims
	if err := idToken.Claims(&claims); err != nil {
		return auth.Principal{}, fmt.Errorf("%w: decode claims: %v", auth.ErrInvalidToken, err)
	}

	p := auth.Principal{ID: idToken.Subject}
	// Unverified addresses are not trusted as a profile default.
	if claims.EmailVerified == nil || *claims.EmailVerified {
		p.Email = claims.Email
	}
	return p, nil
}
