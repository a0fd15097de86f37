package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/equitybridge-backend/internal/adapter/blobstore/azure"
	"github.com/heartmarshall/equitybridge-backend/internal/adapter/blobstore/github"
	"github.com/heartmarshall/equitybridge-backend/internal/adapter/blobstore/local"
	"github.com/heartmarshall/equitybridge-backend/internal/adapter/blobstore/s3"
	"github.com/heartmarshall/equitybridge-backend/internal/adapter/provider/oidc"
	"github.com/heartmarshall/equitybridge-backend/internal/adapter/provider/supabase"
	"github.com/heartmarshall/equitybridge-backend/internal/auth"
	"github.com/heartmarshall/equitybridge-backend/internal/config"
)

// Verifier checks bearer tokens against the configured identity provider.
type Verifier interface {
	Verify(ctx context.Context, token string) (auth.Principal, error)
}

// Store persists documents in the configured object store.
type Store interface {
	Store(ctx context.Context, payload []byte, suggestedName, namespace string) (string, error)
	Ping(ctx context.Context) error
}

// NewVerifier builds the token verifier selected by cfg.Mode.
func NewVerifier(ctx context.Context, cfg config.AuthConfig, logger *slog.Logger) (Verifier, error) {
	switch cfg.NormalizedMode() {
	case config.AuthModeJWT:
		return auth.NewJWTVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience), nil
	case config.AuthModeSupabase:
		return supabase.NewVerifier(cfg.SupabaseURL, cfg.SupabaseServiceKey, logger), nil
	case config.AuthModeOIDC:
		v, err := oidc.NewVerifier(ctx, cfg.OIDCIssuerURL, cfg.OIDCClientID, logger)
		if err != nil {
			return nil, fmt.Errorf("oidc verifier: %w", err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}

// NewStore builds the document store selected by cfg.Provider.
func NewStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.Provider {
	case config.StorageS3:
		store, err = s3.New(ctx, cfg.S3, logger)
	case config.StorageAzure:
		store, err = azure.New(cfg.Azure, logger)
	case config.StorageGitHub:
		store, err = github.New(ctx, cfg.GitHub, logger)
	case config.StorageLocal:
		store, err = local.New(cfg.Local, logger)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("%s store: %w", cfg.Provider, err)
	}
	return store, nil
}
