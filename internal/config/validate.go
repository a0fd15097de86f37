package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Auth.validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if err := c.Funding.validate(); err != nil {
		return fmt.Errorf("funding: %w", err)
	}

	return nil
}

func (a *AuthConfig) validate() error {
	if a.VerifyTimeout <= 0 {
		return fmt.Errorf("verify_timeout must be > 0 (got %v)", a.VerifyTimeout)
	}

	switch a.NormalizedMode() {
	case AuthModeJWT:
		if len(a.JWTSecret) < 32 {
			return fmt.Errorf("jwt_secret must be at least 32 characters (got %d)", len(a.JWTSecret))
		}
	case AuthModeSupabase:
		if a.SupabaseURL == "" || a.SupabaseServiceKey == "" {
			return fmt.Errorf("supabase mode requires supabase_url and supabase_service_key")
		}
	case AuthModeOIDC:
		if a.OIDCIssuerURL == "" || a.OIDCClientID == "" {
			return fmt.Errorf("oidc mode requires oidc_issuer_url and oidc_client_id")
		}
	default:
		return fmt.Errorf("unknown mode %q (want jwt, supabase or oidc)", a.Mode)
	}

	return nil
}

func (s *StorageConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case StorageS3:
		if s.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket is required")
		}
	case StorageAzure:
		if s.Azure.ConnectionString == "" || s.Azure.Container == "" {
			return fmt.Errorf("azure.connection_string and azure.container are required")
		}
	case StorageGitHub:
		if s.GitHub.Token == "" || s.GitHub.Owner == "" || s.GitHub.Repo == "" {
			return fmt.Errorf("github.token, github.owner and github.repo are required")
		}
	case StorageLocal:
		if s.Local.Root == "" {
			return fmt.Errorf("local.root is required")
		}
	default:
		return fmt.Errorf("unknown provider %q", s.Provider)
	}
	return nil
}

func (f *FundingConfig) validate() error {
	if f.UploadTimeout <= 0 {
		return fmt.Errorf("upload_timeout must be > 0 (got %v)", f.UploadTimeout)
	}
	if f.UploadMaxAttempts < 1 {
		return fmt.Errorf("upload_max_attempts must be >= 1 (got %d)", f.UploadMaxAttempts)
	}
	if f.UploadConcurrency < 1 {
		return fmt.Errorf("upload_concurrency must be >= 1 (got %d)", f.UploadConcurrency)
	}
	if f.MaxDocumentBytes <= 0 {
		return fmt.Errorf("max_document_bytes must be > 0 (got %d)", f.MaxDocumentBytes)
	}
	if f.MaxRequestBytes < f.MaxDocumentBytes {
		return fmt.Errorf("max_request_bytes must be >= max_document_bytes (got %d < %d)", f.MaxRequestBytes, f.MaxDocumentBytes)
	}
	if f.DefaultPageSize < 1 || f.DefaultPageSize > f.MaxPageSize {
		return fmt.Errorf("default_page_size must be in [1, max_page_size] (got %d)", f.DefaultPageSize)
	}
	return nil
}
