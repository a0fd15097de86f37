package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Storage  StorageConfig  `yaml:"storage"`
	Funding  FundingConfig  `yaml:"funding"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	ExposedHeaders   string `yaml:"exposed_headers"   env:"CORS_EXPOSED_HEADERS"   env-default:"Retry-After,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"60s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"5m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"30s"`
	SubmitRateLimit int           `yaml:"submit_rate_limit" env:"SERVER_SUBMIT_RATE_LIMIT" env-default:"30"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Auth modes select how bearer tokens are verified.
const (
	AuthModeJWT      = "jwt"
	AuthModeSupabase = "supabase"
	AuthModeOIDC     = "oidc"
)

// AuthConfig holds bearer token verification settings.
type AuthConfig struct {
	Mode          string        `yaml:"mode"           env:"AUTH_MODE"           env-default:"jwt"`
	VerifyTimeout time.Duration `yaml:"verify_timeout" env:"AUTH_VERIFY_TIMEOUT" env-default:"5s"`

	JWTSecret   string `yaml:"jwt_secret"   env:"AUTH_JWT_SECRET"`
	JWTIssuer   string `yaml:"jwt_issuer"   env:"AUTH_JWT_ISSUER"`
	JWTAudience string `yaml:"jwt_audience" env:"AUTH_JWT_AUDIENCE"`

	SupabaseURL        string `yaml:"supabase_url"         env:"AUTH_SUPABASE_URL"`
	SupabaseServiceKey string `yaml:"supabase_service_key" env:"AUTH_SUPABASE_SERVICE_KEY"`

	OIDCIssuerURL string `yaml:"oidc_issuer_url" env:"AUTH_OIDC_ISSUER_URL"`
	OIDCClientID  string `yaml:"oidc_client_id"  env:"AUTH_OIDC_CLIENT_ID"`
}

// Storage providers.
const (
	StorageS3     = "s3"
	StorageAzure  = "azure"
	StorageGitHub = "github"
	StorageLocal  = "local"
)

// StorageConfig selects and configures the document store.
type StorageConfig struct {
	Provider string       `yaml:"provider" env:"STORAGE_PROVIDER" env-default:"local"`
	S3       S3Config     `yaml:"s3"`
	Azure    AzureConfig  `yaml:"azure"`
	GitHub   GitHubConfig `yaml:"github"`
	Local    LocalConfig  `yaml:"local"`
}

// S3Config holds settings for S3 and S3-compatible stores.
type S3Config struct {
	Bucket          string `yaml:"bucket"            env:"S3_BUCKET"`
	Region          string `yaml:"region"            env:"S3_REGION"            env-default:"us-east-1"`
	Endpoint        string `yaml:"endpoint"          env:"S3_ENDPOINT"`
	AccessKeyID     string `yaml:"access_key_id"     env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `yaml:"use_path_style"    env:"S3_USE_PATH_STYLE"`
	PublicBaseURL   string `yaml:"public_base_url"   env:"S3_PUBLIC_BASE_URL"`
	Prefix          string `yaml:"prefix"            env:"S3_PREFIX"`
}

// AzureConfig holds Azure Blob Storage settings.
type AzureConfig struct {
	ConnectionString string `yaml:"connection_string" env:"AZURE_STORAGE_CONNECTION_STRING"`
	Container        string `yaml:"container"         env:"AZURE_STORAGE_CONTAINER"`
}

// GitHubConfig holds settings for storing documents in a GitHub repository.
type GitHubConfig struct {
	Token   string `yaml:"token"    env:"GITHUB_STORE_TOKEN"`
	Owner   string `yaml:"owner"    env:"GITHUB_STORE_OWNER"`
	Repo    string `yaml:"repo"     env:"GITHUB_STORE_REPO"`
	Branch  string `yaml:"branch"   env:"GITHUB_STORE_BRANCH"   env-default:"main"`
	BaseURL string `yaml:"base_url" env:"GITHUB_STORE_BASE_URL"`
}

// LocalConfig holds settings for the filesystem store.
type LocalConfig struct {
	Root    string `yaml:"root"     env:"LOCAL_STORE_ROOT"     env-default:"./data/documents"`
	BaseURL string `yaml:"base_url" env:"LOCAL_STORE_BASE_URL" env-default:"http://localhost:8080/documents"`
}

// FundingConfig holds submission pipeline settings.
type FundingConfig struct {
	UploadTimeout     time.Duration `yaml:"upload_timeout"      env:"FUNDING_UPLOAD_TIMEOUT"      env-default:"30s"`
	UploadMaxAttempts int           `yaml:"upload_max_attempts" env:"FUNDING_UPLOAD_MAX_ATTEMPTS" env-default:"2"`
	UploadConcurrency int           `yaml:"upload_concurrency"  env:"FUNDING_UPLOAD_CONCURRENCY"  env-default:"1"`
	MaxDocumentBytes  int64         `yaml:"max_document_bytes"  env:"FUNDING_MAX_DOCUMENT_BYTES"  env-default:"10485760"`
	MaxRequestBytes   int64         `yaml:"max_request_bytes"   env:"FUNDING_MAX_REQUEST_BYTES"   env-default:"67108864"`
	DefaultPageSize   int           `yaml:"default_page_size"   env:"FUNDING_DEFAULT_PAGE_SIZE"   env-default:"50"`
	MaxPageSize       int           `yaml:"max_page_size"       env:"FUNDING_MAX_PAGE_SIZE"       env-default:"200"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Addr returns the listen address of the HTTP server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// NormalizedMode returns the lower-cased auth mode.
func (c AuthConfig) NormalizedMode() string {
	return strings.ToLower(strings.TrimSpace(c.Mode))
}
