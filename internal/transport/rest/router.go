package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/equitybridge-backend/internal/auth"
	"github.com/heartmarshall/equitybridge-backend/internal/config"
	"github.com/heartmarshall/equitybridge-backend/internal/transport/middleware"
)

// RouterDeps holds everything NewRouter wires together.
type RouterDeps struct {
	Logger          *slog.Logger
	CORS            config.CORSConfig
	Health          *HealthHandler
	Client          *ClientHandler
	Funding         *FundingHandler
	Identity        identityService
	RateLimiter     *middleware.RateLimiter
	SubmitPerMinute int
	Metrics         http.Handler
}

// identityService authenticates bearer tokens and resolves them to clients.
type identityService interface {
	Authenticate(ctx context.Context, token string) (auth.Principal, error)
	ResolveClient(ctx context.Context, p auth.Principal) (uuid.UUID, error)
}

// NewRouter builds the HTTP handler of the API.
func NewRouter(d RouterDeps) http.Handler {
	authed := middleware.Auth(d.Identity)
	client := middleware.Chain(authed, middleware.RequireClient(d.Identity, d.Logger))
	submit := client
	if d.RateLimiter != nil && d.SubmitPerMinute > 0 {
		submit = middleware.Chain(client, d.RateLimiter.Limit(d.SubmitPerMinute))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}

	mux.Handle("POST /api/client/profile", authed(http.HandlerFunc(d.Client.CreateProfile)))
	mux.Handle("GET /api/client/me", authed(http.HandlerFunc(d.Client.Me)))

	mux.Handle("POST /api/funding-requests", submit(http.HandlerFunc(d.Funding.Submit)))
	mux.Handle("GET /api/funding-requests", client(http.HandlerFunc(d.Funding.List)))
	mux.Handle("GET /api/funding-requests/{id}", client(http.HandlerFunc(d.Funding.Get)))

	return middleware.Chain(
		middleware.Recovery(d.Logger),
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.CORS(d.CORS),
	)(mux)
}
