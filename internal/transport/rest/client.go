package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/equitybridge-backend/internal/auth"
	"github.com/heartmarshall/equitybridge-backend/internal/domain"
	"github.com/heartmarshall/equitybridge-backend/internal/service/identity"
	"github.com/heartmarshall/equitybridge-backend/internal/transport/middleware"
)

// maxProfileBodyBytes bounds the JSON body of a profile request.
const maxProfileBodyBytes = 64 << 10

// profileService defines the minimal interface needed by ClientHandler.
type profileService interface {
	CreateOrGetProfile(ctx context.Context, p auth.Principal, input identity.ProfileInput) (*domain.Client, bool, error)
	GetProfile(ctx context.Context, p auth.Principal) (*domain.Client, error)
}

// ClientHandler serves client onboarding endpoints.
type ClientHandler struct {
	svc profileService
	log *slog.Logger
}

// NewClientHandler creates a ClientHandler.
func NewClientHandler(svc profileService, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{svc: svc, log: logger.With("handler", "client")}
}

type profileRequest struct {
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phone_number"`
	CompanyName      string `json:"company_name"`
	CompanyRegNumber string `json:"company_reg_number"`
}

type clientResponse struct {
	ID               string    `json:"id"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	PhoneNumber      string    `json:"phone_number,omitempty"`
	CompanyName      string    `json:"company_name"`
	CompanyRegNumber string    `json:"company_reg_number,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateProfile handles POST /api/client/profile. It answers 201 when a new
// client was onboarded and 200 when the principal already had one.
func (h *ClientHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
		return
	}

	var req profileRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxProfileBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	client, created, err := h.svc.CreateOrGetProfile(r.Context(), p, identity.ProfileInput{
		FullName:         req.FullName,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		CompanyName:      req.CompanyName,
		CompanyRegNumber: req.CompanyRegNumber,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, toClientResponse(client))
}

// Me handles GET /api/client/me.
func (h *ClientHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
		return
	}

	client, err := h.svc.GetProfile(r.Context(), p)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toClientResponse(client))
}

func toClientResponse(c *domain.Client) clientResponse {
	return clientResponse{
		ID:               c.ID.String(),
		FullName:         c.FullName,
		Email:            c.Email,
		PhoneNumber:      c.PhoneNumber,
		CompanyName:      c.CompanyName,
		CompanyRegNumber: c.CompanyRegNumber,
		CreatedAt:        c.CreatedAt,
	}
}
