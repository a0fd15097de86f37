package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/equitybridge-backend/internal/config"
	"github.com/heartmarshall/equitybridge-backend/internal/domain"
	"github.com/heartmarshall/equitybridge-backend/internal/service/funding"
)

// maxFieldBytes bounds a single text field of the multipart submission.
const maxFieldBytes = 4 << 10

// submitFields are the text parts of a submission.
var submitFields = map[string]bool{
	"company_name":        true,
	"end_user_department": true,
	"funding_type":        true,
	"funding_amount":      true,
}

// fundingService defines the minimal interface needed by FundingHandler.
type fundingService interface {
	Submit(ctx context.Context, input funding.SubmitInput) (*funding.SubmitResult, error)
	List(ctx context.Context, input funding.ListInput) ([]domain.FundingRequestSummary, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.FundingRequest, error)
}

// FundingHandler serves funding request endpoints.
type FundingHandler struct {
	svc              fundingService
	log              *slog.Logger
	maxRequestBytes  int64
	maxDocumentBytes int64
}

// NewFundingHandler creates a FundingHandler.
func NewFundingHandler(svc fundingService, cfg config.FundingConfig, logger *slog.Logger) *FundingHandler {
	return &FundingHandler{
		svc:              svc,
		log:              logger.With("handler", "funding"),
		maxRequestBytes:  cfg.MaxRequestBytes,
		maxDocumentBytes: cfg.MaxDocumentBytes,
	}
}

type submitResponse struct {
	Message   string            `json:"message"`
	RequestID string            `json:"requestId"`
	Status    string            `json:"status"`
	Documents map[string]string `json:"documents"`
	CreatedAt time.Time         `json:"createdAt"`
}

type summaryResponse struct {
	ID          string    `json:"id"`
	FundingType string    `json:"funding_type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type listResponse struct {
	Requests []summaryResponse `json:"requests"`
}

type requestResponse struct {
	ID                string            `json:"id"`
	CompanyName       string            `json:"company_name"`
	EndUserDepartment string            `json:"end_user_department"`
	FundingType       string            `json:"funding_type"`
	FundingAmount     string            `json:"funding_amount"`
	Status            string            `json:"status"`
	Documents         map[string]string `json:"documents"`
	CreatedAt         time.Time         `json:"created_at"`
}

// Submit handles POST /api/funding-requests.
func (h *FundingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes)

	input, err := h.readSubmission(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.Submit(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	docs := make(map[string]string, len(res.Documents))
	for kind, ref := range res.Documents {
		docs[kind.String()] = ref
	}
	writeJSON(w, http.StatusCreated, submitResponse{
		Message:   "Funding request submitted successfully",
		RequestID: res.RequestID.String(),
		Status:    res.Status.String(),
		Documents: docs,
		CreatedAt: res.CreatedAt,
	})
}

// readSubmission streams the multipart body into a SubmitInput. Parts that
// are neither a known text field nor a document kind are discarded unread.
func (h *FundingHandler) readSubmission(r *http.Request) (funding.SubmitInput, error) {
	input := funding.SubmitInput{Documents: make(map[string][]funding.DocumentFile)}

	mr, err := r.MultipartReader()
	if err != nil {
		return input, domain.NewValidationError("body", "expected multipart/form-data")
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return input, nil
		}
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return input, err
			}
			return input, domain.NewValidationError("body", "malformed multipart body")
		}

		if err := h.readPart(&input, part); err != nil {
			return input, err
		}
	}
}

// readPart consumes one part into input. The part is always closed so the
// reader is positioned at the next boundary.
func (h *FundingHandler) readPart(input *funding.SubmitInput, part *multipart.Part) error {
	defer part.Close()

	name := part.FormName()
	switch {
	case part.FileName() == "" && submitFields[name]:
		value, err := readLimited(part, maxFieldBytes)
		if err != nil {
			return partError(name, err)
		}
		setField(input, name, string(value))
	case part.FileName() != "" && domain.DocumentKind(name).IsValid():
		content, err := readLimited(part, h.maxDocumentBytes)
		if err != nil {
			return partError(name, err)
		}
		input.Documents[name] = append(input.Documents[name], funding.DocumentFile{
			Filename: part.FileName(),
			Content:  content,
		})
	default:
		if _, err := io.Copy(io.Discard, part); err != nil {
			return partError(name, err)
		}
	}
	return nil
}

var errPartTooLarge = errors.New("part too large")

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, errPartTooLarge
	}
	return b, nil
}

func partError(name string, err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return err
	case errors.Is(err, errPartTooLarge):
		return domain.NewValidationError(name, "file too large")
	default:
		return domain.NewValidationError(name, "unreadable part")
	}
}

func setField(input *funding.SubmitInput, name, value string) {
	switch name {
	case "company_name":
		input.CompanyName = value
	case "end_user_department":
		input.EndUserDepartment = value
	case "funding_type":
		input.FundingType = value
	case "funding_amount":
		input.FundingAmount = value
	}
}

// List handles GET /api/funding-requests.
func (h *FundingHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := parseListInput(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := listResponse{Requests: make([]summaryResponse, 0, len(items))}
	for _, it := range items {
		resp.Requests = append(resp.Requests, summaryResponse{
			ID:          it.ID.String(),
			FundingType: it.FundingType,
			Status:      it.Status.String(),
			CreatedAt:   it.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/funding-requests/{id}.
func (h *FundingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, domain.NewValidationError("id", "invalid id"))
		return
	}

	fr, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	docs := make(map[string]string, len(fr.Documents))
	for kind, ref := range fr.Documents {
		docs[kind.String()] = ref
	}
	writeJSON(w, http.StatusOK, requestResponse{
		ID:                fr.ID.String(),
		CompanyName:       fr.CompanyName,
		EndUserDepartment: fr.EndUserDepartment,
		FundingType:       fr.FundingType,
		FundingAmount:     fr.FundingAmount.StringFixed(2),
		Status:            fr.Status.String(),
		Documents:         docs,
		CreatedAt:         fr.CreatedAt,
	})
}

func parseListInput(r *http.Request) (funding.ListInput, error) {
	var (
		input funding.ListInput
		errs  []domain.FieldError
	)
	q := r.URL.Query()
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "limit", Message: "must be an integer"})
		}
		input.Limit = n
	}
	if v := strings.TrimSpace(q.Get("offset")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "offset", Message: "must be an integer"})
		}
		input.Offset = n
	}
	if len(errs) > 0 {
		return input, domain.NewValidationErrors(errs)
	}
	return input, nil
}
