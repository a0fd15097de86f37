package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Document string       `json:"document,omitempty"`
	Fields   []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// handleError maps a service error to its HTTP reply. Unexpected errors are
// logged and reported without detail.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var (
		missing     *domain.MissingDocumentError
		validation  *domain.ValidationError
		upload      *domain.UploadError
		persistence *domain.PersistenceError
		tooLarge    *http.MaxBytesError
	)

	switch {
	case errors.As(err, &missing):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:     "missing_document",
			Message:  missing.Error(),
			Document: missing.Name.String(),
		})
	case errors.As(err, &validation):
		fields := make([]fieldError, 0, len(validation.Errors))
		for _, fe := range validation.Errors {
			fields = append(fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "validation_error",
			Message: "invalid input",
			Fields:  fields,
		})
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "request_too_large", "request body too large")
	case errors.As(err, &upload):
		log.WarnContext(r.Context(), "document upload failed",
			slog.String("document", upload.Document.String()),
			slog.String("error", upload.Err.Error()),
		)
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Code:     "upload_failed",
			Message:  "failed to upload " + upload.Document.String(),
			Document: upload.Document.String(),
		})
	case errors.As(err, &persistence):
		log.ErrorContext(r.Context(), "funding request not recorded", slog.String("error", persistence.Err.Error()))
		writeError(w, http.StatusInternalServerError, "persistence_failed", "failed to record funding request")
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
	case errors.Is(err, domain.ErrClientNotOnboarded):
		writeError(w, http.StatusForbidden, "client_not_onboarded", "Client mapping not found")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already_exists", "already exists")
	default:
		log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}
