package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/userdict/internal/domain"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error    string          `json:"error"`
	Fields   []fieldResponse `json:"fields,omitempty"`
	WordUUID string          `json:"word_uuid,omitempty"`
}

type fieldResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// handleError maps domain errors to HTTP statuses. Unknown errors are
// logged and reported as 500 without detail.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	resp := errorResponse{Error: err.Error()}

	var we *domain.WordError
	if errors.As(err, &we) {
		resp.WordUUID = we.ID.String()
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		for _, fe := range ve.Errors {
			resp.Fields = append(resp.Fields, fieldResponse{Field: fe.Field, Message: fe.Message})
		}
	}

	var status int
	switch {
	case errors.Is(err, domain.ErrImportInvariant), errors.Is(err, domain.ErrValidation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrWordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrCompileFailed):
		status = http.StatusBadGateway
		log.ErrorContext(r.Context(), "dictionary compile failed", slog.String("error", err.Error()))
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, status, resp)
}
