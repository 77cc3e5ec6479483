package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devdev758/indiainflation/internal/core/domain"
	"github.com/devdev758/indiainflation/internal/logger"
)

// Error codes form a small fixed vocabulary; internal error text is
// never leaked to callers.
const (
	codeNotFound         = "not_found"
	codePayloadTooLarge  = "payload_too_large"
	codeMissingSlug      = "missing_slug"
	codeMissingQuery     = "missing_query"
	codeMethodNotAllowed = "method_not_allowed"
	codeInternalError    = "internal_error"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// writeError emits the fixed-vocabulary error response.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: code})
}

// writeServiceError maps a core error to its fixed status code.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound)
	case errors.Is(err, domain.ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, codePayloadTooLarge)
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, codeMissingSlug)
	default:
		// Malformed artifacts and all other failures surface as a
		// generic internal failure.
		logger.Warn("api: internal error: %v", err)
		writeError(w, http.StatusInternalServerError, codeInternalError)
	}
}
