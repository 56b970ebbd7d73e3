package api

import (
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/navinbhat12/api-about-nothing/pkg/errors"
)

// errorBody is the fixed shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logger.Debug("Failed to write JSON response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	respondJSON(w, logger, status, errorBody{Error: message})
}

// respondLookupError maps a lookup failure to its HTTP response. Not-found
// errors carry their client message; anything else is a 500.
func respondLookupError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if nf, ok := errors.AsNotFound(err); ok {
		respondError(w, logger, nf.StatusCode, nf.Message)
		return
	}
	logger.Error("Lookup failed", zap.Error(err))
	respondError(w, logger, http.StatusInternalServerError, "Internal server error")
}
