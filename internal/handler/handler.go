package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"tndshop/internal/model"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already out; nothing useful left to send.
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// writeServiceError maps a service error onto an HTTP response. Domain
// errors carry their code and message; anything else is a persistence or
// internal failure and surfaces as a bare 500.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var de *model.DomainError
	if errors.As(err, &de) {
		status := http.StatusBadRequest
		switch de.Code {
		case model.ErrCodeProductNotFound, model.ErrCodeOrderNotFound:
			status = http.StatusNotFound
		case model.ErrCodeUnauthorised:
			status = http.StatusUnauthorized
		}
		logger.Warn().Str("code", de.Code).Int("status", status).Msg(de.Message)
		writeJSON(w, status, model.ErrorResponse{Error: de.Code, Message: de.Message})
		return
	}

	logger.Error().Err(err).Msg("internal error")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error:   model.ErrCodeInternalError,
		Message: "internal server error",
	})
}

// decodeJSON decodes a request body into dst, rejecting malformed payloads.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "invalid request body")
	}
	return nil
}
