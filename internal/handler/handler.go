package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"barkeep/internal/middleware"
	"barkeep/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful can reach the client.
		return
	}
}

// writeError writes an ErrorResponse carrying the request's correlation id.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Str("code", code).
		Int("status", status).
		Msg(message)

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: middleware.RequestIDFromContext(r.Context()),
	})
}

// writeServiceError maps a service error to its status code.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("unexpected service error")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrInvalidWorkspace),
		errors.Is(err, model.ErrInvalidRecipe),
		errors.Is(err, model.ErrInvalidLimit):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrRecipeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrSnapshotUnavailable):
		logger.Error().Err(err).Msg("inventory snapshot unavailable")
		status = http.StatusServiceUnavailable
	}

	writeError(w, r, status, domainErr.Code, domainErr.Message, logger)
}
