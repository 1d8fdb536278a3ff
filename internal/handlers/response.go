package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the body written for every non-2xx answer of the employee API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, log *slog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.ErrorContext(r.Context(), "Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, status int, message string) {
	writeJSON(w, r, log, status, ErrorResponse{Error: message})
}
