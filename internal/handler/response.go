package handler

import (
	"encoding/json"
	"net/http"
)

// Envelope is the JSON body of every API response.
type Envelope struct {
	Status  bool             `json:"status"`
	Message string           `json:"message"`
	Data    any              `json:"data,omitempty"`
	Errors  ValidationErrors `json:"errors,omitempty"`
}

func (h *Handler) writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	if err := writeJSON(w, status, Envelope{Status: true, Message: message, Data: data}); err != nil {
		// Can't change status after WriteHeader, just log
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes a JSON error envelope.
func writeError(w http.ResponseWriter, status int, message string, errs ValidationErrors) {
	_ = writeJSON(w, status, Envelope{Status: false, Message: message, Errors: errs})
}

func writeJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}
