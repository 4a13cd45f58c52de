// Package shared holds the response helpers every handler uses so error
// envelopes stay uniform across the API.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "donorcheck/pkg/domain-errors"
)

// ErrorResponse is the envelope for every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WriteJSON encodes v with the given status. Encoding failures are silently
// dropped; the status line has already been written.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error to its HTTP status and writes the envelope.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	WriteJSON(w, dErrors.ToHTTPStatus(code), ErrorResponse{
		Error:   string(code),
		Message: err.Error(),
	})
}
