// Package response provides shared JSON response helpers for HTTP handlers.
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the standard API response envelope. Every endpoint answers with
// ok plus either the stored object id or a machine-readable error tag.
type Envelope struct {
	OK    bool   `json:"ok"`
	ID    string `json:"id,omitempty" example:"V1StGXR8_Z5jdHi6B-myT"`
	Error string `json:"error,omitempty" example:"InvalidToken"`
}

// JSON writes a JSON-encoded payload with the given HTTP status code.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// OK writes a 200 response carrying the object id.
func OK(w http.ResponseWriter, id string) {
	JSON(w, http.StatusOK, Envelope{OK: true, ID: id})
}

// Fail writes an error response with the given status and error tag.
func Fail(w http.ResponseWriter, status int, tag string) {
	JSON(w, status, Envelope{OK: false, Error: tag})
}

// InternalError writes a 500 response with a generic message.
func InternalError(w http.ResponseWriter) {
	Fail(w, http.StatusInternalServerError, "InternalError")
}
