package middleware

import "net/http"

// MaxBodyBytes caps the size of an entire upload request body. The limit
// applies to the whole body, not per multipart part.
const MaxBodyBytes = 12_000_000

// LimitBody wraps every request body in http.MaxBytesReader so a body
// exceeding MaxBodyBytes aborts the read before a handler can finish
// consuming it.
func LimitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
		next.ServeHTTP(w, r)
	})
}
