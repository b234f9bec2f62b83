package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/layers/service/internal/response"
)

// Claims is the verified identity attached to an upload request.
// A value only ever reaches the context fully populated.
type Claims struct {
	Type    string
	Subject string
}

// contextKey is an unexported type for context keys in this package.
type contextKey string

// claimsKey is the context key for the verified token claims.
const claimsKey contextKey = "claims"

// ClaimsFrom returns the verified claims injected by RequireAuth.
func ClaimsFrom(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey).(Claims)
	return c, ok
}

// RequireAuth returns middleware that verifies the bearer JWT in the
// Authorization header and injects the claims into the request context.
// Verification is stateless and runs on every request.
func RequireAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Fail(w, http.StatusForbidden, "TokenNotProvided")
				return
			}

			// Clients send either the raw token or "Bearer <token>".
			raw := strings.TrimPrefix(authHeader, "Bearer ")

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				response.Fail(w, http.StatusForbidden, "InvalidToken")
				return
			}

			mapClaims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				response.Fail(w, http.StatusForbidden, "InvalidToken")
				return
			}

			sub, _ := mapClaims["sub"].(string)
			typ, _ := mapClaims["type"].(string)
			if sub == "" {
				response.Fail(w, http.StatusForbidden, "InvalidToken")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, Claims{Type: typ, Subject: sub})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
