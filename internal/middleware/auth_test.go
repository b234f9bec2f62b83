package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layers/service/internal/middleware"
	"github.com/layers/service/internal/response"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"type": "user",
		"sub":  "u123",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

// authProbe mounts RequireAuth in front of a handler that records the claims
// it saw and answers 200.
func authProbe(got *middleware.Claims) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := middleware.ClaimsFrom(r.Context())
		if ok {
			*got = c
		}
		w.WriteHeader(http.StatusOK)
	})
	return middleware.RequireAuth(testSecret)(next)
}

func doAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, middleware.Claims) {
	t.Helper()
	var got middleware.Claims
	req := httptest.NewRequest(http.MethodPost, "/upload/file", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	authProbe(&got).ServeHTTP(rec, req)
	return rec, got
}

func errorTag(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	require.False(t, env.OK)
	return env.Error
}

func TestRequireAuthMissingHeader(t *testing.T) {
	rec, _ := doAuth(t, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "TokenNotProvided", errorTag(t, rec))
}

func TestRequireAuthMalformedToken(t *testing.T) {
	rec, _ := doAuth(t, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "InvalidToken", errorTag(t, rec))
}

func TestRequireAuthWrongSecret(t *testing.T) {
	rec, _ := doAuth(t, "Bearer "+signToken(t, "other-secret", validClaims()))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "InvalidToken", errorTag(t, rec))
}

func TestRequireAuthExpiredToken(t *testing.T) {
	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	rec, _ := doAuth(t, "Bearer "+signToken(t, testSecret, claims))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "InvalidToken", errorTag(t, rec))
}

func TestRequireAuthRejectsNoneAlgorithm(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims()).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	rec, _ := doAuth(t, "Bearer "+tok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "InvalidToken", errorTag(t, rec))
}

func TestRequireAuthMissingSubject(t *testing.T) {
	claims := validClaims()
	delete(claims, "sub")
	rec, _ := doAuth(t, "Bearer "+signToken(t, testSecret, claims))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "InvalidToken", errorTag(t, rec))
}

func TestRequireAuthValidToken(t *testing.T) {
	rec, got := doAuth(t, "Bearer "+signToken(t, testSecret, validClaims()))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user", got.Type)
	assert.Equal(t, "u123", got.Subject)
}

func TestRequireAuthAcceptsRawTokenHeader(t *testing.T) {
	// Header carrying the bare token, without the Bearer prefix.
	rec, got := doAuth(t, signToken(t, testSecret, validClaims()))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u123", got.Subject)
}
