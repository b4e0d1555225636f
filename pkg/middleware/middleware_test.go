package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "lunchly/pkg/errors"
	jwtutil "lunchly/pkg/jwt"
)

func TestRequestIDMiddleware(t *testing.T) {
	var gotID string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, gotID)
	assert.Equal(t, gotID, rec.Header().Get("X-Request-ID"))
}

func TestGetRequestIDWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "unknown", GetRequestID(req.Context()))
}

func TestJWTAuthMiddlewareAcceptsValidToken(t *testing.T) {
	manager := jwtutil.NewJWTManager("test-secret", time.Hour)
	token, err := manager.GenerateToken("user-1", "user-1@example.com", "User One")
	require.NoError(t, err)

	var userID string
	var found bool
	h := JWTAuthMiddleware(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, found = GetUserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, found)
	assert.Equal(t, "user-1", userID)
}

func TestJWTAuthMiddlewareRejectsBadRequests(t *testing.T) {
	manager := jwtutil.NewJWTManager("test-secret", time.Hour)
	otherToken, err := jwtutil.NewJWTManager("other-secret", time.Hour).
		GenerateToken("user-1", "user-1@example.com", "User One")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc"},
		{"garbage token", "Bearer not-a-token"},
		{"wrong signing key", "Bearer " + otherToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := JWTAuthMiddleware(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body struct {
		Success bool              `json:"success"`
		Error   map[string]string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Error
}

func TestHandleErrorApplicationError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(rec, req, apperrors.NewNotFoundError("vendor"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	errBody := decodeErrorBody(t, rec)
	assert.Equal(t, "NOT_FOUND", errBody["code"])
	assert.Equal(t, "vendor not found", errBody["message"])
}

func TestHandleErrorUnknownError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(rec, req, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	errBody := decodeErrorBody(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", errBody["code"])
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	errBody := decodeErrorBody(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", errBody["code"])
}
