package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunchly/pkg/middleware"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) ApiResponse {
	t.Helper()
	var resp ApiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSendSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	SendSuccess(rec, req, map[string]string{"vendor_id": "vendor-1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.Equal(t, map[string]interface{}{"vendor_id": "vendor-1"}, resp.Data)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestSendCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	SendCreated(rec, req, map[string]string{"order_id": "vendor-1/user-1/2018-03-16"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

func TestSendError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	SendError(rec, req, http.StatusConflict, "CONFLICT", "vendor already exists")

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
	assert.Equal(t, "vendor already exists", resp.Error.Message)
	assert.Nil(t, resp.Data)
}

func TestEnvelopeCarriesRequestID(t *testing.T) {
	h := middleware.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SendSuccess(w, r, nil)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	resp := decodeResponse(t, rec)
	assert.Equal(t, rec.Header().Get("X-Request-ID"), resp.RequestID)
	assert.NotEqual(t, "unknown", resp.RequestID)
}
