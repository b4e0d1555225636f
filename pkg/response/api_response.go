package response

import (
	"encoding/json"
	"net/http"
	"time"

	"lunchly/pkg/middleware"
)

// ApiResponse is the envelope every endpoint writes.
type ApiResponse struct {
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Error     *ApiError   `json:"error,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ApiError carries the machine-readable error code and message.
type ApiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SendSuccess sends a 200 response wrapping data.
func SendSuccess(w http.ResponseWriter, r *http.Request, data interface{}) {
	write(w, r, http.StatusOK, ApiResponse{Success: true, Data: data})
}

// SendCreated sends a 201 response wrapping data.
func SendCreated(w http.ResponseWriter, r *http.Request, data interface{}) {
	write(w, r, http.StatusCreated, ApiResponse{Success: true, Data: data})
}

// SendError sends an error response. The code is the stable identifier
// clients switch on; the message is for humans.
func SendError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	write(w, r, statusCode, ApiResponse{Success: false, Error: &ApiError{Code: code, Message: message}})
}

func write(w http.ResponseWriter, r *http.Request, statusCode int, resp ApiResponse) {
	resp.RequestID = middleware.GetRequestID(r.Context())
	resp.Timestamp = time.Now().UTC()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}
