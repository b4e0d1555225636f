package http

import (
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"lunchly/pkg/errors"
	jwtutil "lunchly/pkg/jwt"
	"lunchly/pkg/response"
)

// HTTPAuthController issues access tokens. Token issuance is gated by the
// shared operator password; the issued token carries the caller's identity,
// which becomes the acting user recorded on commands and events.
type HTTPAuthController struct {
	jwtManager   *jwtutil.JWTManager
	passwordHash string
}

// NewHTTPAuthController creates a new HTTP auth controller
func NewHTTPAuthController(jwtManager *jwtutil.JWTManager, passwordHash string) *HTTPAuthController {
	return &HTTPAuthController{
		jwtManager:   jwtManager,
		passwordHash: passwordHash,
	}
}

// IssueToken handles POST /auth/token
func (c *HTTPAuthController) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"user_id"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewValidationError("Invalid JSON format"))
		return
	}
	if req.UserID == "" {
		handleError(w, r, errors.NewValidationError("user_id is required"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.passwordHash), []byte(req.Password)); err != nil {
		handleError(w, r, errors.NewUnauthorizedError("invalid credentials"))
		return
	}

	token, err := c.jwtManager.GenerateToken(req.UserID, req.Email, req.Name)
	if err != nil {
		handleError(w, r, errors.NewInternalError("failed to issue token"))
		return
	}

	response.SendSuccess(w, r, map[string]interface{}{
		"token": token,
	})
}
