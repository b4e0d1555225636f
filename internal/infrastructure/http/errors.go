package http

import (
	"net/http"

	"lunchly/internal/domain/rejection"
	"lunchly/pkg/middleware"
	"lunchly/pkg/response"
)

// handleError translates errors into API responses. Domain rejections carry
// their kind as the error code and map to 409; everything else goes through
// the shared application error handler.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	if rej, ok := err.(rejection.Rejection); ok {
		response.SendError(w, r, http.StatusConflict, rej.RejectionKind(), rej.Error())
		return
	}
	middleware.HandleError(w, r, err)
}
