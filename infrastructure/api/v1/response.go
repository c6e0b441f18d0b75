package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/loftylabs/marketplace/domain/lot"
	"github.com/loftylabs/marketplace/infrastructure/api/middleware"
	"github.com/loftylabs/marketplace/internal/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError maps an error to its HTTP status and writes the response.
// Internal failure detail stays in the log; callers get a generic
// message for anything server-side.
func WriteError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	var apiErr *middleware.APIError
	var srvErr *middleware.ServerError

	switch {
	case errors.As(err, &apiErr):
		WriteJSON(w, apiErr.Code(), errorResponse{Error: apiErr.Message()})
	case errors.Is(err, lot.ErrInvalidInput):
		WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, middleware.ErrAuthentication):
		WriteJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication failed"})
	case errors.As(err, &srvErr):
		logger.ErrorContext(r.Context(), "request failed", "error", err)
		WriteJSON(w, srvErr.StatusCode(), errorResponse{Error: srvErr.Message()})
	default:
		logger.ErrorContext(r.Context(), "request failed", "error", err)
		WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
