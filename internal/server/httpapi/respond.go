package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ledgerkeeper/ledgerkeeper/internal/common"
)

// errorResponse is the JSON error envelope: {"detail": "..."}.
type errorResponse struct {
	Detail string `json:"detail"`
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError writes an error response with the detail message.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeCouldNotValidate rejects a request whose token failed validation. All
// token failure classes get this identical response. The WWW-Authenticate
// header mirrors the OAuth2 bearer flow.
func writeCouldNotValidate(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", common.BearerScheme)
	writeError(w, http.StatusUnauthorized, "Could not validate credentials")
}

// writeAPIError translates service errors into HTTP responses. Internal
// faults are logged with full detail server-side and surfaced as an opaque
// 500.
func (s *Server) writeAPIError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrMalformedClaims):
		writeCouldNotValidate(w)
	case errors.Is(err, common.ErrForbidden):
		writeError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, common.ErrorConflict):
		// Users are the only resource reporting conflicts over the API.
		writeError(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, common.ErrorInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "An error occurred")
	}
}
