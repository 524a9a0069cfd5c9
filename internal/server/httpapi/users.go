package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/ledgerkeeper/ledgerkeeper/internal/server/models"
)

// createUserRequest is the JSON body for creating an account. Role defaults
// to "user" when omitted.
type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Role: string(u.Role)}
}

// handleCreateUser creates an account. The route is admin-only; requesting
// the admin role is re-checked against the actor inside the service.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Role == "" {
		req.Role = string(models.RoleUser)
	}

	user, err := s.users.Register(r.Context(), userFromContext(r.Context()), req.Email, req.Password, models.Role(req.Role))
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// handleMe returns the calling account.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserResponse(userFromContext(r.Context())))
}
