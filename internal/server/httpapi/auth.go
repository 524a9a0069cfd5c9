package httpapi

import (
	"net/http"

	"github.com/ledgerkeeper/ledgerkeeper/internal/common"
)

// tokenResponse is the login payload: {"access_token": "...",
// "token_type": "bearer"}.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// handleLogin exchanges form credentials (username, password) for an access
// token. The 401 detail never reveals whether the email exists.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := s.users.Login(r.Context(), username, password)
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: common.TokenType})
}

// handleWhoami returns the account behind the presented token.
func (s *Server) handleWhoami(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserResponse(userFromContext(r.Context())))
}
