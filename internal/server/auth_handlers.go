package server

import (
	"net/http"

	"github.com/bizdir/bizdirapi/internal/db/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// handleLogin exchanges credentials for a session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decodeValidated(r, "login", &req); err != nil {
		respondBadRequest(w, err)
		return
	}

	token, user, err := s.iam.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// handleWhoAmI returns the caller's current user record.
func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr500(w, r)
	if !ok {
		return
	}
	user, err := s.iam.WhoAmI(r.Context(), principal)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
