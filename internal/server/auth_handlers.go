package server

import (
	"errors"
	"log"
	"net/http"

	"userhub/internal/auth"
	"userhub/internal/i18n"
)

type inviteRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validateEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	locale := i18n.LocaleFromRequest(r)
	if err := s.Workflow.Invite(r.Context(), req.Email, locale); err != nil {
		writeWorkflowError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Verification email sent"})
}

type registerRequest struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "Token is required")
		return
	}
	if !validateEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	if err := validatePassword(req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.Workflow.Register(r.Context(), req.Token, req.Email, req.Password)
	if err != nil {
		writeWorkflowError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Successfully registered",
		"user":    userJSON(user),
	})
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validateEmail(req.Email) || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	user, sessionID, err := s.Workflow.SignIn(r.Context(), sessionIDFromRequest(r), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Printf("failed sign-in for %s from %s", req.Email, s.clientIP(r))
		}
		writeWorkflowError(w, r, err)
		return
	}

	auth.SetSessionCookie(w, sessionID, s.Config.SessionTTL)
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": userJSON(user)})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := s.Workflow.SignOut(r.Context(), sessionIDFromRequest(r)); err != nil {
		writeWorkflowError(w, r, err)
		return
	}

	auth.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully signed out"})
}

func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	user, err := s.Workflow.WhoAmI(r.Context(), sessionIDFromRequest(r))
	if err != nil {
		writeWorkflowError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userJSON(user))
}

// userJSON shapes a user for responses. The password hash stays
// internal.
func userJSON(user *auth.User) map[string]interface{} {
	return map[string]interface{}{
		"id":         user.ID,
		"email":      user.Email,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}
}
