package http

import (
	"net/http"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/service"
)

type registerRequest struct {
	Name     string `json:"name" validate:"notblank,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=youth senior"`
	GrcID    *int32 `json:"grc_id" validate:"omitempty,gt=0"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
	Role    string `json:"role" validate:"omitempty,oneof=youth senior"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.decode(w, r, &req) {
		return
	}
	user, err := s.svc.Auth.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.UserRole(req.Role),
		GrcID:    req.GrcID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decode(w, r, &req) {
		return
	}
	session, err := s.svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.setSessionCookie(w, userCookie, session.Token, session.ExpiresAt)
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) googleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if !s.decode(w, r, &req) {
		return
	}
	session, err := s.svc.Auth.LoginWithGoogle(r.Context(), req.IDToken, domain.UserRole(req.Role))
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.setSessionCookie(w, userCookie, session.Token, session.ExpiresAt)
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w, userCookie)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decode(w, r, &req) {
		return
	}
	session, err := s.svc.Auth.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.setSessionCookie(w, adminCookie, session.Token, session.ExpiresAt)
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) adminLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w, adminCookie)
	w.WriteHeader(http.StatusNoContent)
}
