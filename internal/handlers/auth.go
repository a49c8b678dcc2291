package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sasfit/sasback/internal/middleware"
	"github.com/sasfit/sasback/internal/models"
)

// Auth holds dependencies for account handlers.
type Auth struct {
	*Deps
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,notblank,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type passwordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type tokenResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// Register creates an account and returns a token for it.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.bind(w, r, &req) {
		return
	}

	user, err := models.CreateUser(h.DB, req.Email, req.Password, strings.TrimSpace(req.Name))
	if err != nil {
		h.fail(w, r, "register", err)
		return
	}
	h.respondWithToken(w, r, http.StatusCreated, user)
}

// Login exchanges credentials for a token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.bind(w, r, &req) {
		return
	}

	user, err := models.Authenticate(h.DB, req.Email, req.Password)
	if errors.Is(err, models.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}
	if err != nil {
		h.fail(w, r, "login", err)
		return
	}
	h.respondWithToken(w, r, http.StatusOK, user)
}

func (h *Auth) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *models.User) {
	token, expires, err := h.Issuer.Issue(user.ID, user.Email)
	if err != nil {
		h.fail(w, r, "issue token", err)
		return
	}
	writeJSON(w, status, tokenResponse{Token: token, ExpiresAt: expires, User: user})
}

// Me returns the authenticated user with their profile.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	profile, err := models.GetProfile(h.DB, user.ID)
	if err != nil {
		h.fail(w, r, "get profile", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user, "profile": profile})
}

// ChangePassword replaces the password after checking the current one.
func (h *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req passwordRequest
	if !h.bind(w, r, &req) {
		return
	}
	if !models.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		writeError(w, http.StatusUnauthorized, "La contraseña actual no es correcta")
		return
	}
	if err := models.UpdatePassword(h.DB, user.ID, req.NewPassword); err != nil {
		h.fail(w, r, "update password", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
