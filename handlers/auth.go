package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"calorease/internal/auth"
	"calorease/models"
	userssvc "calorease/services/users"
)

type userService interface {
	Signup(ctx context.Context, username, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

var _ userService = (*userssvc.Service)(nil)

// AuthHandler serves signup and login.
type AuthHandler struct {
	Users  userService
	Tokens *auth.Manager
}

func NewAuthHandler(users userService, tokens *auth.Manager) *AuthHandler {
	return &AuthHandler{Users: users, Tokens: tokens}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup creates an account and returns a session token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	user, err := h.Users.Signup(r.Context(), creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, userssvc.ErrUsernameExists) {
			respondError(w, http.StatusBadRequest, "Username already exists", "")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	token, err := h.Tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate token", "")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

// Login authenticates an account and returns a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	user, err := h.Users.Authenticate(r.Context(), creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, userssvc.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid username or password", "")
			return
		}
		respondError(w, http.StatusInternalServerError, "Login failed", err.Error())
		return
	}

	token, err := h.Tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate token", "")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}
