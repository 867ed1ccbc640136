// Package http provides HTTP handlers and routing for the chordbook API.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"chordbook/internal/models"
)

// AuthService defines the interface for authentication operations required
// by the HTTP handlers.
type AuthService interface {
	// Register creates a new account from a username and raw password.
	Register(ctx context.Context, username, password string) (*models.User, error)
	// Login verifies credentials and returns a signed identity token.
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandler handles HTTP requests for user registration and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// credentialsRequest represents the JSON payload for registration and login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /register.
// It expects a JSON body with non-empty "username" and "password" fields
// and responds 201 with the new user's id and username. A taken username
// yields 409.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "username and password are required"})
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /login.
// On valid credentials it responds 200 with {"accessToken": ...};
// otherwise 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	accessToken, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"accessToken": accessToken})
}
