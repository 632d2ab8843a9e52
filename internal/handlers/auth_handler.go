package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"tokenAuthAPI/internal/auth"
	"tokenAuthAPI/internal/models"
)

const logoutMessage = "Logout successful. Just stop using your token!"

// CredentialVerifier checks a username/password pair
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}

// AuthHandler handles login, token refresh, logout and the protected route
type AuthHandler struct {
	Verifier CredentialVerifier
	Tokens   auth.TokenService
	Now      func() time.Time
}

// NewAuthHandler creates a new AuthHandler using the wall clock
func NewAuthHandler(verifier CredentialVerifier, tokens auth.TokenService) *AuthHandler {
	return &AuthHandler{
		Verifier: verifier,
		Tokens:   tokens,
		Now:      time.Now,
	}
}

// Login validates user credentials and returns a token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLogin(r.Body)
	if err != nil || !req.present {
		auth.WriteError(w, http.StatusBadRequest, auth.ErrMissingCredentials)
		return
	}
	if !req.allStrings {
		auth.WriteError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials)
		return
	}

	ok, err := h.Verifier.Verify(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		auth.WriteError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		slog.Error("credential lookup failed", "username", req.Username, "error", err)
		auth.WriteError(w, http.StatusInternalServerError, err)
		return
	case !ok:
		auth.WriteError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials)
		return
	}

	token, err := h.Tokens.Issue(req.Username, h.Now())
	if err != nil {
		slog.Error("failed to issue token", "username", req.Username, "error", err)
		auth.WriteError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TokenResponse{Token: token})
}

// Protected greets the identity injected by auth.TokenMiddleware
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.GetUsername(r.Context())
	if !ok {
		auth.WriteError(w, http.StatusUnauthorized, auth.ErrMissingToken)
		return
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("Welcome, %s! This is a protected route.", username),
	})
}

// Refresh issues a new token for the identity injected by auth.TokenMiddleware.
// The presented token is not revoked.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.GetUsername(r.Context())
	if !ok {
		auth.WriteError(w, http.StatusUnauthorized, auth.ErrMissingToken)
		return
	}

	token, err := h.Tokens.Issue(username, h.Now())
	if err != nil {
		slog.Error("failed to refresh token", "username", username, "error", err)
		auth.WriteError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TokenResponse{Token: token})
}

// Logout only tells the client to discard its token; the server keeps no state
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: logoutMessage})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
