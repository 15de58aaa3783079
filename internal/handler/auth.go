package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"atelier/internal/domain/services"
	"atelier/internal/httputil"
)

// AuthHandler signs admins in
type AuthHandler struct {
	signIn services.SignInService
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(signIn services.SignInService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{signIn: signIn, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges email and password for an ID token
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequest(w, h.logger, err)
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		httputil.RespondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.signIn.SignIn(r.Context(), email, req.Password)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
