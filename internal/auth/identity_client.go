package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
	"atelier/internal/domain/services"
)

// AccessDeniedMessage is shown to the admin for every failed sign-in
const AccessDeniedMessage = "Access Denied. Please check your credentials."

// IdentityClient signs admins in with email and password through the identity
// provider's REST API (identitytoolkit accounts:signInWithPassword).
type IdentityClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewIdentityClient creates a sign-in client. An empty apiKey yields a client
// whose SignIn always fails with domain.ErrUnavailable.
func NewIdentityClient(baseURL, apiKey string, logger *slog.Logger) *IdentityClient {
	return &IdentityClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

var _ services.SignInService = (*IdentityClient)(nil)

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	Email        string `json:"email"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn exchanges credentials for an ID token. Any rejection or transport
// failure is reported as *domain.UnauthorizedError carrying AccessDeniedMessage.
func (c *IdentityClient) SignIn(ctx context.Context, email, password string) (*models.SignInResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("identity sign-in: %w", domain.ErrUnavailable)
	}

	body, err := json.Marshal(signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sign-in request: %w", err)
	}

	endpoint := c.baseURL + "/v1/accounts:signInWithPassword?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("identity provider unreachable", "error", err)
		return nil, &domain.UnauthorizedError{Message: AccessDeniedMessage}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sign-in response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		_ = json.Unmarshal(raw, &apiErr)
		c.logger.Warn("admin sign-in rejected",
			"status", resp.StatusCode,
			"reason", apiErr.Error.Message,
		)
		return nil, &domain.UnauthorizedError{Message: AccessDeniedMessage}
	}

	var out signInResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode sign-in response: %w", err)
	}

	expiresIn, _ := strconv.Atoi(out.ExpiresIn)
	c.logger.Info("admin signed in", "user_id", out.LocalID)

	return &models.SignInResult{
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		Email:        out.Email,
		UserID:       out.LocalID,
		ExpiresIn:    expiresIn,
	}, nil
}
