package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
)

// VerifierConfig names the identity provider whose ID tokens are accepted
type VerifierConfig struct {
	JWKSURL  string
	Issuer   string
	Audience string
}

// IdentityJWTVerifier validates identity provider ID tokens against a JWKS.
type IdentityJWTVerifier struct {
	keyfunc  jwt.Keyfunc
	issuer   string
	audience string
	logger   *slog.Logger
}

// NewJWTVerifier creates a verifier that fetches public keys from the JWKS endpoint.
// keyfunc v3 caches the keys and refreshes them based on HTTP cache headers.
func NewJWTVerifier(ctx context.Context, cfg VerifierConfig, logger *slog.Logger) (JWTVerifier, error) {
	if cfg.JWKSURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{cfg.JWKSURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("JWT verifier initialized", "jwks_url", cfg.JWKSURL, "issuer", cfg.Issuer)

	return NewJWTVerifierWithKeyfunc(jwks.Keyfunc, cfg.Issuer, cfg.Audience, logger), nil
}

// NewJWTVerifierWithKeyfunc builds a verifier around an existing key lookup.
// Empty issuer or audience disables that check.
func NewJWTVerifierWithKeyfunc(kf jwt.Keyfunc, issuer, audience string, logger *slog.Logger) *IdentityJWTVerifier {
	return &IdentityJWTVerifier{
		keyfunc:  kf,
		issuer:   issuer,
		audience: audience,
		logger:   logger,
	}
}

// VerifyToken validates a JWT token and extracts identity claims.
func (v *IdentityJWTVerifier) VerifyToken(tokenString string) (*models.IdentityClaims, error) {
	opts := []jwt.ParserOption{
		// Prevent algorithm confusion attacks
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.IdentityClaims{}, v.keyfunc, opts...)
	if err != nil {
		v.logger.Debug("token rejected", "error", err.Error())
		return nil, domain.ErrUnauthorized
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.IdentityClaims)
	if !ok {
		v.logger.Error("Failed to extract claims from token")
		return nil, domain.ErrUnauthorized
	}

	if claims.Subject == "" {
		v.logger.Debug("Token missing subject claim")
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}

// Close is a no-op; keyfunc v3 manages its own refresh goroutine.
func (v *IdentityJWTVerifier) Close() error {
	v.logger.Info("JWT verifier closed")
	return nil
}
