package models

import "github.com/golang-jwt/jwt/v5"

// IdentityClaims is the ID token payload issued by the identity provider
// (Firebase Auth style securetoken tokens).
type IdentityClaims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name,omitempty"`
	AuthTime      int64  `json:"auth_time,omitempty"`
	Firebase      struct {
		SignInProvider string `json:"sign_in_provider"`
	} `json:"firebase"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *IdentityClaims) GetUserID() string {
	return c.Subject
}

// SignInResult is returned by a successful email/password sign-in
type SignInResult struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	Email        string `json:"email"`
	UserID       string `json:"user_id"`
	ExpiresIn    int    `json:"expires_in"`
}
