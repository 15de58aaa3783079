package services

import (
	"context"

	"atelier/internal/domain/models"
)

// SignInService exchanges admin credentials for identity provider tokens
type SignInService interface {
	SignIn(ctx context.Context, email, password string) (*models.SignInResult, error)
}
