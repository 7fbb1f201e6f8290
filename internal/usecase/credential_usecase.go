// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"quill/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      entity.Role // Optional. Empty means entity.RoleUser.
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// UserSummary is the public projection of a user. It never carries the password hash.
type UserSummary struct {
	ID        int64       `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Role      entity.Role `json:"role"`
}

// NewUserSummary projects a user into its public fields.
func NewUserSummary(user *entity.User) UserSummary {
	if user == nil {
		return UserSummary{}
	}

	return UserSummary{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
	}
}

// AuthOutput is returned by both registration and login.
type AuthOutput struct {
	AccessToken string      `json:"accessToken"`
	User        UserSummary `json:"user"`
}

// CredentialUsecase authenticates users and issues their access tokens.
type CredentialUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
}
