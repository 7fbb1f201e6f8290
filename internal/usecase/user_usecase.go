package usecase

import (
	"context"

	"quill/internal/domain/entity"
)

// UpdateUserInput is a partial update. Nil fields are left unchanged.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string // Re-hashed before it is stored.
}

// UserUsecase manages user accounts after registration.
// Every operation except ListAll is allowed for the account owner or an admin.
type UserUsecase interface {
	ListAll(ctx context.Context, claim entity.SessionClaim) ([]UserSummary, error)
	GetByID(ctx context.Context, claim entity.SessionClaim, id int64) (*UserSummary, error)
	UpdateByID(ctx context.Context, claim entity.SessionClaim, id int64, input *UpdateUserInput) error
	SoftDelete(ctx context.Context, claim entity.SessionClaim, id int64) error
}
