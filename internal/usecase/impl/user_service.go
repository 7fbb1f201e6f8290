package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "quill/internal/delivery/context"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/policy"
	"quill/internal/domain/repository"
	"quill/internal/domain/service"
	"quill/internal/errors"
	"quill/internal/usecase"

	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListAll returns every active user. Admin only.
func (srv *userService) ListAll(ctx context.Context, claim entity.SessionClaim) ([]usecase.UserSummary, error) {
	if err := policy.RequireRole(claim, entity.RoleAdmin); err != nil {
		srv.log(ctx).Warn("Non-admin attempted to list users", slog.Int64("userID", claim.UserID))

		return nil, err
	}

	users, err := srv.userRepo.ListOrderedByID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	summaries := make([]usecase.UserSummary, 0, len(users))
	for _, user := range users {
		if !user.IsActive() {
			continue
		}
		summaries = append(summaries, usecase.NewUserSummary(user))
	}

	return summaries, nil
}

// GetByID returns the public projection of an active user.
func (srv *userService) GetByID(ctx context.Context, claim entity.SessionClaim, id int64) (*usecase.UserSummary, error) {
	if err := policy.RequireOwnerOrAdmin(claim, id); err != nil {
		return nil, err
	}

	user, err := findActiveUser(ctx, srv.userRepo, id)
	if err != nil {
		return nil, err
	}

	summary := usecase.NewUserSummary(user)

	return &summary, nil
}

// UpdateByID applies a partial profile update. A new password is hashed before it is stored.
func (srv *userService) UpdateByID(ctx context.Context, claim entity.SessionClaim, id int64, input *usecase.UpdateUserInput) error {
	if err := policy.RequireOwnerOrAdmin(claim, id); err != nil {
		return err
	}
	if err := validateUpdateUserInput(input); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := findActiveUser(ctx, userRepo, id)
		if err != nil {
			return err
		}

		if err := srv.applyUserPatch(ctx, userRepo, user, input); err != nil {
			return err
		}

		return errors.Wrap(userRepo.Update(ctx, user), "failed to update user")
	})
	if err != nil {
		return errors.Wrapf(err, "update user %d", id)
	}

	srv.log(ctx).Info("User updated", slog.Int64("userID", id), slog.Int64("by", claim.UserID))

	return nil
}

func (srv *userService) applyUserPatch(ctx context.Context, userRepo repository.UserRepository, user *entity.User, input *usecase.UpdateUserInput) error {
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email != user.Email {
			existing, err := userRepo.FindByEmail(ctx, email)
			if err == nil && existing.ID != user.ID {
				return errors.WithStack(domainerrors.ErrEmailAlreadyExists)
			}
			if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(err, "failed to check existing email")
			}
			user.Email = email
		}
	}

	if input.Password != nil {
		hash, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}
		user.PasswordHash = hash
	}

	return nil
}

// SoftDelete marks the account deleted. Deleting an already deleted account fails NotFound.
func (srv *userService) SoftDelete(ctx context.Context, claim entity.SessionClaim, id int64) error {
	if err := policy.RequireOwnerOrAdmin(claim, id); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := findActiveUser(ctx, userRepo, id)
		if err != nil {
			return err
		}

		user.IsDeleted = true

		return errors.Wrap(userRepo.Update(ctx, user), "failed to mark user deleted")
	})
	if err != nil {
		return errors.Wrapf(err, "soft delete user %d", id)
	}

	srv.log(ctx).Info("User soft-deleted", slog.Int64("userID", id), slog.Int64("by", claim.UserID))

	return nil
}

// findActiveUser maps both a missing and a soft-deleted user to ErrUserNotFound.
func findActiveUser(ctx context.Context, userRepo repository.UserRepository, id int64) (*entity.User, error) {
	user, err := userRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.WithStack(domainerrors.ErrUserNotFound)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}
	if !user.IsActive() {
		return nil, errors.WithStack(domainerrors.ErrUserNotFound)
	}

	return user, nil
}

func validateUpdateUserInput(input *usecase.UpdateUserInput) error {
	if input == nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("request body is required"))
	}

	fields := []struct {
		name  string
		value *string
	}{
		{"firstName", input.FirstName},
		{"lastName", input.LastName},
		{"email", input.Email},
		{"password", input.Password},
	}
	for _, field := range fields {
		if field.value != nil && strings.TrimSpace(*field.value) == "" {
			return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(field.name + " must not be empty"))
		}
	}
	if input.Password != nil {
		return checkPasswordLength(*input.Password)
	}

	return nil
}
