// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "quill/internal/delivery/context"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/domain/service"
	"quill/internal/errors"
	"quill/internal/infra/metrics"
	"quill/internal/usecase"

	"go.uber.org/fx"
)

// credentialService implements the CredentialUsecase interface.
type credentialService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// CredentialServiceParams holds dependencies for CredentialService, injected by Fx.
type CredentialServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewCredentialService is the constructor for credentialService.
func NewCredentialService(params CredentialServiceParams) usecase.CredentialUsecase {
	return &credentialService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *credentialService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an account and signs the caller in.
func (srv *credentialService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	output, err := srv.register(ctx, input)
	metrics.RecordAuthAttempt(metrics.OperationRegister, err)

	return output, err
}

func (srv *credentialService) register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	email := normalizeEmail(input.Email)
	role := entity.RoleOrDefault(input.Role)
	srv.log(ctx).Info("Starting registration", slog.String("email", email), slog.Any("role", role))

	var created *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// Deleted accounts keep their email, so this lookup covers them too.
		_, err := userRepo.FindByEmail(ctx, email)
		if err == nil {
			return errors.Wrap(domainerrors.ErrEmailAlreadyExists, "register")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check existing email")
		}

		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

			return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}

		user := &entity.User{
			FirstName:    strings.TrimSpace(input.FirstName),
			LastName:     strings.TrimSpace(input.LastName),
			Email:        email,
			PasswordHash: hash,
			Role:         role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}
		created = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	output, err := srv.signIn(created)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Int64("userID", created.ID))

	return output, nil
}

// Login verifies credentials. Unknown email, deleted account and wrong password
// all return the same ErrInvalidCredentials.
func (srv *credentialService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	output, err := srv.login(ctx, input)
	metrics.RecordAuthAttempt(metrics.OperationLogin, err)

	return output, err
}

func (srv *credentialService) login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	if input == nil || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("email and password are required"))
	}

	email := normalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		srv.log(ctx).Warn("Login for unknown email", slog.String("email", email))

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	case err != nil:
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !user.IsActive() {
		srv.log(ctx).Warn("Login for deleted account", slog.Int64("userID", user.ID))

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login password mismatch", slog.Int64("userID", user.ID))

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	output, err := srv.signIn(user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User logged in", slog.Int64("userID", user.ID))

	return output, nil
}

func (srv *credentialService) signIn(user *entity.User) (*usecase.AuthOutput, error) {
	token, err := srv.tokenService.Issue(entity.SessionClaim{UserID: user.ID, Role: user.Role})
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	return &usecase.AuthOutput{
		AccessToken: token,
		User:        usecase.NewUserSummary(user),
	}, nil
}

func validateRegisterInput(input *usecase.RegisterInput) error {
	if input == nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("request body is required"))
	}

	var missing []string
	if strings.TrimSpace(input.FirstName) == "" {
		missing = append(missing, "firstName")
	}
	if strings.TrimSpace(input.LastName) == "" {
		missing = append(missing, "lastName")
	}
	if strings.TrimSpace(input.Email) == "" {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("missing required fields: " + strings.Join(missing, ", ")))
	}

	if err := checkPasswordLength(input.Password); err != nil {
		return err
	}

	if input.Role != "" && !input.Role.IsValid() {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("role must be user or admin"))
	}

	return nil
}

// bcrypt rejects inputs longer than 72 bytes, whatever their rune count.
const maxPasswordBytes = 72

func checkPasswordLength(password string) error {
	if len(password) > maxPasswordBytes {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("password must be at most 72 bytes"))
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
