package impl

import (
	"context"
	"strings"
	"testing"

	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/errors"
	"quill/internal/infra/metrics"
	"quill/internal/usecase"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aliceInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		FirstName: "Alice",
		LastName:  "Liddell",
		Email:     "alice@x.com",
		Password:  "wonderland",
	}
}

func TestCredentialService_Register(t *testing.T) {
	deps := newTestDeps()
	srv := deps.credentialService()

	out, err := srv.Register(context.Background(), aliceInput())
	require.NoError(t, err)

	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, usecase.UserSummary{
		ID:        1,
		FirstName: "Alice",
		LastName:  "Liddell",
		Email:     "alice@x.com",
		Role:      entity.RoleUser,
	}, out.User)
	require.Len(t, deps.tokens.issued, 1)
	assert.Equal(t, entity.SessionClaim{UserID: 1, Role: entity.RoleUser}, deps.tokens.issued[0])

	stored, ok := deps.store.user(1)
	require.True(t, ok)
	assert.Equal(t, "hashed:wonderland", stored.PasswordHash)
	assert.False(t, stored.IsDeleted)
}

func TestCredentialService_RegisterAdmin(t *testing.T) {
	deps := newTestDeps()
	input := aliceInput()
	input.Role = entity.RoleAdmin

	out, err := deps.credentialService().Register(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, entity.RoleAdmin, out.User.Role)
	assert.Equal(t, entity.RoleAdmin, deps.tokens.issued[0].Role)
}

func TestCredentialService_RegisterDuplicateEmail(t *testing.T) {
	deps := newTestDeps()
	srv := deps.credentialService()

	_, err := srv.Register(context.Background(), aliceInput())
	require.NoError(t, err)

	_, err = srv.Register(context.Background(), aliceInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)
	assert.Equal(t, domainerrors.KindConflict, domainerrors.KindOf(err))

	// Emails are compared after trimming and lower-casing.
	input := aliceInput()
	input.Email = "  ALICE@x.com "
	_, err = srv.Register(context.Background(), input)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)
}

func TestCredentialService_RegisterEmailOfDeletedUser(t *testing.T) {
	deps := newTestDeps()
	deps.store.seedUser(entity.User{FirstName: "Old", LastName: "Alice", Email: "alice@x.com", IsDeleted: true})

	_, err := deps.credentialService().Register(context.Background(), aliceInput())

	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)
}

func TestCredentialService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*usecase.RegisterInput)
	}{
		{"missing first name", func(in *usecase.RegisterInput) { in.FirstName = "" }},
		{"blank last name", func(in *usecase.RegisterInput) { in.LastName = "   " }},
		{"missing email", func(in *usecase.RegisterInput) { in.Email = "" }},
		{"missing password", func(in *usecase.RegisterInput) { in.Password = "" }},
		{"unknown role", func(in *usecase.RegisterInput) { in.Role = "merchant" }},
		{"password over 72 bytes", func(in *usecase.RegisterInput) { in.Password = strings.Repeat("é", 40) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps()
			input := aliceInput()
			tt.mutate(input)

			_, err := deps.credentialService().Register(context.Background(), input)

			require.Error(t, err)
			assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))
			assert.Zero(t, deps.txManager.calls)
			assert.Empty(t, deps.tokens.issued)
		})
	}

	_, err := newTestDeps().credentialService().Register(context.Background(), nil)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCredentialService_RegisterHashFailure(t *testing.T) {
	deps := newTestDeps()
	deps.hasher.err = errors.New("bcrypt: password length exceeds 72 bytes")

	_, err := deps.credentialService().Register(context.Background(), aliceInput())

	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
	_, stored := deps.store.user(1)
	assert.False(t, stored)
}

func TestCredentialService_RegisterTokenFailure(t *testing.T) {
	deps := newTestDeps()
	deps.tokens.err = errors.New("signing failed")

	_, err := deps.credentialService().Register(context.Background(), aliceInput())

	assert.ErrorIs(t, err, domainerrors.ErrTokenIssueFailed)
	assert.Equal(t, domainerrors.KindInternal, domainerrors.KindOf(err))
}

func TestCredentialService_RegisterEmailsStayUnique(t *testing.T) {
	deps := newTestDeps()
	srv := deps.credentialService()

	emails := []string{"a@x.com", "b@x.com", "a@x.com", "c@x.com", "b@x.com"}
	for _, email := range emails {
		input := aliceInput()
		input.Email = email
		_, _ = srv.Register(context.Background(), input)
	}

	users, err := deps.userRepo.ListOrderedByID(context.Background())
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, user := range users {
		assert.False(t, seen[user.Email], "duplicate email %s", user.Email)
		seen[user.Email] = true
	}
	assert.Len(t, users, 3)
}

func TestCredentialService_Login(t *testing.T) {
	deps := newTestDeps()
	srv := deps.credentialService()
	_, err := srv.Register(context.Background(), aliceInput())
	require.NoError(t, err)

	out, err := srv.Login(context.Background(), &usecase.LoginInput{Email: "alice@x.com", Password: "wonderland"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, int64(1), out.User.ID)
	assert.Equal(t, "alice@x.com", out.User.Email)
}

func TestCredentialService_LoginFailuresAreIndistinguishable(t *testing.T) {
	deps := newTestDeps()
	srv := deps.credentialService()
	_, err := srv.Register(context.Background(), aliceInput())
	require.NoError(t, err)
	deps.store.seedUser(entity.User{FirstName: "Gone", LastName: "User", Email: "gone@x.com", PasswordHash: "hashed:secret123", IsDeleted: true})

	_, wrongPassword := srv.Login(context.Background(), &usecase.LoginInput{Email: "alice@x.com", Password: "not-it"})
	_, unknownEmail := srv.Login(context.Background(), &usecase.LoginInput{Email: "bob@x.com", Password: "wonderland"})
	_, deletedUser := srv.Login(context.Background(), &usecase.LoginInput{Email: "gone@x.com", Password: "secret123"})

	for _, err := range []error{wrongPassword, unknownEmail, deletedUser} {
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		assert.Equal(t, domainerrors.KindUnauthenticated, domainerrors.KindOf(err))
	}
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.Equal(t, wrongPassword.Error(), deletedUser.Error())

	var appErr domainerrors.AppError
	require.True(t, errors.As(unknownEmail, &appErr))
	assert.Equal(t, "Invalid email or password", appErr.Message())
}

func TestCredentialService_LoginValidation(t *testing.T) {
	srv := newTestDeps().credentialService()

	for _, input := range []*usecase.LoginInput{nil, {Email: "alice@x.com"}, {Password: "wonderland"}} {
		_, err := srv.Login(context.Background(), input)
		assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))
	}
}

func TestCredentialService_RecordsAuthMetrics(t *testing.T) {
	srv := newTestDeps().credentialService()
	counter := func(operation, outcome string) float64 {
		return testutil.ToFloat64(metrics.AuthAttemptsTotal.WithLabelValues(operation, outcome))
	}

	registerOK := counter(metrics.OperationRegister, metrics.OutcomeSuccess)
	loginFailed := counter(metrics.OperationLogin, metrics.OutcomeFailure)

	_, err := srv.Register(context.Background(), aliceInput())
	require.NoError(t, err)
	_, err = srv.Login(context.Background(), &usecase.LoginInput{Email: "alice@x.com", Password: "nope"})
	require.Error(t, err)

	assert.InDelta(t, registerOK+1, counter(metrics.OperationRegister, metrics.OutcomeSuccess), 0)
	assert.InDelta(t, loginFailed+1, counter(metrics.OperationLogin, metrics.OutcomeFailure), 0)
}
