package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniexpo/fair-system/models"
)

func validRegisterInput(email string) RegisterInput {
	return RegisterInput{
		Name:         "Ana Souza",
		Email:        email,
		Password:     "segredo-forte",
		Registration: "2026010123",
	}
}

func TestRegisterCreatesStudent(t *testing.T) {
	users := newFakeUserRepo()
	service := NewAuthService(users, nil, testLogger())

	user, err := service.Register(context.Background(), validRegisterInput("ana@uni.edu"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.RoleID)
	assert.Empty(t, user.PasswordHash)

	stored, err := users.GetByEmail(context.Background(), "ana@uni.edu")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "segredo-forte", stored.PasswordHash)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	service := NewAuthService(users, nil, testLogger())

	_, err := service.Register(context.Background(), validRegisterInput("ana@uni.edu"))
	require.NoError(t, err)

	_, err = service.Register(context.Background(), validRegisterInput("ana@uni.edu"))
	assert.ErrorIs(t, err, ErrAuthEmailTaken)
}

func TestRegisterValidatesInput(t *testing.T) {
	service := NewAuthService(newFakeUserRepo(), nil, testLogger())

	input := validRegisterInput("ana@uni.edu")
	input.Password = "curta"
	_, err := service.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestLogin(t *testing.T) {
	users := newFakeUserRepo()
	service := NewAuthService(users, nil, testLogger())

	_, err := service.Register(context.Background(), validRegisterInput("ana@uni.edu"))
	require.NoError(t, err)

	user, err := service.Login(context.Background(), LoginInput{Email: "ana@uni.edu", Password: "segredo-forte"})
	require.NoError(t, err)
	assert.Equal(t, "ana@uni.edu", user.Email)
	assert.Empty(t, user.PasswordHash)

	_, err = service.Login(context.Background(), LoginInput{Email: "ana@uni.edu", Password: "errada-mesmo"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)

	// Unknown emails look exactly like a wrong password.
	_, err = service.Login(context.Background(), LoginInput{Email: "ninguem@uni.edu", Password: "segredo-forte"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	users := newFakeUserRepo()
	service := NewAuthService(users, nil, testLogger())

	user, err := service.Register(context.Background(), validRegisterInput("ana@uni.edu"))
	require.NoError(t, err)

	err = service.ChangePassword(context.Background(), user.ID, "segredo-forte", "curta")
	assert.ErrorIs(t, err, ErrValidationFailed)

	err = service.ChangePassword(context.Background(), user.ID, "palpite-errado", "novo-segredo-ok")
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)

	require.NoError(t, service.ChangePassword(context.Background(), user.ID, "segredo-forte", "novo-segredo-ok"))

	_, err = service.Login(context.Background(), LoginInput{Email: "ana@uni.edu", Password: "novo-segredo-ok"})
	assert.NoError(t, err)
}

func TestResetPasswordSilentOnUnknownEmail(t *testing.T) {
	service := NewAuthService(newFakeUserRepo(), nil, testLogger())

	assert.NoError(t, service.ResetPassword(context.Background(), "ninguem@uni.edu"))
}

func TestResetPasswordReplacesHash(t *testing.T) {
	users := newFakeUserRepo()
	service := NewAuthService(users, nil, testLogger())

	_, err := service.Register(context.Background(), validRegisterInput("ana@uni.edu"))
	require.NoError(t, err)
	before, err := users.GetByEmail(context.Background(), "ana@uni.edu")
	require.NoError(t, err)

	require.NoError(t, service.ResetPassword(context.Background(), "ana@uni.edu"))

	after, err := users.GetByEmail(context.Background(), "ana@uni.edu")
	require.NoError(t, err)
	assert.NotEqual(t, before.PasswordHash, after.PasswordHash)

	_, err = service.Login(context.Background(), LoginInput{Email: "ana@uni.edu", Password: "segredo-forte"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}
