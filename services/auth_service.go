package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"

	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
	ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error
	// ResetPassword replaces the user's password with a generated temporary
	// one and emails it. The caller never learns whether the email exists.
	ResetPassword(ctx context.Context, email string) error
}

type RegisterInput struct {
	Name         string  `json:"nome" validate:"required,min=3,max=120"`
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=8"`
	Registration string  `json:"id_matricula" validate:"required"`
	CPF          *string `json:"cpf,omitempty"`
	Phone        *string `json:"telefone,omitempty"`
	Institution  *string `json:"instituicao,omitempty"`
	Course       *string `json:"curso,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authService struct {
	userRepo repositories.UserRepository
	email    *EmailService
	logger   *slog.Logger
}

func NewAuthService(userRepo repositories.UserRepository, email *EmailService, logger *slog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		email:    email,
		logger:   logger,
	}
}

// Register creates a student account. Accounts with other roles are created
// by administrators through the user service.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		RoleID:       models.RoleStudent,
		Registration: input.Registration,
		CPF:          input.CPF,
		Phone:        input.Phone,
		Institution:  input.Institution,
		Course:       input.Course,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrAuthEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.email != nil {
		if err := s.email.SendWelcomeEmail(user.Email, user.Name); err != nil {
			s.logger.WarnContext(ctx, "failed to send welcome email",
				slog.Int("user_id", user.ID), slog.Any("error", err))
		}
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must have at least 8 characters", ErrValidationFailed)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrAuthInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, string(hashed)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Silent on unknown emails.
			return nil
		}
		return fmt.Errorf("failed to find user by email: %w", err)
	}

	tempPassword := generateTemporaryPassword(12)
	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash temporary password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, user.ID, string(hashed)); err != nil {
		return fmt.Errorf("failed to store temporary password: %w", err)
	}

	if s.email != nil {
		if err := s.email.SendTemporaryPasswordEmail(user.Email, user.Name, tempPassword); err != nil {
			s.logger.ErrorContext(ctx, "failed to send temporary password email",
				slog.Int("user_id", user.ID), slog.Any("error", err))
			return fmt.Errorf("failed to send temporary password email: %w", err)
		}
	}
	return nil
}

func generateTemporaryPassword(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	randomBytes := make([]byte, length)
	if _, err := rand.Read(randomBytes); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	b := make([]byte, length)
	for i, rb := range randomBytes {
		b[i] = charset[int(rb)%len(charset)]
	}
	return string(b)
}
