package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
	"github.com/uniexpo/fair-system/storage"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	List(ctx context.Context, roleFilter *models.RoleID) ([]*models.User, error)
	Update(ctx context.Context, id int, input UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id int) error
	UploadPhoto(ctx context.Context, userID int, contentType string, reader io.Reader) (*models.User, error)
}

type CreateUserInput struct {
	Name         string        `json:"nome" validate:"required,min=3,max=120"`
	Email        string        `json:"email" validate:"required,email"`
	Password     string        `json:"password" validate:"required,min=8"`
	RoleID       models.RoleID `json:"id_tipo_usuario" validate:"required"`
	Registration string        `json:"id_matricula" validate:"required"`
	CPF          *string       `json:"cpf,omitempty"`
	Phone        *string       `json:"telefone,omitempty"`
	Institution  *string       `json:"instituicao,omitempty"`
	Course       *string       `json:"curso,omitempty"`
}

type UpdateUserInput struct {
	Name         *string        `json:"nome,omitempty" validate:"omitempty,min=3,max=120"`
	Email        *string        `json:"email,omitempty" validate:"omitempty,email"`
	RoleID       *models.RoleID `json:"id_tipo_usuario,omitempty"`
	Registration *string        `json:"id_matricula,omitempty"`
	CPF          *string        `json:"cpf,omitempty"`
	Phone        *string        `json:"telefone,omitempty"`
	Institution  *string        `json:"instituicao,omitempty"`
	Course       *string        `json:"curso,omitempty"`
}

type userService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader, logger *slog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		uploader: uploader,
		logger:   logger,
	}
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if !input.RoleID.Valid() {
		return nil, fmt.Errorf("%w: unknown role %d", ErrValidationFailed, input.RoleID)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashed),
		RoleID:       input.RoleID,
		Registration: input.Registration,
		CPF:          input.CPF,
		Phone:        input.Phone,
		Institution:  input.Institution,
		Course:       input.Course,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.populateUserDetails(user)
	return user, nil
}

func (s *userService) List(ctx context.Context, roleFilter *models.RoleID) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx, roleFilter)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		s.populateUserDetails(u)
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, id int, input UpdateUserInput) (*models.User, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.RoleID != nil {
		if !input.RoleID.Valid() {
			return nil, fmt.Errorf("%w: unknown role %d", ErrValidationFailed, *input.RoleID)
		}
		user.RoleID = *input.RoleID
	}
	if input.Registration != nil {
		user.Registration = *input.Registration
	}
	if input.CPF != nil {
		user.CPF = input.CPF
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Institution != nil {
		user.Institution = input.Institution
	}
	if input.Course != nil {
		user.Course = input.Course
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.populateUserDetails(user)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	if user.PhotoKey != nil && *user.PhotoKey != "" && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *user.PhotoKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete user photo from storage",
				slog.Int("user_id", id), slog.String("key", *user.PhotoKey), slog.Any("error", err))
		}
	}
	return nil
}

func (s *userService) UploadPhoto(ctx context.Context, userID int, contentType string, reader io.Reader) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ext, err := imageExtension(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
	}

	key := fmt.Sprintf("fotos/%d/%s%s", userID, uuid.NewString(), ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload photo: %w", err)
	}

	oldKey := user.PhotoKey
	if err := s.userRepo.UpdatePhotoKey(ctx, userID, &key); err != nil {
		return nil, err
	}
	if oldKey != nil && *oldKey != "" {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous photo",
				slog.Int("user_id", userID), slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	user.PhotoKey = &key
	s.populateUserDetails(user)
	return user, nil
}

func (s *userService) populateUserDetails(user *models.User) {
	if user == nil {
		return
	}
	user.PasswordHash = ""
	if user.PhotoKey != nil && *user.PhotoKey != "" && s.uploader != nil {
		url := s.uploader.GetPublicURL(*user.PhotoKey)
		if url != "" {
			user.PhotoURL = &url
		}
	}
}

func imageExtension(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	}
	parts := strings.Split(contentType, "/")
	if len(parts) == 2 && parts[0] == "image" && parts[1] != "" {
		return "." + strings.Split(parts[1], "+")[0], nil
	}
	return "", fmt.Errorf("could not determine file extension from content type %q", contentType)
}
