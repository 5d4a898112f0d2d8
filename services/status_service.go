package services

import (
	"context"

	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
)

type StatusService interface {
	Create(ctx context.Context, input StatusInput) (*models.Status, error)
	GetByID(ctx context.Context, id int) (*models.Status, error)
	List(ctx context.Context) ([]*models.Status, error)
	Update(ctx context.Context, id int, input StatusInput) (*models.Status, error)
	Delete(ctx context.Context, id int) error
}

type StatusInput struct {
	Name string `json:"situacao" validate:"required,min=3,max=50"`
}

type statusService struct {
	statusRepo repositories.StatusRepository
}

func NewStatusService(statusRepo repositories.StatusRepository) StatusService {
	return &statusService{statusRepo: statusRepo}
}

func (s *statusService) Create(ctx context.Context, input StatusInput) (*models.Status, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	status := &models.Status{Name: input.Name}
	if err := s.statusRepo.Create(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *statusService) GetByID(ctx context.Context, id int) (*models.Status, error) {
	return s.statusRepo.GetByID(ctx, id)
}

func (s *statusService) List(ctx context.Context) ([]*models.Status, error) {
	return s.statusRepo.List(ctx)
}

func (s *statusService) Update(ctx context.Context, id int, input StatusInput) (*models.Status, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	status, err := s.statusRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	status.Name = input.Name
	if err := s.statusRepo.Update(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *statusService) Delete(ctx context.Context, id int) error {
	return s.statusRepo.Delete(ctx, id)
}
