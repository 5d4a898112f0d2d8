package services

import (
	"context"

	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
)

type CommentService interface {
	Create(ctx context.Context, authorID int, input CommentInput) (*models.Comment, error)
	ListByRecord(ctx context.Context, recordID int) ([]*models.Comment, error)
	Update(ctx context.Context, id int, actorID int, actorRole models.RoleID, text string) (*models.Comment, error)
	Delete(ctx context.Context, id int, actorID int, actorRole models.RoleID) error
}

type CommentInput struct {
	RecordID int    `json:"id_registro" validate:"required,min=1"`
	Text     string `json:"comentario" validate:"required,min=1,max=2000"`
}

type commentService struct {
	commentRepo repositories.CommentRepository
}

func NewCommentService(commentRepo repositories.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

func (s *commentService) Create(ctx context.Context, authorID int, input CommentInput) (*models.Comment, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	comment := &models.Comment{
		RecordID: input.RecordID,
		AuthorID: authorID,
		Text:     input.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) ListByRecord(ctx context.Context, recordID int) ([]*models.Comment, error) {
	return s.commentRepo.ListByRecord(ctx, recordID)
}

func (s *commentService) Update(ctx context.Context, id int, actorID int, actorRole models.RoleID, text string) (*models.Comment, error) {
	if text == "" {
		return nil, ErrValidationFailed
	}
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && comment.AuthorID != actorID {
		return nil, ErrForbidden
	}
	comment.Text = text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, id int, actorID int, actorRole models.RoleID) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actorRole != models.RoleAdmin && comment.AuthorID != actorID {
		return ErrForbidden
	}
	return s.commentRepo.Delete(ctx, id)
}
