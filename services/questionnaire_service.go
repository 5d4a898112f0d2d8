package services

import (
	"context"

	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
)

type QuestionnaireService interface {
	Create(ctx context.Context, input QuestionnaireInput) (*models.Questionnaire, error)
	GetByID(ctx context.Context, id int) (*models.Questionnaire, error)
	ListByEvent(ctx context.Context, eventID int, activeOnly bool) ([]*models.Questionnaire, error)
	Update(ctx context.Context, id int, input QuestionnaireInput) (*models.Questionnaire, error)
	Delete(ctx context.Context, id int) error

	AddQuestion(ctx context.Context, questionnaireID int, input QuestionInput) (*models.Question, error)
	UpdateQuestion(ctx context.Context, questionID int, input QuestionInput) (*models.Question, error)
	DeleteQuestion(ctx context.Context, questionID int) error
}

type QuestionnaireInput struct {
	EventID int    `json:"id_evento" validate:"required,min=1"`
	Title   string `json:"titulo" validate:"required,min=3,max=150"`
	Active  bool   `json:"ativo"`
}

type QuestionInput struct {
	Criterion string `json:"criterio" validate:"required,min=3,max=100"`
	Text      string `json:"texto_pergunta" validate:"required,min=5"`
	Order     int    `json:"ordem" validate:"min=0"`
}

type questionnaireService struct {
	repo repositories.QuestionnaireRepository
}

func NewQuestionnaireService(repo repositories.QuestionnaireRepository) QuestionnaireService {
	return &questionnaireService{repo: repo}
}

func (s *questionnaireService) Create(ctx context.Context, input QuestionnaireInput) (*models.Questionnaire, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	q := &models.Questionnaire{
		EventID: input.EventID,
		Title:   input.Title,
		Active:  input.Active,
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *questionnaireService) GetByID(ctx context.Context, id int) (*models.Questionnaire, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	questions, err := s.repo.ListQuestions(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	q.Questions = questions
	return q, nil
}

func (s *questionnaireService) ListByEvent(ctx context.Context, eventID int, activeOnly bool) ([]*models.Questionnaire, error) {
	return s.repo.ListByEvent(ctx, eventID, activeOnly)
}

func (s *questionnaireService) Update(ctx context.Context, id int, input QuestionnaireInput) (*models.Questionnaire, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	q.Title = input.Title
	q.Active = input.Active
	if err := s.repo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *questionnaireService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *questionnaireService) AddQuestion(ctx context.Context, questionnaireID int, input QuestionInput) (*models.Question, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, questionnaireID); err != nil {
		return nil, err
	}
	question := &models.Question{
		QuestionnaireID: questionnaireID,
		Criterion:       input.Criterion,
		Text:            input.Text,
		Order:           input.Order,
	}
	if err := s.repo.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *questionnaireService) UpdateQuestion(ctx context.Context, questionID int, input QuestionInput) (*models.Question, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	question, err := s.repo.GetQuestionByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	question.Criterion = input.Criterion
	question.Text = input.Text
	question.Order = input.Order
	if err := s.repo.UpdateQuestion(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *questionnaireService) DeleteQuestion(ctx context.Context, questionID int) error {
	return s.repo.DeleteQuestion(ctx, questionID)
}
