package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/uniexpo/fair-system/live"
	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
)

var (
	ErrEventInvalidWindow   = errors.New("submission window start must be before its end")
	ErrEventInvalidTeamSize = errors.New("event team size limits are invalid")
)

type EventService interface {
	Create(ctx context.Context, input EventInput) (*models.Event, error)
	GetByID(ctx context.Context, id int) (*models.Event, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Event, error)
	Update(ctx context.Context, id int, input EventInput) (*models.Event, error)
	Delete(ctx context.Context, id int) error

	// RunAutoDeactivation periodically closes events whose submission window
	// expired. Blocks until ctx is done.
	RunAutoDeactivation(ctx context.Context, interval time.Duration)
}

type EventInput struct {
	Name            string     `json:"nome" validate:"required,min=3,max=150"`
	Active          bool       `json:"ativo"`
	EventDate       *time.Time `json:"data_evento,omitempty"`
	SubmissionStart *time.Time `json:"inicio_submissao,omitempty"`
	SubmissionEnd   *time.Time `json:"fim_submissao,omitempty"`
	MinTeamSize     int        `json:"min_pessoas" validate:"required,min=1"`
	MaxTeamSize     int        `json:"max_pessoas" validate:"required,min=1"`
}

type eventService struct {
	eventRepo repositories.EventRepository
	hub       *live.Hub
	logger    *slog.Logger
}

func NewEventService(eventRepo repositories.EventRepository, hub *live.Hub, logger *slog.Logger) EventService {
	return &eventService{
		eventRepo: eventRepo,
		hub:       hub,
		logger:    logger,
	}
}

func (s *eventService) validateInput(input EventInput) error {
	if err := validateStruct(input); err != nil {
		return err
	}
	if input.MaxTeamSize < input.MinTeamSize {
		return ErrEventInvalidTeamSize
	}
	if input.SubmissionStart != nil && input.SubmissionEnd != nil &&
		!input.SubmissionStart.Before(*input.SubmissionEnd) {
		return ErrEventInvalidWindow
	}
	return nil
}

func (s *eventService) Create(ctx context.Context, input EventInput) (*models.Event, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:            input.Name,
		Active:          input.Active,
		EventDate:       input.EventDate,
		SubmissionStart: input.SubmissionStart,
		SubmissionEnd:   input.SubmissionEnd,
		MinTeamSize:     input.MinTeamSize,
		MaxTeamSize:     input.MaxTeamSize,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id int) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventService) List(ctx context.Context, activeOnly bool) ([]*models.Event, error) {
	return s.eventRepo.List(ctx, activeOnly)
}

func (s *eventService) Update(ctx context.Context, id int, input EventInput) (*models.Event, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.Name = input.Name
	event.Active = input.Active
	event.EventDate = input.EventDate
	event.SubmissionStart = input.SubmissionStart
	event.SubmissionEnd = input.SubmissionEnd
	event.MinTeamSize = input.MinTeamSize
	event.MaxTeamSize = input.MaxTeamSize

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id int) error {
	return s.eventRepo.Delete(ctx, id)
}

func (s *eventService) RunAutoDeactivation(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			ids, err := s.eventRepo.DeactivateExpired(ctx, now)
			if err != nil {
				s.logger.ErrorContext(ctx, "auto deactivation sweep failed", slog.Any("error", err))
				continue
			}
			for _, id := range ids {
				s.logger.InfoContext(ctx, "event submission window closed", slog.Int("event_id", id))
				if s.hub != nil {
					s.hub.BroadcastToEvent(id, live.Message{
						Type:    live.MessageEventClosed,
						Payload: map[string]int{"id_evento": id},
					})
				}
			}
		}
	}
}
