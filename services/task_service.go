package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
	"github.com/uniexpo/fair-system/storage"
)

type TaskService interface {
	Create(ctx context.Context, actorID int, actorRole models.RoleID, input CreateTaskInput) (*models.Task, error)
	GetByID(ctx context.Context, id int) (*models.Task, error)
	ListByProject(ctx context.Context, projectID int, statusID *int) ([]*models.Task, error)
	Update(ctx context.Context, id int, actorID int, actorRole models.RoleID, input UpdateTaskInput) (*models.Task, error)
	Delete(ctx context.Context, id int, actorID int, actorRole models.RoleID) error

	CreateRecord(ctx context.Context, actorID int, actorRole models.RoleID, input CreateTaskRecordInput) (*models.TaskRecord, error)
	GetRecordByID(ctx context.Context, id int) (*models.TaskRecord, error)
	ListRecords(ctx context.Context, taskID int) ([]*models.TaskRecord, error)
	UpdateRecord(ctx context.Context, id int, actorID int, actorRole models.RoleID, input UpdateTaskRecordInput) (*models.TaskRecord, error)
	DeleteRecord(ctx context.Context, id int, actorID int, actorRole models.RoleID) error
	UploadRecordFile(ctx context.Context, recordID int, actorID int, actorRole models.RoleID, contentType string, reader io.Reader) (*models.TaskRecord, error)
}

type CreateTaskInput struct {
	ProjectID    int        `json:"id_projeto" validate:"required,min=1"`
	Description  string     `json:"descricao" validate:"required,min=3,max=200"`
	Detail       *string    `json:"detalhe,omitempty"`
	StatusID     int        `json:"id_situacao" validate:"required,min=1"`
	PlannedStart *time.Time `json:"data_inicio_prevista,omitempty"`
	PlannedEnd   *time.Time `json:"data_fim_prevista,omitempty"`
}

type UpdateTaskInput struct {
	Description  *string    `json:"descricao,omitempty" validate:"omitempty,min=3,max=200"`
	Detail       *string    `json:"detalhe,omitempty"`
	StatusID     *int       `json:"id_situacao,omitempty"`
	PlannedStart *time.Time `json:"data_inicio_prevista,omitempty"`
	PlannedEnd   *time.Time `json:"data_fim_prevista,omitempty"`
	CompletedAt  *time.Time `json:"data_conclusao,omitempty"`
}

type CreateTaskRecordInput struct {
	TaskID     int       `json:"id_tarefa" validate:"required,min=1"`
	Activity   string    `json:"descricao_atividade" validate:"required,min=3"`
	Result     *string   `json:"resultado,omitempty"`
	ExecutedAt time.Time `json:"data_execucao" validate:"required"`
}

type UpdateTaskRecordInput struct {
	Activity   *string    `json:"descricao_atividade,omitempty" validate:"omitempty,min=3"`
	Result     *string    `json:"resultado,omitempty"`
	ExecutedAt *time.Time `json:"data_execucao,omitempty"`
}

type taskService struct {
	taskRepo    repositories.TaskRepository
	recordRepo  repositories.TaskRecordRepository
	projectRepo repositories.ProjectRepository
	teamRepo    repositories.TeamRepository
	uploader    storage.FileUploader
	logger      *slog.Logger
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	recordRepo repositories.TaskRecordRepository,
	projectRepo repositories.ProjectRepository,
	teamRepo repositories.TeamRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TaskService {
	return &taskService{
		taskRepo:    taskRepo,
		recordRepo:  recordRepo,
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
		uploader:    uploader,
		logger:      logger,
	}
}

// ensureProjectParticipant allows the project owner, any team member and
// administrators through.
func (s *taskService) ensureProjectParticipant(ctx context.Context, projectID int, actorID int, actorRole models.RoleID) error {
	if actorRole == models.RoleAdmin {
		return nil
	}
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.OwnerID == actorID {
		return nil
	}
	team, err := s.teamRepo.GetByProject(ctx, projectID)
	if err != nil {
		return ErrForbidden
	}
	isMember, err := s.teamRepo.IsMember(ctx, team.ID, actorID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrForbidden
	}
	return nil
}

func (s *taskService) Create(ctx context.Context, actorID int, actorRole models.RoleID, input CreateTaskInput) (*models.Task, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if err := s.ensureProjectParticipant(ctx, input.ProjectID, actorID, actorRole); err != nil {
		return nil, err
	}

	task := &models.Task{
		ProjectID:    input.ProjectID,
		Description:  input.Description,
		Detail:       input.Detail,
		StatusID:     input.StatusID,
		PlannedStart: input.PlannedStart,
		PlannedEnd:   input.PlannedEnd,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int) (*models.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

func (s *taskService) ListByProject(ctx context.Context, projectID int, statusID *int) ([]*models.Task, error) {
	return s.taskRepo.ListByProject(ctx, projectID, statusID)
}

func (s *taskService) Update(ctx context.Context, id int, actorID int, actorRole models.RoleID, input UpdateTaskInput) (*models.Task, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureProjectParticipant(ctx, task.ProjectID, actorID, actorRole); err != nil {
		return nil, err
	}

	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Detail != nil {
		task.Detail = input.Detail
	}
	if input.StatusID != nil {
		task.StatusID = *input.StatusID
	}
	if input.PlannedStart != nil {
		task.PlannedStart = input.PlannedStart
	}
	if input.PlannedEnd != nil {
		task.PlannedEnd = input.PlannedEnd
	}
	if input.CompletedAt != nil {
		task.CompletedAt = input.CompletedAt
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id int, actorID int, actorRole models.RoleID) error {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ensureProjectParticipant(ctx, task.ProjectID, actorID, actorRole); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, id)
}

func (s *taskService) CreateRecord(ctx context.Context, actorID int, actorRole models.RoleID, input CreateTaskRecordInput) (*models.TaskRecord, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureProjectParticipant(ctx, task.ProjectID, actorID, actorRole); err != nil {
		return nil, err
	}

	record := &models.TaskRecord{
		TaskID:        input.TaskID,
		Activity:      input.Activity,
		Result:        input.Result,
		ExecutedAt:    input.ExecutedAt,
		ResponsibleID: actorID,
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *taskService) GetRecordByID(ctx context.Context, id int) (*models.TaskRecord, error) {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.populateRecordFileURL(record)
	return record, nil
}

func (s *taskService) ListRecords(ctx context.Context, taskID int) ([]*models.TaskRecord, error) {
	records, err := s.recordRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		s.populateRecordFileURL(rec)
	}
	return records, nil
}

func (s *taskService) UpdateRecord(ctx context.Context, id int, actorID int, actorRole models.RoleID, input UpdateTaskRecordInput) (*models.TaskRecord, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && record.ResponsibleID != actorID {
		return nil, ErrForbidden
	}

	if input.Activity != nil {
		record.Activity = *input.Activity
	}
	if input.Result != nil {
		record.Result = input.Result
	}
	if input.ExecutedAt != nil {
		record.ExecutedAt = *input.ExecutedAt
	}

	if err := s.recordRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	s.populateRecordFileURL(record)
	return record, nil
}

func (s *taskService) DeleteRecord(ctx context.Context, id int, actorID int, actorRole models.RoleID) error {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actorRole != models.RoleAdmin && record.ResponsibleID != actorID {
		return ErrForbidden
	}
	if err := s.recordRepo.Delete(ctx, id); err != nil {
		return err
	}
	if record.FileKey != nil && *record.FileKey != "" && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *record.FileKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete record file from storage",
				slog.Int("record_id", id), slog.String("key", *record.FileKey), slog.Any("error", err))
		}
	}
	return nil
}

func (s *taskService) UploadRecordFile(ctx context.Context, recordID int, actorID int, actorRole models.RoleID, contentType string, reader io.Reader) (*models.TaskRecord, error) {
	record, err := s.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && record.ResponsibleID != actorID {
		return nil, ErrForbidden
	}

	ext, err := recordFileExtension(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
	}

	key := fmt.Sprintf("registros/%d/%s%s", record.TaskID, uuid.NewString(), ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload record file: %w", err)
	}

	oldKey := record.FileKey
	record.FileKey = &key
	if err := s.recordRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	if oldKey != nil && *oldKey != "" {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous record file",
				slog.Int("record_id", recordID), slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	s.populateRecordFileURL(record)
	return record, nil
}

func (s *taskService) populateRecordFileURL(record *models.TaskRecord) {
	if record == nil || record.FileKey == nil || *record.FileKey == "" || s.uploader == nil {
		return
	}
	url := s.uploader.GetPublicURL(*record.FileKey)
	if url != "" {
		record.FileURL = &url
	}
}

// recordFileExtension accepts documents and images as task deliverables.
func recordFileExtension(contentType string) (string, error) {
	switch contentType {
	case "application/pdf":
		return ".pdf", nil
	case "application/zip":
		return ".zip", nil
	case "text/plain":
		return ".txt", nil
	}
	return imageExtension(contentType)
}
