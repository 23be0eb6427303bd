package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yasyapobeda/homework-bot/internal/models"
	"github.com/yasyapobeda/homework-bot/internal/repository"
	"github.com/yasyapobeda/homework-bot/internal/service/integration"
	"github.com/yasyapobeda/homework-bot/pkg/utils"
)

// FileRelay перекладывает файлы через Telegram: скачивает присланный документ
// и отправляет переименованную копию в архивный чат. file_id копии —
// постоянная ссылка на решение.
type FileRelay interface {
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
	UploadDocument(ctx context.Context, chatID int64, name string, data []byte) (string, error)
}

// EventPublisher публикует событие о принятом решении. Публикация
// best-effort: её отказ не откатывает сохранённую работу.
type EventPublisher interface {
	PublishHomeworkSubmitted(ctx context.Context, event *models.HomeworkSubmittedEvent) error
}

type SubmitRequest struct {
	ContainerID int64
	OwnerID     int64
	OwnerFIO    string
	// Текстовое решение: FileID пустой, Text заполнен. Файловое — наоборот.
	Text     string
	FileID   string
	FileName string
	FileSize int64
}

type HomeworkService interface {
	Submit(ctx context.Context, req *SubmitRequest) (*models.Homework, error)
	Get(ctx context.Context, id int64) (*models.HomeworkWithOwner, error)
	ListByContainer(ctx context.Context, containerID int64) ([]models.HomeworkWithOwner, error)
	GetByContainerAndOwner(ctx context.Context, containerID, ownerID int64) (*models.Homework, error)
	SetMark(ctx context.Context, id int64, mark int) error
}

type homeworkService struct {
	homeworkRepo  repository.HomeworkRepository
	containerRepo repository.ContainerRepository
	relay         FileRelay
	summarizer    integration.Summarizer
	publisher     EventPublisher
	archiveChatID int64
	fileSizeLimit int64
	textLimit     int
	location      *time.Location
	logger        zerolog.Logger
}

func NewHomeworkService(
	homeworkRepo repository.HomeworkRepository,
	containerRepo repository.ContainerRepository,
	relay FileRelay,
	summarizer integration.Summarizer,
	publisher EventPublisher,
	archiveChatID int64,
	fileSizeLimitMB int64,
	textLimit int,
	location *time.Location,
	logger zerolog.Logger,
) HomeworkService {
	return &homeworkService{
		homeworkRepo:  homeworkRepo,
		containerRepo: containerRepo,
		relay:         relay,
		summarizer:    summarizer,
		publisher:     publisher,
		archiveChatID: archiveChatID,
		fileSizeLimit: fileSizeLimitMB * 1024 * 1024,
		textLimit:     textLimit,
		location:      location,
		logger:        logger,
	}
}

// Submit принимает решение: валидирует, подбирает метку, перекладывает файл
// в архивный чат и сохраняет запись. Дедлайн не блокирует приём — он
// информационный, решение после срока остаётся видно преподавателю.
func (s *homeworkService) Submit(ctx context.Context, req *SubmitRequest) (*models.Homework, error) {
	container, err := s.containerRepo.GetByID(ctx, req.ContainerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get container: %w", err)
	}
	if container == nil {
		return nil, ErrContainerNotFound
	}
	if container.IsArchived {
		return nil, ErrContainerArchived
	}

	now := time.Now().In(s.location)

	homework := &models.Homework{
		CreatedAt:   now,
		OwnerID:     req.OwnerID,
		ContainerID: req.ContainerID,
	}

	if req.FileID == "" {
		text := req.Text
		homework.Text = &text
		homework.Name = utils.SubmissionName(req.OwnerFIO, now, "text", "txt")
	} else {
		if err := s.relayFile(ctx, req, homework, now); err != nil {
			return nil, err
		}
	}

	id, err := s.homeworkRepo.Create(ctx, homework)
	if err != nil {
		return nil, fmt.Errorf("failed to create homework: %w", err)
	}
	homework.ID = id

	s.logger.Info().
		Int64("homework_id", id).
		Int64("container_id", req.ContainerID).
		Int64("owner_id", req.OwnerID).
		Str("name", homework.Name).
		Msg("Homework submitted")

	s.publishSubmitted(ctx, homework)

	return homework, nil
}

func (s *homeworkService) relayFile(ctx context.Context, req *SubmitRequest, homework *models.Homework, now time.Time) error {
	if req.FileSize > s.fileSizeLimit {
		return ErrFileTooLarge
	}

	base, ext, ok := utils.SplitFileName(req.FileName)
	if !ok {
		return ErrBadFileName
	}

	data, err := s.relay.DownloadFile(ctx, req.FileID)
	if err != nil {
		return fmt.Errorf("failed to download file: %w", err)
	}

	label := s.label(ctx, data, base, ext)
	homework.Name = utils.SubmissionName(req.OwnerFIO, now, label, ext)

	fileID, err := s.relay.UploadDocument(ctx, s.archiveChatID, homework.Name, data)
	if err != nil {
		return fmt.Errorf("failed to upload document to archive: %w", err)
	}
	homework.FileID = fileID

	return nil
}

// label строит содержательную часть имени файла. Для PDF пробуем
// классификацию по тексту, любой сбой тихо откатывает на имя файла.
func (s *homeworkService) label(ctx context.Context, data []byte, base, ext string) string {
	if ext != "pdf" || s.summarizer == nil {
		return utils.SanitizeLabel(base)
	}

	text, err := extractPDFText(data)
	if err != nil || text == "" {
		s.logger.Warn().Err(err).Msg("Failed to extract pdf text, falling back to file name")
		return utils.SanitizeLabel(base)
	}

	runes := []rune(text)
	if len(runes) > s.textLimit {
		text = string(runes[:s.textLimit])
	}

	label, err := s.summarizer.SummarizeHomework(ctx, text)
	if err != nil || label == "" {
		s.logger.Warn().Err(err).Msg("Failed to summarize homework, falling back to file name")
		return utils.SanitizeLabel(base)
	}

	return label
}

func (s *homeworkService) publishSubmitted(ctx context.Context, homework *models.Homework) {
	if s.publisher == nil {
		return
	}

	event := &models.HomeworkSubmittedEvent{
		EventID:     uuid.New().String(),
		HomeworkID:  homework.ID,
		ContainerID: homework.ContainerID,
		OwnerID:     homework.OwnerID,
		FileID:      homework.FileID,
		FileName:    homework.Name,
		Timestamp:   time.Now().Unix(),
	}

	if err := s.publisher.PublishHomeworkSubmitted(ctx, event); err != nil {
		s.logger.Error().Err(err).Int64("homework_id", homework.ID).Msg("Failed to publish homework event")
	}
}

func (s *homeworkService) Get(ctx context.Context, id int64) (*models.HomeworkWithOwner, error) {
	homework, err := s.homeworkRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get homework: %w", err)
	}
	if homework == nil {
		return nil, ErrHomeworkNotFound
	}
	return homework, nil
}

func (s *homeworkService) ListByContainer(ctx context.Context, containerID int64) ([]models.HomeworkWithOwner, error) {
	homeworks, err := s.homeworkRepo.ListByContainer(ctx, containerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list homeworks: %w", err)
	}
	return homeworks, nil
}

func (s *homeworkService) GetByContainerAndOwner(ctx context.Context, containerID, ownerID int64) (*models.Homework, error) {
	homework, err := s.homeworkRepo.GetByContainerAndOwner(ctx, containerID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get homework: %w", err)
	}
	return homework, nil
}

func (s *homeworkService) SetMark(ctx context.Context, id int64, mark int) error {
	if mark < models.MarkFail {
		return ErrInvalidMark
	}

	if err := s.homeworkRepo.SetMark(ctx, id, mark); err != nil {
		return fmt.Errorf("failed to set mark: %w", err)
	}

	s.logger.Info().Int64("homework_id", id).Int("mark", mark).Msg("Mark set")
	return nil
}
