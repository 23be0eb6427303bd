package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yasyapobeda/homework-bot/internal/models"
	"github.com/yasyapobeda/homework-bot/internal/repository"
	"github.com/yasyapobeda/homework-bot/pkg/utils"
)

type ContainerService interface {
	Create(ctx context.Context, ownerID int64, name string, description *string, deadline *time.Time) (*models.Container, error)
	Get(ctx context.Context, id int64) (*models.ContainerWithOwner, error)
	ListVisible(ctx context.Context, userID int64) ([]models.Container, error)
	NameTaken(ctx context.Context, ownerID int64, name string) (bool, error)
	Archive(ctx context.Context, id int64) error
	Join(ctx context.Context, inviteCode string, userID int64) (*models.Container, bool, error)
}

type containerService struct {
	containerRepo repository.ContainerRepository
	logger        zerolog.Logger
}

func NewContainerService(containerRepo repository.ContainerRepository, logger zerolog.Logger) ContainerService {
	return &containerService{
		containerRepo: containerRepo,
		logger:        logger,
	}
}

func (s *containerService) Create(ctx context.Context, ownerID int64, name string, description *string, deadline *time.Time) (*models.Container, error) {
	taken, err := s.containerRepo.ExistsByOwnerAndName(ctx, ownerID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check container name: %w", err)
	}
	if taken {
		return nil, ErrNameTaken
	}

	container := &models.Container{
		CreatedAt:   time.Now(),
		InviteCode:  utils.InviteCode(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Deadline:    deadline,
	}

	id, err := s.containerRepo.Create(ctx, container)
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}
	container.ID = id

	s.logger.Info().
		Int64("container_id", id).
		Int64("owner_id", ownerID).
		Str("name", name).
		Msg("Container created")

	return container, nil
}

func (s *containerService) Get(ctx context.Context, id int64) (*models.ContainerWithOwner, error) {
	container, err := s.containerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get container: %w", err)
	}
	if container == nil {
		return nil, ErrContainerNotFound
	}
	return container, nil
}

func (s *containerService) ListVisible(ctx context.Context, userID int64) ([]models.Container, error) {
	containers, err := s.containerRepo.ListVisible(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}
	return containers, nil
}

func (s *containerService) NameTaken(ctx context.Context, ownerID int64, name string) (bool, error) {
	taken, err := s.containerRepo.ExistsByOwnerAndName(ctx, ownerID, name)
	if err != nil {
		return false, fmt.Errorf("failed to check container name: %w", err)
	}
	return taken, nil
}

// Archive — мягкое удаление, из интерфейса не отменяется.
func (s *containerService) Archive(ctx context.Context, id int64) error {
	if err := s.containerRepo.Archive(ctx, id); err != nil {
		return fmt.Errorf("failed to archive container: %w", err)
	}

	s.logger.Info().Int64("container_id", id).Msg("Container archived")
	return nil
}

// Join добавляет пользователя в контейнер по коду приглашения. Второе
// значение false, если он уже владелец или участник.
func (s *containerService) Join(ctx context.Context, inviteCode string, userID int64) (*models.Container, bool, error) {
	container, err := s.containerRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get container by invite code: %w", err)
	}
	if container == nil {
		return nil, false, ErrContainerNotFound
	}

	member, err := s.containerRepo.IsMember(ctx, container.ID, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check membership: %w", err)
	}
	if member {
		return container, false, nil
	}

	if err := s.containerRepo.AddParticipant(ctx, container.ID, userID); err != nil {
		return nil, false, fmt.Errorf("failed to add participant: %w", err)
	}

	s.logger.Info().
		Int64("container_id", container.ID).
		Int64("user_id", userID).
		Msg("User joined container")

	return container, true, nil
}
