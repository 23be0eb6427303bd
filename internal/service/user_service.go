package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yasyapobeda/homework-bot/internal/models"
	"github.com/yasyapobeda/homework-bot/internal/repository"
)

type UserService interface {
	EnsureUser(ctx context.Context, id int64) (*models.User, error)
	SetFIO(ctx context.Context, id int64, fio string) error
	SetLanguage(ctx context.Context, id int64, langCode string) error
}

type userService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// EnsureUser возвращает пользователя, создавая запись при первом обращении.
// Гонку двух первых апдейтов разрешает первичный ключ users.
func (s *userService) EnsureUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user = &models.User{
		ID:        id,
		CreatedAt: time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Int64("user_id", id).Msg("Created new user")

	// Перечитываем: вставку могла выиграть параллельная обработка.
	created, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reread user: %w", err)
	}
	if created != nil {
		return created, nil
	}
	return user, nil
}

func (s *userService) SetFIO(ctx context.Context, id int64, fio string) error {
	fio = strings.TrimSpace(fio)
	if len(strings.Fields(fio)) < 2 {
		return ErrInvalidFIO
	}

	if err := s.userRepo.UpdateFIO(ctx, id, fio); err != nil {
		return fmt.Errorf("failed to update fio: %w", err)
	}

	s.logger.Info().Int64("user_id", id).Msg("User registered")
	return nil
}

func (s *userService) SetLanguage(ctx context.Context, id int64, langCode string) error {
	if err := s.userRepo.UpdateLangCode(ctx, id, langCode); err != nil {
		return fmt.Errorf("failed to update lang code: %w", err)
	}

	s.logger.Debug().Int64("user_id", id).Str("lang_code", langCode).Msg("Language changed")
	return nil
}
