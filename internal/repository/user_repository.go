package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/yasyapobeda/homework-bot/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateFIO(ctx context.Context, id int64, fio string) error
	UpdateLangCode(ctx context.Context, id int64, langCode string) error
}

type userRepository struct {
	*PostgresRepository
}

func NewUserRepository(db *sql.DB, logger zerolog.Logger) UserRepository {
	return &userRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	// ON CONFLICT страхует от гонки двух первых сообщений одного пользователя.
	query := `
		INSERT INTO users (id, created_at, lang_code, fio)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.CreatedAt,
		user.LangCode,
		user.FIO,
	)

	return err
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, created_at, lang_code, fio
		FROM users
		WHERE id = $1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.LangCode,
		&user.FIO,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return user, err
}

func (r *userRepository) UpdateFIO(ctx context.Context, id int64, fio string) error {
	query := `UPDATE users SET fio = $2 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, fio)
	return err
}

func (r *userRepository) UpdateLangCode(ctx context.Context, id int64, langCode string) error {
	query := `UPDATE users SET lang_code = $2 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, langCode)
	return err
}
