package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/yasyapobeda/homework-bot/internal/models"
)

type HomeworkRepository interface {
	Create(ctx context.Context, homework *models.Homework) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.HomeworkWithOwner, error)
	GetByContainerAndOwner(ctx context.Context, containerID, ownerID int64) (*models.Homework, error)
	ListByContainer(ctx context.Context, containerID int64) ([]models.HomeworkWithOwner, error)
	SetMark(ctx context.Context, id int64, mark int) error
}

type homeworkRepository struct {
	*PostgresRepository
}

func NewHomeworkRepository(db *sql.DB, logger zerolog.Logger) HomeworkRepository {
	return &homeworkRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *homeworkRepository) Create(ctx context.Context, homework *models.Homework) (int64, error) {
	query := `
		INSERT INTO homeworks (created_at, owner_id, container_id, name, text, file_id, mark)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		homework.CreatedAt,
		homework.OwnerID,
		homework.ContainerID,
		homework.Name,
		homework.Text,
		homework.FileID,
		homework.Mark,
	).Scan(&id)

	return id, err
}

func (r *homeworkRepository) GetByID(ctx context.Context, id int64) (*models.HomeworkWithOwner, error) {
	query := `
		SELECT
			h.id, h.created_at, h.owner_id, h.container_id, h.name, h.text, h.file_id, h.mark,
			u.fio as owner_fio
		FROM homeworks h
		JOIN users u ON h.owner_id = u.id
		WHERE h.id = $1
	`

	homework := &models.HomeworkWithOwner{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&homework.ID,
		&homework.CreatedAt,
		&homework.OwnerID,
		&homework.ContainerID,
		&homework.Name,
		&homework.Text,
		&homework.FileID,
		&homework.Mark,
		&homework.OwnerFIO,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return homework, err
}

func (r *homeworkRepository) GetByContainerAndOwner(ctx context.Context, containerID, ownerID int64) (*models.Homework, error) {
	query := `
		SELECT id, created_at, owner_id, container_id, name, text, file_id, mark
		FROM homeworks
		WHERE container_id = $1 AND owner_id = $2
		ORDER BY id
		LIMIT 1
	`

	homework := &models.Homework{}
	err := r.db.QueryRowContext(ctx, query, containerID, ownerID).Scan(
		&homework.ID,
		&homework.CreatedAt,
		&homework.OwnerID,
		&homework.ContainerID,
		&homework.Name,
		&homework.Text,
		&homework.FileID,
		&homework.Mark,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return homework, err
}

func (r *homeworkRepository) ListByContainer(ctx context.Context, containerID int64) ([]models.HomeworkWithOwner, error) {
	query := `
		SELECT
			h.id, h.created_at, h.owner_id, h.container_id, h.name, h.text, h.file_id, h.mark,
			u.fio as owner_fio
		FROM homeworks h
		JOIN users u ON h.owner_id = u.id
		WHERE h.container_id = $1
		ORDER BY h.id
	`

	rows, err := r.db.QueryContext(ctx, query, containerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var homeworks []models.HomeworkWithOwner
	for rows.Next() {
		var homework models.HomeworkWithOwner
		err := rows.Scan(
			&homework.ID,
			&homework.CreatedAt,
			&homework.OwnerID,
			&homework.ContainerID,
			&homework.Name,
			&homework.Text,
			&homework.FileID,
			&homework.Mark,
			&homework.OwnerFIO,
		)
		if err != nil {
			return nil, err
		}
		homeworks = append(homeworks, homework)
	}

	return homeworks, rows.Err()
}

func (r *homeworkRepository) SetMark(ctx context.Context, id int64, mark int) error {
	query := `UPDATE homeworks SET mark = $2 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, mark)
	return err
}
