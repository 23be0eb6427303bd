package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/yasyapobeda/homework-bot/internal/models"
)

type ContainerRepository interface {
	Create(ctx context.Context, container *models.Container) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ContainerWithOwner, error)
	GetByInviteCode(ctx context.Context, code string) (*models.Container, error)
	ExistsByOwnerAndName(ctx context.Context, ownerID int64, name string) (bool, error)
	ListVisible(ctx context.Context, userID int64) ([]models.Container, error)
	Archive(ctx context.Context, id int64) error
	AddParticipant(ctx context.Context, containerID, userID int64) error
	IsMember(ctx context.Context, containerID, userID int64) (bool, error)
}

type containerRepository struct {
	*PostgresRepository
}

func NewContainerRepository(db *sql.DB, logger zerolog.Logger) ContainerRepository {
	return &containerRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *containerRepository) Create(ctx context.Context, container *models.Container) (int64, error) {
	query := `
		INSERT INTO containers (created_at, invite_code, owner_id, name, is_archived, description, deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		container.CreatedAt,
		container.InviteCode,
		container.OwnerID,
		container.Name,
		container.IsArchived,
		container.Description,
		container.Deadline,
	).Scan(&id)

	return id, err
}

func (r *containerRepository) GetByID(ctx context.Context, id int64) (*models.ContainerWithOwner, error) {
	query := `
		SELECT
			c.id, c.created_at, c.invite_code, c.owner_id, c.name, c.is_archived, c.description, c.deadline,
			u.fio as owner_fio
		FROM containers c
		JOIN users u ON c.owner_id = u.id
		WHERE c.id = $1
	`

	container := &models.ContainerWithOwner{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&container.ID,
		&container.CreatedAt,
		&container.InviteCode,
		&container.OwnerID,
		&container.Name,
		&container.IsArchived,
		&container.Description,
		&container.Deadline,
		&container.OwnerFIO,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return container, err
}

func (r *containerRepository) GetByInviteCode(ctx context.Context, code string) (*models.Container, error) {
	query := `
		SELECT id, created_at, invite_code, owner_id, name, is_archived, description, deadline
		FROM containers
		WHERE invite_code = $1
	`

	container := &models.Container{}
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&container.ID,
		&container.CreatedAt,
		&container.InviteCode,
		&container.OwnerID,
		&container.Name,
		&container.IsArchived,
		&container.Description,
		&container.Deadline,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return container, err
}

func (r *containerRepository) ExistsByOwnerAndName(ctx context.Context, ownerID int64, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM containers WHERE owner_id = $1 AND name = $2)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, ownerID, name).Scan(&exists)
	return exists, err
}

// ListVisible возвращает контейнеры владельца плюс неархивированные контейнеры,
// в которых пользователь участник.
func (r *containerRepository) ListVisible(ctx context.Context, userID int64) ([]models.Container, error) {
	query := `
		SELECT DISTINCT
			c.id, c.created_at, c.invite_code, c.owner_id, c.name, c.is_archived, c.description, c.deadline
		FROM containers c
		LEFT JOIN container_participants cp ON cp.container_id = c.id
		WHERE c.owner_id = $1 OR (cp.user_id = $1 AND NOT c.is_archived)
		ORDER BY c.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var containers []models.Container
	for rows.Next() {
		var container models.Container
		err := rows.Scan(
			&container.ID,
			&container.CreatedAt,
			&container.InviteCode,
			&container.OwnerID,
			&container.Name,
			&container.IsArchived,
			&container.Description,
			&container.Deadline,
		)
		if err != nil {
			return nil, err
		}
		containers = append(containers, container)
	}

	return containers, rows.Err()
}

func (r *containerRepository) Archive(ctx context.Context, id int64) error {
	query := `UPDATE containers SET is_archived = TRUE WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *containerRepository) AddParticipant(ctx context.Context, containerID, userID int64) error {
	query := `
		INSERT INTO container_participants (container_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, containerID, userID)
	return err
}

func (r *containerRepository) IsMember(ctx context.Context, containerID, userID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM containers WHERE id = $1 AND owner_id = $2
			UNION
			SELECT 1 FROM container_participants WHERE container_id = $1 AND user_id = $2
		)
	`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, containerID, userID).Scan(&exists)
	return exists, err
}
