package models

import (
	"time"
)

// MarkFail — отметка "незачёт". Неотрицательные значения — численная оценка,
// nil — работа ещё не проверена.
const MarkFail = -1

type Homework struct {
	ID          int64     `json:"id" db:"id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	OwnerID     int64     `json:"owner_id" db:"owner_id"`
	ContainerID int64     `json:"container_id" db:"container_id"`
	Name        string    `json:"name" db:"name"`
	Text        *string   `json:"text,omitempty" db:"text"`
	FileID      string    `json:"file_id" db:"file_id"`
	Mark        *int      `json:"mark,omitempty" db:"mark"`
}

func (h *Homework) Graded() bool {
	return h.Mark != nil
}

func (h *Homework) Failed() bool {
	return h.Mark != nil && *h.Mark == MarkFail
}

type HomeworkWithOwner struct {
	Homework
	OwnerFIO string `json:"owner_fio" db:"owner_fio"`
}
