package models

import (
	"time"
)

type Container struct {
	ID          int64      `json:"id" db:"id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	InviteCode  string     `json:"invite_code" db:"invite_code"`
	OwnerID     int64      `json:"owner_id" db:"owner_id"`
	Name        string     `json:"name" db:"name"`
	IsArchived  bool       `json:"is_archived" db:"is_archived"`
	Description *string    `json:"description,omitempty" db:"description"`
	Deadline    *time.Time `json:"deadline,omitempty" db:"deadline"`
}

type ContainerWithOwner struct {
	Container
	OwnerFIO *string `json:"owner_fio" db:"owner_fio"`
}
