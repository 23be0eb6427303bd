package models

import (
	"strings"
	"time"
)

type User struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	LangCode  *string   `json:"lang_code,omitempty" db:"lang_code"`
	FIO       *string   `json:"fio,omitempty" db:"fio"`
}

// Registered — пользователь считается зарегистрированным, когда заполнено ФИО.
func (u *User) Registered() bool {
	return u.FIO != nil && *u.FIO != ""
}

// FirstName возвращает имя из ФИО ("Фамилия Имя Отчество" -> "Имя").
func (u *User) FirstName() string {
	if u.FIO == nil {
		return ""
	}
	parts := strings.Fields(*u.FIO)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func (u *User) Language(fallback string) string {
	if u.LangCode != nil && *u.LangCode != "" {
		return *u.LangCode
	}
	return fallback
}
