package service

import "errors"

// Ошибки пользовательского ввода обрабатываются окнами локально: сообщение,
// состояние не меняется. Остальные считаются фатальными для операции.
var (
	ErrInvalidFIO        = errors.New("invalid fio")
	ErrNameTaken         = errors.New("container name already taken")
	ErrContainerNotFound = errors.New("container not found")
	ErrContainerArchived = errors.New("container is archived")
	ErrHomeworkNotFound  = errors.New("homework not found")
	ErrFileTooLarge      = errors.New("file too large")
	ErrBadFileName       = errors.New("bad file name")
	ErrInvalidMark       = errors.New("invalid mark")
)
