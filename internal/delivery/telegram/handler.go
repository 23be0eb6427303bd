// Package telegram — окна и команды бота поверх диалогового движка.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yasyapobeda/homework-bot/internal/dialog"
	"github.com/yasyapobeda/homework-bot/internal/locale"
	"github.com/yasyapobeda/homework-bot/internal/models"
	"github.com/yasyapobeda/homework-bot/internal/service"
)

const figmaURL = "https://www.figma.com/proto/nIJ6EyZJLfZpVtuLm9qmT2/Untitled?page-id=0%3A1&node-id=1-545&p=f&viewport=-60%2C173%2C0.29&t=IshnLMZRA7KhXim3-1&scaling=min-zoom&content-scaling=fixed&starting-point-node-id=1%3A545"

// joinCodePrefix — префикс deep-link нагрузки /start для входа по приглашению.
const joinCodePrefix = "cjoin_"

type Handler struct {
	users       service.UserService
	containers  service.ContainerService
	homeworks   service.HomeworkService
	exports     service.ExportService
	relay       service.FileRelay
	botUsername string
	limitMB     int64
	location    *time.Location
	logger      zerolog.Logger
}

func NewHandler(
	users service.UserService,
	containers service.ContainerService,
	homeworks service.HomeworkService,
	exports service.ExportService,
	relay service.FileRelay,
	botUsername string,
	limitMB int64,
	location *time.Location,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		users:       users,
		containers:  containers,
		homeworks:   homeworks,
		exports:     exports,
		relay:       relay,
		botUsername: botUsername,
		limitMB:     limitMB,
		location:    location,
		logger:      logger,
	}
}

// Register привязывает все окна к состояниям движка.
func (h *Handler) Register(engine *dialog.Engine) {
	engine.RegisterGroup(RegisterFIO, RegisterDone)
	engine.RegisterGroup(MainIntro)
	engine.RegisterGroup(SettingsIntro, SettingsLanguage)
	engine.RegisterGroup(CreateName, CreateDescription, CreateDeadline, CreateConfirm)
	engine.RegisterGroup(ContainersIntro, ContainersView, ContainersArchiveConfirm, ContainersAddHomework)
	engine.RegisterGroup(HomeworksIntro, HomeworksView, HomeworksAddMark)

	engine.RegisterWindow(RegisterFIO, h.registerWindow())
	engine.RegisterWindow(RegisterDone, h.registerDoneWindow())

	engine.RegisterWindow(MainIntro, h.mainWindow())

	engine.RegisterWindow(SettingsIntro, h.settingsWindow())
	engine.RegisterWindow(SettingsLanguage, h.languageWindow())

	engine.RegisterWindow(CreateName, h.createNameWindow())
	engine.RegisterWindow(CreateDescription, h.createDescriptionWindow())
	engine.RegisterWindow(CreateDeadline, h.createDeadlineWindow())
	engine.RegisterWindow(CreateConfirm, h.createConfirmWindow())

	engine.RegisterWindow(ContainersIntro, h.containersWindow())
	engine.RegisterWindow(ContainersView, h.containerViewWindow())
	engine.RegisterWindow(ContainersArchiveConfirm, h.archiveConfirmWindow())
	engine.RegisterWindow(ContainersAddHomework, h.addHomeworkWindow())

	engine.RegisterWindow(HomeworksIntro, h.homeworksWindow())
	engine.RegisterWindow(HomeworksView, h.homeworkViewWindow())
	engine.RegisterWindow(HomeworksAddMark, h.addMarkWindow())
}

// HandleStart перезапускает диалог. Нагрузка deep link "cjoin_<code>" ведёт
// в контейнер по приглашению, незарегистрированный пользователь сперва
// проходит регистрацию.
func (h *Handler) HandleStart(ctx context.Context, m *dialog.Manager, user *models.User, payload string) error {
	code := ""
	if len(payload) > len(joinCodePrefix) && payload[:len(joinCodePrefix)] == joinCodePrefix {
		code = payload[len(joinCodePrefix):]
	}

	if !user.Registered() {
		startData := map[string]any{}
		if code != "" {
			startData["join_code"] = code
		}
		m.StartReset(RegisterFIO, startData)
		return m.Show(ctx)
	}

	if code != "" {
		return h.joinAndOpen(ctx, m, user, code)
	}

	m.StartReset(MainIntro, nil)
	return m.Show(ctx)
}

// HandleShow перепосылает текущее окно новым сообщением (старое могло
// утонуть в переписке).
func (h *Handler) HandleShow(ctx context.Context, m *dialog.Manager, user *models.User) error {
	if !user.Registered() {
		m.StartReset(RegisterFIO, nil)
		return m.Show(ctx)
	}

	if m.Frame() == nil {
		m.StartReset(MainIntro, nil)
	}
	return m.Show(ctx)
}

func (h *Handler) HandleSettings(ctx context.Context, m *dialog.Manager, user *models.User) error {
	if !user.Registered() {
		m.StartReset(RegisterFIO, nil)
		return m.Show(ctx)
	}

	// Уже в настройках — просто перепоказываем их.
	if f := m.Frame(); f != nil && f.State.Group == SettingsIntro.Group {
		return m.Show(ctx)
	}

	if m.Frame() == nil {
		m.StartReset(SettingsIntro, nil)
	} else if err := m.Start(SettingsIntro, nil); err != nil {
		return err
	}
	return m.Show(ctx)
}

// joinAndOpen вводит пользователя в контейнер по коду и открывает его окно.
func (h *Handler) joinAndOpen(ctx context.Context, m *dialog.Manager, user *models.User, code string) error {
	lang := user.Language(locale.Default)

	container, joined, err := h.containers.Join(ctx, code, user.ID)
	if errors.Is(err, service.ErrContainerNotFound) {
		if err := m.Notify(ctx, locale.T(lang, "join.not_found")); err != nil {
			return err
		}
		m.StartReset(MainIntro, nil)
		return m.Show(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to join container: %w", err)
	}

	text := locale.T(lang, "join.already")
	if joined {
		text = locale.Tf(lang, "join.ok", container.Name)
	}
	if err := m.Notify(ctx, text); err != nil {
		return err
	}

	m.StartReset(ContainersIntro, nil)
	if err := m.Start(ContainersView, map[string]any{"container_id": container.ID}); err != nil {
		return err
	}
	return m.Show(ctx)
}

// lang загружает пользователя текущего события и его язык интерфейса.
func (h *Handler) lang(ctx context.Context, m *dialog.Manager) (*models.User, string, error) {
	user, err := h.users.EnsureUser(ctx, m.UserID())
	if err != nil {
		return nil, locale.Default, err
	}
	return user, user.Language(locale.Default), nil
}

func (h *Handler) inviteLink(code string) string {
	return fmt.Sprintf("https://t.me/%s?start=%s%s", h.botUsername, joinCodePrefix, code)
}
