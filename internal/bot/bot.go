// Package bot — транспортный слой Telegram: long polling, маршрутизация
// апдейтов в команды и диалоговый движок.
package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/yasyapobeda/homework-bot/internal/dialog"
	"github.com/yasyapobeda/homework-bot/internal/locale"
	"github.com/yasyapobeda/homework-bot/internal/models"
	"github.com/yasyapobeda/homework-bot/internal/service"
)

// CommandHandler — обработчики команд бота, реализуются слоем delivery.
type CommandHandler interface {
	HandleStart(ctx context.Context, m *dialog.Manager, user *models.User, payload string) error
	HandleShow(ctx context.Context, m *dialog.Manager, user *models.User) error
	HandleSettings(ctx context.Context, m *dialog.Manager, user *models.User) error
}

type Bot struct {
	api         *tgbotapi.BotAPI
	engine      *dialog.Engine
	users       service.UserService
	commands    CommandHandler
	pollTimeout int
	logger      zerolog.Logger
}

func New(api *tgbotapi.BotAPI, engine *dialog.Engine, users service.UserService, commands CommandHandler, pollTimeout int, logger zerolog.Logger) *Bot {
	return &Bot{
		api:         api,
		engine:      engine,
		users:       users,
		commands:    commands,
		pollTimeout: pollTimeout,
		logger:      logger,
	}
}

// Run запускает long polling и обрабатывает апдейты до отмены контекста.
func (b *Bot) Run(ctx context.Context) error {
	b.setCommands()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	u.AllowedUpdates = []string{"message", "callback_query"}

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info().Str("username", b.api.Self.UserName).Msg("Bot started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) setCommands() {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Перезапустить бота"},
		tgbotapi.BotCommand{Command: "show", Description: "Показать контейнеры"},
		tgbotapi.BotCommand{Command: "settings", Description: "Настройки"},
	)
	if _, err := b.api.Request(commands); err != nil {
		b.logger.Warn().Err(err).Msg("Failed to set bot commands")
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().Interface("panic", r).Msg("Panic while handling update")
		}
	}()

	var (
		userID int64
		chatID int64
	)
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		userID = update.CallbackQuery.From.ID
		chatID = update.CallbackQuery.Message.Chat.ID
	case update.Message != nil:
		userID = update.Message.From.ID
		chatID = update.Message.Chat.ID
	default:
		return
	}

	user, err := b.users.EnsureUser(ctx, userID)
	if err != nil {
		b.logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to ensure user")
		return
	}

	m := b.engine.Manager(userID, chatID)

	switch {
	case update.CallbackQuery != nil:
		err = b.engine.HandleCallback(ctx, m, update.CallbackQuery.ID, update.CallbackQuery.Data)
	case update.Message.IsCommand():
		err = b.handleCommand(ctx, m, user, update.Message)
	default:
		err = b.engine.HandleMessage(ctx, m, incoming(update.Message))
	}

	if err != nil {
		b.recover(ctx, m, user, err)
	}
}

func (b *Bot) handleCommand(ctx context.Context, m *dialog.Manager, user *models.User, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.commands.HandleStart(ctx, m, user, strings.TrimSpace(msg.CommandArguments()))
	case "show":
		return b.commands.HandleShow(ctx, m, user)
	case "settings":
		return b.commands.HandleSettings(ctx, m, user)
	default:
		b.logger.Debug().Str("command", msg.Command()).Msg("Unknown command, ignored")
		return nil
	}
}

// recover переводит пользователя в известное состояние после ошибки:
// навигационные ошибки сбрасывают стек, остальные логируются.
func (b *Bot) recover(ctx context.Context, m *dialog.Manager, user *models.User, err error) {
	if dialog.IsNavigationError(err) {
		b.engine.Recover(m, err)
	} else {
		b.logger.Error().Err(err).Msg("Failed to handle update")
	}

	text := locale.T(user.Language(locale.Default), "common.error_restart")
	if nerr := m.Notify(ctx, text); nerr != nil {
		b.logger.Warn().Err(nerr).Msg("Failed to notify user about error")
	}
}

func incoming(msg *tgbotapi.Message) *dialog.IncomingMessage {
	in := &dialog.IncomingMessage{Text: msg.Text}
	if msg.Document != nil {
		in.Document = &dialog.IncomingDocument{
			FileID:   msg.Document.FileID,
			FileName: msg.Document.FileName,
			FileSize: int64(msg.Document.FileSize),
		}
	}
	return in
}
