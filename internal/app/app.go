package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/yasyapobeda/homework-bot/internal/bot"
	"github.com/yasyapobeda/homework-bot/internal/config"
	"github.com/yasyapobeda/homework-bot/internal/delivery/httpd"
	"github.com/yasyapobeda/homework-bot/internal/delivery/telegram"
	"github.com/yasyapobeda/homework-bot/internal/dialog"
	"github.com/yasyapobeda/homework-bot/internal/repository"
	"github.com/yasyapobeda/homework-bot/internal/service"
	"github.com/yasyapobeda/homework-bot/internal/service/integration"
)

type App struct {
	bot            *bot.Bot
	server         *http.Server
	logger         zerolog.Logger
	config         *config.Config
	db             *sql.DB
	rabbitmqClient integration.RabbitMQClient
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	location, err := time.LoadLocation(cfg.Bot.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.Bot.Timezone, err)
	}

	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api: %w", err)
	}

	// Создаем интеграционные клиенты
	var summarizer integration.Summarizer
	if cfg.AI.APIKey != "" {
		summarizer = integration.NewGPTClient(
			cfg.AI.BaseURL,
			cfg.AI.APIKey,
			cfg.AI.FolderID,
			cfg.AI.Model,
			cfg.AI.Timeout,
			cfg.AI.PollCount,
			cfg.AI.PollInterval,
			log,
		)
	} else {
		log.Warn().Msg("AI api key is not set, pdf classification disabled")
	}

	var rabbitmqClient integration.RabbitMQClient
	if cfg.RabbitMQ.URL != "" {
		rabbitmqClient, err = integration.NewRabbitMQClient(
			cfg.RabbitMQ.URL,
			cfg.RabbitMQ.Exchange,
			cfg.RabbitMQ.RoutingKey,
			cfg.RabbitMQ.QueueName,
			log,
		)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create RabbitMQ client")
			// Продолжаем без RabbitMQ, это допустимо для разработки
		}
	}

	client := bot.NewClient(api, log)

	// Создаем репозитории
	userRepo := repository.NewUserRepository(db, log)
	containerRepo := repository.NewContainerRepository(db, log)
	homeworkRepo := repository.NewHomeworkRepository(db, log)

	// Создаем сервисы
	userService := service.NewUserService(userRepo, log)
	containerService := service.NewContainerService(containerRepo, log)

	var publisher service.EventPublisher
	if rabbitmqClient != nil {
		publisher = rabbitmqClient
	}

	homeworkService := service.NewHomeworkService(
		homeworkRepo,
		containerRepo,
		client,
		summarizer,
		publisher,
		cfg.Bot.ArchiveChatID,
		cfg.Bot.FileSizeLimitMB,
		cfg.AI.TextLimit,
		location,
		log,
	)
	exportService := service.NewExportService(homeworkRepo, client, location, log)

	// Создаем окна диалогов
	engine := dialog.NewEngine(client, log)
	handler := telegram.NewHandler(
		userService,
		containerService,
		homeworkService,
		exportService,
		client,
		client.Username(),
		cfg.Bot.FileSizeLimitMB,
		location,
		log,
	)
	handler.Register(engine)

	b := bot.New(api, engine, userService, handler, cfg.Bot.PollTimeout, log)

	// Служебный HTTP-сервер
	health := httpd.NewHandler(repository.NewPostgresRepository(db, log), log)
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      health.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		bot:            b,
		server:         server,
		logger:         log,
		config:         cfg,
		db:             db,
		rabbitmqClient: rabbitmqClient,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	go func() {
		a.logger.Info().Msgf("Starting health server on %s", a.config.Server.Address)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error().Err(err).Msg("Health server failed")
		}
	}()

	return a.bot.Run(ctx)
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down homework bot...")

	// Закрываем RabbitMQ соединение
	if a.rabbitmqClient != nil {
		if err := a.rabbitmqClient.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	// Закрываем соединение с БД
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	// Останавливаем служебный сервер
	return a.server.Shutdown(ctx)
}
