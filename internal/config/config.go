package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Bot      BotConfig      `mapstructure:"bot"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	AI       AIConfig       `mapstructure:"ai"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type BotConfig struct {
	Token           string `mapstructure:"token"`
	ArchiveChatID   int64  `mapstructure:"archive_chat_id"`
	Timezone        string `mapstructure:"timezone"`
	FileSizeLimitMB int64  `mapstructure:"file_size_limit_mb"`
	PollTimeout     int    `mapstructure:"poll_timeout"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type AIConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	FolderID     string        `mapstructure:"folder_id"`
	Model        string        `mapstructure:"model"`
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	PollCount    int           `mapstructure:"poll_count"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	TextLimit    int           `mapstructure:"text_limit"`
}

type RabbitMQConfig struct {
	URL        string `mapstructure:"url"`
	Exchange   string `mapstructure:"exchange"`
	RoutingKey string `mapstructure:"routing_key"`
	QueueName  string `mapstructure:"queue_name"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Pretty  bool   `mapstructure:"pretty"`
	NoColor bool   `mapstructure:"no_color"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is required (BOT_TOKEN)")
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("bot.timezone", "Europe/Moscow")
	viper.SetDefault("bot.file_size_limit_mb", 5)
	viper.SetDefault("bot.poll_timeout", 60)

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.idle_timeout", "60s")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "homework_user")
	viper.SetDefault("database.password", "homework_password")
	viper.SetDefault("database.name", "homework_db")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "5m")

	viper.SetDefault("ai.model", "yandexgpt-lite")
	viper.SetDefault("ai.base_url", "https://llm.api.cloud.yandex.net")
	viper.SetDefault("ai.timeout", "30s")
	viper.SetDefault("ai.poll_count", 60)
	viper.SetDefault("ai.poll_interval", "2s")
	viper.SetDefault("ai.text_limit", 16000)

	viper.SetDefault("rabbitmq.url", "")
	viper.SetDefault("rabbitmq.exchange", "homework_exchange")
	viper.SetDefault("rabbitmq.routing_key", "homework.submitted")
	viper.SetDefault("rabbitmq.queue_name", "homework_submitted_queue")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.pretty", false)
	viper.SetDefault("logging.no_color", false)
}
