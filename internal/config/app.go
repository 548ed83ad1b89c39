package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
	StorageDriverMemory   = "memory"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type Storage struct {
	Driver string `mapstructure:"driver"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// GetConnectionStr builds a DSN accepted by both pgxpool and the pgx stdlib driver,
// so pool sizing stays out of it and is applied through MaxConns instead.
func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type Redis struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type RateSource struct {
	PrimaryURL  string `mapstructure:"primary_url"`
	FallbackURL string `mapstructure:"fallback_url"`
	UserAgent   string `mapstructure:"user_agent"`
}

type Telegram struct {
	APIURL        string `mapstructure:"api_url"`
	Token         string `mapstructure:"token"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	OwnerChatID   string `mapstructure:"owner_chat_id"`
}

type Scheduler struct {
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec"`
}

type Cache struct {
	MaxItems   int64 `mapstructure:"max_items"`
	TTLSeconds int   `mapstructure:"ttl_seconds"`
}

type Dispatcher struct {
	Workers        int `mapstructure:"workers"`
	QueueSize      int `mapstructure:"queue_size"`
	SendTimeoutSec int `mapstructure:"send_timeout_sec"`
}

type Bot struct {
	Timezone string `mapstructure:"timezone"`
}

type Logging struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	Storage    Storage    `mapstructure:"storage"`
	DbServer   DbServer   `mapstructure:"db_server"`
	Redis      Redis      `mapstructure:"redis"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	RateSource RateSource `mapstructure:"rate_source"`
	Telegram   Telegram   `mapstructure:"telegram"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Cache      Cache      `mapstructure:"cache"`
	Dispatcher Dispatcher `mapstructure:"dispatcher"`
	Bot        Bot        `mapstructure:"bot"`
	Logging    Logging    `mapstructure:"logging"`
}

func (cfg *AppConfig) validate() error {
	switch cfg.Storage.Driver {
	case StorageDriverPostgres, StorageDriverRedis, StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if cfg.RateSource.PrimaryURL == "" {
		return errors.New("rate_source.primary_url is required")
	}
	if cfg.Telegram.Token == "" {
		return errors.New("telegram.token is required")
	}
	return nil
}

// Init reads config.yaml (or CONFIG_PATH) and overlays environment variables, with
// an optional .env loaded first. Both files may be absent when env vars carry everything.
func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	setDefaults(v)
	bindEnv(v)

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_server.port", "8080")
	v.SetDefault("storage.driver", StorageDriverPostgres)
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.key_prefix", "fxbot:")
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("rate_source.user_agent", "fxbot/1.0")
	v.SetDefault("telegram.api_url", "https://api.telegram.org")
	v.SetDefault("scheduler.refresh_interval_sec", 600)
	v.SetDefault("cache.max_items", 16)
	v.SetDefault("cache.ttl_seconds", 60)
	v.SetDefault("dispatcher.workers", 2)
	v.SetDefault("dispatcher.queue_size", 64)
	v.SetDefault("dispatcher.send_timeout_sec", 10)
	v.SetDefault("bot.timezone", "Asia/Tehran")
	v.SetDefault("logging.level", "info")
}

func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("storage.driver", "STORAGE_DRIVER")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// redis env vars
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// rate provider env vars
	_ = v.BindEnv("rate_source.primary_url", "RATE_SOURCE_PRIMARY_URL")
	_ = v.BindEnv("rate_source.fallback_url", "RATE_SOURCE_FALLBACK_URL")

	// telegram env vars
	_ = v.BindEnv("telegram.api_url", "TELEGRAM_API_URL")
	_ = v.BindEnv("telegram.token", "TELEGRAM_TOKEN")
	_ = v.BindEnv("telegram.webhook_secret", "TELEGRAM_WEBHOOK_SECRET")
	_ = v.BindEnv("telegram.owner_chat_id", "TELEGRAM_OWNER_CHAT_ID")

	_ = v.BindEnv("scheduler.refresh_interval_sec", "REFRESH_INTERVAL_SEC")
	_ = v.BindEnv("bot.timezone", "BOT_TIMEZONE")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.file", "LOG_FILE")
}
