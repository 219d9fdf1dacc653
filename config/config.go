package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServiceName string
	LoggerLevel string

	APIBase       string
	HealthTimeout time.Duration

	BackoffBase time.Duration
	BackoffMax  time.Duration

	HostLookupLimit int

	SessionFile string

	WebAPIPort int

	TelegramBotToken string
	TelegramChatID   int64
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "gomelclient"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "debug"))

	cfg.APIBase = cast.ToString(getOrReturnDefault("API_BASE", "https://updatedgomelbackend.onrender.com/api"))
	cfg.HealthTimeout = time.Duration(cast.ToInt(getOrReturnDefault("HEALTH_TIMEOUT_MS", 5000))) * time.Millisecond

	cfg.BackoffBase = time.Duration(cast.ToInt(getOrReturnDefault("BACKOFF_BASE_MS", 1000))) * time.Millisecond
	cfg.BackoffMax = time.Duration(cast.ToInt(getOrReturnDefault("BACKOFF_MAX_MS", 30000))) * time.Millisecond

	cfg.HostLookupLimit = cast.ToInt(getOrReturnDefault("HOST_LOOKUP_LIMIT", 8))

	cfg.SessionFile = cast.ToString(getOrReturnDefault("SESSION_FILE", ".gomel_session.json"))

	cfg.WebAPIPort = cast.ToInt(getOrReturnDefault("WEB_API_PORT", 8080))

	cfg.TelegramBotToken = cast.ToString(getOrReturnDefault("TG_BOT_TOKEN", ""))
	cfg.TelegramChatID = cast.ToInt64(getOrReturnDefault("TG_CHAT_ID", 0))

	return cfg
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
