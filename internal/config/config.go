package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	secretPath          = "/run/secrets/telegram_bot_token"
	DefaultDBPath       = "bot.db"
	DefaultTickInterval = 5 * time.Second
)

var ErrNoToken = errors.New("telegram token missing: no docker secret and no TELEGRAM_BOT_TOKEN")

type Config struct {
	DBPath        string
	TelegramToken string
	OwnerChatID   int64 // 0 -> the first chat to write takes ownership
	Location      *time.Location
	TickInterval  time.Duration
}

// Load reads .env (if present) and the process environment. The token is
// only required when needToken is set; the offline CLI runs without it.
func Load(needToken bool) (Config, error) {
	_ = godotenv.Load()
	return fromEnv(os.Getenv, secretPath, needToken)
}

func fromEnv(getenv func(string) string, secret string, needToken bool) (Config, error) {
	cfg := Config{
		DBPath:        DefaultDBPath,
		TelegramToken: botToken(getenv, secret),
		Location:      time.Local,
		TickInterval:  DefaultTickInterval,
	}
	if needToken && cfg.TelegramToken == "" {
		return cfg, ErrNoToken
	}

	if v := strings.TrimSpace(getenv("DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(getenv("OWNER_CHAT_ID")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("OWNER_CHAT_ID: %w", err)
		}
		cfg.OwnerChatID = id
	}
	if v := strings.TrimSpace(getenv("TZ_NAME")); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return cfg, fmt.Errorf("TZ_NAME: %w", err)
		}
		cfg.Location = loc
	}
	if v := strings.TrimSpace(getenv("TICK_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("TICK_INTERVAL: %w", err)
		}
		if d < time.Second {
			return cfg, fmt.Errorf("TICK_INTERVAL: %s is below 1s", d)
		}
		cfg.TickInterval = d
	}
	return cfg, nil
}

func botToken(getenv func(string) string, secret string) string {
	if data, err := os.ReadFile(secret); err == nil {
		token := strings.TrimSpace(string(data))
		if token != "" {
			return token
		}
	}
	return strings.TrimSpace(getenv("TELEGRAM_BOT_TOKEN"))
}
