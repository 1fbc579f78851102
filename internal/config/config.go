package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the runtime settings of the bot, populated from the
// environment (optionally preloaded from config.env).
type Config struct {
	BotToken       string
	PostgresDSN    string
	YandexAPIKey   string
	YandexFolderID string
	AdminID        int64
	TariffsFile    string
	GenTimeout     time.Duration
}

func FromEnv() Config {
	return Config{
		BotToken:       strings.TrimSpace(os.Getenv("BOT_TOKEN")),
		PostgresDSN:    strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		YandexAPIKey:   strings.TrimSpace(os.Getenv("YANDEX_API_KEY")),
		YandexFolderID: strings.TrimSpace(os.Getenv("YANDEX_FOLDER_ID")),
		AdminID:        getEnvInt64("ADMIN_ID", 0),
		TariffsFile:    strings.TrimSpace(os.Getenv("TARIFFS_FILE")),
		GenTimeout:     time.Duration(getEnvInt64("YANDEX_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func getEnvInt64(name string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}
