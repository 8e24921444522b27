package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv            string
	Addr              string
	DbDsn             string
	JwtSecret         string
	PresenceMode      string
	SiteLocation      string
	AllowedOriginsRaw string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:            getEnv("APP_ENV", "local"),
		Addr:              getEnv("APP_ADDR", ":8080"),
		DbDsn:             os.Getenv("DB_DSN"),
		JwtSecret:         os.Getenv("JWT_SECRET"),
		PresenceMode:      getEnv("PRESENCE_MODE", "auto"),
		SiteLocation:      os.Getenv("SITE_LOCATION"),
		AllowedOriginsRaw: getEnv("ALLOWED_ORIGINS", ""),
	}

	if cfg.JwtSecret == "" {
		return cfg, errors.New("missing env: JWT_SECRET")
	}

	switch cfg.PresenceMode {
	case "auto", "local", "remote":
	default:
		return cfg, errors.New("PRESENCE_MODE must be auto, local or remote")
	}
	if cfg.PresenceMode == "remote" && cfg.DbDsn == "" {
		return cfg, errors.New("PRESENCE_MODE=remote requires DB_DSN")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
