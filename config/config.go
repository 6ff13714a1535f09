package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// DevJWTSecret is only used when JWT_SECRET is unset. Never deploy with it.
const DevJWTSecret = "village360-dev-secret-change-me"

type AppConfig struct {
	Port        string
	Env         string
	DBDriver    string // sqlite | mysql | memory
	DatabaseURL string
	DBPath      string
	JWTSecret   string
	ClientURL   string
	LogLevel    string
	LogFormat   string // json | console
}

func (c AppConfig) Production() bool { return c.Env == "production" }

// Validate rejects settings that are only acceptable in development.
func (c AppConfig) Validate() error {
	if c.Production() && c.JWTSecret == DevJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the config from any lookup function so tests don't have to
// touch the process environment.
func FromEnv(getenv func(string) string) AppConfig {
	get := func(k, def string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:        get("PORT", "8080"),
		Env:         get("APP_ENV", "development"),
		DBDriver:    get("DB_DRIVER", "sqlite"),
		DatabaseURL: get("DATABASE_URL", ""),
		DBPath:      get("DB_PATH", "village360.db"),
		JWTSecret:   get("JWT_SECRET", ""),
		ClientURL:   get("CLIENT_URL", "http://localhost:3000"),
		LogLevel:    get("LOG_LEVEL", "info"),
		LogFormat:   get("LOG_FORMAT", "json"),
	}
	if cfg.DatabaseURL != "" && getenv("DB_DRIVER") == "" {
		cfg.DBDriver = "mysql"
	}
	if cfg.JWTSecret == "" {
		log.Printf("[cfg] JWT_SECRET not set, using the development secret")
		cfg.JWTSecret = DevJWTSecret
	}
	log.Printf("[cfg] port=%s env=%s driver=%s client=%s log=%s/%s",
		cfg.Port, cfg.Env, cfg.DBDriver, cfg.ClientURL, cfg.LogLevel, cfg.LogFormat)
	return cfg
}
