package config

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv       string
	HTTPPort     string
	DatabasePath string // path of the embedded SQLite file
	JWTSecret    string
	CORSOrigins  string
	LogLevel     string
}

// Load reads configuration from environment variables, with an optional
// .env file for local development. Env vars always win.
func Load() *Config {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DATABASE_PATH", "lotline.db")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		AppEnv:       v.GetString("APP_ENV"),
		HTTPPort:     v.GetString("HTTP_PORT"),
		DatabasePath: v.GetString("DATABASE_PATH"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		CORSOrigins:  v.GetString("CORS_ALLOWED_ORIGINS"),
		LogLevel:     v.GetString("LOG_LEVEL"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal().Msg("JWT_SECRET must be at least 32 characters")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Warn().Msg("CORS_ALLOWED_ORIGINS is using the default dev origin")
	}

	return cfg
}
