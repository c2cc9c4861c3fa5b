// Package config loads runtime settings and opens the document store.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// devSecret is only ever used when APP_ENV=development and JWT_SECRET is unset.
const devSecret = "thoughtcatcher-development-secret"

type Config struct {
	Env  string
	Port string

	DBDriver string
	DBURL    string

	JWTSecret     string
	JWTIssuer     string
	JWTAudience   string
	TokenTTL      time.Duration
	ResetTokenTTL time.Duration

	ClientURLs []string

	LogLevel    string
	LogDir      string
	LogMaxFiles int
}

func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// UsingDevSecret reports whether the token secret fell back to the built-in default.
func (c *Config) UsingDevSecret() bool {
	return c.JWTSecret == devSecret
}

// Load reads .env (if present), then the environment and an optional
// config.yaml through viper. Environment variables win.
func Load() (*Config, error) {
	// Missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Env:           strings.ToLower(v.GetString("APP_ENV")),
		Port:          v.GetString("PORT"),
		DBDriver:      strings.ToLower(v.GetString("DB_DRIVER")),
		DBURL:         v.GetString("DB_URL"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTIssuer:     v.GetString("JWT_ISSUER"),
		JWTAudience:   v.GetString("JWT_AUDIENCE"),
		TokenTTL:      v.GetDuration("TOKEN_TTL"),
		ResetTokenTTL: v.GetDuration("RESET_TOKEN_TTL"),
		ClientURLs:    splitList(v.GetString("CLIENT_URL")),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogDir:        v.GetString("LOG_DIR"),
		LogMaxFiles:   v.GetInt("LOG_MAX_FILES"),
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("config: JWT_SECRET not set")
		}
		cfg.JWTSecret = devSecret
	}
	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, errors.New("config: DB_DRIVER must be postgres or sqlite")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("PORT", "3671")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_URL", "thoughtcatcher.db")
	v.SetDefault("JWT_ISSUER", "thoughtcatcher")
	v.SetDefault("JWT_AUDIENCE", "thoughtcatcher-client")
	v.SetDefault("TOKEN_TTL", time.Hour)
	v.SetDefault("RESET_TOKEN_TTL", time.Hour)
	v.SetDefault("CLIENT_URL", "http://localhost:3670")
	v.SetDefault("LOG_LEVEL", "debug")
	v.SetDefault("LOG_DIR", "logs")
	v.SetDefault("LOG_MAX_FILES", 14)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
