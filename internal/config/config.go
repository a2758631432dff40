package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL  string `env:"API_BASE_URL" envDefault:"http://localhost:8000"`
	SocketURL   string `env:"SOCKET_URL"`
	Environment string `env:"ENV" envDefault:"development"`

	// Credentials used when no stored session can be resumed
	Email    string `env:"TALEMY_EMAIL"`
	Password string `env:"TALEMY_PASSWORD"`

	// Where the session token is persisted between runs
	TokenFile string `env:"TOKEN_FILE" envDefault:".talemy_token"`

	ReconnectAttempts uint64        `env:"RECONNECT_ATTEMPTS" envDefault:"5"`
	ReconnectDelay    time.Duration `env:"RECONNECT_DELAY" envDefault:"1s"`
	RefreshInterval   time.Duration `env:"REFRESH_INTERVAL" envDefault:"1m"`
}

func Load() (*Config, error) {
	// Try to load the .env file (ignore the error if there is none)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required but not set")
	}

	// The realtime channel lives on the API host unless overridden
	if cfg.SocketURL == "" {
		cfg.SocketURL = cfg.APIBaseURL
	}

	return cfg, nil
}
