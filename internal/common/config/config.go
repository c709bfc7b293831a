package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/registrar-hq/registrar/internal/common/constants"
)

var (
	ErrMissingRequiredEnv   = errors.New("missing required environment variable")
	ErrInvalidSessionSecret = errors.New("SESSION_SECRET must be at least 32 bytes")
)

type Config struct {
	HTTPPort       string
	DatabaseURL    string
	SessionSecret  string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
	AdminUsername  string
	AdminPassword  string
}

func Load() (Config, error) {
	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return Config{}, err
	}

	sessionSecret, err := mustEnv("SESSION_SECRET")
	if err != nil {
		return Config{}, err
	}

	if err := validateSessionSecret(sessionSecret); err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:       getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:    databaseURL,
		SessionSecret:  sessionSecret,
		SessionTTL:     getDurationEnv("SESSION_TTL", constants.DefaultSessionTTL),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		AdminUsername:  getEnv("ADMIN_USERNAME", constants.DefaultAdminUsername),
		AdminPassword:  getEnv("ADMIN_PASSWORD", constants.DefaultAdminPassword),
	}, nil
}

func validateSessionSecret(secret string) error {
	if len(secret) < constants.SessionSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidSessionSecret, len(secret))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
