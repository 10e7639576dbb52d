package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type AuthConfig struct {
	SessionSecret    string
	SessionTTL       time.Duration
	LoginMaxAttempts int
	LoginWindow      time.Duration
}

func GetAuthConfig() (*AuthConfig, error) {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET must be set")
	}
	maxAttempts := 5
	if raw := os.Getenv("LOGIN_MAX_ATTEMPTS"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse LOGIN_MAX_ATTEMPTS: %w", err)
		}
		maxAttempts = val
	}
	return &AuthConfig{
		SessionSecret:    secret,
		SessionTTL:       24 * time.Hour,
		LoginMaxAttempts: maxAttempts,
		LoginWindow:      15 * time.Minute,
	}, nil
}
