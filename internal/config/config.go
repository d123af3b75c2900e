package config

import (
	"fmt"
	"os"
	"strconv"
)

// Storage backends.
const (
	StorageJSON     = "json"
	StoragePostgres = "postgres"
)

// Config holds the application configuration loaded from environment
// variables.
type Config struct {
	ServerPort         string
	StorageBackend     string // "json" or "postgres"
	DataDir            string // directory for users.json / transactions.json
	RulesPath          string // category rules file, optional
	JWTSecretKey       string
	JWTExpirationHours int64
	PasswordHashScheme string // "sha256" or "bcrypt"
}

// Load reads the configuration from the environment, applying defaults
// for everything except the JWT secret.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		StorageBackend:     getEnv("STORAGE_BACKEND", StorageJSON),
		DataDir:            getEnv("DATA_DIR", "data"),
		RulesPath:          os.Getenv("RULES_PATH"),
		JWTSecretKey:       os.Getenv("JWT_SECRET_KEY"),
		PasswordHashScheme: getEnv("PASSWORD_HASH_SCHEME", "sha256"),
	}

	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}
	if cfg.StorageBackend != StorageJSON && cfg.StorageBackend != StoragePostgres {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q, use %q or %q", cfg.StorageBackend, StorageJSON, StoragePostgres)
	}

	expHours, err := strconv.ParseInt(getEnv("JWT_EXPIRATION_HOURS", "24"), 10, 64)
	if err != nil || expHours <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
	}
	cfg.JWTExpirationHours = expHours

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
