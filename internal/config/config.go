package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all process-wide settings. It is built once at startup and
// passed by injection; nothing reads the environment after Load returns.
type Config struct {
	MongoURI         string
	DBName           string
	Port             string
	JWTSecret        string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RegisterTokenTTL time.Duration
	RefreshTokenTTL  time.Duration
	SaltRounds       int
	Production       bool
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}

	cfg := Config{
		MongoURI:         getEnvOrDefault("MONGO_URI", ""),
		DBName:           getEnvOrDefault("DB_NAME", "app"),
		Port:             getEnvOrDefault("PORT", "8080"),
		JWTSecret:        getEnvOrDefault("JWT_SECRET", ""),
		JWTRefreshSecret: getEnvOrDefault("JWT_REFRESH_SECRET", ""),
		AccessTokenTTL:   getDurationEnv("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RegisterTokenTTL: getDurationEnv("JWT_EXPIRES_IN", 24*time.Hour),
		RefreshTokenTTL:  getDurationEnv("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
		SaltRounds:       getIntEnv("SALT_ROUNDS", 10),
		Production:       strings.EqualFold(getEnvOrDefault("APP_ENV", "development"), "production"),
	}

	if cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.JWTRefreshSecret == "" {
		return Config{}, fmt.Errorf("JWT_REFRESH_SECRET is required")
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := parseDuration(value); err == nil {
			return parsed
		}
		log.Printf("ignoring invalid duration %s=%q", key, value)
	}
	return defaultValue
}

// parseDuration accepts Go duration forms ("15m"), a day suffix ("7d"), or a
// bare integer meaning seconds.
func parseDuration(value string) (time.Duration, error) {
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	if strings.HasSuffix(value, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(value, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid day duration %q", value)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(value)
}
