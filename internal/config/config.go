package config

import (
	"os"
	"strings"
)

type Config struct {
	Port           string
	Postgres       PostgresConfig
	JWT            JWTConfig
	Email          EmailConfig
	AllowedOrigins []string
	LogLevel       string
	AuthRateLimit  RateLimitConfig
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     string
	RefreshTTL    string
}

type EmailConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

type RateLimitConfig struct {
	PerSecond string
	Burst     string
}

func Load() Config {
	return Config{
		Port: getenv("PORT", "8080"),
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		JWT: JWTConfig{
			AccessSecret:  os.Getenv("JWT_SECRET"),
			RefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
			AccessTTL:     getenv("ACCESS_TOKEN_EXPIRY", "15m"),
			RefreshTTL:    getenv("REFRESH_TOKEN_EXPIRY", "168h"),
		},
		Email: EmailConfig{
			Host:     os.Getenv("EMAIL_HOST"),
			Port:     getenv("EMAIL_PORT", "587"),
			User:     os.Getenv("EMAIL_USER"),
			Password: os.Getenv("EMAIL_PASSWORD"),
			From:     getenv("EMAIL_FROM", "noreply@booknest.local"),
		},
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		AuthRateLimit: RateLimitConfig{
			PerSecond: getenv("AUTH_RATE_LIMIT", "5"),
			Burst:     getenv("AUTH_RATE_BURST", "10"),
		},
	}
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
