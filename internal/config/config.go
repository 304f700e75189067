package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds process-wide settings resolved from the environment.
type Config struct {
	AppName     string
	Port        string
	DatabaseURL string
	RedisURL    string

	JWTSecret    string
	JWTExpiresIn time.Duration

	OverpassURL string

	OpenAIKey   string
	OpenAIModel string

	SMTPHost     string
	SMTPPort     int
	MailUser     string
	MailPassword string

	SubmissionsPerHour int
}

// Get returns the value of key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid int key=%s value=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// GetDuration accepts Go durations ("90m") and the "<n>h" / "<n>d" shorthand
// commonly used for token lifetimes ("1d", "7d").
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}

	if strings.HasSuffix(v, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(v, "d"))
		if err == nil && days > 0 {
			return time.Duration(days) * 24 * time.Hour
		}
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("config: invalid duration key=%s value=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

// Load reads the full server configuration and validates required keys.
func Load() (Config, error) {
	cfg := Config{
		AppName:            Get("APP_NAME", "SafeCity"),
		Port:               Get("PORT", "5000"),
		DatabaseURL:        Get("DATABASE_URL", ""),
		RedisURL:           Get("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:          Get("JWT_SECRET", ""),
		JWTExpiresIn:       GetDuration("JWT_EXPIRES_IN", 24*time.Hour),
		OverpassURL:        Get("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		OpenAIKey:          Get("OPENAI_API_KEY", ""),
		OpenAIModel:        Get("OPENAI_MODEL", "gpt-4o-mini"),
		SMTPHost:           Get("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           GetInt("SMTP_PORT", 587),
		MailUser:           Get("GMAIL_USER", ""),
		MailPassword:       Get("GMAIL_APP_PASSWORD", ""),
		SubmissionsPerHour: GetInt("SUBMISSIONS_PER_HOUR", 20),
	}

	var errs []error
	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	return cfg, nil
}
