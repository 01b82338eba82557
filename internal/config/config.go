package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Sentinel backend
	APIBaseURL string
	SocketURL  string

	// Generative AI endpoint (OpenAI-compatible)
	AIAPIKey  string
	AIBaseURL string
	AIModel   string

	// Local persistence
	DBPath string

	// View-model tuning
	PageSize       int
	AlertWindow    int  // rolling realtime alert window
	LiveAlertCount int  // alerts kept by the demo rotation
	DemoAlerts     bool // rotate the canned alert pool

	// AI-detection display constants (client-side until the backend
	// computes them)
	AIGeneratedShare  float64
	DetectionAccuracy float64

	// Evidence pack export
	StorageAccount   string
	StorageContainer string
	ExportDir        string

	// Alert notifications
	AlertWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:5000/api"),
		SocketURL:  getEnv("SOCKET_URL", "ws://localhost:5000/ws"),

		AIAPIKey:  getEnv("AI_API_KEY", ""),
		AIBaseURL: getEnv("AI_BASE_URL", ""),
		AIModel:   getEnv("AI_MODEL", "gpt-4o-mini"),

		DBPath: getEnv("DB_PATH", "data/sentinel.db"),

		PageSize:       getIntEnv("PAGE_SIZE", 10),
		AlertWindow:    getIntEnv("ALERT_WINDOW", 30),
		LiveAlertCount: getIntEnv("LIVE_ALERT_COUNT", 5),
		DemoAlerts:     getBoolEnv("DEMO_ALERTS", true),

		AIGeneratedShare:  getFloatEnv("AI_GENERATED_SHARE", 0.3),
		DetectionAccuracy: getFloatEnv("DETECTION_ACCURACY", 96.2),

		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "evidence-packs"),
		ExportDir:        getEnv("EXPORT_DIR", "exports"),

		AlertWebhookURL:   getEnv("ALERT_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}

	if !strings.HasPrefix(c.SocketURL, "ws://") && !strings.HasPrefix(c.SocketURL, "wss://") {
		return fmt.Errorf("SOCKET_URL must be a ws:// or wss:// URL")
	}

	if c.PageSize < 1 {
		return fmt.Errorf("PAGE_SIZE must be at least 1")
	}

	if c.AlertWindow < 5 || c.AlertWindow > 30 {
		return fmt.Errorf("ALERT_WINDOW must be between 5 and 30")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
