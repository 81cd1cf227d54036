package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultMenuAPIBaseURL is the Jordan School District Nutrislice endpoint the
// service proxies. The path template is <base>/<mealType>/<YYYY/MM/DD>.
const DefaultMenuAPIBaseURL = "https://jordandistrict.api.nutrislice.com/menu/api/weeks/school/rosamond/menu-type"

// Config holds the configuration for the application.
type Config struct {
	MenuAPIBaseURL string
	DatabasePath   string
	Port           string

	// Telegram Config (optional for the HTTP server, required for the bot)
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	baseURL := os.Getenv("MENU_API_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultMenuAPIBaseURL
	}

	dbPath := os.Getenv("SCHOOL_MENU_DB_PATH")
	if dbPath == "" {
		dbPath = "data/school-menu.db"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	var allowedIDs []int64
	if raw := os.Getenv("TELEGRAM_ALLOW_USER_IDS"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid TELEGRAM_ALLOW_USER_IDS entry %q: %w", part, err)
			}
			allowedIDs = append(allowedIDs, id)
		}
	}

	var adminID int64
	if raw := os.Getenv("ADMIN_TELEGRAM_ID"); raw != "" {
		var err error
		adminID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID %q: %w", raw, err)
		}
	}

	return &Config{
		MenuAPIBaseURL:         baseURL,
		DatabasePath:           dbPath,
		Port:                   port,
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowedIDs,
		AdminTelegramID:        adminID,
	}, nil
}

// ValidateTelegram checks the settings the bot entrypoint cannot run without.
func (c *Config) ValidateTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	return nil
}
