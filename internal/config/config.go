package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the bot
type Config struct {
	// Discord
	DiscordToken string

	// Guild objects the bot operates on
	StaffRoleID         string
	TicketCategoryID    string
	TicketLogsChannelID string
	WelcomeChannelID    string

	// Channel exempt from the invite-link filter (optional)
	InviteAllowedChannelID string

	// Minecraft server shown by /server
	ServerDomain string

	// Database
	DatabasePath string

	// Giveaway expiry scan
	GiveawayScanSeconds int

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:           os.Getenv("DISCORD_TOKEN"),
		StaffRoleID:            os.Getenv("STAFF_ROLE_ID"),
		TicketCategoryID:       os.Getenv("TICKET_CATEGORY_ID"),
		TicketLogsChannelID:    os.Getenv("TICKET_LOGS_CHANNEL_ID"),
		WelcomeChannelID:       os.Getenv("WELCOME_CHANNEL_ID"),
		InviteAllowedChannelID: os.Getenv("INVITE_ALLOWED_CHANNEL_ID"),
		ServerDomain:           getEnvOrDefault("SERVER_DOMAIN", "veryx.us"),
		DatabasePath:           getEnvOrDefault("DATABASE_PATH", "./data/bot.db"),
		LogLevel:               getEnvOrDefault("LOG_LEVEL", "info"),
	}

	scanStr := getEnvOrDefault("GIVEAWAY_SCAN_SECONDS", "30")
	scan, err := strconv.Atoi(scanStr)
	if err != nil {
		return nil, fmt.Errorf("invalid GIVEAWAY_SCAN_SECONDS: %w", err)
	}
	cfg.GiveawayScanSeconds = scan

	// Validate required fields
	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}

	// Discord snowflakes arrive as decimal strings; a missing or malformed
	// id is a fatal startup condition.
	required := []struct {
		key   string
		value string
	}{
		{"STAFF_ROLE_ID", cfg.StaffRoleID},
		{"TICKET_CATEGORY_ID", cfg.TicketCategoryID},
		{"TICKET_LOGS_CHANNEL_ID", cfg.TicketLogsChannelID},
		{"WELCOME_CHANNEL_ID", cfg.WelcomeChannelID},
	}
	for _, field := range required {
		if err := validateSnowflake(field.value); err != nil {
			return nil, fmt.Errorf("%s: %w", field.key, err)
		}
	}

	if cfg.InviteAllowedChannelID != "" {
		if err := validateSnowflake(cfg.InviteAllowedChannelID); err != nil {
			return nil, fmt.Errorf("INVITE_ALLOWED_CHANNEL_ID: %w", err)
		}
	}

	return cfg, nil
}

func validateSnowflake(value string) error {
	if value == "" {
		return fmt.Errorf("required id is not set")
	}
	if _, err := strconv.ParseUint(value, 10, 64); err != nil {
		return fmt.Errorf("not a valid Discord id: %q", value)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
