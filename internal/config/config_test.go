package config

import (
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("STAFF_ROLE_ID", "111111111111111111")
	t.Setenv("TICKET_CATEGORY_ID", "222222222222222222")
	t.Setenv("TICKET_LOGS_CHANNEL_ID", "333333333333333333")
	t.Setenv("WELCOME_CHANNEL_ID", "444444444444444444")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DatabasePath != "./data/bot.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.ServerDomain != "veryx.us" {
		t.Errorf("ServerDomain = %q", cfg.ServerDomain)
	}
	if cfg.GiveawayScanSeconds != 30 {
		t.Errorf("GiveawayScanSeconds = %d, want 30", cfg.GiveawayScanSeconds)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadMissingToken(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DISCORD_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Error("expected error for missing token")
	}
}

func TestLoadRequiredIDs(t *testing.T) {
	keys := []string{
		"STAFF_ROLE_ID",
		"TICKET_CATEGORY_ID",
		"TICKET_LOGS_CHANNEL_ID",
		"WELCOME_CHANNEL_ID",
	}

	for _, key := range keys {
		t.Run(key+" missing", func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(key, "")

			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), key) {
				t.Errorf("error %q does not name %s", err, key)
			}
		})

		t.Run(key+" malformed", func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(key, "not-a-snowflake")

			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadInvalidScanInterval(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GIVEAWAY_SCAN_SECONDS", "often")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid scan interval")
	}
}

func TestLoadOptionalInviteChannel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("INVITE_ALLOWED_CHANNEL_ID", "555555555555555555")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InviteAllowedChannelID != "555555555555555555" {
		t.Errorf("InviteAllowedChannelID = %q", cfg.InviteAllowedChannelID)
	}

	t.Setenv("INVITE_ALLOWED_CHANNEL_ID", "nope")
	if _, err := Load(); err == nil {
		t.Error("expected error for malformed optional id")
	}
}
