package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TRACK_CHANNEL_ID", "123456789012345678")
	t.Setenv("OUTPUT_CHANNEL_ID", "876543210987654321")
}

func TestLoadRequiresChannelIDs(t *testing.T) {
	tests := []struct {
		name   string
		track  string
		output string
	}{
		{name: "both missing"},
		{name: "track missing", output: "876543210987654321"},
		{name: "output missing", track: "123456789012345678"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TRACK_CHANNEL_ID", tt.track)
			t.Setenv("OUTPUT_CHANNEL_ID", tt.output)
			if _, err := Load(); err == nil {
				t.Fatal("expected error for missing channel IDs")
			}
		})
	}
}

func TestLoadRejectsNonNumericChannelID(t *testing.T) {
	t.Setenv("TRACK_CHANNEL_ID", "general")
	t.Setenv("OUTPUT_CHANNEL_ID", "876543210987654321")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric channel ID")
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ReportInterval != 1200*time.Second {
		t.Errorf("ReportInterval=%v want 1200s", cfg.ReportInterval)
	}
	if cfg.BotListURL != DefaultBotListURL {
		t.Errorf("BotListURL=%q want default", cfg.BotListURL)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr=%q want :8080", cfg.HTTPAddr)
	}
}

func TestLoadReportInterval(t *testing.T) {
	setRequired(t)
	t.Setenv("REPORT_INTERVAL", "90s")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ReportInterval != 90*time.Second {
		t.Errorf("ReportInterval=%v want 90s", cfg.ReportInterval)
	}

	t.Setenv("REPORT_INTERVAL", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid REPORT_INTERVAL")
	}

	t.Setenv("REPORT_INTERVAL", "-5m")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative REPORT_INTERVAL")
	}
}

func TestValidateChatReady(t *testing.T) {
	setRequired(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.ValidateChatReady(); err == nil {
		t.Fatal("expected error without twitch chat creds")
	}

	t.Setenv("TWITCH_NICKNAME", "trackerbot")
	t.Setenv("TWITCH_OAUTH_TOKEN", "oauth:secret")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.ValidateChatReady(); err != nil {
		t.Fatalf("ValidateChatReady() error = %v", err)
	}
}
