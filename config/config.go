// Package config loads environment variables and provides a typed Config used
// across the service. The two Discord channel IDs are required; everything
// else has a default or disables a feature when absent.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultBotListURL is the upstream document listing known bot accounts.
const DefaultBotListURL = "https://raw.githubusercontent.com/HZRD-Media/Twitch-Viewer-Tracker-Discord-Bot/main/bot_usernames.json"

type Config struct {
	// Discord
	DiscordToken    string
	TrackChannelID  string
	OutputChannelID string

	// Twitch
	TwitchClientID     string
	TwitchClientSecret string
	TwitchOAuthToken   string
	TwitchNickname     string

	// Tracking
	BotListURL     string
	ReportInterval time.Duration

	// HTTP
	HTTPAddr string
}

// Load reads environment variables. It fails when either channel ID is
// missing or non-numeric; missing Twitch chat credentials merely disable the
// chat listener (use ValidateChatReady when you require it).
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.DiscordToken = os.Getenv("DISCORD_TOKEN")
	cfg.TrackChannelID = os.Getenv("TRACK_CHANNEL_ID")
	cfg.OutputChannelID = os.Getenv("OUTPUT_CHANNEL_ID")
	if cfg.TrackChannelID == "" || cfg.OutputChannelID == "" {
		return nil, fmt.Errorf("missing discord env: require TRACK_CHANNEL_ID, OUTPUT_CHANNEL_ID")
	}
	for _, id := range []string{cfg.TrackChannelID, cfg.OutputChannelID} {
		if _, err := strconv.ParseUint(id, 10, 64); err != nil {
			return nil, fmt.Errorf("channel id %q is not a discord snowflake: %w", id, err)
		}
	}

	cfg.TwitchClientID = os.Getenv("TWITCH_CLIENT_ID")
	cfg.TwitchClientSecret = os.Getenv("TWITCH_CLIENT_SECRET")
	cfg.TwitchOAuthToken = os.Getenv("TWITCH_OAUTH_TOKEN")
	cfg.TwitchNickname = os.Getenv("TWITCH_NICKNAME")

	cfg.BotListURL = os.Getenv("BOT_LIST_URL")
	if cfg.BotListURL == "" {
		cfg.BotListURL = DefaultBotListURL
	}

	cfg.ReportInterval = 1200 * time.Second
	if v := os.Getenv("REPORT_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid REPORT_INTERVAL %q", v)
		}
		cfg.ReportInterval = d
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	return cfg, nil
}

// ValidateChatReady checks the fields required to connect to Twitch chat.
func (c *Config) ValidateChatReady() error {
	if c.TwitchNickname == "" || c.TwitchOAuthToken == "" {
		return fmt.Errorf("missing twitch env: require TWITCH_NICKNAME, TWITCH_OAUTH_TOKEN")
	}
	return nil
}
