// Command stream-tracker bridges Twitch chat activity into a Discord channel.
// It:
//   - Watches a Discord control channel for twitch.tv links and starts a
//     tracking session per linked stream; deleting the link stops the session
//     and posts an end-of-session summary.
//   - Periodically reports the distinct chatters seen in each tracked stream
//     (minus known bots) together with the live viewer count.
//   - Thanks raiders as raids arrive.
//   - Exposes a minimal HTTP server with /healthz, /status, and /metrics.
//
// Shutdown is graceful on SIGINT/SIGTERM.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/onnwee/stream-tracker/botlist"
	"github.com/onnwee/stream-tracker/chat"
	"github.com/onnwee/stream-tracker/config"
	"github.com/onnwee/stream-tracker/discord"
	"github.com/onnwee/stream-tracker/linkwatch"
	"github.com/onnwee/stream-tracker/server"
	"github.com/onnwee/stream-tracker/telemetry"
	"github.com/onnwee/stream-tracker/tracker"
	"github.com/onnwee/stream-tracker/twitchapi"
)

func main() {
	// Load .env file if present (local dev convenience only; production relies on real env)
	_ = godotenv.Load(".env")

	// Configure logging (level + format). Defaults: level=info, format=text.
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "info", "":
		// keep default
	default:
		tmp := slog.New(slog.NewTextHandler(os.Stdout, nil))
		tmp.Warn("unknown LOG_LEVEL, using info", slog.String("value", os.Getenv("LOG_LEVEL")))
	}
	var handler slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))

	// Config: missing channel IDs abort startup.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	// Metrics / telemetry init
	telemetry.Init()
	shutdownTracing, err := telemetry.InitTracing("stream-tracker", "1.0.0")
	if err != nil {
		slog.Error("tracing initialization failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer shutdownTracing()

	// Root context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Exclusion list: best-effort initial load; failures leave an empty set.
	bots := botlist.New(cfg.BotListURL)
	loadCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	bots.Reload(loadCtx)
	cancel()

	helix := &twitchapi.HelixClient{
		TokenSource: twitchapi.NewTokenSource(cfg.TwitchClientID, cfg.TwitchClientSecret),
		ClientID:    cfg.TwitchClientID,
	}

	clock := clockwork.NewRealClock()

	// The coordinator needs the output surface and the IRC client; the IRC
	// client needs the coordinator. Wire the notifier in after the Discord
	// session exists.
	var coord *tracker.Coordinator
	ircClient := chat.New(cfg.TwitchNickname, cfg.TwitchOAuthToken, recorderFunc{
		observe: func(stream, identity string) { coord.Observe(stream, identity) },
		raid:    func(stream, raider string, viewers int) { coord.RecordRaid(stream, raider, viewers) },
	}, clock)

	watcher := &linkwatch.Watcher{TrackChannelID: cfg.TrackChannelID}
	bot, err := discord.New(cfg.DiscordToken, cfg.OutputChannelID, watcher)
	if err != nil {
		slog.Error("discord session init failed", slog.Any("err", err))
		os.Exit(1)
	}

	coord = tracker.NewCoordinator(bot.Notifier(), ircClient, helix, bots, clock, cfg.ReportInterval)
	watcher.Registry = coord

	if err := cfg.ValidateChatReady(); err != nil {
		slog.Warn("twitch chat disabled", slog.Any("err", err))
	} else {
		go ircClient.Run(ctx)
	}

	if err := bot.Start(ctx); err != nil {
		slog.Error("discord connect failed", slog.Any("err", err))
		os.Exit(1)
	}

	go func() {
		if err := server.Start(ctx, coord, bots, cfg.HTTPAddr); err != nil {
			slog.Error("http server exited with error", slog.Any("err", err))
		}
	}()

	// Block until shutdown signal
	<-ctx.Done()
	slog.Info("shutting down")
}

// recorderFunc adapts closures to the chat.Recorder interface, breaking the
// construction cycle between the IRC client and the coordinator.
type recorderFunc struct {
	observe func(stream, identity string)
	raid    func(stream, raider string, viewers int)
}

func (r recorderFunc) Observe(stream, identity string) { r.observe(stream, identity) }

func (r recorderFunc) RecordRaid(stream, raider string, viewers int) { r.raid(stream, raider, viewers) }
