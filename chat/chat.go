package chat

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	twitch "github.com/gempir/go-twitch-irc/v4"
	"github.com/jonboulle/clockwork"
)

// Recorder receives chat activity routed by stream name.
type Recorder interface {
	Observe(stream, identity string)
	RecordRaid(stream, raider string, viewers int)
}

// Client wraps the Twitch IRC connection: it records message authors against
// their stream, detects raids from USERNOTICE tags, and reconnects with
// capped backoff when the connection drops.
type Client struct {
	irc   *twitch.Client
	nick  string
	clock clockwork.Clock
}

// New builds a connected-capabilities IRC client delivering events to rec.
func New(nick, oauthToken string, rec Recorder, clock clockwork.Clock) *Client {
	irc := twitch.NewClient(nick, oauthToken)
	// Tags and commands carry the USERNOTICE metadata raids arrive on.
	irc.Capabilities = []string{twitch.TagsCapability, twitch.CommandsCapability, twitch.MembershipCapability}

	irc.OnConnect(func() {
		slog.Info("logged in to twitch chat", slog.String("nick", nick))
	})
	irc.OnPrivateMessage(func(msg twitch.PrivateMessage) {
		// The IRC connection has no echo flag; skip our own messages by login.
		if strings.EqualFold(msg.User.Name, nick) {
			return
		}
		rec.Observe(strings.ToLower(msg.Channel), msg.User.Name)
	})
	irc.OnUserNoticeMessage(func(msg twitch.UserNoticeMessage) {
		raider, viewers, ok := parseRaid(msg)
		if !ok {
			return
		}
		rec.RecordRaid(strings.ToLower(msg.Channel), raider, viewers)
	})

	return &Client{irc: irc, nick: nick, clock: clock}
}

// parseRaid extracts the raider display name and viewer count from a raid
// USERNOTICE. Non-raid notices return ok=false.
func parseRaid(msg twitch.UserNoticeMessage) (raider string, viewers int, ok bool) {
	if msg.MsgID != "raid" {
		return "", 0, false
	}
	raider = msg.User.DisplayName
	if raider == "" {
		raider = msg.Tags["display-name"]
	}
	viewers, _ = strconv.Atoi(msg.MsgParams["msg-param-viewerCount"])
	return raider, viewers, true
}

// Join enters a stream's chat channel.
func (c *Client) Join(stream string) {
	c.irc.Join(stream)
}

// Depart leaves a stream's chat channel.
func (c *Client) Depart(stream string) {
	c.irc.Depart(stream)
}

// Run connects and keeps the connection alive until ctx is cancelled. Every
// drop triggers a reconnect after a capped backoff delay; there is no give-up
// condition, matching long-running unattended operation.
func (c *Client) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		if err := c.irc.Disconnect(); err != nil {
			slog.Debug("twitch chat disconnect", slog.Any("err", err))
		}
	}()

	for attempt := 1; ; attempt++ {
		connectedAt := c.clock.Now()
		err := c.irc.Connect()
		if ctx.Err() != nil || errors.Is(err, twitch.ErrClientDisconnected) {
			return
		}
		// A connection that held for a while resets the backoff.
		if c.clock.Since(connectedAt) > time.Minute {
			attempt = 1
		}
		delay := ReconnectDelay(attempt)
		slog.Error("twitch chat connection lost; reconnecting",
			slog.Int("attempt", attempt), slog.Duration("delay", delay), slog.Any("err", err))
		select {
		case <-ctx.Done():
			return
		case <-c.clock.After(delay):
		}
	}
}
