// Package discord adapts the Discord gateway as the bot's control and output
// surfaces: the track channel feeds the link watcher, the output channel
// receives reports.
package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/onnwee/stream-tracker/linkwatch"
	"github.com/onnwee/stream-tracker/telemetry"
)

// Notifier posts report lines to the output channel. Send failures (rate
// limits, permissions, transient HTTP errors) are logged and swallowed so a
// failed delivery never aborts a tracking cycle.
type Notifier struct {
	session   *discordgo.Session
	channelID string
}

func (n *Notifier) Send(text string) {
	if _, err := n.session.ChannelMessageSend(n.channelID, text); err != nil {
		telemetry.CountSendFailure()
		slog.Error("failed to send discord message", slog.String("channel", n.channelID), slog.Any("err", err))
	}
}

// Bot owns the gateway session and routes message events to the link watcher.
type Bot struct {
	session *discordgo.Session
	watcher *linkwatch.Watcher
	out     *Notifier
	ctx     context.Context
}

// New builds a gateway session with message-content intents and a message
// cache large enough to resolve deleted-message content (the delete event
// itself carries no body).
func New(token, outputChannelID string, watcher *linkwatch.Watcher) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent
	session.State.MaxMessageCount = 5000
	b := &Bot{
		session: session,
		watcher: watcher,
		out:     &Notifier{session: session, channelID: outputChannelID},
	}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onMessageDelete)
	return b, nil
}

// Notifier returns the output channel surface.
func (b *Bot) Notifier() *Notifier {
	return b.out
}

// Start opens the gateway connection and closes it when ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	b.ctx = ctx
	if err := b.session.Open(); err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		if err := b.session.Close(); err != nil {
			slog.Error("failed to close discord session", slog.Any("err", err))
		}
	}()
	return nil
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	// The watcher needs our own user id to drop self-authored messages.
	b.watcher.SelfID = r.User.ID
	slog.Info("logged in to discord", slog.String("user", r.User.Username))
	b.out.Send("Bot is online and ready!")
}

func (b *Bot) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}
	b.watcher.HandleMessageCreate(b.ctx, m.ChannelID, m.Author.ID, m.Content)
}

func (b *Bot) onMessageDelete(_ *discordgo.Session, m *discordgo.MessageDelete) {
	content := m.Content
	if m.BeforeDelete != nil {
		content = m.BeforeDelete.Content
	}
	if content == "" {
		// Message fell out of the state cache; nothing to match against.
		slog.Debug("deleted message content unavailable", slog.String("channel", m.ChannelID))
		return
	}
	b.watcher.HandleMessageDelete(b.ctx, m.ChannelID, content)
}
