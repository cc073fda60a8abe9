// Package linkwatch turns control channel messages into tracking commands:
// a posted twitch.tv link starts a session, deleting that message stops it.
package linkwatch

import (
	"context"
	"log/slog"
	"strings"
	"unicode"
)

const marker = "twitch.tv/"

// Registry is the session registry the watcher drives.
type Registry interface {
	Start(ctx context.Context, stream string) bool
	Stop(ctx context.Context, stream string) bool
}

// ExtractStream pulls the stream name out of a message containing a twitch.tv
// link: the path segment after the last marker occurrence, up to the next
// whitespace, lower-cased. Returns false when the message carries no link.
func ExtractStream(content string) (string, bool) {
	i := strings.LastIndex(content, marker)
	if i < 0 {
		return "", false
	}
	rest := content[i+len(marker):]
	if j := strings.IndexFunc(rest, unicode.IsSpace); j >= 0 {
		rest = rest[:j]
	}
	if rest == "" {
		return "", false
	}
	// Twitch logins are case-insensitive; canonicalize so the registry key
	// and the exclusion comparisons agree.
	return strings.ToLower(rest), true
}

// Watcher inspects message events on the configured track channel.
type Watcher struct {
	TrackChannelID string
	SelfID         string
	Registry       Registry
}

// HandleMessageCreate starts tracking when a twitch.tv link appears on the
// track channel. Self-authored messages and other channels are ignored.
func (w *Watcher) HandleMessageCreate(ctx context.Context, channelID, authorID, content string) {
	if channelID != w.TrackChannelID {
		return
	}
	if w.SelfID != "" && authorID == w.SelfID {
		return
	}
	stream, ok := ExtractStream(content)
	if !ok {
		return
	}
	if w.Registry.Start(ctx, stream) {
		slog.Info("link posted", slog.String("stream", stream))
	}
}

// HandleMessageDelete stops tracking when a message carrying the stream's
// link is deleted from the track channel.
func (w *Watcher) HandleMessageDelete(ctx context.Context, channelID, content string) {
	if channelID != w.TrackChannelID {
		return
	}
	stream, ok := ExtractStream(content)
	if !ok {
		return
	}
	if w.Registry.Stop(ctx, stream) {
		slog.Info("link removed", slog.String("stream", stream))
	}
}
