// Package botlist maintains the exclusion set of known automated accounts,
// fetched from a remotely hosted JSON document with a bot_usernames array.
package botlist

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/onnwee/stream-tracker/telemetry"
)

// Cache holds the current exclusion set. Reload replaces the whole set; a
// failed fetch installs an empty set rather than keeping stale data.
type Cache struct {
	URL        string
	HTTPClient *http.Client

	mu    sync.RWMutex
	names map[string]struct{}
}

func New(url string) *Cache {
	return &Cache{URL: url, names: make(map[string]struct{})}
}

func (c *Cache) http() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// Reload fetches the exclusion document and replaces the current set with its
// contents, returning the new size. Transport failures and malformed payloads
// are logged and yield an empty set; they are never fatal.
func (c *Cache) Reload(ctx context.Context) int {
	set := make(map[string]struct{})
	defer func() {
		c.mu.Lock()
		c.names = set
		c.mu.Unlock()
		telemetry.CountBotlistReload(len(set))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		slog.Error("bot list request build failed", slog.Any("err", err))
		return 0
	}
	resp, err := c.http().Do(req)
	if err != nil {
		slog.Error("bot list fetch failed", slog.String("url", c.URL), slog.Any("err", err))
		return 0
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", slog.Any("err", err))
		}
	}()
	if resp.StatusCode != http.StatusOK {
		slog.Error("bot list fetch returned non-OK status", slog.String("status", resp.Status))
		return 0
	}
	var body struct {
		BotUsernames []string `json:"bot_usernames"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		slog.Error("bot list decode failed", slog.Any("err", err))
		return 0
	}
	for _, name := range body.BotUsernames {
		set[strings.ToLower(name)] = struct{}{}
	}
	slog.Info("bots to ignore loaded", slog.Int("count", len(set)))
	return len(set)
}

// IsExcluded reports whether identity is in the exclusion set. Matching is
// case-insensitive.
func (c *Cache) IsExcluded(identity string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.names[strings.ToLower(identity)]
	return ok
}

// Size returns the number of excluded identities currently loaded.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.names)
}
