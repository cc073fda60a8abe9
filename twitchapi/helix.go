// Package twitchapi contains minimal helpers to interact with the Twitch
// Helix API for live stream metadata, using an app access token.
package twitchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.twitch.tv"

// HelixClient provides the single Helix call the tracker needs.
type HelixClient struct {
	TokenSource *TokenSource
	ClientID    string
	HTTPClient  *http.Client
	BaseURL     string // overridable for tests
}

// Stream is the live stream metadata for one channel.
type Stream struct {
	Title       string
	ViewerCount int
	StartedAt   time.Time
}

func (hc *HelixClient) http() *http.Client {
	if hc.HTTPClient != nil {
		return hc.HTTPClient
	}
	return http.DefaultClient
}

func (hc *HelixClient) baseURL() string {
	if hc.BaseURL != "" {
		return hc.BaseURL
	}
	return defaultBaseURL
}

// GetStream looks up the live stream for a login name. It returns (nil, nil)
// when the channel is offline.
func (hc *HelixClient) GetStream(ctx context.Context, login string) (*Stream, error) {
	if login == "" {
		return nil, fmt.Errorf("login empty")
	}
	tok, err := hc.TokenSource.Get(ctx)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hc.baseURL()+"/helix/streams", nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("user_login", login)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Client-Id", hc.ClientID)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := hc.http().Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", slog.Any("err", err))
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("helix streams request failed: %s", resp.Status)
	}
	var body struct {
		Data []struct {
			Title       string `json:"title"`
			ViewerCount int    `json:"viewer_count"`
			StartedAt   string `json:"started_at"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if len(body.Data) == 0 {
		return nil, nil
	}
	d := body.Data[0]
	startedAt, _ := time.Parse(time.RFC3339, d.StartedAt)
	return &Stream{Title: d.Title, ViewerCount: d.ViewerCount, StartedAt: startedAt}, nil
}

// ViewerCount reports the live viewer count for a login name, with live=false
// when the channel is offline.
func (hc *HelixClient) ViewerCount(ctx context.Context, login string) (int, bool, error) {
	s, err := hc.GetStream(ctx, login)
	if err != nil {
		return 0, false, err
	}
	if s == nil {
		return 0, false, nil
	}
	return s.ViewerCount, true, nil
}
