package linkwatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractStream(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		ok      bool
	}{
		{name: "bare link", content: "twitch.tv/exampleUser", want: "exampleuser", ok: true},
		{name: "full url", content: "check out https://www.twitch.tv/SomeStreamer tonight", want: "somestreamer", ok: true},
		{name: "trailing text after whitespace", content: "twitch.tv/alice is live", want: "alice", ok: true},
		{name: "last link wins", content: "twitch.tv/first then twitch.tv/second", want: "second", ok: true},
		{name: "no marker", content: "just a normal message", ok: false},
		{name: "marker with empty segment", content: "love twitch.tv/ in general", ok: false},
		{name: "marker at end", content: "twitch.tv/", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractStream(tt.content)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

type fakeRegistry struct {
	started []string
	stopped []string
}

func (f *fakeRegistry) Start(_ context.Context, stream string) bool {
	f.started = append(f.started, stream)
	return true
}

func (f *fakeRegistry) Stop(_ context.Context, stream string) bool {
	f.stopped = append(f.stopped, stream)
	return true
}

func TestHandleMessageCreateStartsTracking(t *testing.T) {
	reg := &fakeRegistry{}
	w := &Watcher{TrackChannelID: "111", SelfID: "bot", Registry: reg}

	w.HandleMessageCreate(context.Background(), "111", "user", "twitch.tv/exampleUser")

	assert.Equal(t, []string{"exampleuser"}, reg.started)
}

func TestHandleMessageCreateIgnoresSelf(t *testing.T) {
	reg := &fakeRegistry{}
	w := &Watcher{TrackChannelID: "111", SelfID: "bot", Registry: reg}

	w.HandleMessageCreate(context.Background(), "111", "bot", "twitch.tv/exampleUser")

	assert.Empty(t, reg.started)
}

func TestHandleMessageCreateIgnoresOtherChannels(t *testing.T) {
	reg := &fakeRegistry{}
	w := &Watcher{TrackChannelID: "111", Registry: reg}

	w.HandleMessageCreate(context.Background(), "222", "user", "twitch.tv/exampleUser")

	assert.Empty(t, reg.started)
}

func TestHandleMessageCreateIgnoresPlainMessages(t *testing.T) {
	reg := &fakeRegistry{}
	w := &Watcher{TrackChannelID: "111", Registry: reg}

	w.HandleMessageCreate(context.Background(), "111", "user", "no links here")

	assert.Empty(t, reg.started)
}

func TestHandleMessageDeleteStopsTracking(t *testing.T) {
	reg := &fakeRegistry{}
	w := &Watcher{TrackChannelID: "111", Registry: reg}

	w.HandleMessageDelete(context.Background(), "111", "twitch.tv/exampleUser")
	w.HandleMessageDelete(context.Background(), "222", "twitch.tv/other")

	assert.Equal(t, []string{"exampleuser"}, reg.stopped)
}
