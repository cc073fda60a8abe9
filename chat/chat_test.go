package chat

import (
	"testing"

	twitch "github.com/gempir/go-twitch-irc/v4"
)

func TestParseRaid(t *testing.T) {
	tests := []struct {
		name        string
		msg         twitch.UserNoticeMessage
		wantRaider  string
		wantViewers int
		wantOK      bool
	}{
		{
			name: "raid with display name",
			msg: twitch.UserNoticeMessage{
				MsgID:     "raid",
				User:      twitch.User{Name: "raider", DisplayName: "Raider"},
				MsgParams: map[string]string{"msg-param-viewerCount": "25"},
			},
			wantRaider:  "Raider",
			wantViewers: 25,
			wantOK:      true,
		},
		{
			name: "display name only in tags",
			msg: twitch.UserNoticeMessage{
				MsgID:     "raid",
				Tags:      map[string]string{"display-name": "TagRaider"},
				MsgParams: map[string]string{"msg-param-viewerCount": "3"},
			},
			wantRaider:  "TagRaider",
			wantViewers: 3,
			wantOK:      true,
		},
		{
			name: "missing viewer count defaults to zero",
			msg: twitch.UserNoticeMessage{
				MsgID: "raid",
				User:  twitch.User{DisplayName: "Raider"},
			},
			wantRaider: "Raider",
			wantOK:     true,
		},
		{
			name: "other notice types ignored",
			msg: twitch.UserNoticeMessage{
				MsgID: "sub",
				User:  twitch.User{DisplayName: "Subscriber"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raider, viewers, ok := parseRaid(tt.msg)
			if ok != tt.wantOK {
				t.Fatalf("ok=%v want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if raider != tt.wantRaider {
				t.Errorf("raider=%q want %q", raider, tt.wantRaider)
			}
			if viewers != tt.wantViewers {
				t.Errorf("viewers=%d want %d", viewers, tt.wantViewers)
			}
		})
	}
}
