package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onnwee/stream-tracker/linkwatch"
)

// Drives the whole link lifecycle through the watcher: posting a twitch.tv
// link starts tracking, deleting it stops tracking and emits the summary.
func TestLinkLifecycle(t *testing.T) {
	coord, out, joiner, _, _, clock := newFixture()
	ctx := context.Background()
	w := &linkwatch.Watcher{TrackChannelID: "111", SelfID: "bot", Registry: coord}

	w.HandleMessageCreate(ctx, "111", "user", "going live! twitch.tv/exampleUser")
	clock.BlockUntil(1)

	require.Contains(t, out.messages(), "Started tracking exampleuser.")
	assert.Equal(t, []string{"exampleuser"}, joiner.joined)

	w.HandleMessageDelete(ctx, "111", "going live! twitch.tv/exampleUser")

	msgs := out.messages()
	i := indexOf(msgs, "Stopped tracking exampleuser as the link was removed.")
	require.GreaterOrEqual(t, i, 0)
	require.Len(t, msgs, i+4)
	assert.Equal(t, "No users appeared in only one list.", msgs[i+1])
	assert.Equal(t, "No users appeared in more than one list.", msgs[i+2])
	assert.Equal(t, "No users raided the channel.", msgs[i+3])
	assert.Equal(t, []string{"exampleuser"}, joiner.departed)

	// Deleting the same link again is a no-op.
	w.HandleMessageDelete(ctx, "111", "going live! twitch.tv/exampleUser")
	assert.Len(t, out.messages(), len(msgs))
}
