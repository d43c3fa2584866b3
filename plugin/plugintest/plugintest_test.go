package plugintest

import (
	"context"
	"testing"

	"github.com/Brawl345/raven/plugin"
	"github.com/stretchr/testify/assert"
)

func TestConnRefusesDoneContext(t *testing.T) {
	conn := &Conn{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ev := GroupEvent("hi")
	assert.ErrorIs(t, conn.Reply(ctx, ev, "a"), context.Canceled)
	assert.ErrorIs(t, conn.Send(ctx, ev.ChatID, "b"), context.Canceled)
	assert.ErrorIs(t, conn.SendMedia(ctx, ev.ChatID, plugin.Media{Kind: plugin.MediaPhoto}, "c"), context.Canceled)
	assert.ErrorIs(t, conn.Delete(ctx, ev), context.Canceled)

	assert.Empty(t, conn.Replies())
	assert.Empty(t, conn.Sent())
	assert.Empty(t, conn.Deleted())
}

func TestNewContextMarksOwners(t *testing.T) {
	ev := GroupEvent(".id")
	assert.False(t, NewContext(&Conn{}, NewSettings(), ev).IsOwner)

	ev.SenderID = "owner"
	assert.True(t, NewContext(&Conn{}, NewSettings(), ev).IsOwner)
}
