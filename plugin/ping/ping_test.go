package ping

import (
	"testing"
	"time"

	"github.com/Brawl345/raven/plugin/plugintest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	conn := &plugintest.Conn{}
	ev := plugintest.PrivateEvent(".ping")

	require.NoError(t, onPing(plugintest.NewContext(conn, plugintest.NewSettings(), ev)))
	assert.Equal(t, "🏓 Pong!", conn.LastReply())

	ev.Time = time.Now().Add(-time.Second)
	require.NoError(t, onPing(plugintest.NewContext(conn, plugintest.NewSettings(), ev)))
	assert.Contains(t, conn.LastReply(), "🏓 Pong! <code>1")
}
