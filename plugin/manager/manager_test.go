package manager

import (
	"context"
	"errors"
	"testing"

	"github.com/Brawl345/raven/bot"
	"github.com/Brawl345/raven/plugin"
	"github.com/Brawl345/raven/plugin/plugintest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatsCommands struct {
	err error
}

func (s *chatsCommands) Disable(context.Context, string, string) error { return s.err }
func (s *chatsCommands) Enable(context.Context, string, string) error  { return s.err }
func (s *chatsCommands) GetAllDisabled(context.Context) (map[string][]string, error) {
	return map[string][]string{}, nil
}

func setup(t *testing.T) (*Plugin, *bot.ManagerService, *chatsCommands) {
	t.Helper()
	registry := bot.NewRegistry()
	store := &chatsCommands{}
	service, err := bot.NewManagerService(context.Background(), store, registry)
	require.NoError(t, err)

	p := New(service)
	service.Protect(p.ProtectedCommands()...)
	require.NoError(t, registry.RegisterAll(p.Commands()...))
	require.NoError(t, registry.Register(&plugin.Command{
		Match: plugin.ExactSet("monsterinfo", "minfo"),
		Run:   func(*plugin.Context) error { return nil },
	}))
	return p, service, store
}

func call(t *testing.T, handler plugin.HandlerFunc, args ...string) string {
	t.Helper()
	conn := &plugintest.Conn{}
	require.NoError(t, handler(plugintest.NewContext(conn, plugintest.NewSettings(), plugintest.GroupEvent(""), args...)))
	return conn.LastReply()
}

func TestDisableAndEnable(t *testing.T) {
	p, service, _ := setup(t)

	assert.Equal(t, "✅ <code>monsterinfo</code> a été désactivée pour ce chat.", call(t, p.OnDisable, "minfo"))
	assert.True(t, service.IsCommandDisabledForChat("group", "monsterinfo"))
	assert.Equal(t, "💡 <code>monsterinfo</code> est déjà désactivée dans ce chat.", call(t, p.OnDisable, "monsterinfo"))

	assert.Equal(t, "✅ <code>monsterinfo</code> a été réactivée pour ce chat.", call(t, p.OnEnable, "MINFO"))
	assert.False(t, service.IsCommandDisabledForChat("group", "monsterinfo"))
	assert.Equal(t, "💡 <code>monsterinfo</code> est déjà active dans ce chat.", call(t, p.OnEnable, "minfo"))
}

func TestCannotDisableItself(t *testing.T) {
	p, service, _ := setup(t)

	assert.Equal(t, "❌ <code>disable</code> ne peut pas être désactivée.", call(t, p.OnDisable, "disable"))
	assert.Equal(t, "❌ <code>enable</code> ne peut pas être désactivée.", call(t, p.OnDisable, "enable"))
	assert.False(t, service.IsCommandDisabledForChat("group", "enable"))
}

func TestUnknownCommandAndUsage(t *testing.T) {
	p, _, _ := setup(t)

	assert.Equal(t, "❌ Cette commande n'existe pas.", call(t, p.OnDisable, "nope"))
	assert.Equal(t, "❌ Cette commande n'existe pas.", call(t, p.OnEnable, "nope"))
	assert.Equal(t, "💡 Utilisation : <code>.disable &lt;commande&gt;</code>", call(t, p.OnDisable))
}

func TestStoreFailureRepliesWithGUID(t *testing.T) {
	p, _, store := setup(t)
	store.err = errors.New("db down")

	reply := call(t, p.OnDisable, "minfo")
	assert.Contains(t, reply, "❌ Une erreur est survenue.")
	assert.Contains(t, reply, "<code>")
}
