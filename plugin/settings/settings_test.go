package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/Brawl345/raven/model"
	"github.com/Brawl345/raven/plugin/plugintest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, settings *plugintest.Settings, args ...string) string {
	t.Helper()
	conn := &plugintest.Conn{}
	ev := plugintest.GroupEvent(".settings")
	ev.IsAdmin = true
	require.NoError(t, onSettings(plugintest.NewContext(conn, settings, ev, args...)))
	require.Len(t, conn.Replies(), 1)
	return conn.LastReply()
}

func TestShowDefaults(t *testing.T) {
	reply := run(t, plugintest.NewSettings())

	assert.Contains(t, reply, "PARAMÈTRES DU GROUPE")
	assert.Contains(t, reply, "• Welcome: ❌ Désactivé")
	assert.Contains(t, reply, "• Anti-Spam: ❌ Désactivé")
	assert.Contains(t, reply, "<code>.settings antilink on/off</code>")
}

func TestToggleRoundTrip(t *testing.T) {
	settings := plugintest.NewSettings()

	assert.Equal(t, "✅ <b>welcome</b> activé avec succès !", run(t, settings, "WELCOME", "on"))

	doc, err := settings.GetOrCreate(context.Background(), "group")
	require.NoError(t, err)
	assert.True(t, doc.Welcome)

	assert.Contains(t, run(t, settings), "• Welcome: ✅ Activé")

	assert.Equal(t, "✅ <b>welcome</b> désactivé avec succès !", run(t, settings, "welcome", "off"))
}

func TestLanguageChangeAnswersInNewLanguage(t *testing.T) {
	settings := plugintest.NewSettings()

	assert.Equal(t, "✅ Language changed to English!", run(t, settings, "lang", "EN"))
	assert.Contains(t, run(t, settings), "GROUP SETTINGS")
	assert.Equal(t, "✅ Langue changée en Français !", run(t, settings, "language", "fr"))
}

func TestInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing value", []string{"welcome"}, "❌ Veuillez spécifier une valeur (on/off ou fr/en pour la langue)"},
		{"bad toggle", []string{"antilink", "maybe"}, "❌ Valeur invalide. Utilisez : on / off"},
		{"bad language", []string{"language", "de"}, "❌ Langue non supportée. Utilisez : fr / en"},
		{"unknown key", []string{"colour", "red"}, "❌ Paramètre inconnu : <code>colour</code>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := plugintest.NewSettings()
			assert.Equal(t, tt.want, run(t, settings, tt.args...))

			_, updates := settings.Writes()
			assert.Zero(t, updates)
		})
	}
}

func TestStoreFailureIsReturned(t *testing.T) {
	settings := plugintest.NewSettings()
	conn := &plugintest.Conn{}
	c := plugintest.NewContext(conn, settings, plugintest.GroupEvent(".settings"), "welcome", "on")
	settings.Err = errors.New("db down")

	err := onSettings(c)
	assert.Error(t, err)
	assert.Empty(t, conn.Replies())
}

func TestOverviewEnglish(t *testing.T) {
	doc := model.DefaultSettings("g")
	doc.Language = model.LanguageEnglish
	doc.Antispam = true

	out := Overview(doc, "!")
	assert.Contains(t, out, "• Anti-Spam: ✅ Enabled")
	assert.Contains(t, out, "🌐 <b>Language:</b> en")
	assert.Contains(t, out, "<code>!settings language fr/en</code>")
}
