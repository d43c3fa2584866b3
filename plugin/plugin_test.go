package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExactSetNormalizesNames(t *testing.T) {
	rule := ExactSet("Menu", " help ", "COMMANDS")

	assert.Equal(t, MatchExact, rule.Kind())
	assert.Equal(t, "menu", rule.Canonical())
	assert.Equal(t, []string{"menu", "help", "commands"}, rule.Names())
	assert.False(t, rule.MatchPattern("menu"))
}

func TestPatternMatchesWholeToken(t *testing.T) {
	rule := Pattern("antiviewonce", `antiviewonce|antiview|avo`)

	assert.Equal(t, MatchPattern, rule.Kind())
	assert.Equal(t, []string{"antiviewonce"}, rule.Names())
	assert.True(t, rule.MatchPattern("avo"))
	assert.True(t, rule.MatchPattern("AntiView"))
	assert.False(t, rule.MatchPattern("avocado"))
	assert.False(t, rule.MatchPattern("xavo"))
}

func TestExactSetPanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { ExactSet() })
	assert.Panics(t, func() { ExactSet("ok", " ") })
}

func TestCommandDefaults(t *testing.T) {
	cmd := &Command{Match: ExactSet("ping")}
	assert.Equal(t, "ping", cmd.Name())
	assert.Equal(t, DefaultCategory, cmd.CategoryName())

	cmd.Category = "fun"
	assert.Equal(t, "fun", cmd.CategoryName())
}

func TestCapabilities(t *testing.T) {
	c := Admin | GroupOnly
	assert.True(t, c.Has(Admin))
	assert.True(t, c.Has(Admin|GroupOnly))
	assert.False(t, c.Has(Owner))
	assert.Equal(t, "admin,group", c.String())
	assert.Equal(t, "none", Capability(0).String())
}
