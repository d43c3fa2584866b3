package bot

import (
	"testing"

	"github.com/Brawl345/raven/plugin"
	"github.com/stretchr/testify/assert"
)

func TestGateEvaluate(t *testing.T) {
	gate := NewGate([]string{"owner"}, []string{"vip"})

	member := Actor{ID: "alice", ChatType: plugin.ChatGroup}
	admin := Actor{ID: "bob", ChatType: plugin.ChatGroup, IsAdmin: true}
	dm := Actor{ID: "alice", ChatType: plugin.ChatPrivate}

	tests := []struct {
		name     string
		requires plugin.Capability
		actor    Actor
		want     DenyReason
	}{
		{"no requirements", 0, member, DenyNone},
		{"owner required", plugin.Owner, admin, DenyOwner},
		{"owner ok", plugin.Owner, Actor{ID: "owner"}, DenyNone},
		{"admin required", plugin.Admin, member, DenyAdmin},
		{"admin ok", plugin.Admin | plugin.GroupOnly, admin, DenyNone},
		{"group only in private", plugin.GroupOnly, dm, DenyGroupOnly},
		{"private only in group", plugin.PrivateOnly, member, DenyPrivateOnly},
		{"premium required", plugin.Premium, member, DenyPremium},
		{"premium by config", plugin.Premium, Actor{ID: "vip"}, DenyNone},
		{"premium by transport", plugin.Premium, Actor{ID: "x", IsPremium: true}, DenyNone},
		{"owner counts as premium", plugin.Premium, Actor{ID: "owner"}, DenyNone},
		// order: admin is checked before group
		{"admin before group", plugin.Admin | plugin.GroupOnly, dm, DenyAdmin},
		{"owner before everything", plugin.Owner | plugin.Admin | plugin.Premium, dm, DenyOwner},
		{"group before premium", plugin.GroupOnly | plugin.Premium, dm, DenyGroupOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &plugin.Command{Match: plugin.ExactSet("x"), Requires: tt.requires, Run: noop}
			got := gate.Evaluate(cmd, tt.actor)
			assert.Equal(t, tt.want, got.Reason)
			assert.Equal(t, tt.want == DenyNone, got.Allowed)
		})
	}
}

func TestDenialMessageFallsBackToDefaultLanguage(t *testing.T) {
	assert.Equal(t, denialMessages["fr"][DenyAdmin], denialMessage("de", DenyAdmin))
	assert.Equal(t, denialMessages["en"][DenyAdmin], denialMessage("en", DenyAdmin))
	assert.Equal(t, failureMessages["fr"], failureMessage(""))
}
