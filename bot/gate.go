package bot

import (
	"github.com/Brawl345/raven/plugin"
)

type DenyReason uint8

const (
	DenyNone DenyReason = iota
	DenyOwner
	DenyAdmin
	DenyGroupOnly
	DenyPrivateOnly
	DenyPremium
)

func (r DenyReason) String() string {
	switch r {
	case DenyOwner:
		return "owner"
	case DenyAdmin:
		return "admin"
	case DenyGroupOnly:
		return "group"
	case DenyPrivateOnly:
		return "private"
	case DenyPremium:
		return "premium"
	}
	return "none"
}

type Decision struct {
	Allowed bool
	Reason  DenyReason
}

var allow = Decision{Allowed: true}

func deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// Actor is the sender of an event together with the role flags the transport resolved.
type Actor struct {
	ID         string
	ChatType   plugin.ChatType
	IsAdmin    bool
	IsBotAdmin bool
	IsPremium  bool
}

func ActorFromEvent(ev *plugin.Event) Actor {
	return Actor{
		ID:         ev.SenderID,
		ChatType:   ev.ChatType,
		IsAdmin:    ev.IsAdmin,
		IsBotAdmin: ev.IsBotAdmin,
		IsPremium:  ev.IsPremium,
	}
}

// Gate evaluates a command's required capabilities against an actor.
// It holds only the configured owner and premium sets and never changes them.
type Gate struct {
	owners  map[string]struct{}
	premium map[string]struct{}
}

func NewGate(owners, premium []string) Gate {
	g := Gate{
		owners:  make(map[string]struct{}, len(owners)),
		premium: make(map[string]struct{}, len(premium)),
	}
	for _, id := range owners {
		g.owners[id] = struct{}{}
	}
	for _, id := range premium {
		g.premium[id] = struct{}{}
	}
	return g
}

func (g Gate) IsOwner(id string) bool {
	_, ok := g.owners[id]
	return ok
}

func (g Gate) isPremium(a Actor) bool {
	if a.IsPremium || g.IsOwner(a.ID) {
		return true
	}
	_, ok := g.premium[a.ID]
	return ok
}

// Evaluate checks owner, admin, group, private and premium requirements in
// that order and reports the first one that fails.
func (g Gate) Evaluate(cmd *plugin.Command, a Actor) Decision {
	req := cmd.Requires

	if req.Has(plugin.Owner) && !g.IsOwner(a.ID) {
		return deny(DenyOwner)
	}
	if req.Has(plugin.Admin) && !a.IsAdmin {
		return deny(DenyAdmin)
	}
	if req.Has(plugin.GroupOnly) && a.ChatType != plugin.ChatGroup {
		return deny(DenyGroupOnly)
	}
	if req.Has(plugin.PrivateOnly) && a.ChatType != plugin.ChatPrivate {
		return deny(DenyPrivateOnly)
	}
	if req.Has(plugin.Premium) && !g.isPremium(a) {
		return deny(DenyPremium)
	}
	return allow
}
