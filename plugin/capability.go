package plugin

import "strings"

// Capability is a set of requirements a command places on its caller.
type Capability uint8

const (
	Owner Capability = 1 << iota
	Admin
	GroupOnly
	PrivateOnly
	Premium
)

func (c Capability) Has(other Capability) bool {
	return c&other == other
}

func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	for _, f := range []struct {
		flag Capability
		name string
	}{
		{Owner, "owner"},
		{Admin, "admin"},
		{GroupOnly, "group"},
		{PrivateOnly, "private"},
		{Premium, "premium"},
	} {
		if c.Has(f.flag) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, ",")
}
