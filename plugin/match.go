package plugin

import (
	"fmt"
	"regexp"
	"strings"
)

type MatchKind uint8

const (
	MatchExact MatchKind = iota
	MatchPattern
)

// MatchRule decides which tokens resolve to a command: either a literal
// name set or a pattern tested against the whole token.
type MatchRule struct {
	kind    MatchKind
	names   []string
	pattern *regexp.Regexp
}

// ExactSet matches any of names case-insensitively. The first name is canonical.
func ExactSet(names ...string) MatchRule {
	if len(names) == 0 {
		panic("plugin: ExactSet needs at least one name")
	}
	normalized := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			panic("plugin: empty command name")
		}
		normalized = append(normalized, n)
	}
	return MatchRule{kind: MatchExact, names: normalized}
}

// Pattern matches tokens the expression matches in full, ignoring case.
// name is the canonical name and also resolves as a literal alias.
func Pattern(name, expr string) MatchRule {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		panic("plugin: empty command name")
	}
	re := regexp.MustCompile(fmt.Sprintf(`(?i)^(?:%s)$`, expr))
	return MatchRule{kind: MatchPattern, names: []string{name}, pattern: re}
}

func (r MatchRule) Kind() MatchKind {
	return r.kind
}

func (r MatchRule) Canonical() string {
	if len(r.names) == 0 {
		return ""
	}
	return r.names[0]
}

func (r MatchRule) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// MatchPattern reports whether token is accepted by a pattern rule.
// Exact rules never match here; they are resolved through the alias index.
func (r MatchRule) MatchPattern(token string) bool {
	return r.kind == MatchPattern && r.pattern.MatchString(token)
}

func (r MatchRule) String() string {
	if r.kind == MatchPattern {
		return r.pattern.String()
	}
	return strings.Join(r.names, "|")
}
