package bot

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Brawl345/raven/plugin"
	"golang.org/x/exp/maps"
)

var ErrCommandNotFound = errors.New("command not found")

type DuplicateCommandError struct {
	Alias    string
	Existing string // canonical name of the command already owning Alias
	Command  string // canonical name of the rejected command
}

func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("command %q: alias %q is already registered by %q", e.Command, e.Alias, e.Existing)
}

type category struct {
	name     string // as first registered
	commands []*plugin.Command
}

// commandTable is immutable once published.
type commandTable struct {
	aliases    map[string]*plugin.Command
	patterns   []*plugin.Command
	categories map[string]*category // keyed by lower-case name
	ordered    []*plugin.Command
}

// Registry maps command names to descriptors. Lookups are lock-free; every
// change builds a new table and publishes it with a single pointer swap.
type Registry struct {
	writeMu sync.Mutex
	table   atomic.Pointer[commandTable]
}

func NewRegistry() *Registry {
	r := &Registry{}
	r.table.Store(emptyTable())
	return r
}

func emptyTable() *commandTable {
	return &commandTable{
		aliases:    make(map[string]*plugin.Command),
		categories: make(map[string]*category),
	}
}

func (t *commandTable) clone() *commandTable {
	next := &commandTable{
		aliases:    maps.Clone(t.aliases),
		patterns:   append([]*plugin.Command(nil), t.patterns...),
		categories: make(map[string]*category, len(t.categories)),
		ordered:    append([]*plugin.Command(nil), t.ordered...),
	}
	for key, cat := range t.categories {
		next.categories[key] = &category{
			name:     cat.name,
			commands: append([]*plugin.Command(nil), cat.commands...),
		}
	}
	return next
}

// add inserts cmd into a table that has not been published yet.
func (t *commandTable) add(cmd *plugin.Command) error {
	if cmd == nil || cmd.Run == nil || cmd.Name() == "" {
		return fmt.Errorf("invalid command descriptor %v", cmd)
	}

	aliases := cmd.Aliases()
	for _, alias := range aliases {
		if existing, ok := t.aliases[alias]; ok {
			return &DuplicateCommandError{Alias: alias, Existing: existing.Name(), Command: cmd.Name()}
		}
	}

	for _, alias := range aliases {
		t.aliases[alias] = cmd
	}
	if cmd.Match.Kind() == plugin.MatchPattern {
		t.patterns = append(t.patterns, cmd)
	}
	t.ordered = append(t.ordered, cmd)

	name := cmd.CategoryName()
	key := strings.ToLower(name)
	cat, ok := t.categories[key]
	if !ok {
		cat = &category{name: name}
		t.categories[key] = cat
	}
	cat.commands = append(cat.commands, cmd)

	return nil
}

// Register adds cmd. On conflict it returns *DuplicateCommandError and the
// registry is left untouched.
func (r *Registry) Register(cmd *plugin.Command) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	next := r.table.Load().clone()
	if err := next.add(cmd); err != nil {
		return err
	}
	r.table.Store(next)
	return nil
}

// RegisterAll registers every command, logging and skipping the ones that collide.
func (r *Registry) RegisterAll(cmds ...*plugin.Command) error {
	var errs []error
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			log.Error().Err(err).Msg("Skipping command")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Replace swaps the whole table for one built from cmds. Concurrent resolvers
// see either the old or the new table, never a mix.
func (r *Registry) Replace(cmds ...*plugin.Command) error {
	next := emptyTable()
	for _, cmd := range cmds {
		if err := next.add(cmd); err != nil {
			return err
		}
	}

	r.writeMu.Lock()
	r.table.Store(next)
	r.writeMu.Unlock()
	return nil
}

// Resolve looks name up case-insensitively, literal aliases first, then patterns.
func (r *Registry) Resolve(name string) (*plugin.Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, ErrCommandNotFound
	}

	t := r.table.Load()
	if cmd, ok := t.aliases[name]; ok {
		return cmd, nil
	}
	for _, cmd := range t.patterns {
		if cmd.Match.MatchPattern(name) {
			return cmd, nil
		}
	}
	return nil, ErrCommandNotFound
}

func (r *Registry) ListByCategory(name string) []*plugin.Command {
	cat, ok := r.table.Load().categories[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil
	}
	return append([]*plugin.Command(nil), cat.commands...)
}

// Categories returns the distinct category names, sorted.
func (r *Registry) Categories() []string {
	t := r.table.Load()
	names := make([]string, 0, len(t.categories))
	for _, cat := range t.categories {
		names = append(names, cat.name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}

// Commands returns every command in registration order.
func (r *Registry) Commands() []*plugin.Command {
	return append([]*plugin.Command(nil), r.table.Load().ordered...)
}
