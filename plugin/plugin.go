package plugin

import (
	"context"
	"time"

	"github.com/Brawl345/raven/config"
	"github.com/Brawl345/raven/model"
)

const DefaultCategory = "general"

type (
	// Plugin is a statically registered bundle of commands.
	Plugin interface {
		Name() string
		Commands() []*Command
	}

	// Watcher is notified of every message event, command or not.
	// It must stay silent unless its chat setting asks otherwise.
	Watcher interface {
		Name() string
		Watch(c *Context) error
	}

	HandlerFunc func(c *Context) error

	Command struct {
		Match       MatchRule
		Category    string
		Description string
		Usage       string
		Example     string
		Requires    Capability
		Run         HandlerFunc
	}

	ChatType uint8

	MediaKind string

	Media struct {
		Kind    MediaKind
		FileID  string
		Caption string
	}

	Member struct {
		ID   string
		Name string
	}

	// Event is one inbound chat event as translated by a transport.
	// Role flags are supplied by the transport and taken as given.
	Event struct {
		MessageID  string
		ChatID     string
		ChatType   ChatType
		ChatTitle  string
		SenderID   string
		SenderName string
		Text       string
		Time       time.Time

		IsAdmin    bool
		IsBotAdmin bool
		IsPremium  bool

		Links    []string
		ViewOnce *Media
		Joined   []Member
	}

	// Conn is the outbound side of a transport. Texts are HTML formatted.
	Conn interface {
		Reply(ctx context.Context, ev *Event, text string) error
		Send(ctx context.Context, chatID string, text string) error
		SendMedia(ctx context.Context, chatID string, media Media, caption string) error
		Delete(ctx context.Context, ev *Event) error
	}

	Context struct {
		context.Context
		Conn    Conn
		Event   *Event
		Command *Command // nil for watchers
		Args    []string
		Text    string

		IsAdmin    bool
		IsBotAdmin bool
		IsOwner    bool // sender is a configured bot owner

		Config   *config.Config
		Settings model.SettingsService
		Chat     model.Settings // snapshot taken before the handler ran
	}
)

const (
	ChatPrivate ChatType = iota
	ChatGroup
)

const (
	MediaPhoto MediaKind = "photo"
	MediaVideo MediaKind = "video"
)

func (t ChatType) String() string {
	if t == ChatGroup {
		return "group"
	}
	return "private"
}

func (e *Event) IsGroup() bool {
	return e.ChatType == ChatGroup
}

func (cmd *Command) Name() string {
	return cmd.Match.Canonical()
}

// Aliases returns every literal name resolving to the command, canonical name first.
func (cmd *Command) Aliases() []string {
	return cmd.Match.Names()
}

func (cmd *Command) CategoryName() string {
	if cmd.Category == "" {
		return DefaultCategory
	}
	return cmd.Category
}

func (c *Context) Reply(text string) error {
	return c.Conn.Reply(c, c.Event, text)
}

func (c *Context) Language() model.Language {
	return c.Chat.Language
}
