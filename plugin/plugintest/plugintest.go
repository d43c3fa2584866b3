// Package plugintest provides an in-memory connection and settings store
// for testing plugins and the dispatcher without a transport or database.
package plugintest

import (
	"context"
	"strings"
	"sync"

	"github.com/Brawl345/raven/config"
	"github.com/Brawl345/raven/model"
	"github.com/Brawl345/raven/plugin"
	"golang.org/x/exp/slices"
)

type Message struct {
	ChatID string
	Text   string
	Media  *plugin.Media
}

// Conn records everything sent through it. Like a real transport it refuses
// to send once the context is done.
type Conn struct {
	mu      sync.Mutex
	replies []Message
	sent    []Message
	deleted []string

	// Err, when set, is returned by every method after recording.
	Err error
}

func (c *Conn) Reply(ctx context.Context, ev *plugin.Event, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies = append(c.replies, Message{ChatID: ev.ChatID, Text: text})
	return c.Err
}

func (c *Conn) Send(ctx context.Context, chatID string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, Message{ChatID: chatID, Text: text})
	return c.Err
}

func (c *Conn) SendMedia(ctx context.Context, chatID string, media plugin.Media, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, Message{ChatID: chatID, Text: caption, Media: &media})
	return c.Err
}

func (c *Conn) Delete(ctx context.Context, ev *plugin.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, ev.MessageID)
	return c.Err
}

func (c *Conn) Replies() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	texts := make([]string, len(c.replies))
	for i, r := range c.replies {
		texts[i] = r.Text
	}
	return texts
}

// LastReply returns the most recent reply or "".
func (c *Conn) LastReply() string {
	replies := c.Replies()
	if len(replies) == 0 {
		return ""
	}
	return replies[len(replies)-1]
}

func (c *Conn) Sent() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.sent...)
}

func (c *Conn) Deleted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.deleted...)
}

// Settings is a map-backed model.SettingsService that counts writes.
type Settings struct {
	mu      sync.Mutex
	docs    map[string]model.Settings
	calls   int
	creates int
	updates int

	Err error
}

func NewSettings() *Settings {
	return &Settings{docs: make(map[string]model.Settings)}
}

func (s *Settings) GetOrCreate(_ context.Context, chatID string) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.Err != nil {
		return model.Settings{}, s.Err
	}
	doc, ok := s.docs[chatID]
	if !ok {
		doc = model.DefaultSettings(chatID)
		s.docs[chatID] = doc
		s.creates++
	}
	return doc, nil
}

func (s *Settings) Update(ctx context.Context, chatID string, raw map[string]string) (model.Settings, error) {
	patch, err := model.ParsePatch(raw)
	if err != nil {
		return model.Settings{}, err
	}
	if patch.IsEmpty() {
		return s.GetOrCreate(ctx, chatID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.Err != nil {
		return model.Settings{}, s.Err
	}
	doc, ok := s.docs[chatID]
	if !ok {
		doc = model.DefaultSettings(chatID)
		s.creates++
	}
	doc = patch.Apply(doc)
	s.docs[chatID] = doc
	s.updates++
	return doc, nil
}

// Calls returns how many times the store was accessed.
func (s *Settings) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Writes returns how many documents were created and updated.
func (s *Settings) Writes() (creates, updates int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates, s.updates
}

func Config() *config.Config {
	return &config.Config{
		Prefix: ".",
		Owners: []string{"owner"},
		Bot: config.BotConfig{
			Name:   "Raven Bot",
			Footer: "© Raven Bot",
		},
		Antispam: config.AntispamConfig{Rate: 1, Burst: 5},
	}
}

// GroupEvent returns a group message event from a regular member.
func GroupEvent(text string) *plugin.Event {
	return &plugin.Event{
		MessageID:  "1",
		ChatID:     "group",
		ChatType:   plugin.ChatGroup,
		ChatTitle:  "Test Group",
		SenderID:   "alice",
		SenderName: "Alice",
		Text:       text,
	}
}

// PrivateEvent returns a direct message event.
func PrivateEvent(text string) *plugin.Event {
	return &plugin.Event{
		MessageID:  "1",
		ChatID:     "alice",
		ChatType:   plugin.ChatPrivate,
		SenderID:   "alice",
		SenderName: "Alice",
		Text:       text,
	}
}

// NewContext builds the context a dispatcher would hand to a command,
// using whitespace separated args.
func NewContext(conn plugin.Conn, settings model.SettingsService, ev *plugin.Event, args ...string) *plugin.Context {
	chat, _ := settings.GetOrCreate(context.Background(), ev.ChatID)
	cfg := Config()
	if args == nil {
		args = []string{}
	}
	return &plugin.Context{
		Context:    context.Background(),
		Conn:       conn,
		Event:      ev,
		Args:       args,
		Text:       strings.Join(args, " "),
		IsAdmin:    ev.IsAdmin,
		IsBotAdmin: ev.IsBotAdmin,
		IsOwner:    slices.Contains(cfg.Owners, ev.SenderID),
		Config:     cfg,
		Settings:   settings,
		Chat:       chat,
	}
}
