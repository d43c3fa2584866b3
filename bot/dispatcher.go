package bot

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"
	"unicode"

	"github.com/Brawl345/raven/config"
	"github.com/Brawl345/raven/logger"
	"github.com/Brawl345/raven/model"
	"github.com/Brawl345/raven/plugin"
	"github.com/Brawl345/raven/utils"
	"github.com/rs/xid"
)

var log = logger.New("bot")

// Outcome is the terminal state of one dispatched event.
type Outcome uint8

const (
	Rejected Outcome = iota
	Denied
	Failed
	Completed
)

func (o Outcome) String() string {
	switch o {
	case Denied:
		return "denied"
	case Failed:
		return "failed"
	case Completed:
		return "completed"
	}
	return "rejected"
}

type PluginInvocationError struct {
	Command string
	ChatID  string
	Err     error
	Panic   any
	Stack   []byte
}

func (e *PluginInvocationError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("command %s in chat %s panicked: %v", e.Command, e.ChatID, e.Panic)
	}
	return fmt.Sprintf("command %s in chat %s: %v", e.Command, e.ChatID, e.Err)
}

func (e *PluginInvocationError) Unwrap() error {
	return e.Err
}

type CommandManager interface {
	IsCommandDisabledForChat(chatID, name string) bool
}

type DispatcherOpts struct {
	Registry *Registry
	Gate     Gate
	Settings model.SettingsService
	Config   *config.Config

	// Optional
	Manager  CommandManager
	Watchers []plugin.Watcher
}

type Dispatcher struct {
	registry *Registry
	gate     Gate
	settings model.SettingsService
	config   *config.Config
	manager  CommandManager
	watchers []plugin.Watcher
}

func NewDispatcher(opts DispatcherOpts) *Dispatcher {
	if opts.Registry == nil || opts.Settings == nil || opts.Config == nil {
		panic("bot: dispatcher needs a registry, a settings store and a config")
	}
	return &Dispatcher{
		registry: opts.Registry,
		gate:     opts.Gate,
		settings: opts.Settings,
		config:   opts.Config,
		manager:  opts.Manager,
		watchers: opts.Watchers,
	}
}

// ParseCommand splits text into the command token (prefix removed), the
// whitespace separated arguments and the raw argument tail.
func ParseCommand(prefix, text string) (token string, args []string, tail string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, prefix) {
		return "", nil, "", false
	}
	text = text[len(prefix):]

	if i := strings.IndexFunc(text, unicode.IsSpace); i != -1 {
		token, tail = text[:i], strings.TrimSpace(text[i:])
	} else {
		token = text
	}
	if token == "" {
		return "", nil, "", false
	}

	args = strings.Fields(tail)
	if args == nil {
		args = []string{}
	}
	return token, args, tail, true
}

// Dispatch runs one event through resolve, gate and invoke. It never panics
// and never returns an error; failures end in the Denied or Failed outcome
// after at most one reply.
func (d *Dispatcher) Dispatch(ctx context.Context, conn plugin.Conn, ev *plugin.Event) Outcome {
	token, args, tail, ok := ParseCommand(d.config.Prefix, ev.Text)
	if !ok {
		return Rejected
	}

	cmd, err := d.registry.Resolve(token)
	if err != nil {
		return Rejected
	}

	if d.manager != nil && d.manager.IsCommandDisabledForChat(ev.ChatID, cmd.Name()) {
		log.Debug().
			Str("chat_id", ev.ChatID).
			Str("command", cmd.Name()).
			Msg("Command is disabled for this chat")
		return Rejected
	}

	chat := d.chatSettings(ctx, ev.ChatID)

	decision := d.gate.Evaluate(cmd, ActorFromEvent(ev))
	if !decision.Allowed {
		log.Debug().
			Str("chat_id", ev.ChatID).
			Str("user_id", ev.SenderID).
			Str("command", cmd.Name()).
			Stringer("reason", decision.Reason).
			Msg("Permission denied")
		if err := conn.Reply(ctx, ev, denialMessage(chat.Language, decision.Reason)); err != nil {
			log.Err(err).
				Str("chat_id", ev.ChatID).
				Msg("Failed to send denial")
		}
		return Denied
	}

	// Only the command runs under the deadline; the failure reply must still
	// go out after it expired.
	runCtx := ctx
	if d.config.CommandTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, d.config.CommandTimeout)
		defer cancel()
	}

	c := &plugin.Context{
		Context:    runCtx,
		Conn:       conn,
		Event:      ev,
		Command:    cmd,
		Args:       args,
		Text:       tail,
		IsAdmin:    ev.IsAdmin,
		IsBotAdmin: ev.IsBotAdmin,
		IsOwner:    d.gate.IsOwner(ev.SenderID),
		Config:     d.config,
		Settings:   d.settings,
		Chat:       chat,
	}

	start := time.Now()
	if err := d.invoke(c); err != nil {
		guid := xid.New().String()
		event := log.Err(err).
			Str("guid", guid).
			Str("chat_id", ev.ChatID).
			Str("user_id", ev.SenderID).
			Str("text", ev.Text).
			Str("command", cmd.Name())
		var pe *PluginInvocationError
		if errors.As(err, &pe) && pe.Stack != nil {
			event = event.Bytes("stack", pe.Stack)
		}
		event.Send()

		if err := conn.Reply(ctx, ev, failureMessage(chat.Language)+utils.EmbedGUID(guid)); err != nil {
			log.Err(err).
				Str("guid", guid).
				Str("chat_id", ev.ChatID).
				Msg("Failed to send failure reply")
		}
		return Failed
	}

	log.Debug().
		Str("chat_id", ev.ChatID).
		Str("command", cmd.Name()).
		Dur("took", time.Since(start)).
		Msg("Command completed")
	return Completed
}

// deleteTracker notes whether a watcher removed the observed message.
type deleteTracker struct {
	plugin.Conn
	ev      *plugin.Event
	deleted bool
}

func (t *deleteTracker) Delete(ctx context.Context, ev *plugin.Event) error {
	err := t.Conn.Delete(ctx, ev)
	if err == nil && ev.ChatID == t.ev.ChatID && ev.MessageID == t.ev.MessageID {
		t.deleted = true
	}
	return err
}

// Observe hands a message event to every watcher. Watcher failures are logged,
// never replied. It reports whether a watcher deleted the message, in which
// case the event must not be dispatched as a command.
func (d *Dispatcher) Observe(ctx context.Context, conn plugin.Conn, ev *plugin.Event) (deleted bool) {
	if len(d.watchers) == 0 {
		return false
	}

	chat, err := d.settings.GetOrCreate(ctx, ev.ChatID)
	if err != nil {
		log.Err(err).
			Str("chat_id", ev.ChatID).
			Msg("Failed to load chat settings, skipping watchers")
		return false
	}

	tracker := &deleteTracker{Conn: conn, ev: ev}
	for _, w := range d.watchers {
		c := &plugin.Context{
			Context:    ctx,
			Conn:       tracker,
			Event:      ev,
			Args:       strings.Fields(ev.Text),
			Text:       ev.Text,
			IsAdmin:    ev.IsAdmin,
			IsBotAdmin: ev.IsBotAdmin,
			IsOwner:    d.gate.IsOwner(ev.SenderID),
			Config:     d.config,
			Settings:   d.settings,
			Chat:       chat,
		}
		if err := d.watch(w, c); err != nil {
			log.Err(err).
				Str("chat_id", ev.ChatID).
				Str("user_id", ev.SenderID).
				Str("watcher", w.Name()).
				Send()
		}
	}
	return tracker.deleted
}

func (d *Dispatcher) chatSettings(ctx context.Context, chatID string) model.Settings {
	chat, err := d.settings.GetOrCreate(ctx, chatID)
	if err != nil {
		log.Err(err).
			Str("chat_id", chatID).
			Msg("Failed to load chat settings, using defaults")
		return model.DefaultSettings(chatID)
	}
	return chat
}

func (d *Dispatcher) invoke(c *plugin.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PluginInvocationError{
				Command: c.Command.Name(),
				ChatID:  c.Event.ChatID,
				Err:     fmt.Errorf("panic: %v", r),
				Panic:   r,
				Stack:   debug.Stack(),
			}
		}
	}()

	if runErr := c.Command.Run(c); runErr != nil {
		return &PluginInvocationError{
			Command: c.Command.Name(),
			ChatID:  c.Event.ChatID,
			Err:     runErr,
		}
	}
	return nil
}

func (d *Dispatcher) watch(w plugin.Watcher, c *plugin.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("watcher %s panicked: %v", w.Name(), r)
		}
	}()
	return w.Watch(c)
}
