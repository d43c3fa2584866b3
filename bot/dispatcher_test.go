package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Brawl345/raven/plugin"
	"github.com/Brawl345/raven/plugin/plugintest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type disabledCommands map[string]bool

func (d disabledCommands) IsCommandDisabledForChat(chatID, name string) bool {
	return d[chatID+"/"+name]
}

type recordingWatcher struct {
	seen []string
	err  error
}

func (w *recordingWatcher) Name() string { return "recorder" }

func (w *recordingWatcher) Watch(c *plugin.Context) error {
	w.seen = append(w.seen, c.Event.Text)
	return w.err
}

type panickingWatcher struct{}

func (panickingWatcher) Name() string { return "panicker" }

func (panickingWatcher) Watch(*plugin.Context) error { panic("boom") }

type deletingWatcher struct{}

func (deletingWatcher) Name() string { return "deleter" }

func (deletingWatcher) Watch(c *plugin.Context) error { return c.Conn.Delete(c, c.Event) }

type fixture struct {
	registry   *Registry
	settings   *plugintest.Settings
	conn       *plugintest.Conn
	dispatcher *Dispatcher
}

func newFixture(t *testing.T, opts DispatcherOpts, cmds ...*plugin.Command) *fixture {
	t.Helper()
	f := &fixture{
		registry: NewRegistry(),
		settings: plugintest.NewSettings(),
		conn:     &plugintest.Conn{},
	}
	require.NoError(t, f.registry.RegisterAll(cmds...))

	opts.Registry = f.registry
	opts.Settings = f.settings
	if opts.Config == nil {
		opts.Config = plugintest.Config()
	}
	if opts.Gate.owners == nil {
		opts.Gate = NewGate(opts.Config.Owners, nil)
	}
	f.dispatcher = NewDispatcher(opts)
	return f
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text  string
		token string
		args  []string
		tail  string
		ok    bool
	}{
		{".ping", "ping", []string{}, "", true},
		{"  .Menu  fun  ", "Menu", []string{"fun"}, "fun", true},
		{".settings welcome on", "settings", []string{"welcome", "on"}, "welcome on", true},
		{".echo a\nb", "echo", []string{"a", "b"}, "a\nb", true},
		{"ping", "", nil, "", false},
		{".", "", nil, "", false},
		{". ping", "", nil, "", false},
		{"", "", nil, "", false},
	}
	for _, tt := range tests {
		token, args, tail, ok := ParseCommand(".", tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.token, token, tt.text)
		assert.Equal(t, tt.args, args, tt.text)
		assert.Equal(t, tt.tail, tail, tt.text)
	}
}

func TestDispatchUnknownCommandIsSilent(t *testing.T) {
	f := newFixture(t, DispatcherOpts{}, command("main", "ping"))

	for _, text := range []string{".nope", "hello", ".", ""} {
		outcome := f.dispatcher.Dispatch(context.Background(), f.conn, plugintest.GroupEvent(text))
		assert.Equal(t, Rejected, outcome, text)
	}

	assert.Empty(t, f.conn.Replies())
	assert.Zero(t, f.settings.Calls())
}

func TestDispatchInvokesOnce(t *testing.T) {
	var calls []*plugin.Context
	ping := &plugin.Command{
		Match: plugin.ExactSet("ping"),
		Run: func(c *plugin.Context) error {
			calls = append(calls, c)
			return c.Reply("pong")
		},
	}
	f := newFixture(t, DispatcherOpts{}, ping)

	outcome := f.dispatcher.Dispatch(context.Background(), f.conn, plugintest.GroupEvent(".PING"))

	assert.Equal(t, Completed, outcome)
	require.Len(t, calls, 1)
	assert.Equal(t, []string{}, calls[0].Args)
	assert.Same(t, ping, calls[0].Command)
	assert.Equal(t, "group", calls[0].Chat.ChatID)
	assert.Equal(t, []string{"pong"}, f.conn.Replies())
}

func TestDispatchDeniesNonAdmin(t *testing.T) {
	invoked := false
	settings := &plugin.Command{
		Match:    plugin.ExactSet("settings", "config"),
		Requires: plugin.Admin | plugin.GroupOnly,
		Run: func(*plugin.Context) error {
			invoked = true
			return nil
		},
	}
	f := newFixture(t, DispatcherOpts{}, settings)

	outcome := f.dispatcher.Dispatch(context.Background(), f.conn, plugintest.GroupEvent(".config"))

	assert.Equal(t, Denied, outcome)
	assert.False(t, invoked)
	assert.Equal(t, []string{denialMessage("fr", DenyAdmin)}, f.conn.Replies())
}

func TestDispatchDenialUsesChatLanguage(t *testing.T) {
	owner := &plugin.Command{Match: plugin.ExactSet("shutdown"), Requires: plugin.Owner, Run: noop}
	f := newFixture(t, DispatcherOpts{}, owner)
	_, err := f.settings.Update(context.Background(), "group", map[string]string{"lang": "en"})
	require.NoError(t, err)

	outcome := f.dispatcher.Dispatch(context.Background(), f.conn, plugintest.GroupEvent(".shutdown"))

	assert.Equal(t, Denied, outcome)
	assert.Equal(t, []string{denialMessage("en", DenyOwner)}, f.conn.Replies())
}

func TestDispatchPluginErrorFails(t *testing.T) {
	broken := &plugin.Command{
		Match: plugin.ExactSet("broken"),
		Run:   func(*plugin.Context) error { return errors.New("upstream down") },
	}
	f := newFixture(t, DispatcherOpts{}, broken)

	outcome := f.dispatcher.Dispatch(context.Background(), f.conn, plugintest.GroupEvent(".broken"))

	assert.Equal(t, Failed, outcome)
	replies := f.conn.Replies()
	require.Len(t, replies, 1)
	assert.True(t, strings.HasPrefix(replies[0], failureMessage("fr")))
	assert.NotContains(t, replies[0], "upstream down")
}

func TestDispatchPluginPanicFails(t *testing.T) {
	panicky := &plugin.Command{
		Match: plugin.ExactSet("panic"),
		Run:   func(*plugin.Context) error { panic("nil map") },
	}
	f := newFixture(t, DispatcherOpts{}, panicky)

	var outcome Outcome
	require.NotPanics(t, func() {
		outcome = f.dispatcher.Dispatch(context.Background(), f.conn, plugintest.GroupEvent(".panic"))
	})

	assert.Equal(t, Failed, outcome)
	assert.Len(t, f.conn.Replies(), 1)
}

func TestDispatchDisabledCommandIsRejected(t *testing.T) {
	invoked := false
	ping := &plugin.Command{
		Match: plugin.ExactSet("ping", "p"),
		Run: func(*plugin.Context) error {
			invoked = true
			return nil
		},
	}
	f := newFixture(t, DispatcherOpts{Manager: disabledCommands{"group/ping": true}}, ping)

	outcome := f.dispatcher.Dispatch(context.Background(), f.conn, plugintest.GroupEvent(".p"))

	assert.Equal(t, Rejected, outcome)
	assert.False(t, invoked)
	assert.Empty(t, f.conn.Replies())

	outcome = f.dispatcher.Dispatch(context.Background(), f.conn, plugintest.PrivateEvent(".p"))
	assert.Equal(t, Completed, outcome)
	assert.True(t, invoked)
}

func TestDispatchStoreFailureUsesDefaults(t *testing.T) {
	var lang string
	cmd := &plugin.Command{
		Match: plugin.ExactSet("lang"),
		Run: func(c *plugin.Context) error {
			lang = string(c.Language())
			return nil
		},
	}
	f := newFixture(t, DispatcherOpts{}, cmd)
	f.settings.Err = errors.New("db down")

	outcome := f.dispatcher.Dispatch(context.Background(), f.conn, plugintest.GroupEvent(".lang"))

	assert.Equal(t, Completed, outcome)
	assert.Equal(t, "fr", lang)
}

func TestDispatchCommandTimeout(t *testing.T) {
	cfg := plugintest.Config()
	cfg.CommandTimeout = 20 * time.Millisecond

	slow := &plugin.Command{
		Match: plugin.ExactSet("slow"),
		Run: func(c *plugin.Context) error {
			<-c.Done()
			return c.Err()
		},
	}
	f := newFixture(t, DispatcherOpts{Config: cfg}, slow)

	outcome := f.dispatcher.Dispatch(context.Background(), f.conn, plugintest.GroupEvent(".slow"))

	assert.Equal(t, Failed, outcome)
	replies := f.conn.Replies()
	require.Len(t, replies, 1)
	assert.True(t, strings.HasPrefix(replies[0], failureMessage("fr")))
}

func TestDispatchTimeoutLeavesCallerContextAlone(t *testing.T) {
	cfg := plugintest.Config()
	cfg.CommandTimeout = 10 * time.Millisecond

	var deadline bool
	slow := &plugin.Command{
		Match: plugin.ExactSet("slow"),
		Run: func(c *plugin.Context) error {
			_, deadline = c.Deadline()
			<-c.Done()
			return c.Err()
		},
	}
	f := newFixture(t, DispatcherOpts{Config: cfg}, slow)

	ctx := context.Background()
	assert.Equal(t, Failed, f.dispatcher.Dispatch(ctx, f.conn, plugintest.GroupEvent(".slow")))
	assert.True(t, deadline)
	assert.NoError(t, ctx.Err())
	assert.Len(t, f.conn.Replies(), 1)
}

func TestObserveRunsWatchers(t *testing.T) {
	recorder := &recordingWatcher{err: errors.New("ignored")}
	f := newFixture(t, DispatcherOpts{Watchers: []plugin.Watcher{panickingWatcher{}, recorder}})

	require.NotPanics(t, func() {
		f.dispatcher.Observe(context.Background(), f.conn, plugintest.GroupEvent("hello there"))
	})

	assert.Equal(t, []string{"hello there"}, recorder.seen)
	assert.Empty(t, f.conn.Replies())
}

func TestObserveReportsDeletedMessage(t *testing.T) {
	f := newFixture(t, DispatcherOpts{Watchers: []plugin.Watcher{&recordingWatcher{}, deletingWatcher{}}})
	assert.True(t, f.dispatcher.Observe(context.Background(), f.conn, plugintest.GroupEvent("spam")))
	assert.Equal(t, []string{"1"}, f.conn.Deleted())

	quiet := newFixture(t, DispatcherOpts{Watchers: []plugin.Watcher{&recordingWatcher{}}})
	assert.False(t, quiet.dispatcher.Observe(context.Background(), quiet.conn, plugintest.GroupEvent("hello")))
}

func TestObserveFailedDeleteIsNotReported(t *testing.T) {
	f := newFixture(t, DispatcherOpts{Watchers: []plugin.Watcher{deletingWatcher{}}})
	f.conn.Err = errors.New("not enough rights")
	assert.False(t, f.dispatcher.Observe(context.Background(), f.conn, plugintest.GroupEvent("spam")))
}

func TestContextCarriesOwnerFromGate(t *testing.T) {
	var owner []bool
	whoami := &plugin.Command{
		Match: plugin.ExactSet("whoami"),
		Run: func(c *plugin.Context) error {
			owner = append(owner, c.IsOwner)
			return nil
		},
	}
	f := newFixture(t, DispatcherOpts{}, whoami)

	ev := plugintest.GroupEvent(".whoami")
	ev.SenderID = "owner"
	f.dispatcher.Dispatch(context.Background(), f.conn, ev)
	f.dispatcher.Dispatch(context.Background(), f.conn, plugintest.GroupEvent(".whoami"))

	assert.Equal(t, []bool{true, false}, owner)
}

func TestObserveWithoutWatchersSkipsStore(t *testing.T) {
	f := newFixture(t, DispatcherOpts{})
	f.dispatcher.Observe(context.Background(), f.conn, plugintest.GroupEvent("hi"))
	assert.Zero(t, f.settings.Calls())
}

func TestNewDispatcherPanicsWithoutDependencies(t *testing.T) {
	assert.Panics(t, func() { NewDispatcher(DispatcherOpts{}) })
}
