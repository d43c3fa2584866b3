package ping

import (
	"fmt"
	"time"

	"github.com/Brawl345/raven/plugin"
)

type Plugin struct{}

func New() *Plugin {
	return &Plugin{}
}

func (*Plugin) Name() string {
	return "ping"
}

func (p *Plugin) Commands() []*plugin.Command {
	return []*plugin.Command{
		{
			Match:       plugin.ExactSet("ping"),
			Description: "Check if the bot is alive",
			Run:         onPing,
		},
	}
}

func onPing(c *plugin.Context) error {
	if c.Event.Time.IsZero() {
		return c.Reply("🏓 Pong!")
	}
	latency := time.Since(c.Event.Time).Round(time.Millisecond)
	if latency < 0 {
		latency = 0
	}
	return c.Reply(fmt.Sprintf("🏓 Pong! <code>%s</code>", latency))
}
