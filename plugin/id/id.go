package id

import (
	"fmt"
	"strings"

	"github.com/Brawl345/raven/plugin"
	"github.com/Brawl345/raven/utils"
)

type Plugin struct{}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string {
	return "id"
}

func (p *Plugin) Commands() []*plugin.Command {
	return []*plugin.Command{
		{
			Match:       plugin.ExactSet("id", "whoami"),
			Description: "Show your user id and the chat id",
			Run:         onID,
		},
	}
}

func onID(c *plugin.Context) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("👤 <b>%s</b> <code>[%s]</code>", utils.Escape(c.Event.SenderName), c.Event.SenderID))

	var roles []string
	if c.IsOwner {
		roles = append(roles, "owner")
	}
	if c.IsAdmin {
		roles = append(roles, "admin")
	}
	if c.Event.IsPremium {
		roles = append(roles, "premium")
	}
	if len(roles) > 0 {
		sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", strings.Join(roles, ", ")))
	}

	if c.Event.IsGroup() {
		sb.WriteString(fmt.Sprintf("\n👥 <b>%s</b> <code>[%s]</code>",
			utils.Escape(c.Event.ChatTitle),
			c.Event.ChatID,
		))
	}

	return c.Reply(sb.String())
}
