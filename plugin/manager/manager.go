package manager

import (
	"context"
	"errors"
	"fmt"

	"github.com/Brawl345/raven/bot"
	"github.com/Brawl345/raven/logger"
	"github.com/Brawl345/raven/model"
	"github.com/Brawl345/raven/plugin"
	"github.com/Brawl345/raven/utils"
	"github.com/rs/xid"
)

var log = logger.New("manager")

type (
	Service interface {
		DisableCommandForChat(ctx context.Context, chatID, name string) (*plugin.Command, error)
		EnableCommandForChat(ctx context.Context, chatID, name string) (*plugin.Command, error)
	}

	Plugin struct {
		managerService Service
	}

	texts struct {
		usage           string
		notFound        string
		protected       string
		alreadyDisabled string
		alreadyEnabled  string
		disabled        string
		enabled         string
		failed          string
	}
)

var messages = map[model.Language]texts{
	model.LanguageFrench: {
		usage:           "💡 Utilisation : <code>%s%s &lt;commande&gt;</code>",
		notFound:        "❌ Cette commande n'existe pas.",
		protected:       "❌ <code>%s</code> ne peut pas être désactivée.",
		alreadyDisabled: "💡 <code>%s</code> est déjà désactivée dans ce chat.",
		alreadyEnabled:  "💡 <code>%s</code> est déjà active dans ce chat.",
		disabled:        "✅ <code>%s</code> a été désactivée pour ce chat.",
		enabled:         "✅ <code>%s</code> a été réactivée pour ce chat.",
		failed:          "❌ Une erreur est survenue.%s",
	},
	model.LanguageEnglish: {
		usage:           "💡 Usage: <code>%s%s &lt;command&gt;</code>",
		notFound:        "❌ This command does not exist.",
		protected:       "❌ <code>%s</code> cannot be disabled.",
		alreadyDisabled: "💡 <code>%s</code> is already disabled in this chat.",
		alreadyEnabled:  "💡 <code>%s</code> is already enabled in this chat.",
		disabled:        "✅ <code>%s</code> has been disabled for this chat.",
		enabled:         "✅ <code>%s</code> has been enabled again for this chat.",
		failed:          "❌ An error occurred.%s",
	},
}

func textsFor(lang model.Language) texts {
	if t, ok := messages[lang]; ok {
		return t
	}
	return messages[model.DefaultLanguage]
}

func New(service Service) *Plugin {
	return &Plugin{
		managerService: service,
	}
}

func (*Plugin) Name() string {
	return "manager"
}

// ProtectedCommands are the commands that must never be disabled.
func (*Plugin) ProtectedCommands() []string {
	return []string{"disable", "enable"}
}

func (p *Plugin) Commands() []*plugin.Command {
	return []*plugin.Command{
		{
			Match:       plugin.ExactSet("disable"),
			Category:    "group",
			Description: "Disable a command in this chat",
			Usage:       "disable <command>",
			Requires:    plugin.Admin | plugin.GroupOnly,
			Run:         p.OnDisable,
		},
		{
			Match:       plugin.ExactSet("enable"),
			Category:    "group",
			Description: "Enable a disabled command in this chat",
			Usage:       "enable <command>",
			Requires:    plugin.Admin | plugin.GroupOnly,
			Run:         p.OnEnable,
		},
	}
}

func (p *Plugin) OnDisable(c *plugin.Context) error {
	t := textsFor(c.Language())
	if len(c.Args) == 0 {
		return c.Reply(fmt.Sprintf(t.usage, utils.Escape(c.Config.Prefix), "disable"))
	}
	name := c.Args[0]

	cmd, err := p.managerService.DisableCommandForChat(c, c.Event.ChatID, name)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			return c.Reply(t.notFound)
		case errors.Is(err, bot.ErrCommandProtected):
			return c.Reply(fmt.Sprintf(t.protected, cmd.Name()))
		case errors.Is(err, model.ErrAlreadyExists):
			return c.Reply(fmt.Sprintf(t.alreadyDisabled, cmd.Name()))
		}

		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Str("command", name).
			Str("chat_id", c.Event.ChatID).
			Msg("Failed to disable command in chat")
		return c.Reply(fmt.Sprintf(t.failed, utils.EmbedGUID(guid)))
	}

	return c.Reply(fmt.Sprintf(t.disabled, cmd.Name()))
}

func (p *Plugin) OnEnable(c *plugin.Context) error {
	t := textsFor(c.Language())
	if len(c.Args) == 0 {
		return c.Reply(fmt.Sprintf(t.usage, utils.Escape(c.Config.Prefix), "enable"))
	}
	name := c.Args[0]

	cmd, err := p.managerService.EnableCommandForChat(c, c.Event.ChatID, name)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			return c.Reply(t.notFound)
		case errors.Is(err, model.ErrAlreadyExists):
			return c.Reply(fmt.Sprintf(t.alreadyEnabled, cmd.Name()))
		}

		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Str("command", name).
			Str("chat_id", c.Event.ChatID).
			Msg("Failed to enable command in chat")
		return c.Reply(fmt.Sprintf(t.failed, utils.EmbedGUID(guid)))
	}

	return c.Reply(fmt.Sprintf(t.enabled, cmd.Name()))
}
