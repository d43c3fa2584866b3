package antiviewonce

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Brawl345/raven/logger"
	"github.com/Brawl345/raven/model"
	"github.com/Brawl345/raven/plugin"
	"github.com/Brawl345/raven/utils"
)

var log = logger.New("antiviewonce")

type texts struct {
	enabled  string
	disabled string
	status   string
	on       string
	off      string
	caption  string
	byline   string
}

var messages = map[model.Language]texts{
	model.LanguageFrench: {
		enabled:  "✅ <b>Anti-viewonce activé</b>\nLes messages à vue unique seront automatiquement sauvegardés.",
		disabled: "❌ <b>Anti-viewonce désactivé</b>\nLes messages à vue unique ne seront plus sauvegardés.",
		status:   "<b>STATUT ANTI-VIEWONCE</b>\n\n📊 État actuel : %s\n\n<b>Commandes :</b>\n• <code>%santiviewonce on</code> - Activer\n• <code>%santiviewonce off</code> - Désactiver",
		on:       "Activé",
		off:      "Désactivé",
		caption:  "🔓 <b>Message à vue unique sauvegardé</b>",
		byline:   "👤 <b>Envoyé par :</b> %s",
	},
	model.LanguageEnglish: {
		enabled:  "✅ <b>Anti-viewonce enabled</b>\nView-once messages will be saved automatically.",
		disabled: "❌ <b>Anti-viewonce disabled</b>\nView-once messages will no longer be saved.",
		status:   "<b>ANTI-VIEWONCE STATUS</b>\n\n📊 Current state: %s\n\n<b>Commands:</b>\n• <code>%santiviewonce on</code> - Enable\n• <code>%santiviewonce off</code> - Disable",
		on:       "Enabled",
		off:      "Disabled",
		caption:  "🔓 <b>View-once message saved</b>",
		byline:   "👤 <b>Sent by:</b> %s",
	},
}

func textsFor(lang model.Language) texts {
	if t, ok := messages[lang]; ok {
		return t
	}
	return messages[model.DefaultLanguage]
}

// Plugin toggles the anti-view-once setting and, as a watcher, re-posts
// view-once media in chats that enabled it.
type Plugin struct{}

func New() *Plugin {
	return &Plugin{}
}

func (*Plugin) Name() string {
	return "antiviewonce"
}

func (p *Plugin) Commands() []*plugin.Command {
	return []*plugin.Command{
		{
			Match:       plugin.Pattern("antiviewonce", `antiviewonce|antiview|avo`),
			Category:    "group",
			Description: "Save view-once media automatically",
			Usage:       "antiviewonce [on|off]",
			Requires:    plugin.Admin | plugin.GroupOnly,
			Run:         onToggle,
		},
	}
}

func onToggle(c *plugin.Context) error {
	if len(c.Args) == 0 {
		return c.Reply(status(c))
	}

	updated, err := c.Settings.Update(c, c.Event.ChatID, map[string]string{
		model.SettingAntiViewOnce: c.Args[0],
	})
	if err != nil {
		var invalid *model.InvalidSettingError
		if errors.As(err, &invalid) {
			return c.Reply(status(c))
		}
		return fmt.Errorf("updating antiviewonce: %w", err)
	}

	t := textsFor(updated.Language)
	if updated.AntiViewOnce {
		return c.Reply(t.enabled)
	}
	return c.Reply(t.disabled)
}

func status(c *plugin.Context) string {
	t := textsFor(c.Language())
	state := t.off
	if c.Chat.AntiViewOnce {
		state = t.on
	}
	prefix := utils.Escape(c.Config.Prefix)
	return fmt.Sprintf(t.status, state, prefix, prefix)
}

func (p *Plugin) Watch(c *plugin.Context) error {
	media := c.Event.ViewOnce
	if media == nil || !c.Event.IsGroup() || !c.Chat.AntiViewOnce {
		return nil
	}

	t := textsFor(c.Language())
	var sb strings.Builder
	sb.WriteString(t.caption)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(t.byline, utils.Escape(c.Event.SenderName)))
	if media.Caption != "" {
		sb.WriteString("\n\n📝 ")
		sb.WriteString(utils.Escape(media.Caption))
	}

	if err := c.Conn.SendMedia(c, c.Event.ChatID, *media, sb.String()); err != nil {
		return fmt.Errorf("reposting %s: %w", media.Kind, err)
	}

	log.Info().
		Str("chat_id", c.Event.ChatID).
		Str("user_id", c.Event.SenderID).
		Str("kind", string(media.Kind)).
		Msg("Saved view-once media")
	return nil
}
