package antilink

import (
	"fmt"

	"github.com/Brawl345/raven/logger"
	"github.com/Brawl345/raven/model"
	"github.com/Brawl345/raven/plugin"
	"github.com/Brawl345/raven/utils"
)

var log = logger.New("antilink")

var warnings = map[model.Language]string{
	model.LanguageFrench:  "⚠️ %s, les liens ne sont pas autorisés dans ce groupe !",
	model.LanguageEnglish: "⚠️ %s, links are not allowed in this group!",
}

// Watcher removes links posted by non-admins in groups that enabled antilink.
// Without admin rights the bot can only warn.
type Watcher struct{}

func New() *Watcher {
	return &Watcher{}
}

func (*Watcher) Name() string {
	return "antilink"
}

func (w *Watcher) Watch(c *plugin.Context) error {
	ev := c.Event
	if len(ev.Links) == 0 || !ev.IsGroup() || !c.Chat.Antilink {
		return nil
	}
	if c.IsAdmin || c.IsOwner {
		return nil
	}

	warning, ok := warnings[c.Language()]
	if !ok {
		warning = warnings[model.DefaultLanguage]
	}
	warning = fmt.Sprintf(warning, "<b>"+utils.Escape(ev.SenderName)+"</b>")

	if !c.IsBotAdmin {
		return c.Reply(warning)
	}

	if err := c.Conn.Delete(c, ev); err != nil {
		return fmt.Errorf("deleting link message: %w", err)
	}
	log.Info().
		Str("chat_id", ev.ChatID).
		Str("user_id", ev.SenderID).
		Int("links", len(ev.Links)).
		Msg("Deleted message with links")
	return c.Conn.Send(c, ev.ChatID, warning)
}
