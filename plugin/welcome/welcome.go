package welcome

import (
	"fmt"
	"strings"

	"github.com/Brawl345/raven/model"
	"github.com/Brawl345/raven/plugin"
	"github.com/Brawl345/raven/utils"
)

var greetings = map[model.Language]string{
	model.LanguageFrench:  "👋 Bienvenue %s dans <b>%s</b> !",
	model.LanguageEnglish: "👋 Welcome %s to <b>%s</b>!",
}

// Watcher greets members joining a group that enabled the welcome setting.
type Watcher struct{}

func New() *Watcher {
	return &Watcher{}
}

func (*Watcher) Name() string {
	return "welcome"
}

func (w *Watcher) Watch(c *plugin.Context) error {
	if len(c.Event.Joined) == 0 || !c.Event.IsGroup() || !c.Chat.Welcome {
		return nil
	}

	names := make([]string, 0, len(c.Event.Joined))
	for _, member := range c.Event.Joined {
		names = append(names, "<b>"+utils.Escape(member.Name)+"</b>")
	}

	greeting, ok := greetings[c.Language()]
	if !ok {
		greeting = greetings[model.DefaultLanguage]
	}
	return c.Conn.Send(c, c.Event.ChatID, fmt.Sprintf(greeting, strings.Join(names, ", "), utils.Escape(c.Event.ChatTitle)))
}
