package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Brawl345/raven/model"
	"github.com/Brawl345/raven/plugin"
	"github.com/Brawl345/raven/utils"
)

var labels = []struct {
	key   string
	label string
}{
	{model.SettingWelcome, "Welcome"},
	{model.SettingAntilink, "Antilink"},
	{model.SettingAntiViewOnce, "Anti-ViewOnce"},
	{model.SettingAntispam, "Anti-Spam"},
}

type Plugin struct{}

func New() *Plugin {
	return &Plugin{}
}

func (*Plugin) Name() string {
	return "settings"
}

func (p *Plugin) Commands() []*plugin.Command {
	return []*plugin.Command{
		{
			Match:       plugin.ExactSet("settings", "config"),
			Category:    "group",
			Description: "Show or change the group settings",
			Usage:       "settings [key] [value]",
			Example:     "settings welcome on",
			Requires:    plugin.Admin | plugin.GroupOnly,
			Run:         onSettings,
		},
	}
}

func onSettings(c *plugin.Context) error {
	t := textsFor(c.Language())

	if len(c.Args) == 0 {
		return c.Reply(Overview(c.Chat, c.Config.Prefix))
	}
	if len(c.Args) < 2 {
		return c.Reply(t.missingValue)
	}

	key := model.NormalizeSettingKey(c.Args[0])
	updated, err := c.Settings.Update(c, c.Event.ChatID, map[string]string{c.Args[0]: c.Args[1]})
	if err != nil {
		var invalid *model.InvalidSettingError
		if errors.As(err, &invalid) {
			return c.Reply(invalidMessage(t, invalid))
		}
		return fmt.Errorf("updating settings: %w", err)
	}

	if key == model.SettingLanguage {
		return c.Reply(textsFor(updated.Language).languageChanged)
	}
	if on, _ := updated.Toggle(key); on {
		return c.Reply(fmt.Sprintf(t.toggledOn, key))
	}
	return c.Reply(fmt.Sprintf(t.toggledOff, key))
}

func invalidMessage(t texts, err *model.InvalidSettingError) string {
	if err.UnknownKey() {
		return fmt.Sprintf(t.unknownSetting, utils.Escape(err.Key))
	}
	accepted := strings.Join(err.Accepted, " / ")
	if err.Key == model.SettingLanguage {
		return fmt.Sprintf(t.invalidLanguage, accepted)
	}
	return fmt.Sprintf(t.invalidToggle, accepted)
}

// Overview renders the settings document in its own language.
func Overview(s model.Settings, prefix string) string {
	t := textsFor(s.Language)
	status := func(v bool) string {
		if v {
			return t.enabled
		}
		return t.disabled
	}
	prefix = utils.Escape(prefix)

	var sb strings.Builder
	sb.WriteString(t.title)
	sb.WriteString("\n\n")
	sb.WriteString(t.features)
	sb.WriteString("\n")
	for _, l := range labels {
		v, _ := s.Toggle(l.key)
		sb.WriteString(fmt.Sprintf("• %s: %s\n", l.label, status(v)))
	}
	sb.WriteString(fmt.Sprintf("\n%s %s\n\n", t.language, s.Language))

	sb.WriteString(t.usage)
	sb.WriteString("\n")
	for _, l := range labels {
		sb.WriteString(fmt.Sprintf("• <code>%ssettings %s on/off</code>\n", prefix, l.key))
	}
	sb.WriteString(fmt.Sprintf("• <code>%ssettings language fr/en</code>", prefix))
	return sb.String()
}
