package about

import (
	"fmt"

	"github.com/Brawl345/raven/logger"
	"github.com/Brawl345/raven/plugin"
	"github.com/Brawl345/raven/utils"
)

var log = logger.New("about")

type Plugin struct {
	text string
}

func New() *Plugin {
	versionInfo, err := utils.ReadVersionInfo()
	if err != nil {
		log.Error().Err(err).Msg("Failed to read build info")
		return &Plugin{text: "<code>unknown</code>"}
	}
	return &Plugin{text: describe(versionInfo)}
}

func describe(v utils.VersionInfo) string {
	text := fmt.Sprintf("<code>%s</code>", v.Revision)
	if !v.LastCommit.IsZero() {
		text += fmt.Sprintf("\n<i>Committed on %s</i>", v.LastCommit.Format("2006-01-02 15:04"))
	}
	if v.DirtyBuild {
		text += " (dirty)"
	}
	if v.GoVersion != "" {
		text += fmt.Sprintf("\n%s %s/%s", v.GoVersion, v.GoOS, v.GoArch)
	}
	return text
}

func (*Plugin) Name() string {
	return "about"
}

func (p *Plugin) Commands() []*plugin.Command {
	return []*plugin.Command{
		{
			Match:       plugin.ExactSet("about", "version"),
			Description: "Show the running build",
			Run:         p.onAbout,
		},
	}
}

func (p *Plugin) onAbout(c *plugin.Context) error {
	return c.Reply(fmt.Sprintf("<b>%s</b> %s", utils.Escape(c.Config.Bot.Name), p.text))
}
