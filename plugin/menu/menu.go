package menu

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Brawl345/raven/logger"
	"github.com/Brawl345/raven/plugin"
	"github.com/Brawl345/raven/utils"
	"github.com/sosodev/duration"
)

var log = logger.New("menu")

var categoryEmojis = map[string]string{
	"general": "🔧",
	"group":   "👥",
	"owner":   "👑",
	"rpg":     "⚔️",
	"fun":     "🎮",
	"utility": "🛠️",
	"admin":   "⚡",
}

// Catalog is the read side of the command registry.
type Catalog interface {
	Categories() []string
	ListByCategory(name string) []*plugin.Command
	Commands() []*plugin.Command
}

type Plugin struct {
	catalog Catalog
	started time.Time
	version string
}

func New(catalog Catalog) *Plugin {
	version := "unknown"
	versionInfo, err := utils.ReadVersionInfo()
	if err != nil {
		log.Warn().Err(err).Msg("Build info unavailable")
	} else {
		version = versionInfo.ShortRevision()
		if versionInfo.DirtyBuild {
			version += "-dirty"
		}
	}

	return &Plugin{
		catalog: catalog,
		started: time.Now(),
		version: version,
	}
}

func (*Plugin) Name() string {
	return "menu"
}

func (p *Plugin) Commands() []*plugin.Command {
	return []*plugin.Command{
		{
			Match:       plugin.ExactSet("menu", "help", "commands"),
			Category:    "general",
			Description: "Display all available commands",
			Usage:       "menu [category]",
			Example:     "menu group",
			Run:         p.onMenu,
		},
	}
}

func (p *Plugin) onMenu(c *plugin.Context) error {
	if category := strings.TrimSpace(c.Text); category != "" {
		if cmds := p.catalog.ListByCategory(category); len(cmds) > 0 {
			return c.Reply(p.categoryMenu(c, category, cmds))
		}
	}
	return c.Reply(p.mainMenu(c))
}

func (p *Plugin) uptime() string {
	return utils.HumanizeDuration(duration.FromTimeDuration(time.Since(p.started).Truncate(time.Second)))
}

func emojiFor(category string) string {
	if emoji, ok := categoryEmojis[strings.ToLower(category)]; ok {
		return emoji
	}
	return "📁"
}

func branch(i, n int) string {
	if i == n-1 {
		return "└"
	}
	return "├"
}

func (p *Plugin) mainMenu(c *plugin.Context) string {
	categories := p.catalog.Categories()
	prefix := utils.Escape(c.Config.Prefix)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🤖 <b>%s</b>\n\n", utils.Escape(c.Config.Bot.Name)))

	sb.WriteString("📊 <b>Bot Information:</b>\n")
	sb.WriteString(fmt.Sprintf("├ 📱 Version: <code>%s</code>\n", p.version))
	sb.WriteString(fmt.Sprintf("├ ⏱️ Uptime: %s\n", p.uptime()))
	sb.WriteString(fmt.Sprintf("├ 🔧 Commands: %d\n", len(p.catalog.Commands())))
	sb.WriteString(fmt.Sprintf("├ 📂 Categories: %d\n", len(categories)))
	sb.WriteString(fmt.Sprintf("└ 👤 User: %s\n\n", utils.Escape(c.Event.SenderName)))

	sb.WriteString("📋 <b>Command Categories:</b>\n")
	for i, category := range categories {
		sb.WriteString(fmt.Sprintf("%s %s <b>%s</b> (%d)\n",
			branch(i, len(categories)),
			emojiFor(category),
			utils.Escape(utils.Capitalize(category)),
			len(p.catalog.ListByCategory(category)),
		))
	}

	sb.WriteString("\n💡 <b>Usage Tips:</b>\n")
	sb.WriteString(fmt.Sprintf("├ Type <code>%smenu [category]</code> for a specific category\n", prefix))
	sb.WriteString(fmt.Sprintf("├ Type <code>%s[command]</code> to use a command\n", prefix))
	sb.WriteString(fmt.Sprintf("└ Example: <code>%smenu group</code>\n\n", prefix))

	github := c.Config.GitHub
	if github == "" {
		github = "Not set"
	}
	sb.WriteString("🔗 <b>Quick Access:</b>\n")
	sb.WriteString(fmt.Sprintf("├ 👑 Owners: %d\n", len(c.Config.Owners)))
	sb.WriteString(fmt.Sprintf("└ 🌐 GitHub: %s\n\n", utils.Escape(github)))

	sb.WriteString(utils.Escape(c.Config.Bot.Footer))
	return sb.String()
}

func indicators(req plugin.Capability) string {
	var sb strings.Builder
	if req.Has(plugin.Owner) {
		sb.WriteString("👑")
	}
	if req.Has(plugin.Admin) {
		sb.WriteString("⚡")
	}
	if req.Has(plugin.GroupOnly) {
		sb.WriteString("👥")
	}
	if req.Has(plugin.PrivateOnly) {
		sb.WriteString("💬")
	}
	if req.Has(plugin.Premium) {
		sb.WriteString("💎")
	}
	return sb.String()
}

func (p *Plugin) categoryMenu(c *plugin.Context, category string, cmds []*plugin.Command) string {
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})

	prefix := utils.Escape(c.Config.Prefix)
	title := utils.Escape(utils.Capitalize(strings.ToLower(category)))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s <b>%s Commands</b>\n\n", emojiFor(category), title))

	sb.WriteString("📊 <b>Category Info:</b>\n")
	sb.WriteString(fmt.Sprintf("├ 📂 Category: %s\n", title))
	sb.WriteString(fmt.Sprintf("├ 🔢 Commands: %d\n", len(cmds)))
	sb.WriteString(fmt.Sprintf("└ 👤 Requested by: %s\n\n", utils.Escape(c.Event.SenderName)))

	sb.WriteString("📋 <b>Available Commands:</b>\n")
	for i, cmd := range cmds {
		last := i == len(cmds)-1
		pipe := "│"
		if last {
			pipe = " "
		}

		sb.WriteString(fmt.Sprintf("%s <code>%s%s</code>", branch(i, len(cmds)), prefix, cmd.Name()))
		if aliases := cmd.Aliases()[1:]; len(aliases) > 0 {
			sb.WriteString(fmt.Sprintf(" (%s)", strings.Join(aliases, ", ")))
		}
		sb.WriteString("\n")

		if cmd.Description != "" {
			sb.WriteString(fmt.Sprintf("%s   📝 %s\n", pipe, utils.Escape(cmd.Description)))
		}
		if ind := indicators(cmd.Requires); ind != "" {
			sb.WriteString(fmt.Sprintf("%s   🏷️ %s\n", pipe, ind))
		}
		if cmd.Usage != "" {
			sb.WriteString(fmt.Sprintf("%s   💡 Usage: <code>%s%s</code>\n", pipe, prefix, utils.Escape(cmd.Usage)))
		}
		if !last {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n🔍 <b>Legend:</b>\n")
	sb.WriteString("├ 👑 Owner only\n")
	sb.WriteString("├ ⚡ Admin only\n")
	sb.WriteString("├ 👥 Group only\n")
	sb.WriteString("├ 💬 Private only\n")
	sb.WriteString("└ 💎 Premium only\n\n")

	sb.WriteString(fmt.Sprintf("💡 Type <code>%smenu</code> to see all categories\n\n", prefix))
	sb.WriteString(utils.Escape(c.Config.Bot.Footer))
	return sb.String()
}
