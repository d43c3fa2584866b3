package monsterinfo

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Brawl345/raven/plugin"
	"github.com/Brawl345/raven/utils"
)

//go:embed monsters.json
var monstersJSON []byte

type (
	Skill struct {
		Name   string `json:"nama"`
		Damage int    `json:"damage"`
	}

	Monster struct {
		ID      string  `json:"id"`
		Name    string  `json:"nama"`
		Tier    string  `json:"tier"`
		Element string  `json:"elemen"`
		Price   int64   `json:"harga"`
		Skills  []Skill `json:"skill"`
	}

	tierInfo struct {
		emoji string
		desc  string
	}

	elementInfo struct {
		emoji  string
		name   string
		strong string
		weak   string
	}
)

var tierOrder = []string{"S", "A", "B", "C", "D"}

var tiers = map[string]tierInfo{
	"S": {"🔴", "Super Rare"},
	"A": {"🟠", "Rare"},
	"B": {"🟡", "Uncommon"},
	"C": {"🟢", "Common"},
	"D": {"🔵", "Basic"},
}

var elements = map[string]elementInfo{
	"api":     {"🔥", "Api", "tanah", "air"},
	"air":     {"💧", "Air", "api", "listrik"},
	"tanah":   {"🌍", "Tanah", "listrik", "api"},
	"listrik": {"⚡", "Listrik", "air", "tanah"},
}

func element(name string) elementInfo {
	if e, ok := elements[name]; ok {
		return e
	}
	return elementInfo{emoji: "❓", name: "Unknown"}
}

func tier(name string) tierInfo {
	if t, ok := tiers[name]; ok {
		return t
	}
	return tierInfo{emoji: "⚪", desc: "Unknown"}
}

type Plugin struct {
	monsters []Monster
}

// New loads the embedded monster table.
func New() (*Plugin, error) {
	return newFromJSON(monstersJSON)
}

func newFromJSON(data []byte) (*Plugin, error) {
	var monsters []Monster
	if err := json.Unmarshal(data, &monsters); err != nil {
		return nil, fmt.Errorf("parsing monster table: %w", err)
	}
	return &Plugin{monsters: monsters}, nil
}

func (*Plugin) Name() string {
	return "monsterinfo"
}

func (p *Plugin) Commands() []*plugin.Command {
	return []*plugin.Command{
		{
			Match:       plugin.ExactSet("monsterinfo", "minfo"),
			Category:    "rpg",
			Description: "View detailed information about monsters",
			Usage:       "monsterinfo [id]",
			Example:     "monsterinfo golem",
			Run:         p.onMonsterInfo,
		},
	}
}

func (p *Plugin) find(id string) (Monster, bool) {
	for _, m := range p.monsters {
		if strings.EqualFold(m.ID, id) {
			return m, true
		}
	}
	return Monster{}, false
}

func (p *Plugin) onMonsterInfo(c *plugin.Context) error {
	if len(p.monsters) == 0 {
		return c.Reply("❌ The monster list is empty!")
	}

	prefix := utils.Escape(c.Config.Prefix)
	if len(c.Args) == 0 {
		return c.Reply(p.list(prefix))
	}

	monster, ok := p.find(c.Args[0])
	if !ok {
		return c.Reply(fmt.Sprintf("❌ Monster not found. Use <code>%smonsterinfo</code> without arguments to see the list.", prefix))
	}
	return c.Reply(detail(monster))
}

func (p *Plugin) list(prefix string) string {
	byTier := make(map[string][]Monster)
	for _, m := range p.monsters {
		byTier[m.Tier] = append(byTier[m.Tier], m)
	}

	var sb strings.Builder
	sb.WriteString("📚 <b>MONSTER LIST</b>\n\n")
	sb.WriteString(fmt.Sprintf("Use <code>%smonsterinfo &lt;id&gt;</code> to see a monster's details\n\n", prefix))

	for _, name := range tierOrder {
		monsters := byTier[name]
		if len(monsters) == 0 {
			continue
		}
		t := tier(name)
		sb.WriteString(fmt.Sprintf("%s <b>TIER %s (%s)</b>\n", t.emoji, name, t.desc))
		for _, m := range monsters {
			sb.WriteString(fmt.Sprintf("• %s %s - ID: <code>%s</code>\n",
				utils.Escape(m.Name), element(m.Element).emoji, utils.Escape(m.ID)))
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

func detail(m Monster) string {
	t := tier(m.Tier)
	e := element(m.Element)

	var sb strings.Builder
	sb.WriteString("🔍 <b>MONSTER DETAILS</b>\n\n")
	sb.WriteString("📋 <b>General</b>\n")
	sb.WriteString(fmt.Sprintf("• Name: %s\n", utils.Escape(m.Name)))
	sb.WriteString(fmt.Sprintf("• ID: <code>%s</code>\n", utils.Escape(m.ID)))
	sb.WriteString(fmt.Sprintf("• Tier: %s %s (%s)\n", t.emoji, m.Tier, t.desc))
	sb.WriteString(fmt.Sprintf("• Element: %s %s\n", e.emoji, e.name))
	sb.WriteString(fmt.Sprintf("• Price: Rp%s\n\n", utils.FormatThousand(m.Price)))

	sb.WriteString("⚔️ <b>Skills</b>\n")
	for i, s := range m.Skills {
		sb.WriteString(fmt.Sprintf("• Skill %d: %s (%d DMG)\n", i+1, utils.Escape(s.Name), s.Damage))
	}

	strong := element(e.strong)
	weak := element(e.weak)
	sb.WriteString("\n📊 <b>Element Effectiveness</b>\n")
	sb.WriteString(fmt.Sprintf("• Strong against: %s %s\n", strong.emoji, strong.name))
	sb.WriteString(fmt.Sprintf("• Weak against: %s %s", weak.emoji, weak.name))
	return sb.String()
}
