package handlers

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/nyanko/internal/frontend/command"
	"github.com/cory-johannsen/nyanko/internal/frontend/telnet"
	"github.com/cory-johannsen/nyanko/internal/game/catalog"
	"github.com/cory-johannsen/nyanko/internal/game/growth"
	"github.com/cory-johannsen/nyanko/internal/game/unit"
)

// nameColumnWidth caps the grid's name column, in terminal cells.
const nameColumnWidth = 24

// StatPanel is the data shown by RenderStatPanel: a unit, the open form, the
// chosen levels, and the stats the engine computed for them.
type StatPanel struct {
	Record    *unit.Record
	Form      int
	Level     int
	PlusLevel int
	Stats     unit.StatBundle
}

// RenderGrid formats the filtered catalog as a numbered table. Row numbers
// are 1-based positions in recs, usable with the show command.
func RenderGrid(recs []*unit.Record, total int) string {
	var b strings.Builder
	b.WriteString(telnet.Colorf(telnet.BrightYellow, "Units (%d/%d)", len(recs), total))
	b.WriteString("\n")
	if len(recs) == 0 {
		b.WriteString(telnet.Colorize(telnet.Dim, "  No units match the current filters."))
		b.WriteString("\n")
		return b.String()
	}

	nameWidth := 4
	for _, r := range recs {
		nameWidth = max(nameWidth, telnet.Width(r.Name))
	}
	nameWidth = min(nameWidth, nameColumnWidth)

	b.WriteString(telnet.Dim)
	b.WriteString(fmt.Sprintf("  %4s  %-8s  ", "#", "code"))
	b.WriteString(telnet.PadRight("name", nameWidth))
	b.WriteString(fmt.Sprintf("  %-11s  %-16s  %s", "rarity", "growth", "targets"))
	b.WriteString(telnet.Reset)
	b.WriteString("\n")

	for i, r := range recs {
		name := telnet.PadRight(telnet.Truncate(r.Name, nameWidth, "…"), nameWidth)
		b.WriteString(fmt.Sprintf("  %4d  %s%-8s%s  %s  %-11s  %-16s  %s\n",
			i+1,
			telnet.BrightCyan, r.Code, telnet.Reset,
			name, r.Rarity, r.Tier, joinTargets(r.Targets)))
	}
	return b.String()
}

// RenderFilters formats the facet bar: every rarity and target tag, with the
// selected ones highlighted, followed by the search text.
func RenderFilters(f catalog.Filter) string {
	var b strings.Builder

	b.WriteString(telnet.Colorize(telnet.Cyan, "Rarity: "))
	for i, r := range unit.Rarities {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(facet(string(r), f.Rarity == r))
	}
	b.WriteString("\n")

	b.WriteString(telnet.Colorize(telnet.Cyan, "Target: "))
	for i, t := range unit.Targets {
		if i > 0 {
			b.WriteString(" ")
		}
		selected := false
		for _, s := range f.Targets {
			if s == t {
				selected = true
				break
			}
		}
		b.WriteString(facet(string(t), selected))
	}
	b.WriteString("\n")

	if q := strings.TrimSpace(f.Query); q != "" {
		b.WriteString(telnet.Colorize(telnet.Cyan, "Search: "))
		b.WriteString(telnet.Colorf(telnet.BrightWhite, "%q", q))
		b.WriteString("\n")
	}
	return b.String()
}

func facet(label string, selected bool) string {
	if selected {
		return telnet.Colorize(telnet.Bold+telnet.BrightGreen, "["+label+"]")
	}
	return telnet.Colorize(telnet.Dim, label)
}

// RenderStatPanel formats a unit's stat panel. Seconds show two decimals;
// optional values without data show "-".
func RenderStatPanel(p StatPanel) string {
	r := p.Record
	s := p.Stats
	var b strings.Builder

	b.WriteString(telnet.Colorize(telnet.Bold+telnet.BrightYellow, r.FormName(p.Form)))
	b.WriteString(telnet.Colorf(telnet.Dim, "  %s  form %d/%d", r.Code, p.Form+1, r.FormCount()))
	b.WriteString("\n")
	if r.ObtainedFrom != "" {
		b.WriteString(fmt.Sprintf("획득처: %s\n", r.ObtainedFrom))
	}
	b.WriteString(fmt.Sprintf("rarity %s  growth %s  targets %s\n", r.Rarity, r.Tier, joinTargets(r.Targets)))
	b.WriteString(telnet.Colorf(telnet.BrightWhite, "Lv %d + %d", p.Level, p.PlusLevel))
	b.WriteString(telnet.Colorf(telnet.Dim, "  (total %d)", p.Level+p.PlusLevel))
	b.WriteString("\n\n")

	b.WriteString(telnet.Colorize(telnet.Cyan, "기본 스탯"))
	b.WriteString("\n")
	statLine(&b, "체력", fmt.Sprintf("%d", s.HP))
	statLine(&b, "공격력", fmt.Sprintf("%d", s.Attack))
	statLine(&b, "DPS", fmt.Sprintf("%d", s.DPS))
	statLine(&b, "이동속도", fmt.Sprintf("%d", s.MovementSpeed))
	statLine(&b, "사거리", fmt.Sprintf("%d", s.Range))
	statLine(&b, "히트백", fmt.Sprintf("%d번", s.HitBack))
	statLine(&b, "코스트", fmt.Sprintf("%d원", s.Cost))
	statLine(&b, "쿨타임", formatOptionalSeconds(s.Cooldown))
	b.WriteString("\n")

	b.WriteString(telnet.Colorize(telnet.Cyan, "공격속도 관련 스탯"))
	b.WriteString("\n")
	statLine(&b, "공격간격", formatSeconds(s.AttackSpeed))
	statLine(&b, "선딜", formatSeconds(s.InitialDelay))
	statLine(&b, "후딜", formatOptionalSeconds(s.AfterDelay))
	statLine(&b, "마무리", formatSeconds(s.FinishTime))

	return b.String()
}

func statLine(b *strings.Builder, label, value string) {
	b.WriteString("  ")
	b.WriteString(telnet.PadRight(label, 10))
	b.WriteString(value)
	b.WriteString("\n")
}

func formatSeconds(v float64) string {
	return fmt.Sprintf("%.2f초", v)
}

func formatOptionalSeconds(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatSeconds(*v)
}

func joinTargets(ts []unit.Target) string {
	if len(ts) == 0 {
		return "-"
	}
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

// RenderCurveTable formats growth rows for one unit form.
func RenderCurveTable(r *unit.Record, form int, rows []growth.Row) string {
	var b strings.Builder
	b.WriteString(telnet.Colorf(telnet.BrightYellow, "%s growth (%s)", r.FormName(form), r.Tier))
	b.WriteString("\n")
	b.WriteString(telnet.Colorf(telnet.Dim, "  %5s  %8s  %10s  %10s  %10s", "total", "x", "hp", "attack", "dps"))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %5d  %8.2f  %10d  %10d  %10d\n",
			row.TotalLevel, row.Multiplier, row.Stats.HP, row.Stats.Attack, row.Stats.DPS))
	}
	return b.String()
}

// RenderHelp lists the registry's commands grouped by category.
func RenderHelp(r *command.Registry) string {
	labels := map[string]string{
		command.CategoryBrowse: "Browse",
		command.CategoryUnit:   "Stat panel",
		command.CategorySystem: "System",
	}

	var b strings.Builder
	b.WriteString(telnet.Colorize(telnet.BrightWhite, "Available commands:"))
	b.WriteString("\n")

	byCategory := r.CommandsByCategory()
	for _, cat := range command.CategoryOrder {
		cmds := byCategory[cat]
		if len(cmds) == 0 {
			continue
		}
		b.WriteString(telnet.Colorf(telnet.BrightYellow, "  %s:", labels[cat]))
		b.WriteString("\n")
		for _, cmd := range cmds {
			usage := cmd.Name
			if cmd.Usage != "" {
				usage += " " + cmd.Usage
			}
			aliases := ""
			if len(cmd.Aliases) > 0 {
				aliases = " (" + strings.Join(cmd.Aliases, ", ") + ")"
			}
			b.WriteString("    ")
			b.WriteString(telnet.Colorize(telnet.Green, telnet.PadRight(usage, 24)))
			b.WriteString(cmd.Help)
			b.WriteString(telnet.Colorize(telnet.Dim, aliases))
			b.WriteString("\n")
		}
	}
	return b.String()
}
