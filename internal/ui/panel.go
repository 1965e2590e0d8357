package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/habzone/internal/astro"
	"github.com/litescript/habzone/internal/state"
)

const categoryWidth = 16

var (
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true)
	systemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EC4899")).Bold(true)
	starStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
	bodyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7CFC00"))
	zoneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B5CF6"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6347"))
	toggleOnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
)

// RenderReport renders the star line and one row per enabled category.
//
//	Star used: [1/2] Sol A
//	Earth-Like:     A1⍻ A3🗸          501 - 752 ls
//	Metal-Rich:                       ×
func RenderReport(r state.Report) string {
	var lines []string

	star := labelStyle.Render(fmt.Sprintf("Star used: [%s]", r.StarLabel))
	if r.HasStar {
		star += " " + starStyle.Render(r.Star.Name)
	}
	lines = append(lines, star, "")

	if len(r.Rows) == 0 {
		lines = append(lines, dimStyle.Render("No categories enabled (1-7 to toggle)"))
	}

	bodiesWidth := 0
	for _, row := range r.Rows {
		if w := lipgloss.Width(BodiesText(row)); w > bodiesWidth {
			bodiesWidth = w
		}
	}

	for _, row := range r.Rows {
		name := labelStyle.Width(categoryWidth).Render(row.Category.Name + ":")

		bodies := BodiesText(row)
		style := bodyStyle
		if row.Unavailable {
			style = warnStyle
		}
		bodyCell := style.Width(bodiesWidth + 2).Render(bodies)

		zone := ZoneText(row, r.Unit)
		zoneCell := zoneStyle.Render(zone)
		if row.Zone.Collapsed {
			zoneCell = dimStyle.Render(zone)
		}

		lines = append(lines, name+bodyCell+zoneCell)
	}

	return "  " + strings.Join(lines, "\n  ")
}

// renderToggles shows the visibility state of every category and the
// catalog switch with their keys.
func renderToggles(v astro.Visibility) string {
	var parts []string
	for i, c := range astro.Categories {
		label := fmt.Sprintf("[%d] %s", i+1, c.Name)
		if v.Shows(c.ID) {
			parts = append(parts, toggleOnStyle.Render(label))
		} else {
			parts = append(parts, dimStyle.Render(label))
		}
	}
	if v.Catalog() {
		parts = append(parts, toggleOnStyle.Render("[e] EDSM"))
	} else {
		parts = append(parts, dimStyle.Render("[e] EDSM"))
	}
	return strings.Join(parts, " ")
}

// renderTitle draws text with a horizontal truecolor gradient.
func renderTitle(text string) string {
	runes := []rune(text)
	var b strings.Builder
	for col, r := range runes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(col, len(runes)))).Bold(true)
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// gradientColor returns a hex color for a position along the title.
// Blue (#3B82F6) -> Purple (#8B5CF6) -> Magenta (#D946EF) -> Pink (#EC4899)
func gradientColor(col, width int) string {
	if width <= 1 {
		return "#3B82F6"
	}
	x := float64(col) / float64(width-1)

	var r, g, b float64
	switch {
	case x < 0.33:
		t := x / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	case x < 0.66:
		t := (x - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	default:
		t := (x - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return int(v + 0.5)
	}
}
