package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"glucolog/internal/app"
	"glucolog/internal/domain"
)

var (
	colorText   = lipgloss.Color("#FFFCF0")
	colorMuted  = lipgloss.Color("#6F6E69")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorRed    = lipgloss.Color("#D14D41")
	colorBorder = lipgloss.Color("#282726")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	upStyle     = lipgloss.NewStyle().Foreground(colorRed)
	downStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	normalStyle = lipgloss.NewStyle().Foreground(colorGreen)
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

// renderTitle renders a title bar in a rounded box.
func renderTitle(title string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)
	return box.Render(titleStyle.Render(title))
}

// renderChange colours a rise red and a fall green; lower glucose is the
// good direction.
func renderChange(t app.Trend) string {
	switch t.Direction {
	case domain.DirectionUp:
		return upStyle.Render(t.Text)
	case domain.DirectionDown:
		return downStyle.Render(t.Text)
	}
	return mutedStyle.Render(t.Text)
}

func renderWeekly(rep *app.WeeklyReport) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(rep.MealContext.Label()))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %-16s %s\n", "This week", rep.Current.Text)
	fmt.Fprintf(&b, "  %-16s %s\n", "Previous week", rep.Previous.Text)
	fmt.Fprintf(&b, "  %-16s %s\n", "Change", renderChange(rep.Change))
	fmt.Fprintf(&b, "  %-16s %s\n", "Target", mutedStyle.Render(domain.TargetText(rep.MealContext)))
	for _, p := range rep.Chart {
		status := normalStyle.Render("normal")
		if p.Abnormal {
			status = alertStyle.Render("abnormal")
		}
		fmt.Fprintf(&b, "    %s %s  %6.1f  %s\n", p.Day, p.Time, p.GlucoseLevel, status)
	}
	return b.String()
}

func renderSummary(day string, mc domain.MealContext, s app.Summary) string {
	return fmt.Sprintf("  %-16s %s %s\n", mc.Label(), s.Text, mutedStyle.Render(fmt.Sprintf("(%d on %s)", s.Count, day)))
}

func renderClassification(mc domain.MealContext, level int, abnormal bool) string {
	status := normalStyle.Render("normal")
	if abnormal {
		status = alertStyle.Render("abnormal")
	}
	return fmt.Sprintf("%d mg/dL %s: %s (%s)\n", level, mc.Label(), status, domain.TargetText(mc))
}
