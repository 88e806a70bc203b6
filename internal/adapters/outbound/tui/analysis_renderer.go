package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/sclkraft/internal/domain"
	"github.com/abdidvp/sclkraft/internal/domain/remediation"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			PaddingLeft(1).
			MarginLeft(2)

	passPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(success).
			Foreground(success).
			Bold(true).
			Padding(0, 2)
)

// RenderAnalysis renders one card per issue, errors first, each with the
// suggested remediation. A clean report renders a pass panel.
func RenderAnalysis(name string, report domain.ValidationReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("  %s %s\n\n",
		sectionHeaderStyle.Render("Analysis"),
		dimStyle.Render(name),
	))

	issues := report.Issues()
	if len(issues) == 0 {
		b.WriteString(passPanelStyle.Render("security analysis: PASSED"))
		b.WriteString("\n")
		return b.String()
	}

	for _, issue := range issues {
		color := warning
		label := "WARNING"
		if issue.Severity == domain.SeverityError {
			color = danger
			label = "ERROR"
		}

		head := lipgloss.NewStyle().Bold(true).Foreground(color).Render(label) +
			"  " + dimStyle.Render("Line "+LineLabel(issue))
		body := issue.Message + "\n" + hintStyle.Render("→ "+remediation.Suggest(issue.Message))

		b.WriteString(cardStyle.BorderForeground(color).Render(head + "\n" + body))
		b.WriteString("\n\n")
	}

	b.WriteString("  " + StatusLine(report) + "\n")
	return b.String()
}
