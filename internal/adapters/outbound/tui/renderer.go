package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/sclkraft/internal/domain"
)

// ── Warm palette ──
var (
	accent = lipgloss.Color("#D97706") // amber
	fg     = lipgloss.Color("#E8E6E3") // warm light gray
	dim    = lipgloss.Color("#6B7280") // muted gray
	faint  = lipgloss.Color("#3F3F46") // very dim
	// Status colors.
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	statusColors = map[string]lipgloss.Color{
		domain.StatusPass: success,
		domain.StatusWarn: warning,
		domain.StatusFail: danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

const (
	msgCompleteOK     = "structural validation complete, no critical errors"
	msgCompleteFailed = "critical errors found that prevent compilation"
	globalLabel       = "GLOBAL"
)

// RenderConsole renders a report as one log line per issue, in report
// order, followed by a closing verdict.
func RenderConsole(name string, report domain.ValidationReport) string {
	var b strings.Builder

	b.WriteString("  " + titleStyle.Render(name) + "\n")

	issues := report.Issues()
	if len(issues) == 0 {
		b.WriteString("    " + passStyle.Render("✓ no issues found") + "\n")
	}
	for _, issue := range issues {
		fmt.Fprintf(&b, "    %s %s  %s\n",
			severityTag(issue.Severity),
			fileStyle.Render(padRight("Line "+LineLabel(issue), 12)),
			issue.Message,
		)
	}

	if report.Valid {
		b.WriteString("    " + passStyle.Render(msgCompleteOK) + "\n")
	} else {
		b.WriteString("    " + failStyle.Render(msgCompleteFailed) + "\n")
	}
	return b.String()
}

// StatusLine summarizes a report in one line.
func StatusLine(report domain.ValidationReport) string {
	n := report.IssueCount()
	if n == 0 {
		return "Status: compliant"
	}
	return fmt.Sprintf("Status: %d issues detected", n)
}

// LineLabel returns the 1-based line number, or GLOBAL for document-level issues.
func LineLabel(issue domain.Issue) string {
	if issue.IsDocumentLevel() {
		return globalLabel
	}
	return fmt.Sprintf("%d", issue.Line)
}

// RenderProject renders every file of a project run and a summary box.
func RenderProject(report *domain.ProjectReport) string {
	var b strings.Builder

	title := headerStyle.Render("sclkraft")
	status := lipgloss.NewStyle().
		Bold(true).
		Foreground(statusColor(report.Status)).
		Render(strings.ToUpper(report.Status))
	counts := dimStyle.Render(fmt.Sprintf("%d files  %d errors  %d warnings",
		len(report.Files), report.Errors, report.Warnings))
	if report.Faults > 0 {
		counts += "  " + failStyle.Render(fmt.Sprintf("%d faults", report.Faults))
	}

	b.WriteString(boxStyle.Render(title + "\n\n" + status + "\n" + counts))
	b.WriteString("\n\n")

	if len(report.Files) == 0 {
		b.WriteString("  " + dimStyle.Render("No source files found.") + "\n")
		return b.String()
	}

	for i, f := range report.Files {
		switch {
		case f.Fault != "":
			b.WriteString("  " + titleStyle.Render(f.File) + "\n")
			fmt.Fprintf(&b, "    %s %s\n", errorTagStyle.Render("[FAULT]  "), f.Fault)
		case f.Report != nil:
			b.WriteString(RenderConsole(f.File, *f.Report))
		}
		if i < len(report.Files)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n  " + separatorLine + "\n")
	return b.String()
}

// RenderHistory formats run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		statusStyled := lipgloss.NewStyle().
			Foreground(statusColor(e.Status)).
			Render(padRight(e.Status, 4))

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(date),
			faintStyle.Render(hash),
			statusStyled,
			dimStyle.Render(fmt.Sprintf("%d files  %d errors  %d warnings", e.Files, e.Errors, e.Warnings)),
		)

		if i > 0 {
			diff := e.Errors - entries[i-1].Errors
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func severityTag(severity domain.Severity) string {
	switch severity {
	case domain.SeverityError:
		return errorTagStyle.Render("[ERROR]  ")
	default:
		return warnTagStyle.Render("[WARNING]")
	}
}

func statusColor(status string) lipgloss.Color {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return fg
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
