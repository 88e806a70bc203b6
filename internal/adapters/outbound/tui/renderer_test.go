package tui_test

import (
	"strings"
	"testing"

	"github.com/abdidvp/sclkraft/internal/adapters/outbound/tui"
	"github.com/abdidvp/sclkraft/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sampleReport() domain.ValidationReport {
	return domain.NewReport([]domain.Issue{
		domain.NewError(domain.RuleRecursion, domain.DocumentLine, "recursion detected in 'FB_Loop'; forbidden by IEC 61131-3"),
		domain.NewWarning(domain.RuleTypeAnnotation, 4, "unrecognized data type 'MYTYPE'; verify it is a valid user-defined type or function-block instance"),
	})
}

func TestRenderConsole_ListsIssues(t *testing.T) {
	output := tui.RenderConsole("loop.scl", sampleReport())
	assert.Contains(t, output, "loop.scl")
	assert.Contains(t, output, "[ERROR]")
	assert.Contains(t, output, "[WARNING]")
	assert.Contains(t, output, "Line GLOBAL")
	assert.Contains(t, output, "Line 4")
	assert.Contains(t, output, "critical errors found that prevent compilation")
	assert.NotContains(t, output, "no issues found")
}

func TestRenderConsole_ErrorsBeforeWarnings(t *testing.T) {
	output := tui.RenderConsole("loop.scl", sampleReport())
	assert.Less(t, strings.Index(output, "[ERROR]"), strings.Index(output, "[WARNING]"))
}

func TestRenderConsole_Clean(t *testing.T) {
	output := tui.RenderConsole("ok.scl", domain.NewReport(nil))
	assert.Contains(t, output, "no issues found")
	assert.Contains(t, output, "structural validation complete, no critical errors")
}

func TestRenderConsole_WarningsOnlyIsComplete(t *testing.T) {
	report := domain.NewReport([]domain.Issue{
		domain.NewWarning(domain.RuleHardwareMapping, domain.DocumentLine, "missing hardware address binding"),
	})
	output := tui.RenderConsole("main.scl", report)
	assert.Contains(t, output, "structural validation complete")
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "Status: compliant", tui.StatusLine(domain.NewReport(nil)))
	assert.Equal(t, "Status: 2 issues detected", tui.StatusLine(sampleReport()))
}

func TestLineLabel(t *testing.T) {
	assert.Equal(t, "GLOBAL", tui.LineLabel(domain.NewError("r", domain.DocumentLine, "m")))
	assert.Equal(t, "12", tui.LineLabel(domain.NewError("r", 12, "m")))
}

func TestRenderProject(t *testing.T) {
	bad := sampleReport()
	clean := domain.NewReport(nil)
	report := &domain.ProjectReport{
		Status: domain.StatusFail,
		Files: []domain.FileReport{
			{File: "loop.scl", Report: &bad},
			{File: "ok.scl", Report: &clean, Cached: true},
			{File: "broken.scl", Fault: "internal engine error: rule x panicked"},
		},
		Errors:   1,
		Warnings: 1,
		Faults:   1,
	}

	output := tui.RenderProject(report)
	assert.Contains(t, output, "FAIL")
	assert.Contains(t, output, "3 files")
	assert.Contains(t, output, "1 faults")
	assert.Contains(t, output, "loop.scl")
	assert.Contains(t, output, "ok.scl")
	assert.Contains(t, output, "[FAULT]")
	assert.Contains(t, output, "rule x panicked")
}

func TestRenderProject_Empty(t *testing.T) {
	output := tui.RenderProject(&domain.ProjectReport{Status: domain.StatusPass})
	assert.Contains(t, output, "PASS")
	assert.Contains(t, output, "No source files found.")
}

func TestRenderHistory_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderHistory(nil), "No run history found.")
}

func TestRenderHistory_ShowsTrend(t *testing.T) {
	entries := []domain.RunEntry{
		{Timestamp: "2026-02-20T10:00:00Z", CommitHash: "abcdef1234567", Status: domain.StatusFail, Files: 3, Errors: 4},
		{Timestamp: "2026-02-21T10:00:00Z", Status: domain.StatusWarn, Files: 3, Warnings: 1},
	}
	output := tui.RenderHistory(entries)
	assert.Contains(t, output, "Run History")
	assert.Contains(t, output, "2026-02-20")
	assert.Contains(t, output, "abcdef1")
	assert.NotContains(t, output, "abcdef12")
	assert.Contains(t, output, "↓4")
}

func TestRenderHistory_ShortTimestamp(t *testing.T) {
	output := tui.RenderHistory([]domain.RunEntry{{Timestamp: "t1", Status: domain.StatusPass}})
	assert.Contains(t, output, "t1")
}
