package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdidvp/sclkraft/internal/adapters/outbound/config"
	"github.com/abdidvp/sclkraft/internal/adapters/outbound/tui"
	"github.com/abdidvp/sclkraft/internal/application"
	"github.com/abdidvp/sclkraft/internal/domain"
)

const (
	viewConsole  = "console"
	viewAnalysis = "analysis"
)

// target is one project run: a directory scan or explicit files under a root.
type target struct {
	root  string
	files []string
}

func newValidateCmd() *cobra.Command {
	var (
		fromStdin   bool
		jsonOutput  bool
		view        string
		ciMode      bool
		strict      bool
		noCache     bool
		changed     bool
		showHistory bool
	)

	cmd := &cobra.Command{
		Use:   "validate [path...]",
		Short: "Validate SCL sources against the compliance rules",
		Long:  "Validate files or project directories (default: current directory). Directories are scanned for configured source extensions and the run is recorded in the project history.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if view != viewConsole && view != viewAnalysis {
				return fmt.Errorf("unknown view %q (valid: %s, %s)", view, viewConsole, viewAnalysis)
			}

			log := newLogger(cmd)
			defer func() { _ = log.Sync() }()
			svc := newValidateService(log)

			if fromStdin {
				return validateStdin(cmd, svc, view, jsonOutput, ciMode, strict)
			}

			targets, err := resolveTargets(args)
			if err != nil {
				return err
			}

			if showHistory {
				entries, err := svc.History(targets[0].root)
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			var reports []*domain.ProjectReport
			for _, t := range targets {
				report, err := svc.ValidateProject(cmd.Context(), t.root, application.ProjectOptions{
					Files:       t.files,
					ChangedOnly: changed,
					Strict:      strict,
					NoCache:     noCache,
					Record:      len(t.files) == 0 && !changed,
				})
				if err != nil {
					return fmt.Errorf("validate failed: %w", err)
				}
				reports = append(reports, report)
			}

			if jsonOutput {
				if len(reports) == 1 {
					if err := renderJSON(cmd, reports[0]); err != nil {
						return err
					}
				} else if err := renderJSON(cmd, reports); err != nil {
					return err
				}
			} else {
				for _, r := range reports {
					fmt.Fprint(cmd.OutOrStdout(), renderProjectView(r, view))
				}
			}

			if !ciMode {
				return nil
			}
			var errs, warns, faults int
			failed := false
			for _, r := range reports {
				errs += r.Errors
				warns += r.Warnings
				faults += r.Faults
				failed = failed || r.Status == domain.StatusFail
			}
			if failed {
				return fmt.Errorf("validation failed: %d error(s), %d warning(s), %d fault(s)", errs, warns, faults)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read source from stdin")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")
	cmd.Flags().StringVar(&view, "view", viewConsole, "Output view: console or analysis")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 when the run fails")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on warnings")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Ignore and do not update the report cache")
	cmd.Flags().BoolVar(&changed, "changed", false, "Only validate files changed in the git worktree")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show run history")

	return cmd
}

func validateStdin(cmd *cobra.Command, svc *application.ValidateService, view string, jsonOutput, ciMode, strict bool) error {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	cfg, err := config.New().Load(".")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	report, err := svc.ValidateSource("stdin", string(data), cfg)
	if err != nil {
		return fmt.Errorf("validate failed: %w", err)
	}

	switch {
	case jsonOutput:
		if err := renderJSON(cmd, report); err != nil {
			return err
		}
	case view == viewAnalysis:
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderAnalysis("stdin", report))
	default:
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderConsole("stdin", report))
		fmt.Fprintln(cmd.OutOrStdout(), "  "+tui.StatusLine(report))
	}

	status := domain.ComputeStatus(len(report.Errors), len(report.Warnings), 0, strict || cfg.Strict)
	if ciMode && status == domain.StatusFail {
		return fmt.Errorf("validation failed: %d error(s), %d warning(s)", len(report.Errors), len(report.Warnings))
	}
	return nil
}

func renderProjectView(report *domain.ProjectReport, view string) string {
	if view != viewAnalysis {
		return tui.RenderProject(report)
	}
	var b strings.Builder
	for _, f := range report.Files {
		if f.Fault != "" {
			fmt.Fprintf(&b, "  %s: %s\n\n", f.File, f.Fault)
			continue
		}
		b.WriteString(tui.RenderAnalysis(f.File, *f.Report))
		b.WriteString("\n")
	}
	return b.String()
}

// resolveTargets groups path arguments into project runs. Directories are
// scanned as projects. Files are validated relative to the working
// directory, or to their own directory when they live outside it.
func resolveTargets(args []string) ([]target, error) {
	cwd, err := filepath.Abs(".")
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if len(args) == 0 {
		return []target{{root: cwd}}, nil
	}

	var targets []target
	fileTargets := make(map[string]int)
	for _, arg := range args {
		absPath, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving path: %w", err)
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			targets = append(targets, target{root: absPath})
			continue
		}

		root := cwd
		rel, err := filepath.Rel(cwd, absPath)
		if err != nil || strings.HasPrefix(rel, "..") {
			root = filepath.Dir(absPath)
			rel = filepath.Base(absPath)
		}
		idx, ok := fileTargets[root]
		if !ok {
			idx = len(targets)
			fileTargets[root] = idx
			targets = append(targets, target{root: root})
		}
		targets[idx].files = append(targets[idx].files, rel)
	}
	return targets, nil
}
