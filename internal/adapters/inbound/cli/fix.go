package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newFixCmd() *cobra.Command {
	var (
		dryRun     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "fix [path] [file...]",
		Short: "Normalize IEC keywords to upper case",
		Long:  "Rewrite FUNCTION, VAR, IF, TRUE and the other IEC 61131-3 keywords in upper case. With only a path, every source file of the project is normalized; extra arguments name files relative to the path.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			var files []string
			if len(args) > 1 {
				files = args[1:]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			log := newLogger(cmd)
			defer func() { _ = log.Sync() }()

			plan, err := newFixService(log).Normalize(absPath, files, dryRun)
			if err != nil {
				return fmt.Errorf("fix failed: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, plan)
			}

			out := cmd.OutOrStdout()
			if len(plan.Applied) == 0 {
				fmt.Fprintln(out, "All keywords already normalized.")
				return nil
			}
			verb := "Normalized"
			if dryRun {
				verb = "Would normalize"
			}
			for _, fix := range plan.Applied {
				fmt.Fprintf(out, "%s %s\n", verb, fix.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List files that would change without writing them")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the fix plan as JSON")

	return cmd
}
