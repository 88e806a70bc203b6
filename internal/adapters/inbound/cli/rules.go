package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/sclkraft/internal/adapters/outbound/config"
	"github.com/abdidvp/sclkraft/internal/adapters/outbound/tui"
	"github.com/abdidvp/sclkraft/internal/domain/rules"
)

func newRulesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "rules [path]",
		Short: "List the compliance rules",
		Long:  "List the rules in execution order, marking the ones disabled by the project's .sclkraft.yaml.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg, err := config.New().Load(absPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			all := rules.DefaultRules(nil)
			disabled := make(map[string]bool)
			for _, r := range all {
				if cfg.IsDisabledRule(r.Name()) {
					disabled[r.Name()] = true
				}
			}

			if jsonOutput {
				type ruleInfo struct {
					Name        string `json:"name"`
					Description string `json:"description"`
					Enabled     bool   `json:"enabled"`
				}
				out := make([]ruleInfo, 0, len(all))
				for _, r := range all {
					out = append(out, ruleInfo{Name: r.Name(), Description: r.Description(), Enabled: !disabled[r.Name()]})
				}
				return renderJSON(cmd, out)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRuleCatalog(all, disabled))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
