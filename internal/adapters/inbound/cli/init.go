package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdidvp/sclkraft/internal/adapters/outbound/config"
	"github.com/abdidvp/sclkraft/internal/domain"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .sclkraft.yaml configuration file",
		Long:  "Create a .sclkraft.yaml with the default rules and source extensions.",
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

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			content, err := generateConfig()
			if err != nil {
				return err
			}

			if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .sclkraft.yaml")

	return cmd
}

func generateConfig() (string, error) {
	data, err := config.Render(domain.DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("rendering config: %w", err)
	}

	var b strings.Builder
	b.WriteString("# sclkraft configuration\n\n")
	b.Write(data)
	b.WriteString("\n# Rules: " + strings.Join(domain.ValidRules, ", ") + "\n")
	b.WriteString(`# rules:
#   disabled:
#     - hardware-mapping

# Extra type names accepted in declarations besides the elementary ones.
# types:
#   extra:
#     - TON
#     - CTU

# exclude_paths:
#   - build
`)
	return b.String(), nil
}
