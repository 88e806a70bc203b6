package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abdidvp/sclkraft/internal/adapters/outbound/tui"
	"github.com/abdidvp/sclkraft/internal/domain/snippets"
)

func newSnippetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snippets",
		Short: "SCL code templates and function block instances",
	}
	cmd.AddCommand(newSnippetsListCmd())
	cmd.AddCommand(newSnippetsShowCmd())
	cmd.AddCommand(newSnippetsInstanceCmd())
	return cmd
}

func newSnippetsListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available templates and standard blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput {
				return renderJSON(cmd, snippets.List())
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderSnippetList(snippets.List()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newSnippetsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snip, err := snippets.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), snip.Source)
			return nil
		},
	}
}

func newSnippetsInstanceCmd() *cobra.Command {
	var (
		index int
		file  string
		line  int
	)

	cmd := &cobra.Command{
		Use:   "instance <block>",
		Short: "Generate a standard function block instance",
		Long:  "Print a declaration and call for a standard block such as TON or CTU, or insert it into --file after --line.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snippet, err := snippets.Instance(args[0], index)
			if err != nil {
				return err
			}

			if file == "" {
				fmt.Fprintln(cmd.OutOrStdout(), snippet)
				return nil
			}

			info, err := os.Stat(file)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			updated := snippets.InsertAtLine(string(data), line, snippet)
			if err := os.WriteFile(file, []byte(updated), info.Mode().Perm()); err != nil {
				return fmt.Errorf("writing %s: %w", file, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inserted %s instance into %s\n", args[0], file)
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "n", 1, "Instance number")
	cmd.Flags().StringVar(&file, "file", "", "Insert into this file instead of printing")
	cmd.Flags().IntVar(&line, "line", 0, "Insert after this 1-based line (0 inserts at the top)")
	return cmd
}
