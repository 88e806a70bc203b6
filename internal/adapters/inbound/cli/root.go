package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cacheAdapter "github.com/abdidvp/sclkraft/internal/adapters/outbound/cache"
	"github.com/abdidvp/sclkraft/internal/adapters/outbound/config"
	"github.com/abdidvp/sclkraft/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/sclkraft/internal/adapters/outbound/history"
	"github.com/abdidvp/sclkraft/internal/adapters/outbound/scanner"
	"github.com/abdidvp/sclkraft/internal/application"
	"github.com/abdidvp/sclkraft/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var (
		logLevel  string
		logFormat string
	)

	cmd := &cobra.Command{
		Use:   "sclkraft",
		Short: "IEC 61131-3 compliance checks for Siemens SCL",
		Long:  "sclkraft validates SCL sources against structural safety rules, normalizes keyword case and serves the checks to AI assistants over MCP.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR (env "+logger.EnvLevel+")")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: CONSOLE or JSON (env "+logger.EnvFormat+")")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newFixCmd())
	cmd.AddCommand(newSnippetsCmd())
	cmd.AddCommand(newRulesCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// newLogger builds the logger from the persistent flags, falling back to
// the environment.
func newLogger(cmd *cobra.Command) *zap.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	return logger.New(
		logger.FromEnv(level, logger.EnvLevel),
		logger.ParseFormat(logger.FromEnv(format, logger.EnvFormat)),
	)
}

func newValidateService(log *zap.Logger) *application.ValidateService {
	return application.NewValidateService(
		scanner.New(),
		config.New(),
		cacheAdapter.New(),
		history.New(),
		gitinfo.New(),
		log,
	).WithVersion(version)
}

func newFixService(log *zap.Logger) *application.FixService {
	return application.NewFixService(scanner.New(), config.New(), log)
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
