// Package root contains the root command for the application.
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sitapp/spend-report/internal/aggregate"
	"sitapp/spend-report/internal/config"
	"sitapp/spend-report/internal/ingest"
	"sitapp/spend-report/internal/normalizer"
	"sitapp/spend-report/internal/store"
)

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration, available to all
	// subcommands after PersistentPreRunE.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "spend-report",
		Short: "Categorize bank statement exports and summarize spending.",
		Long: `spend-report ingests bank and credit-card statement exports, normalizes
vendor names, categorizes each transaction through a priority-ordered rule
set, and produces monthly spending summaries.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			var err error
			Cfg, err = config.InitializeConfig()
			if err != nil {
				return err
			}
			Log = config.ConfigureLoggingFromConfig(Cfg)

			store.SetLogger(Log)
			ingest.SetLogger(Log)
			aggregate.SetLogger(Log)
			return nil
		},
	}
)

// RuleStore opens the configured rule store.
func RuleStore() *store.RuleStore {
	return store.NewRuleStore(Cfg.RulePath())
}

// CategoryStore opens the configured category store.
func CategoryStore() *store.CategoryStore {
	return store.NewCategoryStore(Cfg.CategoryPath())
}

// Normalizer builds the vendor normalizer from the configured pattern file,
// or the built-in table when none is configured.
func Normalizer() (*normalizer.Normalizer, error) {
	if Cfg.Data.PatternFile == "" {
		return normalizer.Default(), nil
	}
	patterns, err := normalizer.LoadPatterns(Cfg.Data.PatternFile)
	if err != nil {
		return nil, err
	}
	return normalizer.New(patterns)
}

// Init initializes the root command flags.
func Init() {
	Cmd.SilenceUsage = true
}
