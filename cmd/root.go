package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkretz/budgetwatch/internal/clickup"
	"github.com/mkretz/budgetwatch/internal/config"
	"github.com/mkretz/budgetwatch/internal/logging"
	"github.com/mkretz/budgetwatch/internal/refresh"
	"github.com/mkretz/budgetwatch/internal/storage"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "budgetwatch",
	Short: "budgetwatch – time-budget alerts for your workspace",
	Long: `budgetwatch tracks the hours logged against workspace folders and lists,
compares them to configured hour budgets, and shows color-coded alerts.
All state is stored as human-readable JSON files in ~/.budgetwatch/.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(alertCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(statusCmd)
}

// newLogger builds the CLI logger; warnings only unless --verbose is set.
func newLogger() logging.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return logging.NewTextLogger(os.Stderr, level)
}

// openStore opens the data directory or exits.
func openStore() *storage.Store {
	base, err := storage.BaseDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return storage.New(base)
}

// clientFactory builds API clients honoring the configured base URL.
func clientFactory(log logging.Logger) refresh.ClientFactory {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return func(token string) refresh.Client {
		return clickup.NewClient(token,
			clickup.WithBaseURL(cfg.API.BaseURL),
			clickup.WithLogger(log),
		)
	}
}
