package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rulemine/internal/config"
)

var (
	dbPath      string
	dataDirFlag string

	// RootCmd is the root command for rulemine
	RootCmd = &cobra.Command{
		Use:   "rulemine",
		Short: "Frequent itemset mining and association rule discovery",
		Long: `rulemine discovers frequent itemsets and association rules in
transaction datasets using three algorithms: exhaustive enumeration,
Apriori, and FP-Growth.

Datasets are CSV files in "TID,Items" format, one transaction per line:

  TID,Items
  1,milk,bread
  2,milk,bread,butter
  3,bread

Every mining run is recorded in a local SQLite database so results can
be compared across runs, and full results are exported as CSV files
under the output directory.

Quick Start:
  1. Place a TID,Items CSV in the data directory (default: data/)
  2. rulemine mine
  3. rulemine runs

Examples:
  # Mine a dataset interactively (prompts for dataset and thresholds)
  rulemine mine

  # Mine with explicit thresholds, Apriori only
  rulemine mine -d data/groceries.csv -s 0.1 -c 0.6 --algorithms apriori

  # List known datasets and past runs
  rulemine datasets
  rulemine runs

  # Re-display a recorded run
  rulemine show 3 --rules

  # Re-mine automatically whenever a dataset file changes
  rulemine watch`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := getDBPath()
			if _, err := os.Stat(dbPath); os.IsNotExist(err) {
				fmt.Println("rulemine: frequent itemset and association rule mining")
				fmt.Println()
				fmt.Println("Run 'rulemine mine' to mine your first dataset.")
				fmt.Println("Run 'rulemine --help' for the full reference.")
			} else {
				fmt.Println("rulemine: frequent itemset and association rule mining")
				fmt.Println()
				fmt.Println("Tip: Run 'rulemine runs' to list recorded runs.")
				fmt.Println("     Run 'rulemine mine' to start a new run.")
				fmt.Println("     Run 'rulemine --help' for all commands.")
			}
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.rulemine/rulemine.db)")
	RootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "dataset directory (default: from config, then data/)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// getDBPath returns the database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	// Create .rulemine directory if it doesn't exist
	ruleminDir := filepath.Join(home, ".rulemine")
	if err := os.MkdirAll(ruleminDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create rulemine directory: %w", err)
	}

	return filepath.Join(ruleminDir, "rulemine.db"), nil
}

// loadSettings merges the config file over the built-in defaults and
// applies the persistent flags on top.
func loadSettings() *config.Config {
	cfg := config.Default()
	if dir, err := config.Dir(); err == nil {
		if loaded, err := config.Load(dir); err == nil {
			cfg = loaded
		}
	}
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	return cfg
}
