package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rulemine/internal/output"
	"github.com/blackwell-systems/rulemine/internal/store"
)

var (
	runsDelete int64

	runsCmd = &cobra.Command{
		Use:   "runs",
		Short: "List recorded mining runs",
		Long: `List the mining runs recorded in the database, most recent first,
with their dataset, thresholds, and the algorithms that ran.

Use --delete to remove a run and all of its stored results.`,
		Example: `  # List all runs
  rulemine runs

  # Delete run 3 and its results
  rulemine runs --delete 3`,
		RunE: runRuns,
	}
)

func init() {
	runsCmd.Flags().Int64Var(&runsDelete, "delete", 0, "delete the run with this id")

	RootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if runsDelete > 0 {
		if err := st.DeleteRun(runsDelete); err != nil {
			return fmt.Errorf("failed to delete run %d: %w", runsDelete, err)
		}
		fmt.Printf("Deleted run %d\n", runsDelete)
		return nil
	}

	runs, err := st.ListRuns()
	if err != nil {
		if errors.Is(err, store.ErrNotInitialized) {
			fmt.Println("No runs recorded yet. Run 'rulemine mine' first.")
			return nil
		}
		return fmt.Errorf("failed to list runs: %w", err)
	}

	algorithms := make(map[int64][]string, len(runs))
	for _, run := range runs {
		names, err := st.RunAlgorithms(run.ID)
		if err != nil {
			return fmt.Errorf("failed to list algorithms for run %d: %w", run.ID, err)
		}
		algorithms[run.ID] = names
	}

	fmt.Print(output.RenderRunTable(runs, algorithms))
	return nil
}
