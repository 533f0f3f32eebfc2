package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rulemine/internal/output"
)

var (
	showAlgorithm string
	showRulesOnly bool
	showTopN      int

	showCmd = &cobra.Command{
		Use:   "show <run-id>",
		Short: "Display the stored results of a past run",
		Long: `Render the frequent itemsets and association rules recorded for a
past mining run, in the order they were produced.

By default every algorithm of the run is shown; restrict to one with
--algorithm. With --rules only the rule tables are printed.`,
		Example: `  # Show everything recorded for run 3
  rulemine show 3

  # Only the Apriori results
  rulemine show 3 --algorithm apriori

  # Only the rules, 50 rows per table
  rulemine show 3 --rules --top 50`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}
)

func init() {
	showCmd.Flags().StringVar(&showAlgorithm, "algorithm", "", "show only this algorithm's results")
	showCmd.Flags().BoolVar(&showRulesOnly, "rules", false, "show rule tables only")
	showCmd.Flags().IntVar(&showTopN, "top", 0, "rows to show per table (default: from config)")

	RootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	runID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || runID <= 0 {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	cfg := loadSettings()
	topN := showTopN
	if topN <= 0 {
		topN = cfg.TopN
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.GetRun(runID)
	if err != nil {
		return fmt.Errorf("failed to load run %d: %w", runID, err)
	}

	algorithms, err := st.RunAlgorithms(runID)
	if err != nil {
		return fmt.Errorf("failed to list algorithms for run %d: %w", runID, err)
	}
	if showAlgorithm != "" {
		var found bool
		for _, name := range algorithms {
			if name == showAlgorithm {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("run %d has no %s results", runID, showAlgorithm)
		}
		algorithms = []string{showAlgorithm}
	}

	fmt.Printf("Run %d: %s (%d transactions, support >= %g, confidence >= %g, %s)\n",
		run.ID, run.Dataset, run.TransactionCount, run.MinSupport, run.MinConfidence,
		run.CreatedAt.Local().Format("2006-01-02 15:04:05"))

	for _, algorithm := range algorithms {
		if !showRulesOnly {
			itemsets, err := st.GetItemsets(runID, algorithm)
			if err != nil {
				return fmt.Errorf("failed to load %s itemsets: %w", algorithm, err)
			}
			fmt.Println()
			fmt.Printf("── %s: frequent itemsets ──\n", algorithm)
			fmt.Print(output.RenderItemsetTable(itemsets, topN))
		}

		rules, err := st.GetRules(runID, algorithm)
		if err != nil {
			return fmt.Errorf("failed to load %s rules: %w", algorithm, err)
		}
		fmt.Println()
		fmt.Printf("── %s: association rules ──\n", algorithm)
		fmt.Print(output.RenderRuleTable(rules, topN))
	}

	timings, err := st.GetTimings(runID)
	if err != nil {
		return fmt.Errorf("failed to load timings: %w", err)
	}
	if len(timings) > 1 {
		fmt.Println()
		fmt.Println("Timing summary:")
		fmt.Print(output.RenderTimingTable(timings))
	}

	return nil
}
