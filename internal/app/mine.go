package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	isatty "github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rulemine/internal/dataset"
	"github.com/blackwell-systems/rulemine/internal/mining"
	"github.com/blackwell-systems/rulemine/internal/output"
	"github.com/blackwell-systems/rulemine/internal/store"
)

var (
	mineDataset    string
	mineSupport    float64
	mineConfidence float64
	mineOutDir     string
	mineAlgorithms string
	mineTopN       int
	mineQuiet      bool

	mineCmd = &cobra.Command{
		Use:   "mine",
		Short: "Mine frequent itemsets and association rules from a dataset",
		Long: `Run frequent itemset mining and association rule derivation on a
transaction dataset.

When the dataset or a threshold is not given on the command line and
the session is interactive, mine prompts for it: datasets are offered
as a numbered menu of the CSV files in the data directory, and
thresholds are re-asked until they parse as a fraction in (0, 1].
In non-interactive sessions the configured defaults fill the gaps.

Each selected algorithm runs over the same transactions. The top
itemsets and rules are printed as tables, full results are exported as
CSV files under the output directory, and the run is recorded in the
database for later inspection with 'rulemine show'.`,
		Example: `  # Fully interactive
  rulemine mine

  # Explicit dataset and thresholds
  rulemine mine -d data/groceries.csv -s 0.1 -c 0.6

  # Apriori and FP-Growth only, top 25 rows, no tables
  rulemine mine -d data/retail.csv --algorithms apriori,fpgrowth --top 25 --quiet`,
		RunE: runMine,
	}
)

func init() {
	mineCmd.Flags().StringVarP(&mineDataset, "dataset", "d", "", "dataset CSV path (prompted if omitted)")
	mineCmd.Flags().Float64VarP(&mineSupport, "min-support", "s", 0, "minimum support in (0,1] (prompted if omitted)")
	mineCmd.Flags().Float64VarP(&mineConfidence, "min-confidence", "c", 0, "minimum confidence in (0,1] (prompted if omitted)")
	mineCmd.Flags().StringVarP(&mineOutDir, "outdir", "o", "", "output directory for CSV exports (default: from config)")
	mineCmd.Flags().StringVar(&mineAlgorithms, "algorithms", "", "comma-separated algorithms to run (default: all)")
	mineCmd.Flags().IntVar(&mineTopN, "top", 0, "rows to show in result tables (default: from config)")
	mineCmd.Flags().BoolVar(&mineQuiet, "quiet", false, "suppress result tables, print the summary only")

	RootCmd.AddCommand(mineCmd)
}

func runMine(cmd *cobra.Command, args []string) error {
	cfg := loadSettings()

	algorithms, err := parseAlgorithms(mineAlgorithms)
	if err != nil {
		return err
	}

	outDir := mineOutDir
	if outDir == "" {
		outDir = cfg.OutputDir
	}
	topN := mineTopN
	if topN <= 0 {
		topN = cfg.TopN
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd())
	in := bufio.NewReader(cmd.InOrStdin())

	path := mineDataset
	if path == "" {
		if interactive {
			path, err = promptDataset(in, cmd.OutOrStdout(), cfg.DataDir)
			if err != nil {
				return err
			}
		} else {
			return fmt.Errorf("no dataset given: use --dataset or run interactively")
		}
	}

	minSupport := mineSupport
	if !cmd.Flags().Changed("min-support") {
		if interactive {
			minSupport = promptThreshold(in, cmd.OutOrStdout(), "minimum support", cfg.MinSupport)
		} else {
			minSupport = cfg.MinSupport
		}
	}
	if !validThreshold(minSupport) {
		return fmt.Errorf("invalid minimum support %v: must be in (0, 1]", minSupport)
	}

	minConfidence := mineConfidence
	if !cmd.Flags().Changed("min-confidence") {
		if interactive {
			minConfidence = promptThreshold(in, cmd.OutOrStdout(), "minimum confidence", cfg.MinConfidence)
		} else {
			minConfidence = cfg.MinConfidence
		}
	}
	if !validThreshold(minConfidence) {
		return fmt.Errorf("invalid minimum confidence %v: must be in (0, 1]", minConfidence)
	}

	ds, err := dataset.Load(path, cfg.Delimiter)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	if len(ds.Transactions) == 0 {
		return fmt.Errorf("dataset %s has no transactions", ds.Name)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runID, err := st.InsertRun(&store.Run{
		Dataset:          ds.Name,
		DatasetPath:      ds.Path,
		MinSupport:       minSupport,
		MinConfidence:    minConfidence,
		TransactionCount: len(ds.Transactions),
		CreatedAt:        time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	// An aborted run must not stay listed with partial results.
	committed := false
	defer func() {
		if !committed {
			st.DeleteRun(runID)
		}
	}()

	fmt.Printf("Mining %s: %d transactions, %d items (support >= %g, confidence >= %g)\n\n",
		ds.Name, len(ds.Transactions), len(ds.Universe()), minSupport, minConfidence)

	baseDir := filepath.Join(outDir, ds.Name)
	if mineQuiet {
		// Quiet runs trade the per-algorithm tables for a single
		// progress bar across the algorithm list.
		bar := output.NewProgress(len(algorithms), "mining")
		for _, algorithm := range algorithms {
			bar.SetDescription(fmt.Sprintf("mining with %s", algorithm))
			if _, err := mineOne(st, runID, baseDir, algorithm, ds, minSupport, minConfidence); err != nil {
				return err
			}
			bar.Increment()
		}
		bar.Finish()
	} else {
		for _, algorithm := range algorithms {
			spinner := output.NewSpinner(fmt.Sprintf("Running %s", algorithm))
			spinner.Start()

			res, err := mineOne(st, runID, baseDir, algorithm, ds, minSupport, minConfidence)
			if err != nil {
				spinner.Stop()
				return err
			}

			spinner.StopWithMessage(fmt.Sprintf("✓ %s: %d frequent itemsets, %d rules (%.4fs)",
				algorithm, len(res.Frequents), len(res.Rules), res.Elapsed.Seconds()))

			fmt.Println()
			fmt.Printf("── %s: frequent itemsets ──\n", algorithm)
			fmt.Print(output.RenderItemsetTable(res.Frequents, topN))
			fmt.Println()
			fmt.Printf("── %s: association rules ──\n", algorithm)
			fmt.Print(output.RenderRuleTable(res.Rules, topN))
			fmt.Println()
		}
	}

	timings, err := st.GetTimings(runID)
	if err != nil {
		return fmt.Errorf("failed to load timings: %w", err)
	}
	if len(timings) > 1 {
		fmt.Println("Timing summary:")
		fmt.Print(output.RenderTimingTable(timings))
	}
	if err := output.WriteTimingCSV(filepath.Join(baseDir, "timings.csv"), timings); err != nil {
		return fmt.Errorf("failed to export timings: %w", err)
	}

	committed = true
	fmt.Printf("\nResults exported to %s (run id %d)\n", baseDir, runID)
	return nil
}

// mineOne runs a single algorithm over the dataset and persists and
// exports its output under the run.
func mineOne(st *store.Store, runID int64, baseDir, algorithm string, ds *dataset.Dataset, minSupport, minConfidence float64) (*mining.Result, error) {
	res, err := mining.Run(algorithm, ds.Transactions, minSupport, minConfidence)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", algorithm, err)
	}
	if err := st.RecordResult(runID, res); err != nil {
		return nil, fmt.Errorf("failed to record %s result: %w", algorithm, err)
	}
	if err := output.ExportResult(baseDir, res); err != nil {
		return nil, fmt.Errorf("failed to export %s result: %w", algorithm, err)
	}
	return res, nil
}

// promptDataset offers the CSV files under dataDir as a numbered menu
// and returns the chosen path. A path typed directly is also accepted.
func promptDataset(in *bufio.Reader, out io.Writer, dataDir string) (string, error) {
	infos, err := dataset.Discover(dataDir)
	if err != nil {
		return "", fmt.Errorf("failed to list datasets: %w", err)
	}
	if len(infos) == 0 {
		return "", fmt.Errorf("no datasets found in %s: add a TID,Items CSV or pass --dataset", dataDir)
	}

	fmt.Fprintf(out, "Datasets in %s:\n", dataDir)
	for i, info := range infos {
		fmt.Fprintf(out, "  %d. %s\n", i+1, info.Name)
	}

	for {
		fmt.Fprintf(out, "Select dataset [1-%d]: ", len(infos))
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("failed to read selection: %w", err)
		}
		answer := strings.TrimSpace(line)

		if n, convErr := strconv.Atoi(answer); convErr == nil {
			if n >= 1 && n <= len(infos) {
				return infos[n-1].Path, nil
			}
			fmt.Fprintf(out, "Enter a number between 1 and %d.\n", len(infos))
			continue
		}

		// Not a number: treat the answer as a path.
		if answer != "" {
			if _, statErr := os.Stat(answer); statErr == nil {
				return answer, nil
			}
			fmt.Fprintf(out, "No such file: %s\n", answer)
		}
	}
}

// promptThreshold asks for a fraction in (0, 1], re-asking until the
// input parses and is in range. An empty answer takes the default.
func promptThreshold(in *bufio.Reader, out io.Writer, name string, defaultValue float64) float64 {
	for {
		fmt.Fprintf(out, "Enter %s (0, 1] [default %g]: ", name, defaultValue)
		line, err := in.ReadString('\n')
		answer := strings.TrimSpace(line)

		if answer == "" {
			if err != nil {
				// Input exhausted: fall back to the default.
				return defaultValue
			}
			return defaultValue
		}

		v, convErr := strconv.ParseFloat(answer, 64)
		if convErr != nil || !validThreshold(v) {
			fmt.Fprintf(out, "Invalid %s %q: enter a fraction in (0, 1].\n", name, answer)
			if err != nil {
				return defaultValue
			}
			continue
		}
		return v
	}
}
