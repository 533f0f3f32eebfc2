package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/blackwell-systems/rulemine/internal/mining"
	"github.com/blackwell-systems/rulemine/internal/store"
)

// CSV result layout under the output directory:
//
//	<outdir>/<dataset>/<algorithm>/frequent_itemsets.csv
//	<outdir>/<dataset>/<algorithm>/association_rules.csv
//	<outdir>/<dataset>/timings.csv
//
// Items within a CSV cell are joined with "; " so the files stay
// single-delimiter and spreadsheet-friendly.

const itemJoin = "; "

// ExportResult writes one algorithm's itemset and rule CSVs under
// baseDir (the per-dataset output directory). Rows keep the miner's
// documented ordering.
func ExportResult(baseDir string, res *mining.Result) error {
	dir := filepath.Join(baseDir, res.Algorithm)

	if err := WriteItemsetCSV(filepath.Join(dir, "frequent_itemsets.csv"), res.Frequents); err != nil {
		return err
	}
	return WriteRuleCSV(filepath.Join(dir, "association_rules.csv"), res.Rules)
}

// WriteItemsetCSV writes frequent itemsets to path, creating parent
// directories as needed.
func WriteItemsetCSV(path string, records []mining.FrequentItemset) error {
	return writeCSV(path, [][]string{{"itemset", "support"}}, func(rows [][]string) [][]string {
		for _, rec := range records {
			rows = append(rows, []string{
				strings.Join(rec.Items, itemJoin),
				formatFloat(rec.Support),
			})
		}
		return rows
	})
}

// WriteRuleCSV writes association rules to path, creating parent
// directories as needed.
func WriteRuleCSV(path string, rules []mining.Rule) error {
	return writeCSV(path, [][]string{{"antecedent", "consequent", "support", "confidence"}}, func(rows [][]string) [][]string {
		for _, rule := range rules {
			rows = append(rows, []string{
				strings.Join(rule.Antecedent, itemJoin),
				strings.Join(rule.Consequent, itemJoin),
				formatFloat(rule.Support),
				formatFloat(rule.Confidence),
			})
		}
		return rows
	})
}

// WriteTimingCSV writes the per-algorithm timing summary to path.
func WriteTimingCSV(path string, timings []store.Timing) error {
	return writeCSV(path, [][]string{{"algorithm", "seconds"}}, func(rows [][]string) [][]string {
		for _, t := range timings {
			rows = append(rows, []string{t.Algorithm, strconv.FormatFloat(t.Seconds, 'f', 4, 64)})
		}
		return rows
	})
}

// writeCSV creates the parent directory, then writes header plus the
// rows produced by fill.
func writeCSV(path string, header [][]string, fill func([][]string) [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(fill(header)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
