package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/blackwell-systems/rulemine/internal/config"
	"github.com/blackwell-systems/rulemine/internal/dataset"
	"github.com/blackwell-systems/rulemine/internal/mining"
	"github.com/blackwell-systems/rulemine/internal/output"
	"github.com/blackwell-systems/rulemine/internal/store"
)

// NewReminer builds the production Runner: load the changed dataset,
// run every registered algorithm with the configured default
// thresholds, record the run, and refresh the CSV exports under the
// configured output directory.
func NewReminer(st *store.Store, cfg *config.Config, log *logrus.Logger) Runner {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return func(path string) error {
		ds, err := dataset.Load(path, cfg.Delimiter)
		if err != nil {
			return fmt.Errorf("failed to load dataset: %w", err)
		}
		if len(ds.Transactions) == 0 {
			log.WithField("dataset", ds.Name).Warn("dataset has no transactions, skipping")
			return nil
		}

		runID, err := st.InsertRun(&store.Run{
			Dataset:          ds.Name,
			DatasetPath:      ds.Path,
			MinSupport:       cfg.MinSupport,
			MinConfidence:    cfg.MinConfidence,
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

		baseDir := filepath.Join(cfg.OutputDir, ds.Name)
		for _, algorithm := range mining.Algorithms {
			res, err := mining.Run(algorithm, ds.Transactions, cfg.MinSupport, cfg.MinConfidence)
			if err != nil {
				return fmt.Errorf("failed to mine %s: %w", ds.Name, err)
			}
			if err := st.RecordResult(runID, res); err != nil {
				return fmt.Errorf("failed to record %s result: %w", algorithm, err)
			}
			if err := output.ExportResult(baseDir, res); err != nil {
				return fmt.Errorf("failed to export %s result: %w", algorithm, err)
			}

			log.WithFields(logrus.Fields{
				"dataset":   ds.Name,
				"algorithm": algorithm,
				"itemsets":  len(res.Frequents),
				"rules":     len(res.Rules),
			}).Debug("algorithm finished")
		}

		timings, err := st.GetTimings(runID)
		if err != nil {
			return fmt.Errorf("failed to load timings: %w", err)
		}
		if err := output.WriteTimingCSV(filepath.Join(baseDir, "timings.csv"), timings); err != nil {
			return fmt.Errorf("failed to export timings: %w", err)
		}

		committed = true
		return nil
	}
}
