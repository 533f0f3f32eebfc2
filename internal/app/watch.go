package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rulemine/internal/watcher"
)

var (
	watchDebounce time.Duration
	watchVerbose  bool

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Re-mine datasets automatically when their files change",
		Long: `Watch the data directory for created or modified CSV files and
re-run every algorithm on the changed dataset with the configured
default thresholds.

Events for the same file are debounced so a dataset still being copied
in is mined once, after writes settle. Each automatic run is recorded
in the database and its CSV exports refreshed, the same as a manual
'rulemine mine'.

Runs in the foreground; press Ctrl+C to stop.`,
		Example: `  # Watch the configured data directory
  rulemine watch

  # Watch another directory with a longer settle window
  rulemine watch --data-dir /srv/baskets --debounce 10s

  # Log every mining step
  rulemine watch --verbose`,
		RunE: runWatchCmd,
	}
)

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "quiet period before a changed file is re-mined")
	watchCmd.Flags().BoolVar(&watchVerbose, "verbose", false, "log per-algorithm progress")

	RootCmd.AddCommand(watchCmd)
}

func runWatchCmd(cmd *cobra.Command, args []string) error {
	if watchDebounce <= 0 {
		return fmt.Errorf("invalid debounce %v: must be positive", watchDebounce)
	}

	cfg := loadSettings()

	if _, err := os.Stat(cfg.DataDir); err != nil {
		return fmt.Errorf("data directory %s: %w", cfg.DataDir, err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	log := logrus.New()
	if watchVerbose {
		log.SetLevel(logrus.DebugLevel)
	}

	w, err := watcher.New(cfg.DataDir, watcher.NewReminer(st, cfg, log), log)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	w.SetDebounce(watchDebounce)

	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Printf("Watching %s for dataset changes (press Ctrl+C to stop)...\n", cfg.DataDir)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigCh
	fmt.Printf("\nReceived signal %v, shutting down...\n", sig)

	if err := w.Stop(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}

	fmt.Println("Watcher stopped")
	return nil
}
