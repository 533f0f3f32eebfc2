// Package watcher re-mines datasets when their files change.
//
// The Watcher registers the data directory with fsnotify and debounces
// the create/write events it receives: editors and download tools emit
// bursts of writes for one logical save, so a dataset is re-mined only
// after its events have been quiet for the debounce window. Each
// re-mine runs every registered algorithm with the configured default
// thresholds, records the run in the store, and refreshes the CSV
// exports.
//
// Example usage:
//
//	st, _ := store.New("~/.rulemine/rulemine.db")
//	defer st.Close()
//
//	w, err := watcher.New(cfg.DataDir, watcher.NewReminer(st, cfg, log), log)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := w.Start(); err != nil {
//		log.Fatal(err)
//	}
//	defer w.Stop()
package watcher
