package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/rulemine/internal/mining"
	"github.com/blackwell-systems/rulemine/internal/store"
)

// openStore opens the run database and ensures the schema exists.
func openStore() (*store.Store, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, err
	}

	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := st.CreateSchema(); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to create database schema: %w", err)
	}

	return st, nil
}

// parseAlgorithms validates a comma-separated algorithm list. An empty
// string selects every registered algorithm.
func parseAlgorithms(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return append([]string(nil), mining.Algorithms...), nil
	}

	known := make(map[string]bool, len(mining.Algorithms))
	for _, name := range mining.Algorithms {
		known[name] = true
	}

	var selected []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if !known[name] {
			return nil, fmt.Errorf("unknown algorithm %q (choose from: %s)",
				name, strings.Join(mining.Algorithms, ", "))
		}
		if !seen[name] {
			seen[name] = true
			selected = append(selected, name)
		}
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("no algorithms selected")
	}
	return selected, nil
}

// validThreshold reports whether v is usable as a support or confidence
// threshold: a fraction in (0, 1].
func validThreshold(v float64) bool {
	return v > 0 && v <= 1
}
