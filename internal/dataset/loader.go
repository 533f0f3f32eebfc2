// Package dataset loads delimited transaction files into in-memory
// transaction lists for the mining packages.
//
// The expected file format is "TID,Items" CSV: a header line, then one
// transaction per line with a transaction ID before the first comma and
// the item list after it. The item list itself may contain the
// delimiter, so each line is split exactly once on the first comma and
// the remainder is tokenized on the configured item delimiter.
package dataset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDelimiter separates items within the Items column.
const DefaultDelimiter = ","

// Load reads the transaction file at path. The header line is skipped,
// blank lines and lines without a TID column are dropped, and duplicate
// items within a transaction collapse to one.
func Load(path, delimiter string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	var txns []Transaction
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			// Header line: TID,Items
			first = false
			continue
		}
		if line == "" {
			continue
		}

		// Split once: left of the first comma is the TID, the rest is
		// the full item string (which may contain more commas).
		idx := strings.Index(line, ",")
		if idx < 0 {
			// Malformed line, skip.
			continue
		}
		itemsStr := line[idx+1:]

		txn := parseItems(itemsStr, delimiter)
		if len(txn) == 0 {
			continue
		}
		txns = append(txns, txn)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	return &Dataset{
		Name:         NameFromPath(path),
		Path:         path,
		Transactions: txns,
	}, nil
}

// parseItems tokenizes the item column, trimming whitespace, dropping
// empty tokens, and collapsing duplicates. The result is sorted so a
// transaction has one canonical form regardless of source order.
func parseItems(s, delimiter string) Transaction {
	seen := make(map[string]bool)
	var items Transaction
	for _, tok := range strings.Split(s, delimiter) {
		tok = strings.TrimSpace(tok)
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		items = append(items, tok)
	}
	sort.Strings(items)
	return items
}

// NameFromPath returns the dataset name for a file path: the base name
// without its extension.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Universe returns the sorted distinct items across transactions. The
// sort fixes the canonical enumeration order used by the miners.
func Universe(txns []Transaction) []string {
	seen := make(map[string]bool)
	for _, txn := range txns {
		for _, item := range txn {
			seen[item] = true
		}
	}
	items := make([]string, 0, len(seen))
	for item := range seen {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// Discover lists the CSV datasets under dir, sorted by name. A missing
// directory is treated as empty rather than an error so first-run UX
// stays friendly.
func Discover(dir string) ([]Info, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		infos = append(infos, Info{
			Name: strings.TrimSuffix(entry.Name(), ".csv"),
			Path: filepath.Join(dir, entry.Name()),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Describe loads a dataset just enough to fill in its Info counts.
func Describe(info Info, delimiter string) (Info, error) {
	ds, err := Load(info.Path, delimiter)
	if err != nil {
		return info, err
	}
	info.TransactionCount = len(ds.Transactions)
	info.ItemCount = len(ds.Universe())
	return info, nil
}
