// Package mining implements frequent itemset mining and association
// rule derivation over in-memory transaction lists.
//
// Three miners share one output shape: the exhaustive brute-force
// enumerator, the level-wise Apriori miner, and the FP-Growth miner.
// Each returns its frequent itemsets in a documented, reproducible
// order together with a SupportTable that the rule deriver consumes.
// All entry points are pure functions: no I/O, no shared state, no
// goroutines.
package mining

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for caller contract violations. Thresholds must lie
// in (0, 1]; the CLI validates before invoking, but the miners fail
// fast if handed an out-of-range value directly.
var (
	// ErrInvalidSupport indicates a minimum support outside (0, 1].
	ErrInvalidSupport = errors.New("mining: minimum support must be in (0, 1]")

	// ErrInvalidConfidence indicates a minimum confidence outside (0, 1].
	ErrInvalidConfidence = errors.New("mining: minimum confidence must be in (0, 1]")

	// ErrUnknownAlgorithm indicates an algorithm name with no registered miner.
	ErrUnknownAlgorithm = errors.New("mining: unknown algorithm")
)

// keySep joins items into a canonical map key. Unit separator keeps
// keys unambiguous for item labels containing commas or spaces.
const keySep = "\x1f"

// Itemset is a set of distinct item labels held in ascending order.
// The sorted representation is the canonical form: two itemsets with
// the same members always compare and hash identically.
type Itemset []string

// NewItemset returns the canonical itemset for the given labels:
// duplicates collapse and the result is sorted ascending.
func NewItemset(items ...string) Itemset {
	seen := make(map[string]bool, len(items))
	set := make(Itemset, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		set = append(set, item)
	}
	sort.Strings(set)
	return set
}

// Key returns the canonical map key for the itemset.
func (s Itemset) Key() string {
	return strings.Join(s, keySep)
}

// String renders the itemset for tables and logs, e.g. "{bread, milk}".
func (s Itemset) String() string {
	return "{" + strings.Join(s, ", ") + "}"
}

// Less reports whether s sorts before other, comparing element by
// element with the shorter itemset winning ties. This is the tuple
// ordering used for rule tie-breaks.
func (s Itemset) Less(other Itemset) bool {
	for i := 0; i < len(s) && i < len(other); i++ {
		if s[i] != other[i] {
			return s[i] < other[i]
		}
	}
	return len(s) < len(other)
}

// Minus returns the items of s not present in other. Both itemsets are
// canonical (sorted), so the result stays sorted.
func (s Itemset) Minus(other Itemset) Itemset {
	drop := make(map[string]bool, len(other))
	for _, item := range other {
		drop[item] = true
	}
	var out Itemset
	for _, item := range s {
		if !drop[item] {
			out = append(out, item)
		}
	}
	return out
}

// FrequentItemset is one enumerator output record: an itemset and the
// fraction of transactions containing it.
type FrequentItemset struct {
	Items   Itemset
	Support float64
}

// Rule is an association rule derived from a single frequent itemset:
// antecedent and consequent are disjoint, non-empty, and their union is
// the source itemset. Support is the union's support; Confidence is
// support(union)/support(antecedent).
type Rule struct {
	Antecedent Itemset
	Consequent Itemset
	Support    float64
	Confidence float64
}

// SupportTable maps itemsets to their supports. The miner that creates
// a table is its only writer; the rule deriver only reads it. Insertion
// order is preserved so iteration is reproducible across runs.
type SupportTable struct {
	supports map[string]float64
	order    []Itemset
}

// NewSupportTable returns an empty table.
func NewSupportTable() *SupportTable {
	return &SupportTable{supports: make(map[string]float64)}
}

// Add records the support for an itemset. Re-adding an itemset keeps
// its original position in the iteration order.
func (t *SupportTable) Add(items Itemset, support float64) {
	key := items.Key()
	if _, exists := t.supports[key]; !exists {
		t.order = append(t.order, items)
	}
	t.supports[key] = support
}

// Support returns the recorded support for an itemset. The second
// return is false when the itemset was never recorded (i.e. it was not
// frequent in the run that built this table).
func (t *SupportTable) Support(items Itemset) (float64, bool) {
	sup, ok := t.supports[items.Key()]
	return sup, ok
}

// Itemsets returns the recorded itemsets in insertion order. Callers
// must not mutate the returned slice.
func (t *SupportTable) Itemsets() []Itemset {
	return t.order
}

// Len returns the number of recorded itemsets.
func (t *SupportTable) Len() int {
	return len(t.order)
}

// validateThreshold checks the (0, 1] contract shared by support and
// confidence thresholds.
func validateThreshold(v float64, sentinel error) error {
	if v <= 0 || v > 1 {
		return fmt.Errorf("%w: got %v", sentinel, v)
	}
	return nil
}
