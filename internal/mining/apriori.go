package mining

import (
	"sort"

	"github.com/blackwell-systems/rulemine/internal/dataset"
)

// EnumerateApriori mines frequent itemsets level-wise with candidate
// pruning. Level 1 keeps the individually frequent items; each later
// level joins frequent (k-1)-itemsets sharing a (k-2)-prefix and drops
// any candidate with an infrequent (k-1)-subset before counting. This
// is the support-pruned counterpart to EnumerateBruteForce and explores
// far fewer candidates on sparse data while finding the same itemsets.
//
// Output records are sorted by support descending (stable, so ties keep
// level-then-universe order). The returned table is keyed identically
// to the brute-force table and feeds DeriveRules the same way.
func EnumerateApriori(txns []dataset.Transaction, minSupport float64) ([]FrequentItemset, *SupportTable, error) {
	if err := validateThreshold(minSupport, ErrInvalidSupport); err != nil {
		return nil, nil, err
	}

	table := NewSupportTable()
	var results []FrequentItemset

	nTx := len(txns)
	if nTx == 0 {
		return results, table, nil
	}

	// Counting runs over the one-hot matrix: candidates map to column
	// sets once and each count is a row scan over booleans.
	matrix := dataset.Encode(txns)

	// Level 1: individually frequent items, in universe order.
	var level []Itemset
	for _, item := range matrix.Items {
		candidate := Itemset{item}
		support := float64(matrix.SupportCount([]int{matrix.Column(item)})) / float64(nTx)
		if support >= minSupport {
			table.Add(candidate, support)
			results = append(results, FrequentItemset{Items: candidate, Support: support})
			level = append(level, candidate)
		}
	}

	for len(level) > 0 {
		var next []Itemset
		for _, candidate := range joinAndPrune(level) {
			support := float64(matrix.SupportCount(columnsFor(matrix, candidate))) / float64(nTx)
			if support >= minSupport {
				table.Add(candidate, support)
				results = append(results, FrequentItemset{Items: candidate, Support: support})
				next = append(next, candidate)
			}
		}
		level = next
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Support > results[j].Support
	})

	return results, table, nil
}

// columnsFor maps a candidate's items to their matrix columns. Every
// candidate item came from a frequent level-1 item, so the columns
// always exist.
func columnsFor(matrix *dataset.OneHot, candidate Itemset) []int {
	cols := make([]int, len(candidate))
	for i, item := range candidate {
		cols[i] = matrix.Column(item)
	}
	return cols
}

// joinAndPrune generates size-(k+1) candidates from the frequent size-k
// itemsets. Two itemsets join when they agree on their first k-1 items;
// the join of sorted prefixed sets is itself sorted. A candidate
// survives pruning only if every size-k subset is frequent — the
// downward-closure property that makes level-wise mining cheap.
func joinAndPrune(level []Itemset) []Itemset {
	frequent := make(map[string]bool, len(level))
	for _, set := range level {
		frequent[set.Key()] = true
	}

	k := len(level[0])
	var candidates []Itemset
	for i := 0; i < len(level); i++ {
		for j := i + 1; j < len(level); j++ {
			a, b := level[i], level[j]
			if !samePrefix(a, b, k-1) {
				continue
			}

			candidate := make(Itemset, k+1)
			copy(candidate, a)
			candidate[k] = b[k-1]

			if allSubsetsFrequent(candidate, frequent) {
				candidates = append(candidates, candidate)
			}
		}
	}
	return candidates
}

// samePrefix reports whether a and b share their first n items.
func samePrefix(a, b Itemset, n int) bool {
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// allSubsetsFrequent checks that every subset of the candidate formed
// by dropping one item appears in the frequent set of the prior level.
func allSubsetsFrequent(candidate Itemset, frequent map[string]bool) bool {
	subset := make(Itemset, len(candidate)-1)
	for drop := range candidate {
		copy(subset, candidate[:drop])
		copy(subset[drop:], candidate[drop+1:])
		if !frequent[subset.Key()] {
			return false
		}
	}
	return true
}
