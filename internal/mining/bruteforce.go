package mining

import (
	"github.com/blackwell-systems/rulemine/internal/dataset"
)

// EnumerateBruteForce exhaustively enumerates frequent itemsets. For
// k = 1, 2, 3, ... it tests every size-k combination of the sorted item
// universe — no restriction to supersets of previously frequent sets —
// and retains those whose support meets minSupport. Enumeration stops
// at the first size where nothing is retained.
//
// That level-stop rule is the defining behavior of this baseline: it
// halts the whole search once one level is empty, it never truncates on
// a size cap or time budget, and its worst case is intentionally
// exponential. Apriori is the pruned counterpart.
//
// Output order is insertion order: all size-1 frequents in universe
// order, then all size-2 frequents, and so on. A support exactly equal
// to minSupport is retained (the comparison is >=).
//
// An empty transaction list, or a threshold no single item reaches,
// yields an empty result and an empty table; neither is an error.
func EnumerateBruteForce(txns []dataset.Transaction, minSupport float64) ([]FrequentItemset, *SupportTable, error) {
	if err := validateThreshold(minSupport, ErrInvalidSupport); err != nil {
		return nil, nil, err
	}

	table := NewSupportTable()
	var results []FrequentItemset

	nTx := len(txns)
	if nTx == 0 {
		return results, table, nil
	}

	universe := dataset.Universe(txns)
	sets := transactionSets(txns)

	for k := 1; ; k++ {
		retained := 0
		eachCombination(len(universe), k, func(idx []int) {
			candidate := pick(universe, idx)
			support := float64(countSupersets(sets, candidate)) / float64(nTx)
			if support >= minSupport {
				table.Add(candidate, support)
				results = append(results, FrequentItemset{Items: candidate, Support: support})
				retained++
			}
		})
		if retained == 0 {
			break
		}
	}

	return results, table, nil
}

// transactionSets converts transactions to membership maps once, so
// superset checks during candidate counting are O(len(candidate)).
func transactionSets(txns []dataset.Transaction) []map[string]bool {
	sets := make([]map[string]bool, len(txns))
	for i, txn := range txns {
		set := make(map[string]bool, len(txn))
		for _, item := range txn {
			set[item] = true
		}
		sets[i] = set
	}
	return sets
}

// countSupersets returns how many transactions contain every item of
// the candidate.
func countSupersets(sets []map[string]bool, candidate Itemset) int {
	count := 0
	for _, set := range sets {
		contains := true
		for _, item := range candidate {
			if !set[item] {
				contains = false
				break
			}
		}
		if contains {
			count++
		}
	}
	return count
}
