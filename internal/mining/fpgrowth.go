package mining

import (
	"sort"

	"github.com/blackwell-systems/rulemine/internal/dataset"
)

// EnumerateFPGrowth mines frequent itemsets with an FP-tree: a prefix
// tree of transactions whose items are ordered by descending global
// frequency, with per-item node chains threaded through it. Mining
// walks each item's chain to collect its prefix paths, builds a
// conditional tree from them, and recurses — no candidate generation at
// all, which makes this the fastest of the three miners on dense data.
//
// Output records are sorted by support descending, then by size and
// item tuple ascending, so runs are reproducible. The returned table
// feeds DeriveRules the same way as the other miners' tables.
func EnumerateFPGrowth(txns []dataset.Transaction, minSupport float64) ([]FrequentItemset, *SupportTable, error) {
	if err := validateThreshold(minSupport, ErrInvalidSupport); err != nil {
		return nil, nil, err
	}

	table := NewSupportTable()
	var results []FrequentItemset

	nTx := len(txns)
	if nTx == 0 {
		return results, table, nil
	}

	// Seed the tree with the raw transactions, each weighted 1.
	weighted := make([]weightedTxn, len(txns))
	for i, txn := range txns {
		weighted[i] = weightedTxn{items: txn, count: 1}
	}

	tree := buildFPTree(weighted, nTx, minSupport)

	var patterns []fpPattern
	mineFPTree(tree, nil, nTx, minSupport, &patterns)

	for _, p := range patterns {
		support := float64(p.count) / float64(nTx)
		set := NewItemset(p.items...)
		table.Add(set, support)
		results = append(results, FrequentItemset{Items: set, Support: support})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Support != results[j].Support {
			return results[i].Support > results[j].Support
		}
		return results[i].Items.Less(results[j].Items)
	})

	return results, table, nil
}

// weightedTxn is a transaction carrying a multiplicity, so conditional
// pattern bases can be replayed into a tree without expanding paths.
type weightedTxn struct {
	items []string
	count int
}

// fpPattern is a mined itemset with its absolute transaction count.
type fpPattern struct {
	items []string
	count int
}

// fpNode is one node of the FP-tree. Nodes for the same item are
// chained through next, anchored in the tree's header table.
type fpNode struct {
	item     string
	count    int
	parent   *fpNode
	children map[string]*fpNode
	next     *fpNode
}

// fpTree holds the root, the per-item header chains, and the total
// per-item counts accumulated during insertion.
type fpTree struct {
	root   *fpNode
	heads  map[string]*fpNode
	tails  map[string]*fpNode
	counts map[string]int
}

// buildFPTree constructs the tree for the given weighted transactions.
// Items below the support threshold are dropped, survivors are inserted
// in descending global-count order (ties broken by label) so shared
// prefixes actually share nodes.
func buildFPTree(wtxns []weightedTxn, nTx int, minSupport float64) *fpTree {
	counts := make(map[string]int)
	for _, wt := range wtxns {
		for _, item := range wt.items {
			counts[item] += wt.count
		}
	}

	frequent := make(map[string]int)
	for item, c := range counts {
		if float64(c)/float64(nTx) >= minSupport {
			frequent[item] = c
		}
	}

	t := &fpTree{
		root:   &fpNode{children: make(map[string]*fpNode)},
		heads:  make(map[string]*fpNode),
		tails:  make(map[string]*fpNode),
		counts: frequent,
	}

	ordered := make([]string, 0, 8)
	for _, wt := range wtxns {
		ordered = ordered[:0]
		for _, item := range wt.items {
			if _, ok := frequent[item]; ok {
				ordered = append(ordered, item)
			}
		}
		sort.Slice(ordered, func(i, j int) bool {
			if frequent[ordered[i]] != frequent[ordered[j]] {
				return frequent[ordered[i]] > frequent[ordered[j]]
			}
			return ordered[i] < ordered[j]
		})
		t.insert(ordered, wt.count)
	}

	return t
}

// insert adds one ordered transaction to the tree, bumping counts along
// the shared prefix and growing new nodes past it.
func (t *fpTree) insert(items []string, count int) {
	node := t.root
	for _, item := range items {
		child, ok := node.children[item]
		if !ok {
			child = &fpNode{
				item:     item,
				parent:   node,
				children: make(map[string]*fpNode),
			}
			node.children[item] = child
			if t.heads[item] == nil {
				t.heads[item] = child
			} else {
				t.tails[item].next = child
			}
			t.tails[item] = child
		}
		child.count += count
		node = child
	}
}

// headerItems returns the tree's items ordered ascending by count, ties
// by label. Mining from the least frequent item upward keeps the
// conditional trees small, and the fixed order makes output
// deterministic.
func (t *fpTree) headerItems() []string {
	items := make([]string, 0, len(t.counts))
	for item := range t.counts {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if t.counts[items[i]] != t.counts[items[j]] {
			return t.counts[items[i]] < t.counts[items[j]]
		}
		return items[i] < items[j]
	})
	return items
}

// prefixPaths collects the conditional pattern base for an item: every
// root-ward path above one of its nodes, weighted by that node's count.
func (t *fpTree) prefixPaths(item string) []weightedTxn {
	var paths []weightedTxn
	for node := t.heads[item]; node != nil; node = node.next {
		var path []string
		for p := node.parent; p != nil && p.parent != nil; p = p.parent {
			path = append(path, p.item)
		}
		if len(path) > 0 {
			paths = append(paths, weightedTxn{items: path, count: node.count})
		}
	}
	return paths
}

// mineFPTree emits every frequent pattern ending in the given suffix
// and recurses into each item's conditional tree.
func mineFPTree(t *fpTree, suffix []string, nTx int, minSupport float64, out *[]fpPattern) {
	for _, item := range t.headerItems() {
		pattern := make([]string, 0, len(suffix)+1)
		pattern = append(pattern, suffix...)
		pattern = append(pattern, item)
		*out = append(*out, fpPattern{items: pattern, count: t.counts[item]})

		paths := t.prefixPaths(item)
		if len(paths) == 0 {
			continue
		}
		cond := buildFPTree(paths, nTx, minSupport)
		if len(cond.counts) > 0 {
			mineFPTree(cond, pattern, nTx, minSupport, out)
		}
	}
}
