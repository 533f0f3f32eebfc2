package mining

// eachCombination invokes fn with every k-combination of indexes drawn
// from [0, n), in lexicographic order. The index slice is reused
// between calls; fn must copy it if it needs to retain it. k <= 0 or
// k > n yields no combinations.
func eachCombination(n, k int, fn func(idx []int)) {
	if k <= 0 || k > n {
		return
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		fn(idx)

		// Advance to the next combination: find the rightmost index
		// that can still move right, bump it, and reset the tail.
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// pick maps index combinations back to item labels from a fixed-order
// universe, returning a fresh canonical (sorted) itemset. The universe
// is sorted, so picking ascending indexes yields a sorted result.
func pick(universe []string, idx []int) Itemset {
	items := make(Itemset, len(idx))
	for i, j := range idx {
		items[i] = universe[j]
	}
	return items
}
