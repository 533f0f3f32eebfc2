package dataset

// OneHot is a boolean transaction-by-item matrix over a fixed, sorted
// item universe. Row i column j is true when transaction i contains
// Items[j].
type OneHot struct {
	Items []string
	Rows  [][]bool

	index map[string]int
}

// Encode builds the one-hot matrix for txns. Columns are the sorted
// item universe, so two encodes of the same transactions are identical.
func Encode(txns []Transaction) *OneHot {
	items := Universe(txns)
	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item] = i
	}

	rows := make([][]bool, len(txns))
	for i, txn := range txns {
		row := make([]bool, len(items))
		for _, item := range txn {
			row[index[item]] = true
		}
		rows[i] = row
	}

	return &OneHot{Items: items, Rows: rows, index: index}
}

// Column returns the column index for item, or -1 if the item does not
// occur in any transaction.
func (m *OneHot) Column(item string) int {
	idx, ok := m.index[item]
	if !ok {
		return -1
	}
	return idx
}

// SupportCount returns how many rows contain every one of the given
// column indexes.
func (m *OneHot) SupportCount(cols []int) int {
	count := 0
	for _, row := range m.Rows {
		all := true
		for _, c := range cols {
			if !row[c] {
				all = false
				break
			}
		}
		if all {
			count++
		}
	}
	return count
}
