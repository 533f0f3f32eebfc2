package dataset

// Transaction is one basket of distinct item labels. Order is not
// meaningful; duplicate raw tokens collapse during loading.
type Transaction []string

// Dataset is a loaded transaction file ready for mining.
type Dataset struct {
	Name         string // file name without extension, e.g. "groceries"
	Path         string
	Transactions []Transaction
}

// Info summarizes a dataset file without holding its transactions.
// Used by the datasets listing command.
type Info struct {
	Name             string
	Path             string
	TransactionCount int
	ItemCount        int
}

// Universe returns the sorted distinct items across all transactions.
func (d *Dataset) Universe() []string {
	return Universe(d.Transactions)
}
