package store

import "time"

// Run is one recorded mining invocation: dataset, thresholds, and when
// it ran. Results hang off it per algorithm in the itemsets, rules, and
// timings tables.
type Run struct {
	ID               int64
	Dataset          string
	DatasetPath      string
	MinSupport       float64
	MinConfidence    float64
	TransactionCount int
	CreatedAt        time.Time
}

// Timing is one algorithm's wall-clock cost within a run.
type Timing struct {
	Algorithm string
	Seconds   float64
}
