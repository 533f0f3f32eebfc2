package mining

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/rulemine/internal/dataset"
)

// Registered algorithm names, as accepted by the CLI and recorded in
// the run store.
const (
	AlgorithmBruteForce = "bruteforce"
	AlgorithmApriori    = "apriori"
	AlgorithmFPGrowth   = "fpgrowth"
)

// Algorithms lists the registered miners in presentation order.
var Algorithms = []string{AlgorithmBruteForce, AlgorithmApriori, AlgorithmFPGrowth}

// Miner is the common shape of the itemset enumerators.
type Miner func(txns []dataset.Transaction, minSupport float64) ([]FrequentItemset, *SupportTable, error)

var miners = map[string]Miner{
	AlgorithmBruteForce: EnumerateBruteForce,
	AlgorithmApriori:    EnumerateApriori,
	AlgorithmFPGrowth:   EnumerateFPGrowth,
}

// MinerFor resolves an algorithm name to its miner.
func MinerFor(name string) (Miner, error) {
	miner, ok := miners[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return miner, nil
}

// Result bundles one algorithm's complete output for a mining run:
// frequent itemsets in the algorithm's documented order, the rules
// derived from them, and the wall-clock time both phases took.
type Result struct {
	Algorithm string
	Frequents []FrequentItemset
	Rules     []Rule
	Elapsed   time.Duration
}

// Run mines the transactions with the named algorithm and derives
// rules from its support table, timing both phases together.
func Run(algorithm string, txns []dataset.Transaction, minSupport, minConfidence float64) (*Result, error) {
	miner, err := MinerFor(algorithm)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	frequents, table, err := miner(txns, minSupport)
	if err != nil {
		return nil, fmt.Errorf("%s mining failed: %w", algorithm, err)
	}
	rules, err := DeriveRules(table, minConfidence)
	if err != nil {
		return nil, fmt.Errorf("%s rule derivation failed: %w", algorithm, err)
	}

	return &Result{
		Algorithm: algorithm,
		Frequents: frequents,
		Rules:     rules,
		Elapsed:   time.Since(start),
	}, nil
}
