package mining

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/rulemine/internal/dataset"
)

func TestEnumerateApriori_MatchesBruteForce(t *testing.T) {
	txns := []dataset.Transaction{
		{"bread", "milk"},
		{"bread", "diapers", "beer", "eggs"},
		{"milk", "diapers", "beer", "cola"},
		{"bread", "milk", "diapers", "beer"},
		{"bread", "milk", "diapers", "cola"},
	}

	for _, minSup := range []float64{0.2, 0.4, 0.6, 0.8} {
		bfFreq, _, err := EnumerateBruteForce(txns, minSup)
		require.NoError(t, err)
		apFreq, _, err := EnumerateApriori(txns, minSup)
		require.NoError(t, err)

		assert.Equal(t, supportsByKey(bfFreq), supportsByKey(apFreq),
			"apriori must find the same itemsets as brute force at minSup=%v", minSup)
	}
}

func TestEnumerateApriori_SupportDescendingOrder(t *testing.T) {
	results, _, err := EnumerateApriori(scenarioTxns(), 0.25)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.True(t, isNonIncreasing(results), "records must be ordered by support descending")
}

func TestEnumerateApriori_PrunesToSameTable(t *testing.T) {
	_, bfTable, err := EnumerateBruteForce(scenarioTxns(), 0.5)
	require.NoError(t, err)
	_, apTable, err := EnumerateApriori(scenarioTxns(), 0.5)
	require.NoError(t, err)

	require.Equal(t, bfTable.Len(), apTable.Len())
	for _, set := range bfTable.Itemsets() {
		want, _ := bfTable.Support(set)
		got, ok := apTable.Support(set)
		require.True(t, ok, "apriori table missing %v", set)
		assert.Equal(t, want, got)
	}
}

func TestEnumerateApriori_RulesMatchBruteForce(t *testing.T) {
	_, bfTable, err := EnumerateBruteForce(scenarioTxns(), 0.5)
	require.NoError(t, err)
	_, apTable, err := EnumerateApriori(scenarioTxns(), 0.5)
	require.NoError(t, err)

	bfRules, err := DeriveRules(bfTable, 0.6)
	require.NoError(t, err)
	apRules, err := DeriveRules(apTable, 0.6)
	require.NoError(t, err)

	// The deriver sorts fully, so identical tables give identical rules.
	assert.Equal(t, bfRules, apRules)
}

func TestEnumerateApriori_EmptyAndInvalid(t *testing.T) {
	results, table, err := EnumerateApriori(nil, 0.5)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, table.Len())

	_, _, err = EnumerateApriori(scenarioTxns(), 0)
	assert.ErrorIs(t, err, ErrInvalidSupport)
}

func TestJoinAndPrune(t *testing.T) {
	// {a,b}, {a,c}, {b,c} join to {a,b,c}, and all its pairs are
	// frequent, so it survives pruning.
	level := []Itemset{{"a", "b"}, {"a", "c"}, {"b", "c"}}
	candidates := joinAndPrune(level)
	require.Equal(t, []Itemset{{"a", "b", "c"}}, candidates)

	// Without {b,c} the joined candidate {a,b,c} has an infrequent
	// subset and must be pruned before counting.
	level = []Itemset{{"a", "b"}, {"a", "c"}, {"b", "d"}}
	candidates = joinAndPrune(level)
	assert.Empty(t, candidates)
}

// supportsByKey flattens records into a key->support map for
// order-insensitive comparison between algorithms.
func supportsByKey(records []FrequentItemset) map[string]float64 {
	m := make(map[string]float64, len(records))
	for _, rec := range records {
		m[rec.Items.Key()] = rec.Support
	}
	return m
}

func isNonIncreasing(records []FrequentItemset) bool {
	for i := 1; i < len(records); i++ {
		if records[i].Support > records[i-1].Support {
			return false
		}
	}
	return true
}
