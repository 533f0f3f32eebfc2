package output

import (
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/rulemine/internal/mining"
	"github.com/blackwell-systems/rulemine/internal/store"
)

func sampleItemsets() []mining.FrequentItemset {
	return []mining.FrequentItemset{
		{Items: mining.Itemset{"A"}, Support: 0.75},
		{Items: mining.Itemset{"B"}, Support: 0.75},
		{Items: mining.Itemset{"C"}, Support: 0.5},
		{Items: mining.Itemset{"A", "B"}, Support: 0.5},
	}
}

func sampleRules() []mining.Rule {
	return []mining.Rule{
		{Antecedent: mining.Itemset{"A"}, Consequent: mining.Itemset{"B"}, Support: 0.5, Confidence: 2.0 / 3.0},
		{Antecedent: mining.Itemset{"B"}, Consequent: mining.Itemset{"A"}, Support: 0.5, Confidence: 2.0 / 3.0},
	}
}

func TestRenderItemsetTable_Empty(t *testing.T) {
	result := RenderItemsetTable(nil, 10)
	if !strings.Contains(result, "No frequent itemsets") {
		t.Errorf("expected empty message, got: %q", result)
	}
}

func TestRenderItemsetTable_PreservesOrder(t *testing.T) {
	result := RenderItemsetTable(sampleItemsets(), 0)

	idxA := strings.Index(result, "{A}")
	idxAB := strings.Index(result, "{A, B}")
	if idxA == -1 || idxAB == -1 {
		t.Fatalf("expected both {A} and {A, B} in output:\n%s", result)
	}
	if idxA > idxAB {
		t.Error("size-1 itemsets must render before size-2 itemsets")
	}
	if !strings.Contains(result, "0.750") {
		t.Errorf("expected formatted support 0.750 in output:\n%s", result)
	}
}

func TestRenderItemsetTable_TopNTruncation(t *testing.T) {
	result := RenderItemsetTable(sampleItemsets(), 2)

	if strings.Contains(result, "{C}") {
		t.Error("rows beyond topN must not render")
	}
	if !strings.Contains(result, "... and 2 more") {
		t.Errorf("expected truncation note, got:\n%s", result)
	}
}

func TestRenderRuleTable(t *testing.T) {
	result := RenderRuleTable(sampleRules(), 15)

	if !strings.Contains(result, "Antecedent") || !strings.Contains(result, "Confidence") {
		t.Errorf("expected rule table header, got:\n%s", result)
	}
	if !strings.Contains(result, "0.667") {
		t.Errorf("expected formatted confidence 0.667, got:\n%s", result)
	}
	// First data row carries the first rule's antecedent.
	lines := strings.Split(result, "\n")
	if len(lines) < 3 || !strings.Contains(lines[2], "{A}") {
		t.Errorf("expected first rule row to lead with {A}, got:\n%s", result)
	}
}

func TestRenderRuleTable_Empty(t *testing.T) {
	result := RenderRuleTable(nil, 15)
	if !strings.Contains(result, "No rules") {
		t.Errorf("expected empty message, got: %q", result)
	}
}

func TestRenderTimingTable(t *testing.T) {
	timings := []store.Timing{
		{Algorithm: "bruteforce", Seconds: 0.1234},
		{Algorithm: "apriori", Seconds: 0.0456},
	}
	result := RenderTimingTable(timings)

	if !strings.Contains(result, "bruteforce") || !strings.Contains(result, "0.1234") {
		t.Errorf("expected timing rows, got:\n%s", result)
	}
}

func TestRenderRunTable(t *testing.T) {
	runs := []*store.Run{
		{
			ID:               2,
			Dataset:          "groceries",
			MinSupport:       0.5,
			MinConfidence:    0.6,
			TransactionCount: 4,
			CreatedAt:        time.Now().Add(-2 * time.Hour),
		},
	}
	algorithms := map[int64][]string{2: {"bruteforce", "apriori"}}

	result := RenderRunTable(runs, algorithms)
	if !strings.Contains(result, "groceries") {
		t.Errorf("expected dataset name, got:\n%s", result)
	}
	if !strings.Contains(result, "bruteforce,apriori") {
		t.Errorf("expected algorithm list, got:\n%s", result)
	}
	if !strings.Contains(result, "hours ago") {
		t.Errorf("expected relative time, got:\n%s", result)
	}
}

func TestRenderRunTable_Empty(t *testing.T) {
	result := RenderRunTable(nil, nil)
	if !strings.Contains(result, "No runs recorded") {
		t.Errorf("expected empty message, got: %q", result)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 20); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("a very long itemset label", 10); got != "a very ..." {
		t.Errorf("truncate long = %q", got)
	}
	if len(truncate("abcdef", 3)) != 3 {
		t.Error("truncate with maxLen <= 3 must hard-cut")
	}
}

func TestFormatRelativeTime(t *testing.T) {
	cases := []struct {
		t    time.Time
		want string
	}{
		{time.Time{}, "never"},
		{time.Now(), "just now"},
		{time.Now().Add(-25 * time.Hour), "yesterday"},
		{time.Now().AddDate(0, 0, -5), "5 days ago"},
		{time.Now().AddDate(0, -2, 0), "2 months ago"},
	}
	for _, tc := range cases {
		if got := formatRelativeTime(tc.t); got != tc.want {
			t.Errorf("formatRelativeTime(%v) = %q; want %q", tc.t, got, tc.want)
		}
	}
}
