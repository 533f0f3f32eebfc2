package mining

import "sort"

// DeriveRules extracts association rules from a populated support
// table. For every recorded itemset L with at least two items, every
// proper non-empty subset A becomes a candidate antecedent with
// consequent L−A, scored confidence = support(L)/support(A). Rules
// meeting minConfidence are returned.
//
// An antecedent that is absent from the table, or recorded with zero
// support, is skipped silently: absence means A itself was below the
// support threshold in the run that built the table, so the rule is
// structurally excluded rather than an error.
//
// The result is sorted by confidence descending, then support
// descending, then antecedent tuple ascending, so "top N" truncation by
// callers is deterministic.
func DeriveRules(table *SupportTable, minConfidence float64) ([]Rule, error) {
	if err := validateThreshold(minConfidence, ErrInvalidConfidence); err != nil {
		return nil, err
	}

	var rules []Rule
	for _, l := range table.Itemsets() {
		if len(l) < 2 {
			continue
		}
		lSupport, _ := table.Support(l)

		for r := 1; r < len(l); r++ {
			eachCombination(len(l), r, func(idx []int) {
				antecedent := pick(l, idx)
				consequent := l.Minus(antecedent)
				if len(consequent) == 0 {
					// Unreachable given r < len(l); kept as a guard.
					return
				}

				aSupport, ok := table.Support(antecedent)
				if !ok || aSupport == 0 {
					return
				}

				confidence := lSupport / aSupport
				if confidence >= minConfidence {
					rules = append(rules, Rule{
						Antecedent: antecedent,
						Consequent: consequent,
						Support:    lSupport,
						Confidence: confidence,
					})
				}
			})
		}
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Confidence != rules[j].Confidence {
			return rules[i].Confidence > rules[j].Confidence
		}
		if rules[i].Support != rules[j].Support {
			return rules[i].Support > rules[j].Support
		}
		return rules[i].Antecedent.Less(rules[j].Antecedent)
	})

	return rules, nil
}
