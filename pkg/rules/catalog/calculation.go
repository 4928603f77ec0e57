//
//  Copyright © Manetu Inc. All rights reserved.
//

package catalog

import (
	"strings"

	"github.com/xbrldq/dqengine/pkg/filing"
	"github.com/xbrldq/dqengine/pkg/rules"
)

// Condensed from the base-taxonomy calculation linkbase: parent element to
// its summed children with their declared weights. A filer calculation
// edge running the other way, or with the opposite weight sign, has the
// arithmetic upside down even if it happens to foot.
var baseCalculations = map[string]map[string]float64{
	"Assets": {
		"AssetsCurrent":    1,
		"AssetsNoncurrent": 1,
	},
	"Liabilities": {
		"LiabilitiesCurrent":    1,
		"LiabilitiesNoncurrent": 1,
	},
	"LiabilitiesAndStockholdersEquity": {
		"Liabilities": 1,
		"StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest": 1,
		"StockholdersEquity": 1,
	},
	"StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest": {
		"StockholdersEquity": 1,
		"MinorityInterest":   1,
	},
	"GrossProfit": {
		"Revenues":      1,
		"CostOfRevenue": -1,
	},
	"OperatingIncomeLoss": {
		"GrossProfit":       1,
		"OperatingExpenses": -1,
	},
	"NetIncomeLoss": {
		"ProfitLoss": 1,
	},
}

func baseCalculationWeight(parent, child string) (float64, bool) {
	w, ok := baseCalculations[parent][child]
	return w, ok
}

// reversedCalculation (DQC.US.0008.6819) compares every filer calculation
// edge against the base taxonomy: an edge whose direction contradicts the
// base parent/child relationship, or whose weight sign flips the base
// weight, is reported once per role.
func reversedCalculation(ec *rules.EvalContext) ([]rules.Match, error) {
	gaap, err := ec.Namespace("us-gaap")
	if err != nil {
		return nil, err
	}

	dts := ec.Filing.DTS
	var matches []rules.Match
	for _, role := range dts.Roles(filing.CalculationNetwork) {
		for _, rel := range dts.Network(filing.CalculationNetwork, role).Relationships() {
			if rel.Source.Name.Namespace != gaap || rel.Target.Name.Namespace != gaap {
				continue
			}
			// The filer declares Source as the sum of Target; either the
			// base taxonomy sums the other way around, or the edge runs
			// the base direction with the weight sign inverted.
			_, reversed := baseCalculationWeight(rel.Target.Name.Local, rel.Source.Name.Local)
			if !reversed {
				base, ok := baseCalculationWeight(rel.Source.Name.Local, rel.Target.Name.Local)
				if !ok || rel.Weight*base >= 0 {
					continue
				}
			}
			matches = append(matches, rules.Match{
				Bindings: rules.Bindings{
					"element1": rel.Source,
					"element2": rel.Target,
					"group":    role,
				},
			})
		}
	}
	return matches, nil
}

// The elements allowed to total a cash flow statement.
var cashFlowRootElements = map[string]bool{
	"CashAndCashEquivalentsPeriodIncreaseDecrease":                                                                   true,
	"CashAndCashEquivalentsPeriodIncreaseDecreaseExcludingExchangeRateEffect":                                        true,
	"CashPeriodIncreaseDecrease":                                                                                     true,
	"CashPeriodIncreaseDecreaseExcludingExchangeRateEffect":                                                          true,
	"CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalentsPeriodIncreaseDecreaseIncludingExchangeRateEffect": true,
	"CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalentsPeriodIncreaseDecreaseExcludingExchangeRateEffect": true,
}

// The opening/closing balance elements each recognized root reconciles.
// The root's calculation subtree must carry at least one of them.
var cashFlowBalanceElements = map[string][]string{
	"CashAndCashEquivalentsPeriodIncreaseDecrease": {
		"CashAndCashEquivalentsAtCarryingValue",
	},
	"CashAndCashEquivalentsPeriodIncreaseDecreaseExcludingExchangeRateEffect": {
		"CashAndCashEquivalentsAtCarryingValue",
	},
	"CashPeriodIncreaseDecrease": {
		"Cash",
	},
	"CashPeriodIncreaseDecreaseExcludingExchangeRateEffect": {
		"Cash",
	},
	"CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalentsPeriodIncreaseDecreaseIncludingExchangeRateEffect": {
		"CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalents",
	},
	"CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalentsPeriodIncreaseDecreaseExcludingExchangeRateEffect": {
		"CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalents",
	},
}

func subtreeHasBalanceChild(network *filing.Network, root *filing.Concept, gaap string) bool {
	balances := cashFlowBalanceElements[root.Name.Local]
	found := false
	network.Walk(root, func(rel *filing.Relationship) {
		if found || rel.Target.Name.Namespace != gaap {
			return
		}
		for _, b := range balances {
			if rel.Target.Name.Local == b {
				found = true
				return
			}
		}
	})
	return found
}

func isCashFlowRole(role string) bool {
	lower := strings.ToLower(role)
	if !strings.Contains(lower, "cashflow") {
		return false
	}
	return !strings.Contains(lower, "parenthetical")
}

// calculationRoots (DQC.US.0048) requires each cash flow statement's
// calculation tree to be rooted in one of the recognized period
// increase/decrease elements. A missing root means the statement does not
// foot to the change in cash; several roots mean the total is ambiguous; a
// recognized root without its opening/closing balance child does not
// reconcile the period movement to the balance sheet.
func calculationRoots(ec *rules.EvalContext) ([]rules.Match, error) {
	gaap, err := ec.Namespace("us-gaap")
	if err != nil {
		return nil, err
	}

	dts := ec.Filing.DTS
	var matches []rules.Match
	for _, role := range dts.Roles(filing.CalculationNetwork) {
		if !isCashFlowRole(role) {
			continue
		}

		network := dts.Network(filing.CalculationNetwork, role)
		var found []*filing.Concept
		for _, root := range network.Roots() {
			if root.Name.Namespace == gaap && cashFlowRootElements[root.Name.Local] {
				found = append(found, root)
			}
		}

		switch len(found) {
		case 0:
			matches = append(matches, rules.Match{
				Variation: "missing",
				Bindings:  rules.Bindings{"group": role},
			})
		case 1:
			if !subtreeHasBalanceChild(network, found[0], gaap) {
				matches = append(matches, rules.Match{
					Variation: "nobalance",
					Bindings: rules.Bindings{
						"root":  found[0],
						"group": role,
					},
				})
			}
		default:
			names := make([]string, len(found))
			for i, c := range found {
				names[i] = c.Name.Prefixed()
			}
			matches = append(matches, rules.Match{
				Variation: "multiple",
				Bindings: rules.Bindings{
					"group": role,
					"roots": strings.Join(names, ", "),
				},
			})
		}
	}
	return matches, nil
}
