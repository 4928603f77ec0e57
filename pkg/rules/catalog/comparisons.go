//
//  Copyright © Manetu Inc. All rights reserved.
//

package catalog

import (
	"github.com/xbrldq/dqengine/pkg/filing"
	"github.com/xbrldq/dqengine/pkg/rules"
)

// lessOrEqualPair declares that element A can never exceed element B when
// both are reported in the same context.
type lessOrEqualPair struct {
	id   string
	a, b string
}

// Condensed from the published DQC.US.0009 element pairings.
var lessOrEqualPairs9 = []lessOrEqualPair{
	{"DQC.US.0009.15", "CommonStockSharesOutstanding", "CommonStockSharesIssued"},
	{"DQC.US.0009.19", "CommonStockSharesIssued", "CommonStockSharesAuthorized"},
	{"DQC.US.0009.21", "PreferredStockSharesOutstanding", "PreferredStockSharesIssued"},
	{"DQC.US.0009.24", "PreferredStockSharesIssued", "PreferredStockSharesAuthorized"},
	{"DQC.US.0009.39", "DefinedBenefitPlanPensionPlansWithAccumulatedBenefitObligationsInExcessOfPlanAssetsAggregateFairValueOfPlanAssets", "DefinedBenefitPlanPensionPlansWithAccumulatedBenefitObligationsInExcessOfPlanAssetsAggregateAccumulatedBenefitObligation"},
	{"DQC.US.0009.47", "UnrecognizedTaxBenefitsThatWouldImpactEffectiveTaxRate", "UnrecognizedTaxBenefits"},
}

// lessOrEqualPairs fires when element A exceeds element B in a shared
// context, comparing the rounded values. Each sub-rule carries its own id
// so the matching template entry resolves directly.
func lessOrEqualPairs(ec *rules.EvalContext) ([]rules.Match, error) {
	gaap, err := ec.Namespace("us-gaap")
	if err != nil {
		return nil, err
	}

	var matches []rules.Match
	for _, pair := range lessOrEqualPairs9 {
		qa := filing.NewQName(gaap, pair.a)
		qb := filing.NewQName(gaap, pair.b)
		for _, fa := range ec.Filing.Facts.ByConcept(qa) {
			if fa.Nil {
				continue
			}
			key := qb.Key()
			for _, fb := range ec.Filing.Facts.Filter(&key, fa.Context, true) {
				le, ok := filing.CompareRounded(fa, fb, filing.LessOrEqual)
				if !ok || le {
					continue
				}
				matches = append(matches, rules.Match{
					RuleID: pair.id,
					Bindings: rules.Bindings{
						"fact1": fa,
						"fact2": fb,
					},
				})
			}
		}
	}
	return matches, nil
}
