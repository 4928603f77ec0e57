//
//  Copyright © Manetu Inc. All rights reserved.
//

package catalog

import (
	"github.com/xbrldq/dqengine/pkg/filing"
	"github.com/xbrldq/dqengine/pkg/rules"
)

// assetsEqualLiabilitiesAndEquity checks the balance-sheet identity: in
// every context where both sides are reported with the same unit, Assets
// must equal LiabilitiesAndStockholdersEquity after rounding both to the
// least accurate of their decimals, within the standard tolerance of 2 at
// that scale.
func assetsEqualLiabilitiesAndEquity(ec *rules.EvalContext) ([]rules.Match, error) {
	assets, err := ec.Concept("us-gaap", "Assets")
	if err != nil {
		return nil, err
	}
	liabEquity, err := ec.Concept("us-gaap", "LiabilitiesAndStockholdersEquity")
	if err != nil {
		return nil, err
	}

	var matches []rules.Match
	for _, f1 := range ec.Filing.Facts.ByConcept(assets.Name) {
		if f1.Nil {
			continue
		}
		q := liabEquity.Name.Key()
		for _, f2 := range ec.Filing.Facts.Filter(&q, f1.Context, true) {
			if f2.Unit.String() != f1.Unit.String() {
				continue
			}
			equal, ok := filing.CompareRounded(f1, f2, filing.EqualWithinTolerance)
			if !ok || equal {
				continue
			}
			matches = append(matches, rules.Match{
				Bindings: rules.Bindings{
					"fact1": f1,
					"fact2": f2,
				},
			})
		}
	}
	return matches, nil
}
