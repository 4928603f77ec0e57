//
//  Copyright © Manetu Inc. All rights reserved.
//

package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/xbrldq/dqengine/pkg/filing"
	"github.com/xbrldq/dqengine/pkg/rules"
)

// dimEquivalent pairs a line-item element with its dimensionally qualified
// equivalent: the parent element reported under axis=member, scaled by
// weight, states the same figure.
type dimEquivalent struct {
	line   string
	parent string
	axis   string
	member string
	weight int64
}

// Condensed from the published DQC.US.0011 equivalence table.
var dimEquivalents = []dimEquivalent{
	{
		line:   "StockholdersEquity",
		parent: "StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest",
		axis:   "StatementEquityComponentsAxis",
		member: "ParentMember",
		weight: 1,
	},
	{
		line:   "MinorityInterest",
		parent: "StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest",
		axis:   "StatementEquityComponentsAxis",
		member: "NoncontrollingInterestMember",
		weight: 1,
	},
	{
		line:   "RetainedEarningsAccumulatedDeficit",
		parent: "StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest",
		axis:   "StatementEquityComponentsAxis",
		member: "RetainedEarningsMember",
		weight: 1,
	},
	{
		line:   "TreasuryStockValue",
		parent: "StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest",
		axis:   "StatementEquityComponentsAxis",
		member: "TreasuryStockMember",
		weight: -1,
	},
}

// contextEqualExceptAxis reports whether the dimensioned context matches
// the line context once the equivalence axis is stripped: same period and
// identical remaining qualifiers.
func contextEqualExceptAxis(dimmed, line *filing.Context, axis filing.QName) bool {
	if !dimmed.Period.Equal(line.Period) {
		return false
	}
	if len(dimmed.Dimensions) != len(line.Dimensions)+1 {
		return false
	}
	for _, d := range dimmed.Dimensions {
		if d.Axis.Name.Equal(axis) {
			continue
		}
		od := line.DimensionValue(d.Axis.Name)
		if od == nil || !d.Equal(*od) {
			return false
		}
	}
	return true
}

// dimensionalEquivalents (DQC.US.0011) cross-checks each line item against
// its dimensionally qualified equivalent: both facts state the same figure,
// so after rounding to the least accurate decimals and applying the
// equivalence weight they must agree within the standard tolerance.
func dimensionalEquivalents(ec *rules.EvalContext) ([]rules.Match, error) {
	gaap, err := ec.Namespace("us-gaap")
	if err != nil {
		return nil, err
	}

	facts := ec.Filing.Facts
	var matches []rules.Match
	for _, eq := range dimEquivalents {
		axis := filing.NewQName(gaap, eq.axis)
		member := filing.NewQName(gaap, eq.member)
		weight := decimal.NewFromInt(eq.weight)

		for _, line := range facts.ByConcept(filing.NewQName(gaap, eq.line)) {
			if line.Nil || line.Context.DimensionValue(axis) != nil {
				continue
			}
			for _, dim := range facts.ByConcept(filing.NewQName(gaap, eq.parent)) {
				if dim.Nil {
					continue
				}
				dv := dim.Context.DimensionValue(axis)
				if dv == nil || dv.Member == nil || !dv.Member.Name.Equal(member) {
					continue
				}
				if !contextEqualExceptAxis(dim.Context, line.Context, axis) {
					continue
				}
				equal, ok := filing.CompareRounded(dim, line, func(a, b decimal.Decimal, d *int32) bool {
					return filing.EqualWithinTolerance(a.Mul(weight), b, d)
				})
				if !ok || equal {
					continue
				}
				matches = append(matches, rules.Match{
					Bindings: rules.Bindings{
						"fact1":  line,
						"fact2":  dim,
						"weight": weight,
					},
				})
			}
		}
	}
	return matches, nil
}
