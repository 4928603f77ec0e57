//
//  Copyright © Manetu Inc. All rights reserved.
//

package catalog

import (
	"sort"
	"strings"

	"github.com/xbrldq/dqengine/pkg/filing"
	"github.com/xbrldq/dqengine/pkg/rules"
)

// sortedKeys keeps map-driven rule tables deterministic.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// exclusion is a predicate over a fact's dimensional qualifiers. The sign
// rules consult an exclusion expression before firing: certain members
// legitimately flip the sign of an otherwise non-negative element
// (eliminations, adjustments, and the like).
type exclusion interface {
	matches(ctx *filing.Context) bool
}

// memberContains matches when any dimension member's local name contains
// the fragment, case-insensitively.
type memberContains string

func (m memberContains) matches(ctx *filing.Context) bool {
	frag := strings.ToLower(string(m))
	for _, d := range ctx.Dimensions {
		if d.Member != nil && strings.Contains(strings.ToLower(d.Member.Name.Local), frag) {
			return true
		}
	}
	return false
}

// axisEquals matches when the context carries the named axis at all.
type axisEquals string

func (a axisEquals) matches(ctx *filing.Context) bool {
	for _, d := range ctx.Dimensions {
		if strings.EqualFold(d.Axis.Name.Local, string(a)) {
			return true
		}
	}
	return false
}

// memberEquals matches when any dimension member's local name equals the
// given name, case-insensitively.
type memberEquals string

func (m memberEquals) matches(ctx *filing.Context) bool {
	for _, d := range ctx.Dimensions {
		if d.Member != nil && strings.EqualFold(d.Member.Name.Local, string(m)) {
			return true
		}
	}
	return false
}

type anyOf []exclusion

func (a anyOf) matches(ctx *filing.Context) bool {
	for _, e := range a {
		if e.matches(ctx) {
			return true
		}
	}
	return false
}

type allOf []exclusion

func (a allOf) matches(ctx *filing.Context) bool {
	for _, e := range a {
		if !e.matches(ctx) {
			return false
		}
	}
	return true
}

// signExclusions is the shared exclusion expression for the sign rules,
// condensed from the published exclusion data.
var signExclusions = anyOf{
	memberContains("Adjustment"),
	memberContains("Elimination"),
	memberContains("Netting"),
	memberEquals("CorporateNonSegmentMember"),
	allOf{
		axisEquals("StatementBusinessSegmentsAxis"),
		memberContains("Corporate"),
	},
	axisEquals("ErrorCorrectionsAndPriorPeriodAdjustmentsRestatementByRestatementPeriodAndAmountAxis"),
}

// Condensed from the published DQC.US.0015 never-negative element list.
var neverNegativeElements = []string{
	"Assets",
	"AssetsCurrent",
	"AssetsNoncurrent",
	"AllowanceForDoubtfulAccountsReceivable",
	"AccumulatedDepreciationDepletionAndAmortizationPropertyPlantAndEquipment",
	"CashAndCashEquivalentsAtCarryingValue",
	"CommonStockSharesAuthorized",
	"CommonStockSharesIssued",
	"CommonStockSharesOutstanding",
	"ContractWithCustomerLiability",
	"DeferredFinanceCostsNet",
	"FiniteLivedIntangibleAssetsNet",
	"Goodwill",
	"InterestExpense",
	"InventoryNet",
	"Liabilities",
	"LiabilitiesCurrent",
	"LiabilitiesNoncurrent",
	"LongTermDebt",
	"OperatingLeaseRightOfUseAsset",
	"PreferredStockSharesAuthorized",
	"PreferredStockSharesIssued",
	"PreferredStockSharesOutstanding",
	"PropertyPlantAndEquipmentNet",
	"RevenueFromContractWithCustomerExcludingAssessedTax",
	"Revenues",
	"ShareBasedCompensation",
}

func isNegative(f *filing.Fact) bool {
	v, ok := f.EffectiveValue()
	return ok && v.IsNegative()
}

// negativeValues (DQC.US.0015) fires for elements that can never sensibly
// be reported negative, unless an exclusion member explains the sign.
func negativeValues(ec *rules.EvalContext) ([]rules.Match, error) {
	gaap, err := ec.Namespace("us-gaap")
	if err != nil {
		return nil, err
	}

	var matches []rules.Match
	for _, name := range neverNegativeElements {
		for _, f := range ec.Filing.Facts.ByConcept(filing.NewQName(gaap, name)) {
			if !isNegative(f) || signExclusions.matches(f.Context) {
				continue
			}
			matches = append(matches, rules.Match{
				Bindings: rules.Bindings{"fact1": f},
			})
		}
	}
	return matches, nil
}

// Condensed from the published DQC.US.0014 list: elements that cannot be
// negative in the default (undimensioned) context, though a member may
// legitimately carry a negative share of the total.
var noDimensionNegativeElements = []string{
	"CommonStockValue",
	"PreferredStockValue",
	"AdditionalPaidInCapital",
	"TreasuryStockShares",
	"DeferredTaxAssetsNet",
	"DeferredTaxLiabilities",
	"PaymentsToAcquirePropertyPlantAndEquipment",
	"PaymentsOfDividends",
	"ProceedsFromIssuanceOfCommonStock",
}

// negativeNoDimensions (DQC.US.0014) applies the sign check only to facts
// reported without dimensional qualifiers.
func negativeNoDimensions(ec *rules.EvalContext) ([]rules.Match, error) {
	gaap, err := ec.Namespace("us-gaap")
	if err != nil {
		return nil, err
	}

	var matches []rules.Match
	for _, name := range noDimensionNegativeElements {
		for _, f := range ec.Filing.Facts.ByConcept(filing.NewQName(gaap, name)) {
			if f.Context.HasDimensions() || !isNegative(f) {
				continue
			}
			matches = append(matches, rules.Match{
				Bindings: rules.Bindings{"fact1": f},
			})
		}
	}
	return matches, nil
}

// Condensed from the published DQC.US.0013 data: elements that cannot be
// negative whenever the paired precondition element is reported positive in
// the same context.
var negativePreconditions = map[string]string{
	"IncomeTaxExpenseBenefit":                  "IncomeLossFromContinuingOperationsBeforeIncomeTaxesExtraordinaryItemsNoncontrollingInterest",
	"PolicyholderBenefitsAndClaimsIncurredNet": "PremiumsEarnedNet",
	"DefinedBenefitPlanInterestCost":           "DefinedBenefitPlanBenefitObligation",
	"InterestExpenseDeposits":                  "InterestBearingDepositLiabilities",
}

// negativeWithPrecondition (DQC.US.0013) conditions the sign check on a
// second element: only when the precondition fact exists in the same
// context and is positive does a negative value indicate a sign error.
func negativeWithPrecondition(ec *rules.EvalContext) ([]rules.Match, error) {
	gaap, err := ec.Namespace("us-gaap")
	if err != nil {
		return nil, err
	}

	var matches []rules.Match
	for _, name := range sortedKeys(negativePreconditions) {
		precondition := filing.NewQName(gaap, negativePreconditions[name])
		for _, f := range ec.Filing.Facts.ByConcept(filing.NewQName(gaap, name)) {
			if !isNegative(f) || signExclusions.matches(f.Context) {
				continue
			}
			key := precondition.Key()
			pre := ec.Filing.Facts.Filter(&key, f.Context, true)
			if len(pre) == 0 {
				continue
			}
			v, ok := pre[0].EffectiveValue()
			if !ok || !v.IsPositive() {
				continue
			}
			matches = append(matches, rules.Match{
				Bindings: rules.Bindings{
					"fact1":            f,
					"preconditionfact": pre[0],
				},
			})
		}
	}
	return matches, nil
}
