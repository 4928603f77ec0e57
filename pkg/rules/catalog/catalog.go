//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package catalog provides the built-in data-quality rule definitions:
// one concrete rule family per predicate shape the engine supports, with
// condensed versions of the published DQC reference data tables.
//
// Each rule is a pure function of the loaded fact model, registered with
// the engine through [All]. The matching message templates ship embedded
// via [DefaultTemplates].
package catalog

import (
	_ "embed"

	"github.com/xbrldq/dqengine/pkg/rules"
	"github.com/xbrldq/dqengine/pkg/rules/templates"
)

//go:embed templates.yaml
var defaultTemplates []byte

// DefaultTemplates loads the embedded template store matching the catalog
// rules.
func DefaultTemplates() (*templates.Store, error) {
	return templates.Parse(defaultTemplates)
}

// Options selects optional rule families.
type Options struct {
	// DimensionalEquivalents force-enables the DQC.US.0011 family, which
	// is disabled by default because its reference table assumes the full
	// US-GAAP dimensional model.
	DimensionalEquivalents bool
}

// All returns the catalog rules in their fixed registration order.
func All(opts Options) []rules.Rule {
	out := []rules.Rule{
		{ID: "DQC.US.0001", Description: "Axis with inappropriate members", Predicate: axisMembers},
		{ID: "DQC.US.0004.16", Description: "Element values are equal", Predicate: assetsEqualLiabilitiesAndEquity},
		{ID: "DQC.US.0005", Description: "Context dates after period end date", Predicate: contextDatesAfterPeriodEnd},
		{ID: "DQC.US.0006.14", Description: "DEI date contexts match fiscal period focus", Predicate: periodFocusDurations},
		{ID: "DQC.US.0008.6819", Description: "Reversed calculation", Predicate: reversedCalculation},
		{ID: "DQC.US.0009", Description: "Element A must be less than or equal to element B", Predicate: lessOrEqualPairs},
	}
	if opts.DimensionalEquivalents {
		out = append(out, rules.Rule{
			ID: "DQC.US.0011", Description: "Dimensional equivalents", Predicate: dimensionalEquivalents,
		})
	}
	out = append(out,
		rules.Rule{ID: "DQC.US.0013", Description: "Negative values with dependence", Predicate: negativeWithPrecondition},
		rules.Rule{ID: "DQC.US.0014", Description: "Negative values with no dimensions", Predicate: negativeNoDimensions},
		rules.Rule{ID: "DQC.US.0015", Description: "Negative values", Predicate: negativeValues},
		rules.Rule{ID: "DQC.US.0018.34", Description: "Deprecated element is used in the filing", Predicate: deprecatedElements},
		rules.Rule{ID: "DQC.US.0033.2", Description: "Document period end date context", Predicate: documentPeriodEndDateContext},
		rules.Rule{ID: "DQC.US.0036.1", Description: "Document period end date context / fact value check", Predicate: documentPeriodEndDateValue},
		rules.Rule{ID: "DQC.US.0041.73", Description: "Axis with a default member that differs from the base taxonomy", Predicate: defaultMembers},
		rules.Rule{ID: "DQC.US.0048", Description: "Required calculation parent element", Predicate: calculationRoots},
	)
	return out
}
