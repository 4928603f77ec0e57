//
//  Copyright © Manetu Inc. All rights reserved.
//

package catalog

import (
	"sort"

	"github.com/xbrldq/dqengine/pkg/filing"
	"github.com/xbrldq/dqengine/pkg/rules"
)

// Condensed from the base taxonomy's dimension-default declarations. A
// filer overriding one of these changes the meaning of every fact reported
// without that axis.
var baseDimensionDefaults = map[string]string{
	"StatementScenarioAxis":           "ScenarioUnspecifiedDomain",
	"LegalEntityAxis":                 "EntityDomain",
	"StatementClassOfStockAxis":       "ClassOfStockDomain",
	"StatementBusinessSegmentsAxis":   "SegmentDomain",
	"StatementGeographicalAxis":       "SegmentGeographicalDomain",
	"StatementEquityComponentsAxis":   "EquityComponentDomain",
	"FinancialInstrumentAxis":         "TransfersAndServicingOfFinancialInstrumentsTypesOfFinancialInstrumentsDomain",
	"FairValueByMeasurementBasisAxis": "FairValueMeasurementBasisDomain",
}

// defaultMembers (DQC.US.0041.73) compares each declared dimension default
// in the filing's DTS against the base taxonomy default for that axis.
func defaultMembers(ec *rules.EvalContext) ([]rules.Match, error) {
	gaap, err := ec.Namespace("us-gaap")
	if err != nil {
		return nil, err
	}

	var matches []rules.Match
	for _, axisLocal := range sortedDefaultAxes() {
		expected := baseDimensionDefaults[axisLocal]
		axis := filing.NewQName(gaap, axisLocal)

		declared := ec.Filing.DTS.DefaultMember(axis)
		if declared == nil || declared.Name.Local == expected {
			continue
		}
		axisConcept := ec.Filing.DTS.ResolveConcept(axis)
		if axisConcept == nil {
			continue
		}
		matches = append(matches, rules.Match{
			Bindings: rules.Bindings{
				"axis":         axisConcept,
				"axis_default": declared,
				"default":      expected,
			},
		})
	}
	return matches, nil
}

func sortedDefaultAxes() []string {
	// baseDimensionDefaults never changes at runtime, so sorting per call
	// is cheap enough.
	keys := make([]string, 0, len(baseDimensionDefaults))
	for k := range baseDimensionDefaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
