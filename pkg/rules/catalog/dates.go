//
//  Copyright © Manetu Inc. All rights reserved.
//

package catalog

import (
	"strings"
	"time"

	"github.com/xbrldq/dqengine/pkg/filing"
	"github.com/xbrldq/dqengine/pkg/rules"
)

// Registration statements report as of arbitrary dates, so the
// period-end-anchored date rules do not apply to them.
var registrationDocumentTypes = map[string]bool{
	"S-1": true, "S-3": true, "S-4": true, "S-11": true,
	"S-1/A": true, "S-3/A": true, "S-4/A": true, "S-11/A": true,
	"POS AM": true,
}

// periodEndFor picks the reporting period end for a fact's legal entity,
// falling back to the default (undimensioned) entity.
func periodEndFor(ends map[filing.QName]filing.ReportingPeriodEnd, ctx *filing.Context, axis filing.QName) (filing.ReportingPeriodEnd, bool) {
	var entity filing.QName
	if dv := ctx.DimensionValue(axis); dv != nil && dv.Member != nil {
		entity = dv.Member.Name.Key()
	}
	if pe, ok := ends[entity]; ok {
		return pe, true
	}
	pe, ok := ends[filing.QName{}]
	return pe, ok
}

// contextDatesAfterPeriodEnd covers the DQC.US.0005 sub-rules: elements
// whose contexts must be dated after the reporting period end. Shares
// outstanding is reported as of the cover date (.17), subsequent events
// happen after the period closes (.48), and forecasts describe the future
// (.49).
func contextDatesAfterPeriodEnd(ec *rules.EvalContext) ([]rules.Match, error) {
	dei, err := ec.Namespace("dei")
	if err != nil {
		return nil, err
	}

	facts := ec.Filing.Facts
	docTypes := facts.ByConcept(filing.NewQName(dei, filing.DocumentTypeName))
	if len(docTypes) == 0 || registrationDocumentTypes[strings.TrimSpace(docTypes[0].Value)] {
		return nil, nil
	}

	ends := filing.ReportingPeriodEnds(facts, dei)
	if len(ends) == 0 {
		return nil, nil
	}
	legalEntity := filing.NewQName(dei, filing.LegalEntityAxisName)

	var matches []rules.Match
	report := func(id string, f *filing.Fact, pe filing.ReportingPeriodEnd) {
		matches = append(matches, rules.Match{
			RuleID: id,
			Bindings: rules.Bindings{
				"fact1": f,
				"fact2": pe.Fact,
			},
		})
	}

	for _, f := range facts.ByConcept(filing.NewQName(dei, "EntityCommonStockSharesOutstanding")) {
		pe, ok := periodEndFor(ends, f.Context, legalEntity)
		if ok && f.Context.Period.EndDate().Before(pe.End) {
			report("DQC.US.0005.17", f, pe)
		}
	}

	subsequent, err := ec.Concept("us-gaap", "SubsequentEventTypeAxis")
	if err == nil {
		for _, f := range facts.DimensionalFacts(subsequent.Name, nil) {
			pe, ok := periodEndFor(ends, f.Context, legalEntity)
			if ok && !f.Context.Period.EndDate().After(pe.End) {
				report("DQC.US.0005.48", f, pe)
			}
		}
	}

	scenario, err := ec.Concept("us-gaap", "StatementScenarioAxis")
	if err == nil {
		forecast := filing.NewQName(scenario.Name.Namespace, "ScenarioForecastMember")
		for _, f := range facts.DimensionalFacts(scenario.Name, &forecast) {
			pe, ok := periodEndFor(ends, f.Context, legalEntity)
			if ok && !f.Context.Period.EndDate().After(pe.End) {
				report("DQC.US.0005.49", f, pe)
			}
		}
	}
	return matches, nil
}

// dateWithinDays reports |a - b| <= days.
func dateWithinDays(a, b time.Time, days int) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= time.Duration(days)*24*time.Hour
}

// documentPeriodEndDateValue (DQC.US.0036.1) checks the reported document
// period end date against its own context: the two state the same date and
// must not drift apart by more than a few days of calendar slack.
func documentPeriodEndDateValue(ec *rules.EvalContext) ([]rules.Match, error) {
	dei, err := ec.Namespace("dei")
	if err != nil {
		return nil, err
	}

	var matches []rules.Match
	for _, f := range ec.Filing.Facts.ByConcept(filing.NewQName(dei, filing.DocumentPeriodEndDateName)) {
		if f.Nil {
			continue
		}
		value, err := time.Parse("2006-01-02", strings.TrimSpace(f.Value))
		if err != nil {
			continue
		}
		if !dateWithinDays(value, f.Context.Period.EndDate(), 3) {
			matches = append(matches, rules.Match{
				Bindings: rules.Bindings{"fact1": f},
			})
		}
	}
	return matches, nil
}

// documentPeriodEndDateContext (DQC.US.0033.2) checks that every other
// document/entity-information fact is reported in a context ending on the
// document period end date. Cover-page elements dated after the period end
// are exempt, as is any entity whose own end-date fact is inconsistent
// (that defect belongs to DQC.US.0036).
func documentPeriodEndDateContext(ec *rules.EvalContext) ([]rules.Match, error) {
	dei, err := ec.Namespace("dei")
	if err != nil {
		return nil, err
	}

	exempt := map[string]bool{
		filing.DocumentPeriodEndDateName:     true,
		"EntityCommonStockSharesOutstanding": true,
		"EntityPublicFloat":                  true,
		"DocumentEffectiveDate":              true,
	}

	facts := ec.Filing.Facts
	ends := filing.ReportingPeriodEnds(facts, dei)
	legalEntity := filing.NewQName(dei, filing.LegalEntityAxisName)

	var matches []rules.Match
	for _, f := range facts.All() {
		if f.QName().Namespace != dei || exempt[f.QName().Local] {
			continue
		}
		pe, ok := periodEndFor(ends, f.Context, legalEntity)
		if !ok {
			continue
		}
		value, err := time.Parse("2006-01-02", strings.TrimSpace(pe.Fact.Value))
		if err != nil || !dateWithinDays(value, pe.End, 3) {
			continue
		}
		if !f.Context.Period.EndDate().Equal(pe.End) {
			matches = append(matches, rules.Match{
				Bindings: rules.Bindings{
					"fact1": f,
					"fact2": pe.Fact,
				},
			})
		}
	}
	return matches, nil
}

// focusDurationRanges bounds the context duration, in days, acceptable for
// each fiscal period focus.
var focusDurationRanges = map[string][2]int{
	"FY": {340, 390},
	"Q1": {65, 115},
	"Q2": {155, 205},
	"Q3": {245, 295},
}

// Document-level elements whose contexts span the fiscal period.
var fiscalSpanElements = []string{
	filing.DocumentTypeName,
	"DocumentAnnualReport",
	"DocumentQuarterlyReport",
	"DocumentTransitionReport",
	"DocumentFiscalPeriodFocus",
	"DocumentFiscalYearFocus",
	"CurrentFiscalYearEndDate",
	"EntityRegistrantName",
	"EntityCentralIndexKey",
	"EntityFilerCategory",
}

// periodFocusDurations (DQC.US.0006.14) checks that the duration contexts
// of the document-level elements agree with the declared fiscal period
// focus. Transition reports cover irregular periods and are skipped.
func periodFocusDurations(ec *rules.EvalContext) ([]rules.Match, error) {
	dei, err := ec.Namespace("dei")
	if err != nil {
		return nil, err
	}
	facts := ec.Filing.Facts

	docTypes := facts.ByConcept(filing.NewQName(dei, filing.DocumentTypeName))
	if len(docTypes) > 0 {
		dt := strings.TrimSpace(docTypes[0].Value)
		if strings.HasPrefix(dt, "10-KT") || strings.HasPrefix(dt, "10-QT") {
			return nil, nil
		}
	}

	var matches []rules.Match
	for _, focus := range facts.ByConcept(filing.NewQName(dei, "DocumentFiscalPeriodFocus")) {
		bounds, ok := focusDurationRanges[strings.TrimSpace(focus.Value)]
		if !ok {
			continue
		}
		for _, name := range fiscalSpanElements {
			for _, f := range facts.ByConcept(filing.NewQName(dei, name)) {
				if f.Context.Period.Kind != filing.PeriodKindDuration {
					continue
				}
				if !f.Context.Equal(focus.Context) && !f.Context.Period.Equal(focus.Context.Period) {
					continue
				}
				days := f.Context.Period.DurationDays()
				if days < bounds[0] || days > bounds[1] {
					matches = append(matches, rules.Match{
						Bindings: rules.Bindings{
							"fact1": f,
							"focus": focus,
						},
					})
				}
			}
		}
	}
	return matches, nil
}
