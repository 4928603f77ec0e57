//
//  Copyright © Manetu Inc. All rights reserved.
//

package filing

import (
	"regexp"
	"time"

	"github.com/xbrldq/dqengine/pkg/common"
)

// Well-known local names in the document/entity-information taxonomy.
const (
	DocumentTypeName          = "DocumentType"
	DocumentPeriodEndDateName = "DocumentPeriodEndDate"
	LegalEntityAxisName       = "LegalEntityAxis"
)

// StandardNamespacePatterns maps canonical prefixes of the standard SEC
// and US-GAAP taxonomy families to patterns over their versioned target
// namespace URIs.
var StandardNamespacePatterns = map[string]*regexp.Regexp{
	"country":  regexp.MustCompile(`^http://xbrl\.(us|sec\.gov)/country/[0-9-]{10}$`),
	"currency": regexp.MustCompile(`^http://xbrl\.(us|sec\.gov)/currency/[0-9-]{10}$`),
	"dei":      regexp.MustCompile(`^http://xbrl\.(us|sec\.gov)/dei/[0-9-]{10}$`),
	"exch":     regexp.MustCompile(`^http://xbrl\.(us|sec\.gov)/exch/[0-9-]{10}$`),
	"invest":   regexp.MustCompile(`^http://xbrl\.(us|sec\.gov)/invest/[0-9-]{10}$`),
	"naics":    regexp.MustCompile(`^http://xbrl\.(us|sec\.gov)/naics/[0-9-]{10}$`),
	"sic":      regexp.MustCompile(`^http://xbrl\.(us|sec\.gov)/sic/[0-9-]{10}$`),
	"stpr":     regexp.MustCompile(`^http://xbrl\.(us|sec\.gov)/stpr/[0-9-]{10}$`),
	"us-gaap":  regexp.MustCompile(`^http://(xbrl\.us|fasb\.org)/us-gaap/[0-9-]{10}$`),
}

var reStandardNS = regexp.MustCompile(`^http://(xbrl\.(us|sec\.gov)|fasb\.org)/`)

// IsExtensionNamespace reports whether the namespace belongs to the
// filer's own extension taxonomy rather than a standard base taxonomy.
func IsExtensionNamespace(ns string) bool {
	return !reStandardNS.MatchString(ns)
}

// StandardNamespaces resolves the versioned namespace URI in use for each
// standard taxonomy family present in the DTS, keyed by canonical prefix.
// Families without a matching schema are simply absent from the result.
func StandardNamespaces(dts *DTS) map[string]string {
	namespaces := make(map[string]string)
	for prefix, pattern := range StandardNamespacePatterns {
		if ns, err := dts.ResolveNamespace(pattern); err == nil {
			namespaces[prefix] = ns
		}
	}
	return namespaces
}

// RequiredContext returns the filing's required reporting context: the
// context of the first document-type fact in document order. Every
// SEC-style filing must report its document type in the primary reporting
// context, which makes that context the "current period" anchor for rules.
//
// Returns a RequiredContextMissing error when the filing carries no
// document-type fact.
func RequiredContext(facts *FactSet, deiNS string) (*Context, error) {
	q := NewQName(deiNS, DocumentTypeName)
	dt := facts.ByConcept(q)
	if len(dt) == 0 {
		return nil, common.NewError(common.RequiredContextMissing,
			"filing reports no %s fact", DocumentTypeName)
	}
	return dt[0].Context, nil
}

// ReportingPeriodEnd pairs a document-period-end-date fact with the end
// date of its context's period.
type ReportingPeriodEnd struct {
	Fact *Fact
	End  time.Time
}

// ReportingPeriodEnds returns the latest reporting period end per legal
// entity, keyed by the legal-entity member name. The zero QName key holds
// the entry for the default (undimensioned) entity. The period end of the
// context is used, not the fact's own value.
func ReportingPeriodEnds(facts *FactSet, deiNS string) map[QName]ReportingPeriodEnd {
	out := make(map[QName]ReportingPeriodEnd)
	axis := NewQName(deiNS, LegalEntityAxisName)

	for _, f := range facts.ByConcept(NewQName(deiNS, DocumentPeriodEndDateName)) {
		end := f.Context.Period.EndDate()

		var entity QName
		if dv := f.Context.DimensionValue(axis); dv != nil && dv.Member != nil {
			entity = dv.Member.Name.Key()
		}
		if cur, ok := out[entity]; !ok || cur.End.Before(end) {
			out[entity] = ReportingPeriodEnd{Fact: f, End: end}
		}
	}
	return out
}
