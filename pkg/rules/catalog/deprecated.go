//
//  Copyright © Manetu Inc. All rights reserved.
//

package catalog

import (
	"github.com/xbrldq/dqengine/pkg/filing"
	"github.com/xbrldq/dqengine/pkg/rules"
)

// deprecatedElements (DQC.US.0018.34) flags every use of a deprecated
// taxonomy element: facts reported against one, and presentation-linkbase
// references to one. Each deprecated concept is reported once per usage
// site kind, with the replacement guidance from the taxonomy bound for the
// message.
func deprecatedElements(ec *rules.EvalContext) ([]rules.Match, error) {
	var matches []rules.Match

	reportedFact := make(map[filing.QName]bool)
	for _, f := range ec.Filing.Facts.All() {
		if !f.Concept.Deprecated || reportedFact[f.QName().Key()] {
			continue
		}
		reportedFact[f.QName().Key()] = true
		matches = append(matches, rules.Match{
			Variation: "fact",
			Bindings: rules.Bindings{
				"fact1":           f,
				"element":         f.Concept,
				"deprecatedlabel": f.Concept.DeprecationGuidance,
			},
		})
	}

	dts := ec.Filing.DTS
	linked := make(map[filing.QName]bool)
	for _, role := range dts.Roles(filing.PresentationNetwork) {
		for _, rel := range dts.Network(filing.PresentationNetwork, role).Relationships() {
			for _, c := range []*filing.Concept{rel.Source, rel.Target} {
				key := c.Name.Key()
				if !c.Deprecated || reportedFact[key] || linked[key] {
					continue
				}
				linked[key] = true
				matches = append(matches, rules.Match{
					Variation: rules.VariationNoFact,
					Bindings: rules.Bindings{
						"element":         c,
						"deprecatedlabel": c.DeprecationGuidance,
						"group":           role,
					},
				})
			}
		}
	}
	return matches, nil
}
