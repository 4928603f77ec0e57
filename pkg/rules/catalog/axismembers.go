//
//  Copyright © Manetu Inc. All rights reserved.
//

package catalog

import (
	"github.com/xbrldq/dqengine/pkg/filing"
	"github.com/xbrldq/dqengine/pkg/rules"
)

// axisRule restricts the members usable with one standard axis. When
// Disallowed is set it wins; otherwise membership in Allowed is required.
// AllowExtensions admits members from the filer's extension taxonomy.
type axisRule struct {
	id              string
	allowed         []string
	disallowed      []string
	allowExtensions bool
}

// Condensed from the published DQC.US.0001 axis/member reference data.
var axisMemberRules = map[string]axisRule{
	"StatementScenarioAxis": {
		id: "DQC.US.0001.73",
		allowed: []string{
			"ScenarioForecastMember",
			"ScenarioAdjustmentMember",
			"RestatementAdjustmentMember",
		},
		allowExtensions: false,
	},
	"LegalEntityAxis": {
		id: "DQC.US.0001.75",
		disallowed: []string{
			"ConsolidationEliminationsMember",
			"ConsolidatedEntitiesMember",
			"GeographicDistributionDomesticMember",
			"GeographicDistributionForeignMember",
		},
		allowExtensions: true,
	},
	"StatementEquityComponentsAxis": {
		id: "DQC.US.0001.40",
		disallowed: []string{
			"TreasuryStockMember",
		},
		allowExtensions: true,
	},
}

func contains(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}

type axisMemberPair struct {
	axis, member filing.QName
}

// axisMembers implements the membership-restriction shape: every member
// paired with a restricted axis, whether reachable through a presentation
// role or declared as a definition-linkbase dimension domain, is checked.
// The pairing is reported even when no fact uses it, because the illegal
// combination exists in the linkbase regardless.
func axisMembers(ec *rules.EvalContext) ([]rules.Match, error) {
	gaap, err := ec.Namespace("us-gaap")
	if err != nil {
		return nil, err
	}

	dts := ec.Filing.DTS
	var matches []rules.Match
	handled := make(map[axisMemberPair]bool)

	check := func(axis, member *filing.Concept, role string) {
		if axis.Name.Namespace != gaap {
			return
		}
		rule, ok := axisMemberRules[axis.Name.Local]
		if !ok {
			return
		}

		if def := dts.DefaultMember(axis.Name); def != nil && def.Name.Equal(member.Name) {
			return
		}

		ext := filing.IsExtensionNamespace(member.Name.Namespace)
		var valid bool
		switch {
		case ext:
			valid = rule.allowExtensions
		case len(rule.disallowed) > 0:
			valid = !contains(rule.disallowed, member.Name.Local)
		default:
			valid = contains(rule.allowed, member.Name.Local)
		}

		pair := axisMemberPair{axis.Name.Key(), member.Name.Key()}
		if valid || handled[pair] {
			return
		}
		// Only the first occurrence of each axis/member pairing is
		// reported, matching the reference implementation.
		handled[pair] = true

		facts := ec.Filing.Facts.DimensionalFacts(axis.Name, &member.Name)
		if len(facts) == 0 {
			matches = append(matches, rules.Match{
				RuleID:    rule.id,
				Variation: rules.VariationNoFact,
				Bindings: rules.Bindings{
					"axis":   axis,
					"member": member,
					"group":  role,
				},
			})
			return
		}
		variation := rules.VariationStd
		if ext {
			variation = rules.VariationExt
		}
		for _, fact := range facts {
			matches = append(matches, rules.Match{
				RuleID:    rule.id,
				Variation: variation,
				Bindings: rules.Bindings{
					"axis":   axis,
					"member": member,
					"fact1":  fact,
				},
			})
		}
	}

	for _, role := range dts.Roles(filing.PresentationNetwork) {
		network := dts.Network(filing.PresentationNetwork, role)
		for _, root := range network.Roots() {
			walkDimensions(network, root, func(axis *filing.Concept, rel *filing.Relationship) {
				check(axis, rel.Target, role)
			})
		}
	}

	// Axis/member pairings declared only through the definition linkbase
	// never show up in a presentation walk.
	for _, dom := range dts.DimensionDomains() {
		check(dom.Axis, dom.Member, dom.Role)
	}

	return matches, nil
}

// walkDimensions walks a presentation subtree and, for every dimension
// concept found, visits each relationship in the member subtree beneath
// it.
func walkDimensions(n *filing.Network, c *filing.Concept, visit func(axis *filing.Concept, rel *filing.Relationship)) {
	if c.Dimension {
		n.Walk(c, func(rel *filing.Relationship) { visit(c, rel) })
		return
	}
	for _, rel := range n.From(c) {
		walkDimensions(n, rel.Target, visit)
	}
}
