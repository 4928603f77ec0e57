//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package rules defines the rule-evaluation framework: rule definitions,
// predicate matches, binding sets and violations.
//
// A rule is a pure function of the loaded fact model. Predicates receive
// an [EvalContext] and return zero or more matches; each match carries a
// binding set naming the graph objects the rule's message template may
// reference, plus the variation key selecting which template body applies.
// The engine in pkg/core drives evaluation and rendering.
package rules

import (
	"github.com/xbrldq/dqengine/pkg/common"
	"github.com/xbrldq/dqengine/pkg/filing"
)

// Variation selects which message body within a rule's template entry
// applies to a specific match.
type Variation string

// Variation keys shared across the catalog. Rules may define their own.
const (
	VariationDefault Variation = ""
	VariationExt     Variation = "ext"
	VariationStd     Variation = "std"
	VariationNoFact  Variation = "nofact"
	VariationDebit   Variation = "debit"
	VariationCredit  Variation = "credit"
)

// Bindings maps short names (fact1, axis, member, rule-specific names) to
// bound graph objects: *filing.Fact, *filing.Concept, *filing.Context,
// filing.Period, or scalars. A binding set is constructed per match and
// consumed exactly once by the templating engine.
type Bindings map[string]interface{}

// Fact returns the fact bound under name, if any.
func (b Bindings) Fact(name string) (*filing.Fact, bool) {
	f, ok := b[name].(*filing.Fact)
	return f, ok
}

// Match is one firing of a rule predicate. RuleID, when set, refines the
// registered rule id with the specific sub-rule that fired; rule families
// whose sub-rules share one predicate use it so each violation reports the
// precise id.
type Match struct {
	RuleID    string
	Bindings  Bindings
	Variation Variation
}

// Predicate evaluates a rule against the fact model. Data-absence errors
// (namespace or concept not found, required context missing) mark the rule
// inconclusive; any other error is treated as a defect in the rule.
type Predicate func(*EvalContext) ([]Match, error)

// Rule is a registered rule definition. The fully-qualified id follows the
// <Authority>.<Jurisdiction>.<RuleNumber>[.<VariantNumber>] convention.
type Rule struct {
	ID          string
	Description string
	Predicate   Predicate
}

// Info is the version metadata published with a rule, carried on
// violations for reporting but never consulted during evaluation.
type Info struct {
	Version     string `yaml:"version" json:"version"`
	ReleaseDate string `yaml:"date" json:"date"`
	URL         string `yaml:"url" json:"url"`
}

// Violation is a rendered rule failure.
type Violation struct {
	RuleID    string    `json:"ruleId"`
	Version   Info      `json:"version"`
	Variation Variation `json:"variation,omitempty"`
	Message   string    `json:"message"`
	Hints     []string  `json:"hints,omitempty"`
	Content   []string  `json:"content,omitempty"`
	Severity  string    `json:"severity"`
}

// Outcome records a rule that could not produce a conclusive result,
// with the reason class and description.
type Outcome struct {
	RuleID string            `json:"ruleId"`
	Code   common.ReasonCode `json:"-"`
	Reason string            `json:"reason"`
}
