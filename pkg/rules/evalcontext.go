//
//  Copyright © Manetu Inc. All rights reserved.
//

package rules

import (
	"github.com/xbrldq/dqengine/pkg/common"
	"github.com/xbrldq/dqengine/pkg/filing"
)

// EvalContext is the read-only view of a filing handed to rule predicates
// and to the templating engine's global references: the fact model, the
// resolved standard namespaces, and the lazily-resolved required context.
//
// An EvalContext is safe for concurrent use once constructed; the required
// context is resolved eagerly at construction so no mutation happens
// during evaluation.
type EvalContext struct {
	Filing     *filing.Filing
	Namespaces map[string]string

	requiredContext *filing.Context
	requiredErr     error
}

// NewEvalContext resolves the standard namespace families present in the
// filing's DTS, applies any caller-supplied prefix overrides (namespace
// hints), and anchors the required context.
func NewEvalContext(f *filing.Filing, hints map[string]string) *EvalContext {
	namespaces := filing.StandardNamespaces(f.DTS)
	for prefix, ns := range hints {
		namespaces[prefix] = ns
	}

	ec := &EvalContext{Filing: f, Namespaces: namespaces}
	if dei, ok := namespaces["dei"]; ok {
		ec.requiredContext, ec.requiredErr = filing.RequiredContext(f.Facts, dei)
	} else {
		ec.requiredErr = common.NewError(common.NamespaceNotFound,
			"no document/entity-information taxonomy in DTS")
	}
	return ec
}

// Namespace returns the resolved namespace URI for a standard prefix.
func (ec *EvalContext) Namespace(prefix string) (string, error) {
	ns, ok := ec.Namespaces[prefix]
	if !ok {
		return "", common.NewError(common.NamespaceNotFound,
			"namespace family %q not present in DTS", prefix)
	}
	return ns, nil
}

// Concept resolves prefix:local against the loaded taxonomy.
func (ec *EvalContext) Concept(prefix, local string) (*filing.Concept, error) {
	ns, err := ec.Namespace(prefix)
	if err != nil {
		return nil, err
	}
	c := ec.Filing.DTS.ResolveConcept(filing.NewQName(ns, local))
	if c == nil {
		return nil, common.NewError(common.ConceptNotFound,
			"taxonomy does not define %s:%s", prefix, local)
	}
	return c, nil
}

// RequiredContext returns the filing's required reporting context.
func (ec *EvalContext) RequiredContext() (*filing.Context, error) {
	return ec.requiredContext, ec.requiredErr
}

// ResolveGlobal resolves a qualified global reference: the prefix's
// namespace, then the concept, then that concept's fact in the required
// context. Used by template placeholders of the form
// ${prefix:LocalName...}.
func (ec *EvalContext) ResolveGlobal(prefix, local string) (*filing.Fact, error) {
	c, err := ec.Concept(prefix, local)
	if err != nil {
		return nil, err
	}
	rc, err := ec.RequiredContext()
	if err != nil {
		return nil, err
	}
	q := c.Name.Key()
	facts := ec.Filing.Facts.Filter(&q, rc, true)
	if len(facts) == 0 {
		return nil, common.NewError(common.ConceptNotFound,
			"no %s:%s fact in the required context", prefix, local)
	}
	return facts[0], nil
}
