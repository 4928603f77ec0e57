//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package templates implements the message-templating engine: the rule
// template store, the ${...} path-placeholder language, and the renderer
// that turns a template entry plus a binding set into final violation
// text.
//
// Template entries are a tagged union: a flat message (optionally with
// hints), a multi-paragraph message, or a variation map keyed by the
// variation key the rule predicate selects. All placeholders are parsed
// once at store-load time; rendering is pure lookup and substitution.
package templates

import (
	"github.com/xbrldq/dqengine/pkg/common"
	"github.com/xbrldq/dqengine/pkg/rules"
)

// EntryKind tags the shape of a template entry.
type EntryKind int

// Entry shapes.
const (
	// Flat entries carry one message and optional hints.
	Flat EntryKind = iota
	// Paragraphed entries add an ordered sequence of content paragraphs.
	Paragraphed
	// Variant entries map variation keys to flat or paragraphed bodies.
	Variant
)

// Body is one renderable template body: a message plus optional hints and
// content paragraphs, all pre-compiled.
type Body struct {
	Msg     *Template
	Hints   []*Template
	Content []*Template
}

// Entry is the template entry registered for one rule id.
type Entry struct {
	ID      string
	Version rules.Info

	kind       EntryKind
	body       *Body
	variations map[rules.Variation]*Body
}

// Kind returns the entry's shape tag.
func (e *Entry) Kind() EntryKind {
	return e.kind
}

// Select returns the body for the supplied variation key. For flat and
// paragraphed entries the key must be empty; for variant entries it must
// name a declared variation. A mismatch is an authoring error in the rule
// definition, reported loudly rather than rendered blank.
func (e *Entry) Select(v rules.Variation) (*Body, error) {
	switch e.kind {
	case Flat, Paragraphed:
		if v != rules.VariationDefault {
			return nil, common.NewError(common.UnknownVariation,
				"rule %s has no variations but predicate selected %q", e.ID, v)
		}
		return e.body, nil
	case Variant:
		body, ok := e.variations[v]
		if !ok {
			return nil, common.NewError(common.UnknownVariation,
				"rule %s template declares no variation %q", e.ID, v)
		}
		return body, nil
	}
	return nil, common.NewError(common.UnknownTemplate, "rule %s has malformed template entry", e.ID)
}

// Variations returns the declared variation keys, or nil for non-variant
// entries.
func (e *Entry) Variations() []rules.Variation {
	keys := make([]rules.Variation, 0, len(e.variations))
	for k := range e.variations {
		keys = append(keys, k)
	}
	return keys
}
