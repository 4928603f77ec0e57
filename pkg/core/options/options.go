//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package options defines the functional options accepted by
// [core.NewEngine]. It is separate from pkg/core so that packages
// embedding the engine can construct option sets without importing the
// engine itself.
package options

import (
	"time"

	"github.com/xbrldq/dqengine/pkg/rules"
	"github.com/xbrldq/dqengine/pkg/rules/templates"
)

// EngineOptions defines the configuration options for initializing a
// validation engine.
type EngineOptions struct {
	Rules     []rules.Rule
	Templates *templates.Store

	// Suppress lists rule ids to silence. Suppressing an id also
	// silences every sub-rule beneath it.
	Suppress []string

	// Budget is the wall-clock limit for one evaluation; zero disables
	// the budget.
	Budget time.Duration

	// Workers is the number of rules evaluated concurrently.
	Workers int

	// NamespaceHints overrides the pattern-based prefix resolution.
	NamespaceHints map[string]string
}

// EngineOptionsFunc is a function that modifies EngineOptions.
type EngineOptionsFunc func(*EngineOptions)

// WithRules replaces the rule registry. The default is the built-in
// catalog.
func WithRules(r []rules.Rule) EngineOptionsFunc {
	return func(o *EngineOptions) {
		o.Rules = r
	}
}

// WithTemplates replaces the message template store. The default is the
// store embedded with the catalog.
func WithTemplates(s *templates.Store) EngineOptionsFunc {
	return func(o *EngineOptions) {
		o.Templates = s
	}
}

// WithSuppression appends rule ids to the suppression list.
func WithSuppression(ids ...string) EngineOptionsFunc {
	return func(o *EngineOptions) {
		o.Suppress = append(o.Suppress, ids...)
	}
}

// WithBudget sets the wall-clock evaluation budget.
func WithBudget(d time.Duration) EngineOptionsFunc {
	return func(o *EngineOptions) {
		o.Budget = d
	}
}

// WithWorkers sets the rule evaluation concurrency.
func WithWorkers(n int) EngineOptionsFunc {
	return func(o *EngineOptions) {
		if n > 0 {
			o.Workers = n
		}
	}
}

// WithNamespaceHints merges prefix-to-namespace overrides into the
// resolver.
func WithNamespaceHints(hints map[string]string) EngineOptionsFunc {
	return func(o *EngineOptions) {
		if o.NamespaceHints == nil {
			o.NamespaceHints = make(map[string]string, len(hints))
		}
		for prefix, ns := range hints {
			o.NamespaceHints[prefix] = ns
		}
	}
}
