//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package core provides the primary interface for the data-quality
// validation engine: it evaluates a registry of rules against a loaded
// filing and renders every match into a violation report.
//
// # Quick Start
//
// Create an engine with the built-in rule catalog and templates:
//
//	engine, err := core.NewEngine()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Evaluate a filing:
//
//	report, err := engine.Evaluate(ctx, f)
//	for _, v := range report.Violations {
//	    fmt.Println(v.Message)
//	}
//
// # Configuration
//
// The engine supports configuration via functional options:
//
//	engine, err := core.NewEngine(
//	    options.WithSuppression("DQC.US.0001.75"),
//	    options.WithBudget(30*time.Second),
//	    options.WithWorkers(4),
//	)
//
// The same settings can come from the configuration file or DQC_
// environment variables; see the [config] package. Programmatic options
// take precedence.
//
// # Isolation
//
// Rules are isolated from one another: a rule that fails -- missing
// taxonomy data, an authoring defect in its template, even a panic in its
// predicate -- is reported as an inconclusive outcome and the remaining
// rules still run. Violations are reported in rule registration order
// regardless of evaluation concurrency.
package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/xbrldq/dqengine/internal/logging"
	"github.com/xbrldq/dqengine/pkg/common"
	"github.com/xbrldq/dqengine/pkg/core/config"
	"github.com/xbrldq/dqengine/pkg/core/options"
	"github.com/xbrldq/dqengine/pkg/filing"
	"github.com/xbrldq/dqengine/pkg/rules"
	"github.com/xbrldq/dqengine/pkg/rules/catalog"
	"github.com/xbrldq/dqengine/pkg/rules/templates"
)

var logger = logging.GetLogger("dqengine")
var agent = "dqengine"

// Report is the result of evaluating one filing.
type Report struct {
	// RunID uniquely identifies this evaluation run.
	RunID string `json:"runId"`

	// Violations holds the rendered rule failures in rule registration
	// order.
	Violations []rules.Violation `json:"violations"`

	// Inconclusive holds the rules that could not produce a result, with
	// the reason.
	Inconclusive []rules.Outcome `json:"inconclusive,omitempty"`

	// Elapsed is the wall-clock evaluation time.
	Elapsed time.Duration `json:"elapsed"`
}

// Engine evaluates a fixed rule registry against filings. Engines are
// immutable after construction and safe for concurrent use by multiple
// goroutines.
type Engine struct {
	rules    []rules.Rule
	store    *templates.Store
	suppress map[string]bool
	budget   time.Duration
	workers  int
	hints    map[string]string
}

// NewEngine creates and initializes a new [Engine].
//
// By default, the engine carries the built-in rule catalog and its
// embedded message templates, with suppression, budget and concurrency
// taken from configuration. Use functional options to override any of
// these:
//
//	engine, err := core.NewEngine(
//	    options.WithRules(myRules),
//	    options.WithTemplates(myStore),
//	)
//
// NewEngine loads configuration from environment variables and config
// files before initializing. See the [config] package for details.
func NewEngine(engineOptions ...options.EngineOptionsFunc) (*Engine, error) {
	if err := config.Load(); err != nil {
		return nil, errors.Wrap(err, "error loading config")
	}

	store, err := catalog.DefaultTemplates()
	if err != nil {
		return nil, errors.Wrap(err, "error loading embedded templates")
	}

	opts := &options.EngineOptions{
		Rules: catalog.All(catalog.Options{
			DimensionalEquivalents: config.VConfig.GetBool(config.DimensionalEquivalents),
		}),
		Templates:      store,
		Suppress:       config.GetSuppressedRules(),
		Budget:         config.VConfig.GetDuration(config.EvalBudget),
		Workers:        config.VConfig.GetInt(config.EvalWorkers),
		NamespaceHints: config.VConfig.GetStringMapString(config.Namespaces),
	}
	for _, o := range engineOptions {
		o(opts)
	}

	if opts.Workers < 1 {
		opts.Workers = 1
	}

	suppress := make(map[string]bool, len(opts.Suppress))
	for _, id := range opts.Suppress {
		suppress[id] = true
	}

	return &Engine{
		rules:    opts.Rules,
		store:    opts.Templates,
		suppress: suppress,
		budget:   opts.Budget,
		workers:  opts.Workers,
		hints:    opts.NamespaceHints,
	}, nil
}

// Rules returns the registered rule definitions in registration order.
func (e *Engine) Rules() []rules.Rule {
	return e.rules
}

// Templates returns the engine's message template store.
func (e *Engine) Templates() *templates.Store {
	return e.store
}

// suppressed reports whether a rule id is silenced, either directly or
// through its parent id.
func (e *Engine) suppressed(id string) bool {
	if e.suppress[id] {
		return true
	}
	if idx := strings.LastIndex(id, "."); idx > 0 {
		return e.suppress[id[:idx]]
	}
	return false
}

// ruleResult is the per-rule evaluation slot. Slots are merged in
// registration order after all workers finish.
type ruleResult struct {
	violations []rules.Violation
	outcome    *rules.Outcome
}

// Evaluate runs every registered rule against the filing and returns the
// collected report.
//
// Evaluation is deterministic for a given filing and engine: rules run
// against an immutable fact model and violations appear in rule
// registration order. A non-nil error indicates the engine itself failed;
// individual rule failures surface as inconclusive outcomes in the
// report instead.
func (e *Engine) Evaluate(ctx context.Context, f *filing.Filing) (*Report, error) {
	if f == nil || f.DTS == nil || f.Facts == nil {
		return nil, common.NewError(common.EngineFailure, "filing has no loaded fact model")
	}

	start := time.Now()
	runID := uuid.NewString()

	logger.Infof(agent, "Evaluate", "run %s: evaluating %d rules against %d facts",
		runID, len(e.rules), f.Facts.Len())

	if e.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.budget)
		defer cancel()
	}

	ec := rules.NewEvalContext(f, e.hints)
	renderer := &templates.Renderer{Globals: ec}

	results := make([]ruleResult, len(e.rules))
	indexes := make(chan int)

	done := make(chan struct{})
	for w := 0; w < e.workers; w++ {
		go func() {
			for i := range indexes {
				results[i] = e.evalRule(ctx, ec, renderer, e.rules[i])
				done <- struct{}{}
			}
		}()
	}
	go func() {
		for i := range e.rules {
			indexes <- i
		}
		close(indexes)
	}()
	for range e.rules {
		<-done
	}

	report := &Report{RunID: runID, Violations: []rules.Violation{}}
	for _, r := range results {
		report.Violations = append(report.Violations, r.violations...)
		if r.outcome != nil {
			report.Inconclusive = append(report.Inconclusive, *r.outcome)
		}
	}
	report.Elapsed = time.Since(start)

	metricEvaluations.Inc()
	metricEvalDuration.Observe(report.Elapsed.Seconds())

	logger.Infof(agent, "Evaluate", "run %s: %d violations, %d inconclusive in %s",
		runID, len(report.Violations), len(report.Inconclusive), report.Elapsed)

	return report, nil
}

// evalRule runs one rule in isolation: predicate, suppression filter and
// rendering. Every failure mode, including a predicate panic, collapses
// into an inconclusive outcome so one defective rule cannot take down the
// run.
func (e *Engine) evalRule(ctx context.Context, ec *rules.EvalContext, renderer *templates.Renderer, rule rules.Rule) (result ruleResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(agent, "evalRule", "rule %s panicked: %v", rule.ID, r)
			result = outcomeResult(rule.ID, common.EngineFailure, fmt.Sprintf("rule panicked: %v", r))
		}
	}()

	if e.suppressed(rule.ID) {
		logger.Debugf(agent, "evalRule", "rule %s suppressed", rule.ID)
		return ruleResult{}
	}
	if err := ctx.Err(); err != nil {
		return outcomeResult(rule.ID, common.EvaluationTimeout, "evaluation budget exhausted before rule ran")
	}

	matches, err := rule.Predicate(ec)
	if err != nil {
		return e.classify(rule.ID, err)
	}

	for _, m := range matches {
		id := rule.ID
		if m.RuleID != "" {
			id = m.RuleID
		}
		if e.suppressed(id) {
			continue
		}

		entry, err := e.store.Lookup(id)
		if err != nil {
			return e.classify(id, err)
		}

		bindings := m.Bindings
		if bindings == nil {
			bindings = rules.Bindings{}
		}
		bindings["ruleVersion"] = entry.Version

		rendered, err := renderer.Render(entry, m.Variation, bindings)
		if err != nil {
			return e.classify(id, err)
		}

		metricViolations.WithLabelValues(id).Inc()
		result.violations = append(result.violations, rules.Violation{
			RuleID:    id,
			Version:   entry.Version,
			Variation: m.Variation,
			Message:   rendered.Message,
			Hints:     rendered.Hints,
			Content:   rendered.Content,
			Severity:  "error",
		})
	}
	return result
}

// classify maps a rule evaluation error to its inconclusive outcome
// class. Data absence is expected and logged quietly; authoring defects
// and everything else are defects worth shouting about.
func (e *Engine) classify(id string, err error) ruleResult {
	switch {
	case common.IsInconclusive(err):
		logger.Debugf(agent, "evalRule", "rule %s inconclusive: %v", id, err)
		return outcomeResult(id, common.CodeOf(err), err.Error())
	case common.IsAuthoring(err):
		logger.Errorf(agent, "evalRule", "rule %s has an authoring defect: %+v", id, err)
		return outcomeResult(id, common.CodeOf(err), err.Error())
	default:
		logger.Errorf(agent, "evalRule", "rule %s failed: %+v", id, err)
		return outcomeResult(id, common.EngineFailure, err.Error())
	}
}

func outcomeResult(id string, code common.ReasonCode, reason string) ruleResult {
	metricInconclusive.WithLabelValues(id, code.String()).Inc()
	return ruleResult{outcome: &rules.Outcome{RuleID: id, Code: code, Reason: reason}}
}
