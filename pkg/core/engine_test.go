//
//  Copyright © Manetu Inc. All rights reserved.
//

package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xbrldq/dqengine/pkg/common"
	"github.com/xbrldq/dqengine/pkg/core/options"
	"github.com/xbrldq/dqengine/pkg/filing"
	"github.com/xbrldq/dqengine/pkg/rules"
	"github.com/xbrldq/dqengine/pkg/rules/templates"
)

const testTemplates = `
TEST.R.1:
  version:
    version: "1.0"
  msg: "rule one fired"
TEST.R.2:
  version:
    version: "1.0"
  msg: "rule two fired"
TEST.R.2.5:
  version:
    version: "1.0"
  msg: "sub-rule fired"
TEST.R.3:
  version:
    version: "1.0"
  msg: "rule three fired"
`

func testStore(t *testing.T) *templates.Store {
	t.Helper()
	store, err := templates.Parse([]byte(testTemplates))
	require.NoError(t, err)
	return store
}

func emptyFiling() *filing.Filing {
	return &filing.Filing{
		DTS:   filing.NewDTS(),
		Facts: filing.NewFactSet(nil),
	}
}

func fireOnce(id string) rules.Rule {
	return rules.Rule{
		ID: id,
		Predicate: func(ec *rules.EvalContext) ([]rules.Match, error) {
			return []rules.Match{{Bindings: rules.Bindings{}}}, nil
		},
	}
}

func testEngine(t *testing.T, opts ...options.EngineOptionsFunc) *Engine {
	t.Helper()
	engine, err := NewEngine(opts...)
	require.NoError(t, err)
	return engine
}

func TestNewEngine_Defaults(t *testing.T) {
	engine := testEngine(t)

	assert.NotEmpty(t, engine.Rules(), "catalog rules registered by default")
	assert.NotZero(t, engine.Templates().Len(), "embedded templates loaded by default")
}

func TestEvaluate_RegistrationOrder(t *testing.T) {
	engine := testEngine(t,
		options.WithRules([]rules.Rule{fireOnce("TEST.R.1"), fireOnce("TEST.R.2"), fireOnce("TEST.R.3")}),
		options.WithTemplates(testStore(t)),
		options.WithWorkers(4),
	)

	// The order must be stable across runs regardless of concurrency
	for i := 0; i < 5; i++ {
		report, err := engine.Evaluate(context.Background(), emptyFiling())
		require.NoError(t, err)
		require.Len(t, report.Violations, 3)
		assert.Equal(t, "TEST.R.1", report.Violations[0].RuleID)
		assert.Equal(t, "TEST.R.2", report.Violations[1].RuleID)
		assert.Equal(t, "TEST.R.3", report.Violations[2].RuleID)
		assert.NotEmpty(t, report.RunID)
	}
}

func TestEvaluate_ViolationContent(t *testing.T) {
	engine := testEngine(t,
		options.WithRules([]rules.Rule{fireOnce("TEST.R.1")}),
		options.WithTemplates(testStore(t)),
	)

	report, err := engine.Evaluate(context.Background(), emptyFiling())
	require.NoError(t, err)
	require.Len(t, report.Violations, 1)

	v := report.Violations[0]
	assert.Equal(t, "[TEST.R.1] rule one fired", v.Message)
	assert.Equal(t, "1.0", v.Version.Version)
	assert.Equal(t, "error", v.Severity)
}

func TestEvaluate_SubRuleID(t *testing.T) {
	rule := rules.Rule{
		ID: "TEST.R.2",
		Predicate: func(ec *rules.EvalContext) ([]rules.Match, error) {
			return []rules.Match{{RuleID: "TEST.R.2.5", Bindings: rules.Bindings{}}}, nil
		},
	}
	engine := testEngine(t,
		options.WithRules([]rules.Rule{rule}),
		options.WithTemplates(testStore(t)),
	)

	report, err := engine.Evaluate(context.Background(), emptyFiling())
	require.NoError(t, err)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "TEST.R.2.5", report.Violations[0].RuleID)
	assert.Equal(t, "[TEST.R.2.5] sub-rule fired", report.Violations[0].Message)
}

func TestEvaluate_SuppressionExact(t *testing.T) {
	engine := testEngine(t,
		options.WithRules([]rules.Rule{fireOnce("TEST.R.1"), fireOnce("TEST.R.2")}),
		options.WithTemplates(testStore(t)),
		options.WithSuppression("TEST.R.1"),
	)

	report, err := engine.Evaluate(context.Background(), emptyFiling())
	require.NoError(t, err)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "TEST.R.2", report.Violations[0].RuleID)
	assert.Empty(t, report.Inconclusive, "suppression is not an outcome")
}

func TestEvaluate_SuppressionFamily(t *testing.T) {
	rule := rules.Rule{
		ID: "TEST.R.2",
		Predicate: func(ec *rules.EvalContext) ([]rules.Match, error) {
			return []rules.Match{{RuleID: "TEST.R.2.5", Bindings: rules.Bindings{}}}, nil
		},
	}
	engine := testEngine(t,
		options.WithRules([]rules.Rule{rule, fireOnce("TEST.R.3")}),
		options.WithTemplates(testStore(t)),
		options.WithSuppression("TEST.R.2"),
	)

	report, err := engine.Evaluate(context.Background(), emptyFiling())
	require.NoError(t, err)
	require.Len(t, report.Violations, 1, "suppressing the parent silences the sub-rule")
	assert.Equal(t, "TEST.R.3", report.Violations[0].RuleID)
}

func TestEvaluate_InconclusiveIsolation(t *testing.T) {
	failing := rules.Rule{
		ID: "TEST.R.1",
		Predicate: func(ec *rules.EvalContext) ([]rules.Match, error) {
			return nil, common.NewError(common.ConceptNotFound, "taxonomy does not define us-gaap:Assets")
		},
	}
	engine := testEngine(t,
		options.WithRules([]rules.Rule{failing, fireOnce("TEST.R.2")}),
		options.WithTemplates(testStore(t)),
	)

	report, err := engine.Evaluate(context.Background(), emptyFiling())
	require.NoError(t, err)

	require.Len(t, report.Violations, 1)
	assert.Equal(t, "TEST.R.2", report.Violations[0].RuleID)

	require.Len(t, report.Inconclusive, 1)
	assert.Equal(t, "TEST.R.1", report.Inconclusive[0].RuleID)
	assert.Equal(t, common.ConceptNotFound, report.Inconclusive[0].Code)
}

func TestEvaluate_PanicIsolation(t *testing.T) {
	panicking := rules.Rule{
		ID: "TEST.R.1",
		Predicate: func(ec *rules.EvalContext) ([]rules.Match, error) {
			panic("boom")
		},
	}
	engine := testEngine(t,
		options.WithRules([]rules.Rule{panicking, fireOnce("TEST.R.2")}),
		options.WithTemplates(testStore(t)),
	)

	report, err := engine.Evaluate(context.Background(), emptyFiling())
	require.NoError(t, err)

	require.Len(t, report.Violations, 1)
	assert.Equal(t, "TEST.R.2", report.Violations[0].RuleID)

	require.Len(t, report.Inconclusive, 1)
	assert.Equal(t, common.EngineFailure, report.Inconclusive[0].Code)
}

func TestEvaluate_AuthoringDefect(t *testing.T) {
	// TEST.R.9 has no template entry; the lookup failure belongs to the
	// rule, not the run.
	engine := testEngine(t,
		options.WithRules([]rules.Rule{fireOnce("TEST.R.9"), fireOnce("TEST.R.2")}),
		options.WithTemplates(testStore(t)),
	)

	report, err := engine.Evaluate(context.Background(), emptyFiling())
	require.NoError(t, err)

	require.Len(t, report.Violations, 1)
	assert.Equal(t, "TEST.R.2", report.Violations[0].RuleID)

	require.Len(t, report.Inconclusive, 1)
	assert.Equal(t, common.UnknownTemplate, report.Inconclusive[0].Code)
}

func TestEvaluate_Budget(t *testing.T) {
	slow := rules.Rule{
		ID: "TEST.R.1",
		Predicate: func(ec *rules.EvalContext) ([]rules.Match, error) {
			time.Sleep(50 * time.Millisecond)
			return []rules.Match{{Bindings: rules.Bindings{}}}, nil
		},
	}
	engine := testEngine(t,
		options.WithRules([]rules.Rule{slow, fireOnce("TEST.R.2")}),
		options.WithTemplates(testStore(t)),
		options.WithBudget(10*time.Millisecond),
		options.WithWorkers(1),
	)

	report, err := engine.Evaluate(context.Background(), emptyFiling())
	require.NoError(t, err)

	// The slow rule ran to completion; the second never started
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "TEST.R.1", report.Violations[0].RuleID)

	require.Len(t, report.Inconclusive, 1)
	assert.Equal(t, "TEST.R.2", report.Inconclusive[0].RuleID)
	assert.Equal(t, common.EvaluationTimeout, report.Inconclusive[0].Code)
}

func TestEvaluate_NoFactModel(t *testing.T) {
	engine := testEngine(t,
		options.WithRules([]rules.Rule{fireOnce("TEST.R.1")}),
		options.WithTemplates(testStore(t)),
	)

	// A filing without a loaded taxonomy is an engine-level error, not a
	// per-rule outcome and not a crash.
	_, err := engine.Evaluate(context.Background(), &filing.Filing{Facts: filing.NewFactSet(nil)})
	require.Error(t, err)
	assert.Equal(t, common.EngineFailure, common.CodeOf(err))

	_, err = engine.Evaluate(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, common.EngineFailure, common.CodeOf(err))

	_, err = engine.Evaluate(context.Background(), &filing.Filing{DTS: filing.NewDTS()})
	require.Error(t, err)
	assert.Equal(t, common.EngineFailure, common.CodeOf(err))
}

func TestEvaluate_Idempotent(t *testing.T) {
	engine := testEngine(t,
		options.WithRules([]rules.Rule{fireOnce("TEST.R.1")}),
		options.WithTemplates(testStore(t)),
	)

	first, err := engine.Evaluate(context.Background(), emptyFiling())
	require.NoError(t, err)
	second, err := engine.Evaluate(context.Background(), emptyFiling())
	require.NoError(t, err)

	assert.Equal(t, first.Violations, second.Violations)
	assert.NotEqual(t, first.RunID, second.RunID)
}
