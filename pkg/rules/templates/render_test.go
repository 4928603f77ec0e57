//
//  Copyright © Manetu Inc. All rights reserved.
//

package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xbrldq/dqengine/pkg/common"
	"github.com/xbrldq/dqengine/pkg/filing"
	"github.com/xbrldq/dqengine/pkg/rules"
)

const gaapNS = "http://fasb.org/us-gaap/2023-01-31"

func cashFact() *filing.Fact {
	return &filing.Fact{
		Concept: &filing.Concept{
			Name:    filing.QName{Namespace: gaapNS, Local: "CashAndCashEquivalentsAtCarryingValue", Prefix: "us-gaap"},
			Label:   "Cash and Cash Equivalents",
			Numeric: true,
		},
		Context: &filing.Context{
			ID:     "c1",
			Period: filing.NewInstant(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)),
		},
		Value: "100",
		Unit:  filing.Unit{Numerator: []string{"iso4217:USD"}},
	}
}

func flatEntry(t *testing.T, id, msg string) *Entry {
	t.Helper()
	store, err := Parse([]byte(id + ":\n  version:\n    version: \"1.0\"\n  msg: \"" + msg + "\"\n"))
	require.NoError(t, err)
	entry, err := store.Lookup(id)
	require.NoError(t, err)
	return entry
}

func TestRender_Flat(t *testing.T) {
	entry := flatEntry(t, "TEST.R.1", "${fact1.label} has a value of ${fact1.value}.")
	r := &Renderer{}

	out, err := r.Render(entry, rules.VariationDefault, rules.Bindings{
		"fact1":       cashFact(),
		"ruleVersion": rules.Info{Version: "1.0"},
	})
	require.NoError(t, err)

	assert.Equal(t, "[TEST.R.1] Cash and Cash Equivalents has a value of 100.", out.Message)

	// fact1 is bound, so the standard fact-properties paragraphs follow
	require.Len(t, out.Content, 5)
	assert.Equal(t, "The properties of this us-gaap:CashAndCashEquivalentsAtCarryingValue fact are:", out.Content[0])
	assert.Equal(t, "Period: 2023-12-31", out.Content[1])
	assert.Equal(t, "Dimensions: none", out.Content[2])
	assert.Equal(t, "Unit: iso4217:USD", out.Content[3])
	assert.Equal(t, "Rule version: 1.0", out.Content[4])
}

func TestRender_NoFactProperties(t *testing.T) {
	entry := flatEntry(t, "TEST.R.2", "The group ${group} is malformed.")
	r := &Renderer{}

	out, err := r.Render(entry, rules.VariationDefault, rules.Bindings{
		"group": "http://example.com/role/statement",
	})
	require.NoError(t, err)
	assert.Equal(t, "[TEST.R.2] The group http://example.com/role/statement is malformed.", out.Message)
	assert.Empty(t, out.Content)
}

func TestRender_MissingBinding(t *testing.T) {
	entry := flatEntry(t, "TEST.R.3", "value ${fact1.value}")
	r := &Renderer{}

	_, err := r.Render(entry, rules.VariationDefault, rules.Bindings{})
	require.Error(t, err)
	assert.Equal(t, common.MissingBinding, common.CodeOf(err))
}

func TestRender_UnknownVariation(t *testing.T) {
	entry := flatEntry(t, "TEST.R.4", "message")
	r := &Renderer{}

	_, err := r.Render(entry, rules.Variation("ext"), rules.Bindings{})
	require.Error(t, err)
	assert.Equal(t, common.UnknownVariation, common.CodeOf(err))
}

func TestRender_UnknownProperty(t *testing.T) {
	entry := flatEntry(t, "TEST.R.5", "${fact1.bogus}")
	r := &Renderer{}

	_, err := r.Render(entry, rules.VariationDefault, rules.Bindings{"fact1": cashFact()})
	require.Error(t, err)
	assert.Equal(t, common.TemplateResolution, common.CodeOf(err))
}

func TestRender_NilFactValue(t *testing.T) {
	entry := flatEntry(t, "TEST.R.6", "value is ${fact1.value}")
	f := cashFact()
	f.Nil = true

	out, err := (&Renderer{}).Render(entry, rules.VariationDefault, rules.Bindings{
		"fact1":       f,
		"ruleVersion": rules.Info{Version: "1.0"},
	})
	require.NoError(t, err)
	assert.Equal(t, "[TEST.R.6] value is nil", out.Message)
}

type stubResolver struct {
	fact *filing.Fact
	err  error
}

func (s *stubResolver) ResolveGlobal(prefix, local string) (*filing.Fact, error) {
	return s.fact, s.err
}

func TestRender_GlobalReference(t *testing.T) {
	entry := flatEntry(t, "TEST.R.7", "period ends ${dei:DocumentPeriodEndDate.period.endDate}")

	f := cashFact()
	r := &Renderer{Globals: &stubResolver{fact: f}}

	out, err := r.Render(entry, rules.VariationDefault, rules.Bindings{})
	require.NoError(t, err)
	assert.Equal(t, "[TEST.R.7] period ends 2023-12-31", out.Message)
}

func TestRender_GlobalReference_NoResolver(t *testing.T) {
	entry := flatEntry(t, "TEST.R.8", "${dei:DocumentType}")

	_, err := (&Renderer{}).Render(entry, rules.VariationDefault, rules.Bindings{})
	require.Error(t, err)
	assert.Equal(t, common.TemplateResolution, common.CodeOf(err))
}

func TestRender_ContextProperties(t *testing.T) {
	entry := flatEntry(t, "TEST.R.10",
		"context ${fact1.context.id} reported by ${fact1.context.entity}")

	f := cashFact()
	f.Context.Entity = "0000012345"

	out, err := (&Renderer{}).Render(entry, rules.VariationDefault, rules.Bindings{
		"fact1":       f,
		"ruleVersion": rules.Info{Version: "1.0"},
	})
	require.NoError(t, err)
	assert.Equal(t, "[TEST.R.10] context c1 reported by 0000012345", out.Message)
}

func TestRender_PeriodProperties(t *testing.T) {
	entry := flatEntry(t, "TEST.R.9",
		"${period.startDate} to ${period.endDate} over ${period.durationDays} days")

	p := filing.NewDuration(
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))

	out, err := (&Renderer{}).Render(entry, rules.VariationDefault, rules.Bindings{"period": p})
	require.NoError(t, err)
	assert.Equal(t, "[TEST.R.9] 2023-01-01 to 2023-12-31 over 365 days", out.Message)
}
