//
//  Copyright © Manetu Inc. All rights reserved.
//

package filing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNS  = "http://fasb.org/us-gaap/2023-01-31"
	testDay = time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
)

func axisConcept(local string) *Concept {
	return &Concept{Name: NewQName(testNS, local), Dimension: true}
}

func memberConcept(local string) *Concept {
	return &Concept{Name: NewQName(testNS, local)}
}

func dimensionedContext(id string, axis, member *Concept) *Context {
	return &Context{
		ID:     id,
		Period: NewInstant(testDay),
		Dimensions: []DimensionValue{
			{Axis: axis, Member: member},
		},
	}
}

func testFactSet() *FactSet {
	axis := axisConcept("StatementBusinessSegmentsAxis")
	member := memberConcept("SegmentAMember")

	assets := numericConcept("Assets")
	liabilities := numericConcept("Liabilities")

	base := &Context{ID: "c0", Period: NewInstant(testDay)}

	return NewFactSet([]*Fact{
		{Concept: assets, Context: base, Value: "100"},
		{Concept: liabilities, Context: base, Value: "60"},
		{Concept: assets, Context: dimensionedContext("c1", axis, member), Value: "40"},
		{Concept: assets, Context: base, Nil: true},
	})
}

func TestFactSet_ByConcept(t *testing.T) {
	s := testFactSet()

	assets := s.ByConcept(NewQName(testNS, "Assets"))
	assert.Len(t, assets, 3)
	assert.Equal(t, "100", assets[0].Value, "document order preserved")

	assert.Empty(t, s.ByConcept(NewQName(testNS, "Revenues")))
}

func TestFactSet_Filter_SemanticContext(t *testing.T) {
	s := testFactSet()
	q := NewQName(testNS, "Assets")

	// A context with a different identifier but the same period and
	// dimensions matches.
	probe := &Context{ID: "other", Period: NewInstant(testDay)}

	facts := s.Filter(&q, probe, false)
	require.Len(t, facts, 2)

	facts = s.Filter(&q, probe, true)
	require.Len(t, facts, 1)
	assert.Equal(t, "100", facts[0].Value)
}

func TestFactSet_Filter_NoConstraints(t *testing.T) {
	s := testFactSet()
	assert.Len(t, s.Filter(nil, nil, false), 4)
	assert.Len(t, s.Filter(nil, nil, true), 3)
}

func TestFactSet_Slice(t *testing.T) {
	s := testFactSet()

	assert.Len(t, s.Slice(0, 2), 2)
	assert.Len(t, s.Slice(1, -1), 2)
	assert.Equal(t, s.All()[3], s.Slice(-1, 4)[0])
	assert.Nil(t, s.Slice(3, 2))
	assert.Len(t, s.Slice(0, 100), 4, "out-of-range bounds clamp")
}

func TestFactSet_DimensionalFacts(t *testing.T) {
	s := testFactSet()
	axis := NewQName(testNS, "StatementBusinessSegmentsAxis")
	member := NewQName(testNS, "SegmentAMember")

	facts := s.DimensionalFacts(axis, &member)
	require.Len(t, facts, 1)
	assert.Equal(t, "40", facts[0].Value)

	assert.True(t, s.HasDimensionalFacts(axis, member))
	assert.False(t, s.HasDimensionalFacts(axis, NewQName(testNS, "SegmentBMember")))

	// any member on the axis
	assert.Len(t, s.DimensionalFacts(axis, nil), 1)
}

func TestContext_Equal(t *testing.T) {
	axis := axisConcept("LegalEntityAxis")
	member := memberConcept("SubsidiaryMember")

	a := dimensionedContext("a", axis, member)
	b := dimensionedContext("b", axis, member)
	assert.True(t, a.Equal(b), "identifiers are not significant")

	c := &Context{ID: "c", Period: NewInstant(testDay)}
	assert.False(t, a.Equal(c))
	assert.False(t, c.Equal(a))

	d := dimensionedContext("d", axis, memberConcept("OtherMember"))
	assert.False(t, a.Equal(d))
}

func TestContext_DimensionsString(t *testing.T) {
	base := &Context{ID: "c", Period: NewInstant(testDay)}
	assert.Equal(t, "none", base.DimensionsString())

	axis := axisConcept("LegalEntityAxis")
	axis.Name.Prefix = "dei"
	member := memberConcept("SubsidiaryMember")
	member.Name.Prefix = "ex"
	ctx := dimensionedContext("c", axis, member)
	assert.Equal(t, "dei:LegalEntityAxis = ex:SubsidiaryMember", ctx.DimensionsString())
}

func TestPeriod_DurationDays(t *testing.T) {
	p := NewDuration(
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 365, p.DurationDays())

	q1 := NewDuration(
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 90, q1.DurationDays())

	assert.Equal(t, 0, NewInstant(testDay).DurationDays())
}
