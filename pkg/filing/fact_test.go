//
//  Copyright © Manetu Inc. All rights reserved.
//

package filing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func numericConcept(local string) *Concept {
	return &Concept{
		Name:    QName{Namespace: "http://fasb.org/us-gaap/2023-01-31", Local: local, Prefix: "us-gaap"},
		Numeric: true,
	}
}

func numericFact(value string, decimals, precision *int) *Fact {
	return &Fact{
		Concept:   numericConcept("Assets"),
		Context:   &Context{ID: "c1", Period: NewInstant(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))},
		Value:     value,
		Decimals:  decimals,
		Precision: precision,
	}
}

func TestEffectiveValue_Decimals(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		decimals int
		expected string
	}{
		{"round down", "1234567", -3, "1235000"},
		{"tie rounds half to even", "1234500", -3, "1234000"},
		{"tie rounds half to even up", "1235500", -3, "1236000"},
		{"positive decimals", "1.23456", 2, "1.23"},
		{"negative value", "-1234567", -3, "-1235000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := numericFact(tt.value, intPtr(tt.decimals), nil)
			v, ok := f.EffectiveValue()
			require.True(t, ok)
			assert.Equal(t, tt.expected, v.String())
		})
	}
}

func TestEffectiveValue_Precision(t *testing.T) {
	// 4 significant digits of 123456 reach down to the hundreds position
	f := numericFact("123456", nil, intPtr(4))

	places, exact := f.InferredDecimals()
	require.False(t, exact)
	assert.Equal(t, int32(-2), places)

	v, ok := f.EffectiveValue()
	require.True(t, ok)
	assert.Equal(t, "123500", v.String())
}

func TestEffectiveValue_Exact(t *testing.T) {
	f := numericFact("1234567.89", nil, nil)

	_, exact := f.InferredDecimals()
	assert.True(t, exact)

	v, ok := f.EffectiveValue()
	require.True(t, ok)
	assert.Equal(t, "1234567.89", v.String())
}

func TestInferredDecimals_ZeroValueWithPrecision(t *testing.T) {
	f := numericFact("0", nil, intPtr(4))

	_, exact := f.InferredDecimals()
	assert.True(t, exact, "zero has no significant digits; treated as exact")
}

func TestNumericValue(t *testing.T) {
	f := numericFact("42.5", nil, nil)
	v, ok := f.NumericValue()
	require.True(t, ok)
	assert.True(t, v.Equal(decimal.RequireFromString("42.5")))

	f.Nil = true
	_, ok = f.NumericValue()
	assert.False(t, ok)

	text := numericFact("hello", nil, nil)
	text.Concept = &Concept{Name: NewQName("ns", "DocumentType")}
	_, ok = text.NumericValue()
	assert.False(t, ok)
}

func TestCompareRounded_MixedAccuracy(t *testing.T) {
	// Both express the same figure to the nearest million even though the
	// raw values differ.
	f1 := numericFact("532000000", intPtr(-6), nil)
	f2 := numericFact("532300000", intPtr(-5), nil)

	equal, ok := CompareRounded(f1, f2, EqualWithinTolerance)
	require.True(t, ok)
	assert.True(t, equal)
}

func TestCompareRounded_ExceedsTolerance(t *testing.T) {
	f1 := numericFact("532000000", intPtr(-6), nil)
	f2 := numericFact("539000000", intPtr(-6), nil)

	equal, ok := CompareRounded(f1, f2, EqualWithinTolerance)
	require.True(t, ok)
	assert.False(t, equal)
}

func TestCompareRounded_WithinTolerance(t *testing.T) {
	// Difference of exactly 2 at the rounded scale is accepted
	f1 := numericFact("530000000", intPtr(-6), nil)
	f2 := numericFact("532000000", intPtr(-6), nil)

	equal, ok := CompareRounded(f1, f2, EqualWithinTolerance)
	require.True(t, ok)
	assert.True(t, equal)
}

func TestCompareRounded_BothExact(t *testing.T) {
	f1 := numericFact("100", nil, nil)
	f2 := numericFact("100", nil, nil)

	equal, ok := CompareRounded(f1, f2, EqualWithinTolerance)
	require.True(t, ok)
	assert.True(t, equal)

	f3 := numericFact("100.01", nil, nil)
	equal, ok = CompareRounded(f1, f3, EqualWithinTolerance)
	require.True(t, ok)
	assert.False(t, equal, "exact values admit no tolerance")
}

func TestCompareRounded_NonNumeric(t *testing.T) {
	f1 := numericFact("abc", nil, nil)
	f2 := numericFact("100", nil, nil)

	_, ok := CompareRounded(f1, f2, EqualWithinTolerance)
	assert.False(t, ok)
}

func TestCompareRounded_LessOrEqual(t *testing.T) {
	issued := numericFact("1000", nil, nil)
	authorized := numericFact("5000", nil, nil)

	le, ok := CompareRounded(issued, authorized, LessOrEqual)
	require.True(t, ok)
	assert.True(t, le)

	le, ok = CompareRounded(authorized, issued, LessOrEqual)
	require.True(t, ok)
	assert.False(t, le)
}

func TestUnitString(t *testing.T) {
	assert.Equal(t, "none", Unit{}.String())
	assert.Equal(t, "iso4217:USD", Unit{Numerator: []string{"iso4217:USD"}}.String())
	assert.Equal(t, "iso4217:USD / shares",
		Unit{Numerator: []string{"iso4217:USD"}, Denominator: []string{"shares"}}.String())
}
