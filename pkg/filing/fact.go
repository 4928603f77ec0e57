//
//  Copyright © Manetu Inc. All rights reserved.
//

package filing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Unit is the measurement unit of a numeric fact, expressed as numerator
// and denominator measure names.
type Unit struct {
	Numerator   []string
	Denominator []string
}

// String renders the unit, or "none" when empty.
func (u Unit) String() string {
	if len(u.Numerator) == 0 {
		return "none"
	}
	s := strings.Join(u.Numerator, " ")
	if len(u.Denominator) > 0 {
		s += " / " + strings.Join(u.Denominator, " ")
	}
	return s
}

// Fact is a single reported value for a concept in a specific context.
// Facts are immutable once the filing is loaded.
type Fact struct {
	Concept *Concept
	Context *Context

	// Value is the raw lexical value as reported.
	Value string

	// Nil marks xsi:nil facts, which carry no value.
	Nil bool

	// Decimals and Precision are the reported accuracy attributes. At
	// most one is set; when both are absent the value is exact.
	Decimals  *int
	Precision *int

	Unit Unit
}

// QName returns the fact's concept name.
func (f *Fact) QName() QName {
	return f.Concept.Name
}

// IsNumeric reports whether the fact's concept is numeric.
func (f *Fact) IsNumeric() bool {
	return f.Concept.Numeric
}

// NumericValue parses the reported value as an arbitrary-precision
// decimal. The second return is false for nil or non-numeric facts.
func (f *Fact) NumericValue() (decimal.Decimal, bool) {
	if f.Nil || !f.IsNumeric() {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(strings.TrimSpace(f.Value))
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

// EffectiveValue returns the fact's precision-adjusted numeric value: the
// reported value rounded per its decimals attribute (negative values round
// to power-of-ten multiples) or to its precision's count of significant
// digits. Ties round half to even, as required by XBRL 2.1.
//
// Facts carrying neither attribute are exact. The second return is false
// for nil or non-numeric facts.
func (f *Fact) EffectiveValue() (decimal.Decimal, bool) {
	v, ok := f.NumericValue()
	if !ok {
		return decimal.Zero, false
	}
	if d, exact := f.InferredDecimals(); !exact {
		return v.RoundBank(d), true
	}
	return v, true
}

// InferredDecimals returns the number of decimal places to which the
// fact's value is accurate. A precision attribute is converted into an
// equivalent decimals value based on the magnitude of the reported value.
// exact is true when the fact carries neither attribute (or is zero-valued
// under precision), meaning infinite accuracy.
func (f *Fact) InferredDecimals() (places int32, exact bool) {
	switch {
	case f.Decimals != nil:
		return int32(*f.Decimals), false
	case f.Precision != nil:
		v, ok := f.NumericValue()
		if !ok || v.IsZero() {
			return 0, true
		}
		return significantPlaces(v, int32(*f.Precision)), false
	default:
		return 0, true
	}
}

// significantPlaces converts "p significant digits of v" into a decimal
// places count: the exponent of v's most significant digit is
// NumDigits+Exponent-1, and keeping p digits means rounding p-1 positions
// below it.
func significantPlaces(v decimal.Decimal, p int32) int32 {
	msd := int32(v.NumDigits()) + v.Exponent() - 1
	return p - 1 - msd
}

// CompareFn compares two rounded values. decimals is nil when both facts
// are exact and no rounding was applied.
type CompareFn func(a, b decimal.Decimal, decimals *int32) bool

// CompareRounded rounds both facts to the least accurate of their inferred
// decimals and applies cmp to the rounded values. Comparing raw reported
// values instead would treat 532,000,000@-6 and 532,300,000@-5 as unequal
// even though both express the same figure to the nearest million.
//
// The second return is false when either fact has no numeric value.
func CompareRounded(f1, f2 *Fact, cmp CompareFn) (bool, bool) {
	v1, ok := f1.NumericValue()
	if !ok {
		return false, false
	}
	v2, ok := f2.NumericValue()
	if !ok {
		return false, false
	}

	d1, exact1 := f1.InferredDecimals()
	d2, exact2 := f2.InferredDecimals()
	if exact1 && exact2 {
		return cmp(v1, v2, nil), true
	}

	d := d1
	switch {
	case exact1:
		d = d2
	case exact2:
		d = d1
	case d2 < d1:
		d = d2
	}
	return cmp(v1.RoundBank(d), v2.RoundBank(d), &d), true
}

// EqualWithinTolerance reports equality allowing a rounding slack of 2 at
// the scale of the rounded values, e.g. $2 million for values reported in
// millions. Exact values must match exactly.
func EqualWithinTolerance(a, b decimal.Decimal, decimals *int32) bool {
	if decimals == nil {
		return a.Equal(b)
	}
	return a.Sub(b).Abs().Cmp(decimal.New(2, -*decimals)) <= 0
}

// LessOrEqual reports a <= b on the rounded values.
func LessOrEqual(a, b decimal.Decimal, _ *int32) bool {
	return a.Cmp(b) <= 0
}
