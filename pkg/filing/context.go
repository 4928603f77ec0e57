//
//  Copyright © Manetu Inc. All rights reserved.
//

package filing

import "strings"

// DimensionValue is one (axis, member) qualifier of a context. Exactly one
// of Member and Typed is set: explicit dimensions reference a member
// concept, typed dimensions carry an opaque lexical value.
type DimensionValue struct {
	Axis   *Concept
	Member *Concept
	Typed  string
}

// Equal reports whether two qualifiers bind the same axis to the same
// member or typed value.
func (d DimensionValue) Equal(o DimensionValue) bool {
	if !d.Axis.Name.Equal(o.Axis.Name) {
		return false
	}
	if (d.Member == nil) != (o.Member == nil) {
		return false
	}
	if d.Member != nil {
		return d.Member.Name.Equal(o.Member.Name)
	}
	return d.Typed == o.Typed
}

// String renders the qualifier as "axis = member".
func (d DimensionValue) String() string {
	if d.Member != nil {
		return d.Axis.Name.Prefixed() + " = " + d.Member.Name.Prefixed()
	}
	return d.Axis.Name.Prefixed() + " = " + d.Typed
}

// Context is the (period, dimensional qualifiers) under which facts are
// reported. The identifier exists only to wire facts to contexts in the
// source document; context equality is semantic.
type Context struct {
	ID         string
	Entity     string
	Period     Period
	Dimensions []DimensionValue
}

// Equal reports semantic context equality: equal periods and equal
// dimensional qualifier sets. Identifiers are not significant.
func (c *Context) Equal(o *Context) bool {
	if c == o {
		return true
	}
	if c == nil || o == nil {
		return false
	}
	if !c.Period.Equal(o.Period) {
		return false
	}
	if len(c.Dimensions) != len(o.Dimensions) {
		return false
	}
	for _, d := range c.Dimensions {
		od := o.DimensionValue(d.Axis.Name)
		if od == nil || !d.Equal(*od) {
			return false
		}
	}
	return true
}

// DimensionValue returns the qualifier for the given axis, or nil if the
// context does not carry it.
func (c *Context) DimensionValue(axis QName) *DimensionValue {
	for i := range c.Dimensions {
		if c.Dimensions[i].Axis.Name.Equal(axis) {
			return &c.Dimensions[i]
		}
	}
	return nil
}

// HasDimensions reports whether the context carries any qualifiers.
func (c *Context) HasDimensions() bool {
	return len(c.Dimensions) > 0
}

// DimensionsString renders the qualifier list, or "none".
func (c *Context) DimensionsString() string {
	if len(c.Dimensions) == 0 {
		return "none"
	}
	parts := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		parts[i] = d.String()
	}
	return strings.Join(parts, ", ")
}
