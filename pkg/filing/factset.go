//
//  Copyright © Manetu Inc. All rights reserved.
//

package filing

// FactSet is the queryable index over a filing's facts. Document order is
// preserved everywhere; queries are read-only and unmatched queries return
// empty results, never errors.
type FactSet struct {
	facts     []*Fact
	byConcept map[QName][]*Fact
}

// NewFactSet indexes facts in document order.
func NewFactSet(facts []*Fact) *FactSet {
	s := &FactSet{
		facts:     facts,
		byConcept: make(map[QName][]*Fact),
	}
	for _, f := range facts {
		key := f.QName().Key()
		s.byConcept[key] = append(s.byConcept[key], f)
	}
	return s
}

// Len returns the number of indexed facts.
func (s *FactSet) Len() int {
	return len(s.facts)
}

// All returns every fact in document order. Callers must not mutate the
// returned slice.
func (s *FactSet) All() []*Fact {
	return s.facts
}

// ByConcept returns the facts reported for a concept, in document order.
func (s *FactSet) ByConcept(q QName) []*Fact {
	return s.byConcept[q.Key()]
}

// Filter returns the facts matching the optional concept and context
// constraints. Context matching is semantic (period plus dimensional
// qualifiers), never by identifier. Nil facts are excluded when skipNil is
// set.
func (s *FactSet) Filter(q *QName, ctx *Context, skipNil bool) []*Fact {
	source := s.facts
	if q != nil {
		source = s.byConcept[q.Key()]
	}
	var out []*Fact
	for _, f := range source {
		if skipNil && f.Nil {
			continue
		}
		if ctx != nil && !f.Context.Equal(ctx) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// FilterFunc returns the facts satisfying pred, in document order.
func (s *FactSet) FilterFunc(pred func(*Fact) bool) []*Fact {
	var out []*Fact
	for _, f := range s.facts {
		if pred(f) {
			out = append(out, f)
		}
	}
	return out
}

// Slice returns the facts in the half-open range [start, end). Negative
// indices count from the end and out-of-range bounds clamp, so the
// semantics match generic ordered-sequence slicing. The result shares the
// underlying storage; nothing is copied.
func (s *FactSet) Slice(start, end int) []*Fact {
	n := len(s.facts)
	if start < 0 {
		start += n
	}
	if end < 0 {
		end += n
	}
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return nil
	}
	return s.facts[start:end]
}

// DimensionalFacts returns the facts whose context carries the given axis,
// optionally narrowed to a single member.
func (s *FactSet) DimensionalFacts(axis QName, member *QName) []*Fact {
	return s.FilterFunc(func(f *Fact) bool {
		dv := f.Context.DimensionValue(axis)
		if dv == nil {
			return false
		}
		if member == nil {
			return true
		}
		return dv.Member != nil && dv.Member.Name.Equal(*member)
	})
}

// HasDimensionalFacts reports whether any fact uses the axis/member
// pairing. Rules use the false case ("nofact") to flag pairings that exist
// only as definition-linkbase declarations.
func (s *FactSet) HasDimensionalFacts(axis QName, member QName) bool {
	return len(s.DimensionalFacts(axis, &member)) > 0
}
