//
//  Copyright © Manetu Inc. All rights reserved.
//

package filing

// Relationship is one directed edge of a linkbase network. Weight is only
// meaningful on calculation edges.
type Relationship struct {
	Source *Concept
	Target *Concept
	Weight float64
	Order  float64
}

// Network is the per-role directed graph formed by a linkbase's edges.
// Cycle-freedom is only guaranteed within a single role; the same concept
// may appear in several roles with different parents.
type Network struct {
	Role string

	rels []*Relationship
	from map[QName][]*Relationship
	into map[QName]int
}

// NewNetwork builds a network from edges in document order.
func NewNetwork(role string, rels []*Relationship) *Network {
	n := &Network{
		Role: role,
		rels: rels,
		from: make(map[QName][]*Relationship),
		into: make(map[QName]int),
	}
	for _, r := range rels {
		key := r.Source.Name.Key()
		n.from[key] = append(n.from[key], r)
		n.into[r.Target.Name.Key()]++
	}
	return n
}

// Relationships returns all edges in document order.
func (n *Network) Relationships() []*Relationship {
	return n.rels
}

// From returns the outgoing edges of a concept in document order.
func (n *Network) From(c *Concept) []*Relationship {
	return n.from[c.Name.Key()]
}

// Roots returns the concepts that appear as sources but never as targets,
// in first-appearance order.
func (n *Network) Roots() []*Concept {
	var roots []*Concept
	seen := make(map[QName]bool)
	for _, r := range n.rels {
		key := r.Source.Name.Key()
		if n.into[key] == 0 && !seen[key] {
			seen[key] = true
			roots = append(roots, r.Source)
		}
	}
	return roots
}

// Walk visits every relationship in the subtree under c, depth first in
// document order.
func (n *Network) Walk(c *Concept, visit func(*Relationship)) {
	for _, rel := range n.From(c) {
		visit(rel)
		n.Walk(rel.Target, visit)
	}
}

// Subtree returns all relationships reachable from c.
func (n *Network) Subtree(c *Concept) []*Relationship {
	var out []*Relationship
	n.Walk(c, func(r *Relationship) { out = append(out, r) })
	return out
}
