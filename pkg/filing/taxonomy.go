//
//  Copyright © Manetu Inc. All rights reserved.
//

package filing

import (
	"regexp"

	"github.com/xbrldq/dqengine/pkg/common"
)

// Schema is one taxonomy schema of the DTS, identified by its target
// namespace URI.
type Schema struct {
	TargetNamespace string
}

// NetworkKind selects a linkbase family.
type NetworkKind string

// Linkbase families.
const (
	CalculationNetwork  NetworkKind = "calculation"
	PresentationNetwork NetworkKind = "presentation"
	DefinitionNetwork   NetworkKind = "definition"
)

// DimensionDomain is a definition-linkbase declaration that a member is a
// valid value for an axis within a role, independent of whether any fact
// uses the pairing.
type DimensionDomain struct {
	Axis   *Concept
	Member *Concept
	Role   string
}

// DTS is the discoverable taxonomy set of a filing: its schemas, concepts,
// linkbase networks and dimensional declarations. Loaded once per filing
// and read-only afterwards.
type DTS struct {
	schemas  []Schema
	concepts map[QName]*Concept

	networks  map[NetworkKind]map[string]*Network
	roleOrder map[NetworkKind][]string

	dimensionDefaults map[QName]*Concept
	dimensionDomains  []DimensionDomain
}

// NewDTS creates an empty taxonomy set.
func NewDTS() *DTS {
	return &DTS{
		concepts:          make(map[QName]*Concept),
		networks:          make(map[NetworkKind]map[string]*Network),
		roleOrder:         make(map[NetworkKind][]string),
		dimensionDefaults: make(map[QName]*Concept),
	}
}

// AddSchema appends a taxonomy schema. Enumeration order is preserved for
// namespace resolution.
func (d *DTS) AddSchema(s Schema) {
	d.schemas = append(d.schemas, s)
}

// Schemas returns the taxonomy schemas in enumeration order.
func (d *DTS) Schemas() []Schema {
	return d.schemas
}

// AddConcept registers a concept under its qualified name.
func (d *DTS) AddConcept(c *Concept) {
	d.concepts[c.Name.Key()] = c
}

// ResolveConcept looks up a concept by qualified name, returning nil when
// the taxonomy does not define it.
func (d *DTS) ResolveConcept(q QName) *Concept {
	return d.concepts[q.Key()]
}

// Concepts returns the concept map keyed by qualified name.
func (d *DTS) Concepts() map[QName]*Concept {
	return d.concepts
}

// AddNetwork registers a linkbase network under its role.
func (d *DTS) AddNetwork(kind NetworkKind, n *Network) {
	if d.networks[kind] == nil {
		d.networks[kind] = make(map[string]*Network)
	}
	if _, dup := d.networks[kind][n.Role]; !dup {
		d.roleOrder[kind] = append(d.roleOrder[kind], n.Role)
	}
	d.networks[kind][n.Role] = n
}

// Roles returns the registered roles for a linkbase family in registration
// order.
func (d *DTS) Roles(kind NetworkKind) []string {
	return d.roleOrder[kind]
}

// Network returns the network for a role, or nil.
func (d *DTS) Network(kind NetworkKind, role string) *Network {
	return d.networks[kind][role]
}

// SetDimensionDefault records the declared default member of an axis.
func (d *DTS) SetDimensionDefault(axis QName, member *Concept) {
	d.dimensionDefaults[axis.Key()] = member
}

// DefaultMember returns the declared default member of an axis, or nil.
func (d *DTS) DefaultMember(axis QName) *Concept {
	return d.dimensionDefaults[axis.Key()]
}

// AddDimensionDomain records a declared axis/member pairing.
func (d *DTS) AddDimensionDomain(dom DimensionDomain) {
	d.dimensionDomains = append(d.dimensionDomains, dom)
}

// DimensionDomains returns all declared axis/member pairings in
// declaration order.
func (d *DTS) DimensionDomains() []DimensionDomain {
	return d.dimensionDomains
}

// ResolveNamespace scans the taxonomy schemas once and returns the first
// target namespace matching the pattern, in enumeration order. Taxonomy
// families republish a new namespace URI every release cycle, so rules
// address them by pattern rather than by literal URI.
//
// Returns a NamespaceNotFound error when no schema matches; rules
// depending on that namespace family are inconclusive, not broken.
func (d *DTS) ResolveNamespace(pattern *regexp.Regexp) (string, error) {
	for _, s := range d.schemas {
		if s.TargetNamespace != "" && pattern.MatchString(s.TargetNamespace) {
			return s.TargetNamespace, nil
		}
	}
	return "", common.NewError(common.NamespaceNotFound,
		"no taxonomy schema matches %q", pattern.String())
}
