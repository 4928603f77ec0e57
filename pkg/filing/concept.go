//
//  Copyright © Manetu Inc. All rights reserved.
//

package filing

// BalanceType is a concept's accounting balance attribute.
type BalanceType string

// Balance attribute values.
const (
	BalanceDebit  BalanceType = "debit"
	BalanceCredit BalanceType = "credit"
	BalanceNone   BalanceType = "none"
)

// PeriodType is a concept's period attribute.
type PeriodType string

// Period attribute values.
const (
	PeriodDuration PeriodType = "duration"
	PeriodInstant  PeriodType = "instant"
)

// Concept is a taxonomy-defined reporting element. Concepts are owned by
// the DTS and immutable after load.
type Concept struct {
	Name    QName
	Label   string
	Balance BalanceType
	Period  PeriodType

	// Numeric is true for concepts whose item type is numeric.
	Numeric bool

	// Abstract concepts structure presentation trees and never carry facts.
	Abstract bool

	// Dimension is true for explicit dimension (axis) concepts.
	Dimension bool

	// Deprecated marks elements retired from the base taxonomy. The
	// guidance label names the replacement, when one exists.
	Deprecated          bool
	DeprecationGuidance string
}

// DisplayLabel returns the concept's standard English label, falling back
// to the prefixed name when the taxonomy defines none.
func (c *Concept) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name.Prefixed()
}
