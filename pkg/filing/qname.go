//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package filing provides the read-only semantic fact model for a loaded
// XBRL filing: concepts, contexts, periods, dimensional qualifiers, facts,
// taxonomy relationship networks, and the indexed fact set the rule engine
// queries.
//
// The package never parses raw XBRL. Instances are produced by an external
// processor (or by the interchange loader in the parsers subpackage) and
// are immutable once loaded, so they can be shared across concurrently
// evaluating rules without locking.
package filing

import "fmt"

// QName identifies a taxonomy element by namespace URI and local name.
// Prefix is carried for display only and is never significant for equality.
type QName struct {
	Namespace string
	Local     string
	Prefix    string
}

// NewQName constructs a QName without a display prefix.
func NewQName(namespace, local string) QName {
	return QName{Namespace: namespace, Local: local}
}

// Key returns the identity of the QName: namespace plus local name,
// ignoring the display prefix.
func (q QName) Key() QName {
	return QName{Namespace: q.Namespace, Local: q.Local}
}

// Equal reports whether two QNames identify the same element.
func (q QName) Equal(o QName) bool {
	return q.Namespace == o.Namespace && q.Local == o.Local
}

// Prefixed returns the name formatted as [prefix:]local.
func (q QName) Prefixed() string {
	if q.Prefix != "" {
		return q.Prefix + ":" + q.Local
	}
	return q.Local
}

// String returns the expanded name in Clark notation.
func (q QName) String() string {
	return fmt.Sprintf("{%s}%s", q.Namespace, q.Local)
}
