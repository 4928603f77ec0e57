//
//  Copyright © Manetu Inc. All rights reserved.
//

package filing

import "github.com/pkg/errors"

// Filing is a loaded instance document: its taxonomy set, contexts and
// indexed facts. All members are read-only after load.
type Filing struct {
	DTS      *DTS
	Contexts map[string]*Context
	Facts    *FactSet
}

// CheckInvariants verifies the structural invariants the rule engine
// relies on: every fact's context belongs to the filing's context set and
// every referenced concept is defined by the loaded taxonomy.
func (f *Filing) CheckInvariants() error {
	if f.DTS == nil {
		return errors.New("filing has no taxonomy set")
	}
	for _, fact := range f.Facts.All() {
		if fact.Concept == nil || f.DTS.ResolveConcept(fact.QName()) == nil {
			return errors.Errorf("fact references concept %s not defined by the taxonomy", fact.QName())
		}
		if fact.Context == nil {
			return errors.Errorf("fact %s has no context", fact.QName())
		}
		if _, ok := f.Contexts[fact.Context.ID]; !ok {
			return errors.Errorf("fact %s references unknown context %q", fact.QName(), fact.Context.ID)
		}
	}
	return nil
}
