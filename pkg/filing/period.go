//
//  Copyright © Manetu Inc. All rights reserved.
//

package filing

import "time"

// PeriodKind distinguishes instant from duration periods.
type PeriodKind int

// Period kinds.
const (
	PeriodKindInstant PeriodKind = iota
	PeriodKindDuration
)

// Period is the reporting period of a context. Dates are calendar dates as
// written in the filing, midnight UTC, with duration ends inclusive.
type Period struct {
	Kind  PeriodKind
	Start time.Time // zero for instants
	End   time.Time // the instant date for instants
}

// NewInstant builds an instant period.
func NewInstant(at time.Time) Period {
	return Period{Kind: PeriodKindInstant, End: at}
}

// NewDuration builds a duration period with an inclusive end date.
func NewDuration(start, end time.Time) Period {
	return Period{Kind: PeriodKindDuration, Start: start, End: end}
}

// DurationDays returns the inclusive number of days covered by a duration
// period, and 0 for instants. The inclusive count matches the exclusive
// midnight-of-next-day arithmetic of XBRL 2.1 period ends.
func (p Period) DurationDays() int {
	if p.Kind == PeriodKindInstant {
		return 0
	}
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// EndDate returns the end date of a duration or the instant date.
func (p Period) EndDate() time.Time {
	return p.End
}

// Equal reports semantic period equality.
func (p Period) Equal(o Period) bool {
	return p.Kind == o.Kind && p.Start.Equal(o.Start) && p.End.Equal(o.End)
}

// FormatDate renders a date in ISO form.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// String renders the period: "start - end" for durations, the date for
// instants.
func (p Period) String() string {
	if p.Kind == PeriodKindInstant {
		return FormatDate(p.End)
	}
	return FormatDate(p.Start) + " - " + FormatDate(p.End)
}
