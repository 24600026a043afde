package model

import "time"

// Occurrence is a computed projection, not a stored entity: one scheduled
// instance of a series, either still virtual (Event == nil) or backed by a
// materialized event record whose start falls on the same local calendar day.
type Occurrence struct {
	Date         time.Time
	Materialized bool
	Event        *Event
}

// AnchorSource records which instant the occurrence generation was anchored
// on. AnchorSeriesCreated is the degraded fallback taken when the template
// event cannot be resolved; callers can tell the two apart.
type AnchorSource int

const (
	AnchorTemplateEvent AnchorSource = iota
	AnchorSeriesCreated
)

func (s AnchorSource) String() string {
	if s == AnchorSeriesCreated {
		return "series_created_at"
	}
	return "template_event"
}

// OccurrenceList is the result of an upcoming-occurrences query.
type OccurrenceList struct {
	Occurrences  []*Occurrence
	AnchorSource AnchorSource
}
