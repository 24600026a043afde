package recurrence

import (
	"fmt"
	"time"

	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/timeutil"
	"github.com/teambition/rrule-go"
)

// maxExpansion bounds a single expansion so an unbounded rule can never spin
// the iterator forever.
const maxExpansion = 10000

// Options bounds one Generate call.
type Options struct {
	// Location the rule is evaluated in; nil means UTC.
	Location *time.Location
	// Count caps the number of produced occurrences. Zero means no caller
	// cap; the rule's own Count and Until still apply, as does maxExpansion.
	Count int
	// StartAfter drops every occurrence at or before this instant.
	StartAfter *time.Time
}

// Generate expands the rule from anchor into an ascending, duplicate-free
// sequence of instants. Candidates are stepped on the local calendar of
// opts.Location and converted to absolute instants per candidate, so a rule
// anchored before a daylight-saving transition keeps its local wall-clock
// time after it.
func (r Rule) Generate(anchor time.Time, opts Options) ([]time.Time, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	iter, err := r.iterator(anchor, loc)
	if err != nil {
		return nil, err
	}

	var res []time.Time
	for i := 0; i < maxExpansion; i++ {
		t, ok := iter()
		if !ok {
			break
		}
		if opts.StartAfter != nil && !t.After(*opts.StartAfter) {
			continue
		}

		res = append(res, t)
		if opts.Count > 0 && len(res) == opts.Count {
			break
		}
	}

	return res, nil
}

// IsValidOccurrence reports whether candidate falls on the local calendar day
// of some occurrence of the rule. When templateTime is non-nil the candidate
// is first pinned to that wall-clock time-of-day in loc, because the rule is
// defined in local time, not in the candidate's UTC clock reading.
func (r Rule) IsValidOccurrence(candidate, anchor time.Time, loc *time.Location, templateTime *time.Time) (bool, error) {
	if loc == nil {
		loc = time.UTC
	}

	cand := candidate
	if templateTime != nil {
		cand = timeutil.AtLocalTime(candidate, *templateTime, loc)
	}

	candDay := timeutil.StartOfDay(cand, loc)
	if candDay.Before(timeutil.StartOfDay(anchor, loc)) {
		return false, nil
	}

	iter, err := r.iterator(anchor, loc)
	if err != nil {
		return false, err
	}

	for i := 0; i < maxExpansion; i++ {
		t, ok := iter()
		if !ok {
			break
		}
		if timeutil.SameLocalDay(t, cand, loc) {
			return true, nil
		}
		if timeutil.StartOfDay(t, loc).After(candDay) {
			break
		}
	}

	return false, nil
}

func (r Rule) iterator(anchor time.Time, loc *time.Location) (func() (time.Time, bool), error) {
	rr, err := rrule.NewRRule(r.rOption(anchor, loc))
	if err != nil {
		return nil, fmt.Errorf("building rule: %w", err)
	}

	return rr.Iterator(), nil
}
