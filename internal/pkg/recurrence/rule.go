// Package recurrence evaluates recurrence rules into concrete occurrence
// instants. It has no I/O and no state: the same rule, anchor and timezone
// always produce the same sequence.
package recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

type Frequency int

const (
	Daily Frequency = iota
	Weekly
	Monthly
	Yearly
)

func (f Frequency) String() string {
	switch f {
	case Daily:
		return "DAILY"
	case Weekly:
		return "WEEKLY"
	case Monthly:
		return "MONTHLY"
	case Yearly:
		return "YEARLY"
	default:
		return fmt.Sprintf("Frequency(%d)", int(f))
	}
}

// Rule is a closed recurrence description: one mandatory frequency plus a
// fixed set of optional constraints, validated eagerly via Validate, never ad
// hoc at evaluation time.
type Rule struct {
	Freq     Frequency
	Interval int // 0 is treated as 1
	Count    *int
	Until    *time.Time
	// ByWeekday restricts occurrences to the given weekdays.
	ByWeekday []time.Weekday
	// ByMonthDay restricts to days of the month, 1..31 or negative counted
	// from the end of the month.
	ByMonthDay []int
	ByMonth    []time.Month
	// BySetPos selects positions within one period's candidate set, e.g.
	// {2} with ByWeekday {Wednesday} is "the 2nd Wednesday". Requires
	// ByWeekday or ByMonthDay.
	BySetPos []int
}

// Validate checks every field range. A rule that passes never fails later in
// the evaluator.
func (r Rule) Validate() error {
	if r.Freq < Daily || r.Freq > Yearly {
		return fmt.Errorf("unknown frequency %v", int(r.Freq))
	}
	if r.Interval < 0 {
		return fmt.Errorf("interval must be positive, got %v", r.Interval)
	}
	if r.Count != nil && *r.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %v", *r.Count)
	}
	for _, d := range r.ByWeekday {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("invalid weekday %v", int(d))
		}
	}
	for _, d := range r.ByMonthDay {
		if d == 0 || d < -31 || d > 31 {
			return fmt.Errorf("invalid month day %v", d)
		}
	}
	for _, m := range r.ByMonth {
		if m < time.January || m > time.December {
			return fmt.Errorf("invalid month %v", int(m))
		}
	}
	if len(r.BySetPos) != 0 && len(r.ByWeekday) == 0 && len(r.ByMonthDay) == 0 {
		return fmt.Errorf("bysetpos requires byweekday or bymonthday")
	}
	for _, p := range r.BySetPos {
		if p == 0 {
			return fmt.Errorf("bysetpos values must be nonzero")
		}
	}

	return nil
}

func (r Rule) interval() int {
	if r.Interval < 1 {
		return 1
	}
	return r.Interval
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

var rruleFrequencies = map[Frequency]rrule.Frequency{
	Daily:   rrule.DAILY,
	Weekly:  rrule.WEEKLY,
	Monthly: rrule.MONTHLY,
	Yearly:  rrule.YEARLY,
}

// rOption translates the rule for the rrule library. The anchor is converted
// into loc first: all stepping then happens on local wall-clock calendar
// units, and every produced instant carries the zone offset of its own date.
func (r Rule) rOption(anchor time.Time, loc *time.Location) rrule.ROption {
	opt := rrule.ROption{
		Freq:     rruleFrequencies[r.Freq],
		Interval: r.interval(),
		Dtstart:  anchor.In(loc),
		Wkst:     rrule.MO,
	}

	if r.Count != nil {
		opt.Count = *r.Count
	}
	if r.Until != nil {
		opt.Until = r.Until.In(loc)
	}
	for _, d := range r.ByWeekday {
		opt.Byweekday = append(opt.Byweekday, rruleWeekdays[d])
	}
	opt.Bymonthday = append(opt.Bymonthday, r.ByMonthDay...)
	for _, m := range r.ByMonth {
		opt.Bymonth = append(opt.Bymonth, int(m))
	}
	opt.Bysetpos = append(opt.Bysetpos, r.BySetPos...)

	return opt
}

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Monday",
	time.Tuesday:   "Tuesday",
	time.Wednesday: "Wednesday",
	time.Thursday:  "Thursday",
	time.Friday:    "Friday",
	time.Saturday:  "Saturday",
	time.Sunday:    "Sunday",
}

var frequencyUnits = map[Frequency]string{
	Daily:   "day",
	Weekly:  "week",
	Monthly: "month",
	Yearly:  "year",
}

// Describe renders the rule as human-readable text, e.g.
// "every 2 weeks on Monday, Wednesday until Jan 2, 2026".
func (r Rule) Describe() string {
	var b strings.Builder

	unit := frequencyUnits[r.Freq]
	if r.interval() == 1 {
		fmt.Fprintf(&b, "every %s", unit)
	} else {
		fmt.Fprintf(&b, "every %d %ss", r.interval(), unit)
	}

	if len(r.ByWeekday) != 0 {
		names := make([]string, len(r.ByWeekday))
		for i, d := range r.ByWeekday {
			names[i] = weekdayNames[d]
		}
		if len(r.BySetPos) != 0 {
			fmt.Fprintf(&b, " on the %s %s", ordinals(r.BySetPos), strings.Join(names, ", "))
		} else {
			fmt.Fprintf(&b, " on %s", strings.Join(names, ", "))
		}
	}

	if len(r.ByMonthDay) != 0 {
		days := make([]string, len(r.ByMonthDay))
		for i, d := range r.ByMonthDay {
			if d < 0 {
				days[i] = fmt.Sprintf("%s-to-last day", ordinal(-d))
			} else {
				days[i] = fmt.Sprintf("day %d", d)
			}
		}
		fmt.Fprintf(&b, " on the %s", strings.Join(days, ", "))
	}

	if len(r.ByMonth) != 0 {
		months := make([]string, len(r.ByMonth))
		for i, m := range r.ByMonth {
			months[i] = m.String()
		}
		fmt.Fprintf(&b, " in %s", strings.Join(months, ", "))
	}

	if r.Count != nil {
		fmt.Fprintf(&b, ", %d times", *r.Count)
	}
	if r.Until != nil {
		fmt.Fprintf(&b, " until %s", r.Until.Format("Jan 2, 2006"))
	}

	return b.String()
}

func ordinals(positions []int) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		if p == -1 {
			parts[i] = "last"
		} else if p < 0 {
			parts[i] = fmt.Sprintf("%s-to-last", ordinal(-p))
		} else {
			parts[i] = ordinal(p)
		}
	}
	return strings.Join(parts, ", ")
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
