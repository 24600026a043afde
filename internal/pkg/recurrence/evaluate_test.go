package recurrence

import (
	"testing"
	"time"
)

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %q: %v", name, err)
	}
	return loc
}

func intPtr(n int) *int { return &n }

func TestGenerateAscendingNoDuplicates(t *testing.T) {
	loc := mustLocation(t, "America/Vancouver")
	anchor := time.Date(2026, 1, 5, 10, 0, 0, 0, loc)

	tests := []struct {
		name string
		rule Rule
	}{
		{"daily", Rule{Freq: Daily}},
		{"every 3 days", Rule{Freq: Daily, Interval: 3}},
		{"weekly two days", Rule{Freq: Weekly, ByWeekday: []time.Weekday{time.Monday, time.Thursday}}},
		{"monthly 2nd wednesday", Rule{Freq: Monthly, ByWeekday: []time.Weekday{time.Wednesday}, BySetPos: []int{2}}},
		{"monthly last day", Rule{Freq: Monthly, ByMonthDay: []int{-1}}},
		{"yearly in march", Rule{Freq: Yearly, ByMonth: []time.Month{time.March}, ByMonthDay: []int{15}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates, err := tt.rule.Generate(anchor, Options{Location: loc, Count: 20})
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if len(dates) == 0 {
				t.Fatal("Generate returned no dates")
			}
			for i := 1; i < len(dates); i++ {
				if !dates[i].After(dates[i-1]) {
					t.Errorf("dates[%d] = %v is not after dates[%d] = %v", i, dates[i], i-1, dates[i-1])
				}
			}
		})
	}
}

func TestGenerateRoundTripsWithIsValidOccurrence(t *testing.T) {
	loc := mustLocation(t, "America/Vancouver")
	anchor := time.Date(2026, 1, 7, 19, 0, 0, 0, loc)
	rule := Rule{Freq: Weekly, ByWeekday: []time.Weekday{time.Wednesday}}

	dates, err := rule.Generate(anchor, Options{Location: loc, Count: 10})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, d := range dates {
		ok, err := rule.IsValidOccurrence(d, anchor, loc, nil)
		if err != nil {
			t.Fatalf("IsValidOccurrence(%v): %v", d, err)
		}
		if !ok {
			t.Errorf("generated date %v not reported valid", d)
		}
	}

	for _, d := range []time.Time{
		anchor.AddDate(0, 0, 1),  // thursday
		anchor.AddDate(0, 0, -7), // before the anchor
		anchor.AddDate(0, 0, 3),
	} {
		ok, err := rule.IsValidOccurrence(d, anchor, loc, nil)
		if err != nil {
			t.Fatalf("IsValidOccurrence(%v): %v", d, err)
		}
		if ok {
			t.Errorf("date %v reported valid, want invalid", d)
		}
	}
}

func TestGenerateRespectsRuleCount(t *testing.T) {
	rule := Rule{Freq: Daily, Count: intPtr(3)}
	anchor := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	dates, err := rule.Generate(anchor, Options{Count: 10})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(dates) != 3 {
		t.Errorf("got %d dates, want 3 (rule count caps the request)", len(dates))
	}
}

func TestGenerateRespectsUntil(t *testing.T) {
	anchor := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	until := anchor.AddDate(0, 0, 4)
	rule := Rule{Freq: Daily, Until: &until}

	dates, err := rule.Generate(anchor, Options{Count: 100})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Until is inclusive: anchor plus four following days.
	if len(dates) != 5 {
		t.Fatalf("got %d dates, want 5", len(dates))
	}
	if !dates[len(dates)-1].Equal(until) {
		t.Errorf("last date = %v, want %v", dates[len(dates)-1], until)
	}
}

func TestGenerateStartAfterIsStrict(t *testing.T) {
	anchor := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	rule := Rule{Freq: Daily}

	startAfter := anchor.AddDate(0, 0, 2)
	dates, err := rule.Generate(anchor, Options{Count: 3, StartAfter: &startAfter})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := anchor.AddDate(0, 0, 3)
	if len(dates) == 0 || !dates[0].Equal(want) {
		t.Errorf("first date = %v, want %v (strictly after startAfter)", dates[0], want)
	}
}

func TestGenerateKeepsLocalWallClockAcrossDST(t *testing.T) {
	loc := mustLocation(t, "America/Vancouver")
	// Anchored the Wednesday before the 2026-03-08 spring-forward.
	anchor := time.Date(2026, 3, 4, 19, 0, 0, 0, loc)
	rule := Rule{Freq: Weekly}

	dates, err := rule.Generate(anchor, Options{Location: loc, Count: 4})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(dates) != 4 {
		t.Fatalf("got %d dates, want 4", len(dates))
	}

	for _, d := range dates {
		local := d.In(loc)
		if local.Hour() != 19 || local.Minute() != 0 {
			t.Errorf("occurrence %v is at local %02d:%02d, want 19:00", d, local.Hour(), local.Minute())
		}
		if local.Weekday() != time.Wednesday {
			t.Errorf("occurrence %v is on %v, want Wednesday", d, local.Weekday())
		}
	}

	// The UTC offset must differ across the transition: same wall clock,
	// different instant arithmetic.
	_, beforeOffset := dates[0].In(loc).Zone()
	_, afterOffset := dates[1].In(loc).Zone()
	if beforeOffset == afterOffset {
		t.Errorf("offset did not change across DST transition: %d == %d", beforeOffset, afterOffset)
	}
}

func TestGenerateSecondWednesday(t *testing.T) {
	loc := mustLocation(t, "America/Vancouver")
	anchor := time.Date(2026, 1, 1, 18, 30, 0, 0, loc)
	rule := Rule{Freq: Monthly, ByWeekday: []time.Weekday{time.Wednesday}, BySetPos: []int{2}}

	dates, err := rule.Generate(anchor, Options{Location: loc, Count: 3})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := []time.Time{
		time.Date(2026, 1, 14, 18, 30, 0, 0, loc),
		time.Date(2026, 2, 11, 18, 30, 0, 0, loc),
		time.Date(2026, 3, 11, 18, 30, 0, 0, loc),
	}
	if len(dates) != len(want) {
		t.Fatalf("got %d dates, want %d", len(dates), len(want))
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Errorf("dates[%d] = %v, want %v", i, dates[i], want[i])
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	loc := mustLocation(t, "America/Vancouver")
	anchor := time.Date(2026, 1, 5, 10, 0, 0, 0, loc)
	rule := Rule{Freq: Weekly, ByWeekday: []time.Weekday{time.Monday, time.Friday}, Interval: 2}

	first, err := rule.Generate(anchor, Options{Location: loc, Count: 15})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := rule.Generate(anchor, Options{Location: loc, Count: 15})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Errorf("run mismatch at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestIsValidOccurrenceNormalizesToTemplateTime(t *testing.T) {
	loc := mustLocation(t, "America/Vancouver")
	// Weekly Wednesday series at 19:00 local.
	anchor := time.Date(2026, 3, 4, 19, 0, 0, 0, loc)
	rule := Rule{Freq: Weekly}

	// 2026-03-12T03:00:00Z is already March 12 in UTC but still the evening
	// of Wednesday March 11 in Vancouver.
	candidate, _ := time.Parse(time.RFC3339, "2026-03-12T03:00:00Z")

	ok, err := rule.IsValidOccurrence(candidate, anchor, loc, &anchor)
	if err != nil {
		t.Fatalf("IsValidOccurrence: %v", err)
	}
	if !ok {
		t.Error("candidate on local Wednesday reported invalid")
	}

	// The UTC calendar date of the same instant, taken as a local Vancouver
	// day, is March 12: a Thursday, not an occurrence.
	thursday := time.Date(2026, 3, 12, 0, 0, 0, 0, loc)
	ok, err = rule.IsValidOccurrence(thursday, anchor, loc, &anchor)
	if err != nil {
		t.Fatalf("IsValidOccurrence: %v", err)
	}
	if ok {
		t.Error("local Thursday reported valid for a Wednesday series")
	}
}
