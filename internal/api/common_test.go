package api

import (
	"reflect"
	"testing"
	"time"

	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/recurrence"
)

func TestMapToRule(t *testing.T) {
	count := 5
	req := &ruleReq{
		Frequency: "Monthly",
		Interval:  2,
		Count:     &count,
		ByWeekday: []string{"Wednesday", "friday"},
		BySetPos:  []int{2},
		ByMonth:   []int{1, 6},
	}

	rule, err := mapToRule(req)
	if err != nil {
		t.Fatalf("mapToRule: %v", err)
	}

	want := recurrence.Rule{
		Freq:      recurrence.Monthly,
		Interval:  2,
		Count:     &count,
		ByWeekday: []time.Weekday{time.Wednesday, time.Friday},
		BySetPos:  []int{2},
		ByMonth:   []time.Month{time.January, time.June},
	}
	if !reflect.DeepEqual(rule, want) {
		t.Errorf("mapToRule = %+v, want %+v", rule, want)
	}
}

func TestMapToRuleRejectsUnknownNames(t *testing.T) {
	if _, err := mapToRule(&ruleReq{Frequency: "fortnightly"}); err == nil {
		t.Error("unknown frequency accepted")
	}
	if _, err := mapToRule(&ruleReq{Frequency: "weekly", ByWeekday: []string{"someday"}}); err == nil {
		t.Error("unknown weekday accepted")
	}
}

func TestMapFromRuleRoundTrip(t *testing.T) {
	until := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	rule := recurrence.Rule{
		Freq:      recurrence.Weekly,
		Interval:  3,
		Until:     &until,
		ByWeekday: []time.Weekday{time.Monday, time.Thursday},
	}

	back, err := mapToRule(mapFromRule(rule))
	if err != nil {
		t.Fatalf("mapToRule: %v", err)
	}
	if !reflect.DeepEqual(back, rule) {
		t.Errorf("round trip changed the rule: %+v != %+v", back, rule)
	}
}
