package timeutil

import (
	"errors"
	"testing"
	"time"
)

func TestSameLocalDay(t *testing.T) {
	vancouver, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		name string
		a    string
		b    string
		loc  *time.Location
		want bool
	}{
		{
			name: "evening UTC instant is previous local day in Vancouver",
			a:    "2026-03-12T03:00:00Z",
			b:    "2026-03-11T20:00:00Z",
			loc:  vancouver,
			want: true,
		},
		{
			name: "same instants are different days in UTC",
			a:    "2026-03-12T03:00:00Z",
			b:    "2026-03-11T20:00:00Z",
			loc:  time.UTC,
			want: false,
		},
		{
			name: "identical instants",
			a:    "2026-03-12T03:00:00Z",
			b:    "2026-03-12T03:00:00Z",
			loc:  vancouver,
			want: true,
		},
		{
			name: "midnight boundary in local zone",
			a:    "2026-06-15T06:59:00Z",
			b:    "2026-06-15T07:00:00Z",
			loc:  vancouver,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := time.Parse(time.RFC3339, tt.a)
			b, _ := time.Parse(time.RFC3339, tt.b)

			if got := SameLocalDay(a, b, tt.loc); got != tt.want {
				t.Errorf("SameLocalDay(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := SameLocalDay(b, a, tt.loc); got != tt.want {
				t.Errorf("SameLocalDay is not symmetric for %v, %v", tt.a, tt.b)
			}
		})
	}
}

func TestLoadLocation(t *testing.T) {
	if loc, err := LoadLocation(""); err != nil || loc != time.UTC {
		t.Errorf("LoadLocation(\"\") = %v, %v, want UTC", loc, err)
	}
	if loc, err := LoadLocation("UTC"); err != nil || loc != time.UTC {
		t.Errorf("LoadLocation(\"UTC\") = %v, %v, want UTC", loc, err)
	}
	if _, err := LoadLocation("America/Vancouver"); err != nil {
		t.Errorf("LoadLocation(America/Vancouver): %v", err)
	}
	if _, err := LoadLocation("Mars/Olympus_Mons"); !errors.Is(err, ErrUnknownTimeZone) {
		t.Errorf("LoadLocation(Mars/Olympus_Mons) = %v, want ErrUnknownTimeZone", err)
	}
}

func TestParseDate(t *testing.T) {
	vancouver, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	t.Run("date only is local midnight", func(t *testing.T) {
		got, err := ParseDate("2026-03-11", vancouver)
		if err != nil {
			t.Fatalf("ParseDate: %v", err)
		}
		want := time.Date(2026, 3, 11, 0, 0, 0, 0, vancouver)
		if !got.Equal(want) {
			t.Errorf("ParseDate = %v, want %v", got, want)
		}
	})

	t.Run("instant is decomposed in the zone, not truncated", func(t *testing.T) {
		got, err := ParseDate("2026-03-12T03:00:00Z", vancouver)
		if err != nil {
			t.Fatalf("ParseDate: %v", err)
		}
		y, m, d := got.Date()
		if y != 2026 || m != time.March || d != 11 {
			t.Errorf("local date = %04d-%02d-%02d, want 2026-03-11", y, m, d)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		for _, s := range []string{"not-a-date", "2026-13-40", "2026/03/11", ""} {
			if _, err := ParseDate(s, vancouver); !errors.Is(err, ErrMalformedDate) {
				t.Errorf("ParseDate(%q) = %v, want ErrMalformedDate", s, err)
			}
		}
	})
}

func TestAtLocalTime(t *testing.T) {
	vancouver, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	clock := time.Date(2026, 1, 7, 19, 0, 0, 0, vancouver)

	// An instant that is already the next day in UTC keeps its Vancouver
	// calendar day and takes the 19:00 wall clock.
	day, _ := time.Parse(time.RFC3339, "2026-03-12T03:00:00Z")
	got := AtLocalTime(day, clock, vancouver)
	want := time.Date(2026, 3, 11, 19, 0, 0, 0, vancouver)
	if !got.Equal(want) {
		t.Errorf("AtLocalTime = %v, want %v", got, want)
	}
}

func TestStartOfDay(t *testing.T) {
	vancouver, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	instant, _ := time.Parse(time.RFC3339, "2026-03-12T03:00:00Z")
	got := StartOfDay(instant, vancouver)
	want := time.Date(2026, 3, 11, 0, 0, 0, 0, vancouver)
	if !got.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", got, want)
	}
}

func TestFormat(t *testing.T) {
	vancouver, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	instant, _ := time.Parse(time.RFC3339, "2026-03-12T03:00:00Z")
	if got := Format(instant, vancouver, "2006-01-02"); got != "2026-03-11" {
		t.Errorf("Format = %q, want %q", got, "2026-03-11")
	}
}
