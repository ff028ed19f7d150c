package types

import (
	"errors"
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	for _, valid := range []string{"daily", "weekly", "monthly"} {
		if _, err := ParsePeriod(valid); err != nil {
			t.Errorf("ParsePeriod(%q): %v", valid, err)
		}
	}

	_, err := ParsePeriod("hourly")
	if !errors.Is(err, ErrUnknownPeriod) {
		t.Fatalf("err = %v, want ErrUnknownPeriod", err)
	}
}

func TestWeekKey_MondayAnchor(t *testing.T) {
	// Wed Aug 26 2026 sits in the ISO week starting Mon Aug 24.
	key := WeekKey(time.Date(2026, 8, 26, 15, 30, 0, 0, time.Local))

	monday := key.Monday()
	if monday.Weekday() != time.Monday {
		t.Fatalf("Monday() = %v (%v)", monday, monday.Weekday())
	}
	if monday.Day() != 24 || monday.Month() != time.August {
		t.Fatalf("Monday() = %v, want Aug 24", monday)
	}
	if got := key.Label(); got != "Week of Aug 24" {
		t.Fatalf("Label() = %q", got)
	}
}

func TestWeekKey_YearBoundary(t *testing.T) {
	// Jan 1 2027 is a Friday inside ISO week 53 of 2026.
	key := WeekKey(time.Date(2027, 1, 1, 10, 0, 0, 0, time.Local))
	if key.Year != 2026 || key.Week != 53 {
		t.Fatalf("key = %+v, want ISO (2026, 53)", key)
	}
	if key.Monday().Day() != 28 || key.Monday().Month() != time.December {
		t.Fatalf("Monday() = %v, want Dec 28 2026", key.Monday())
	}
}

func TestPeriodKey_Order(t *testing.T) {
	tests := []struct {
		name string
		a, b PeriodKey
	}{
		{"days", DayKey(time.Date(2026, 8, 25, 0, 0, 0, 0, time.Local)), DayKey(time.Date(2026, 8, 26, 0, 0, 0, 0, time.Local))},
		{"weeks across years", PeriodKey{Kind: KindWeek, Year: 2026, Week: 53}, PeriodKey{Kind: KindWeek, Year: 2027, Week: 1}},
		{"months", MonthKey(time.Date(2026, 12, 1, 0, 0, 0, 0, time.Local)), MonthKey(time.Date(2027, 1, 1, 0, 0, 0, 0, time.Local))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.a.Less(tt.b) || tt.b.Less(tt.a) {
				t.Fatalf("expected %+v < %+v", tt.a, tt.b)
			}
		})
	}
}

func TestDayKey_TruncatesToMidnight(t *testing.T) {
	a := DayKey(time.Date(2026, 8, 26, 0, 1, 0, 0, time.Local))
	b := DayKey(time.Date(2026, 8, 26, 23, 59, 0, 0, time.Local))
	if a != b {
		t.Fatalf("same-day keys differ: %+v vs %+v", a, b)
	}
}
