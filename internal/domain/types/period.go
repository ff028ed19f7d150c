package types

import (
	"fmt"
	"time"
)

// Period is the aggregation granularity for steadiness analysis.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod validates a period string. An unrecognized value is a caller
// bug and is reported as ErrUnknownPeriod, never silently defaulted.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return Period(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
}

// PeriodKind tags which variant of PeriodKey is populated.
type PeriodKind int

const (
	KindDay PeriodKind = iota
	KindWeek
	KindMonth
)

// PeriodKey identifies one calendar bucket. Exactly one variant is set
// depending on Kind: (Year, Month, Day) for days, ISO (Year, Week) for weeks,
// (Year, Month) for months. The zero fields of the other variants stay zero
// so the struct remains usable as a map key.
type PeriodKey struct {
	Kind  PeriodKind
	Year  int
	Month time.Month
	Day   int
	Week  int
}

// DayKey returns the key for the midnight-truncated local date of t.
func DayKey(t time.Time) PeriodKey {
	y, m, d := t.Date()
	return PeriodKey{Kind: KindDay, Year: y, Month: m, Day: d}
}

// WeekKey returns the ISO (year, week) key of t, weeks anchored to Monday.
func WeekKey(t time.Time) PeriodKey {
	y, w := t.ISOWeek()
	return PeriodKey{Kind: KindWeek, Year: y, Week: w}
}

// MonthKey returns the (year, month) key of t.
func MonthKey(t time.Time) PeriodKey {
	y, m, _ := t.Date()
	return PeriodKey{Kind: KindMonth, Year: y, Month: m}
}

// Less is a total order over keys of the same kind. Keys of different kinds
// never meet inside one aggregation; ordering them by kind keeps Less total.
func (k PeriodKey) Less(o PeriodKey) bool {
	if k.Kind != o.Kind {
		return k.Kind < o.Kind
	}
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	switch k.Kind {
	case KindWeek:
		return k.Week < o.Week
	case KindMonth:
		return k.Month < o.Month
	default:
		if k.Month != o.Month {
			return k.Month < o.Month
		}
		return k.Day < o.Day
	}
}

// Monday returns the Monday date of an ISO week key.
func (k PeriodKey) Monday() time.Time {
	// January 4th is always inside ISO week 1.
	jan4 := time.Date(k.Year, time.January, 4, 0, 0, 0, 0, time.Local)
	// Back up to the Monday of week 1.
	offset := (int(jan4.Weekday()) + 6) % 7
	week1Monday := jan4.AddDate(0, 0, -offset)
	return week1Monday.AddDate(0, 0, (k.Week-1)*7)
}

// Label renders the human-facing bucket name: the date for days,
// "Week of <Monday date>" for weeks, "January 2006" for months.
func (k PeriodKey) Label() string {
	switch k.Kind {
	case KindWeek:
		return "Week of " + k.Monday().Format("Jan 2")
	case KindMonth:
		return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.Local).Format("January 2006")
	default:
		return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, time.Local).Format("2006-01-02")
	}
}
