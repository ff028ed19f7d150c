package steadiness

import (
	"errors"
	"testing"
	"time"

	"github.com/steadyapp/steady-backend/internal/domain/models"
	"github.com/steadyapp/steady-backend/internal/domain/types"
)

func TestAggregateByPeriod_Conservation(t *testing.T) {
	base := time.Date(2026, 8, 3, 9, 0, 0, 0, time.Local)
	var sessions []models.Session
	var total float64
	for i := 0; i < 17; i++ {
		earnings := float64(100 + i*13)
		total += earnings
		sessions = append(sessions, models.Session{
			DriverID:    "driver1",
			Timestamp:   base.AddDate(0, 0, i*2),
			HoursWorked: 5,
			Earnings:    earnings,
			Zones:       []string{"CBD"},
		})
	}

	for _, period := range []types.Period{types.PeriodDaily, types.PeriodWeekly, types.PeriodMonthly} {
		t.Run(string(period), func(t *testing.T) {
			aggs, err := AggregateByPeriod(sessions, period)
			if err != nil {
				t.Fatal(err)
			}
			var sum float64
			count := 0
			for _, agg := range aggs {
				sum += agg.Earnings
				count += agg.SessionsCount
			}
			if !almostEqual(sum, total, 1e-9) {
				t.Fatalf("earnings not conserved: got %v, want %v", sum, total)
			}
			if count != len(sessions) {
				t.Fatalf("session count not conserved: got %d, want %d", count, len(sessions))
			}
		})
	}
}

func TestAggregateByPeriod_WeeklyKeyAndLabel(t *testing.T) {
	// Wed Aug 26 2026 and Fri Aug 28 2026 share the ISO week of Mon Aug 24.
	sessions := []models.Session{
		{Timestamp: time.Date(2026, 8, 26, 18, 0, 0, 0, time.Local), Earnings: 120, HoursWorked: 4, Zones: []string{"CBD"}},
		{Timestamp: time.Date(2026, 8, 28, 7, 30, 0, 0, time.Local), Earnings: 80, HoursWorked: 3, Zones: []string{"Airport"}},
		// Mon Aug 31 starts the next ISO week.
		{Timestamp: time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local), Earnings: 50, HoursWorked: 2, Zones: []string{"CBD"}},
	}

	aggs, err := AggregateByPeriod(sessions, types.PeriodWeekly)
	if err != nil {
		t.Fatal(err)
	}
	if len(aggs) != 2 {
		t.Fatalf("got %d buckets, want 2", len(aggs))
	}
	if aggs[0].Label != "Week of Aug 24" {
		t.Errorf("label = %q, want %q", aggs[0].Label, "Week of Aug 24")
	}
	if aggs[0].Earnings != 200 || aggs[0].Hours != 7 || aggs[0].SessionsCount != 2 {
		t.Errorf("first bucket = %+v", aggs[0])
	}
	// Zones are concatenated, not deduplicated.
	if len(aggs[0].Zones) != 2 {
		t.Errorf("zones = %v, want 2 entries", aggs[0].Zones)
	}
	if !aggs[0].Key.Less(aggs[1].Key) {
		t.Error("buckets not sorted ascending by key")
	}
}

func TestAggregateByPeriod_DailyTruncation(t *testing.T) {
	// Same local date at different times lands in one bucket.
	sessions := []models.Session{
		{Timestamp: time.Date(2026, 8, 26, 0, 30, 0, 0, time.Local), Earnings: 40, Zones: []string{"CBD"}},
		{Timestamp: time.Date(2026, 8, 26, 23, 30, 0, 0, time.Local), Earnings: 60, Zones: []string{"CBD"}},
	}

	aggs, err := AggregateByPeriod(sessions, types.PeriodDaily)
	if err != nil {
		t.Fatal(err)
	}
	if len(aggs) != 1 {
		t.Fatalf("got %d buckets, want 1", len(aggs))
	}
	if aggs[0].Label != "2026-08-26" {
		t.Errorf("label = %q, want 2026-08-26", aggs[0].Label)
	}
}

func TestAggregateByPeriod_MonthlyAcrossYears(t *testing.T) {
	sessions := []models.Session{
		{Timestamp: time.Date(2027, 1, 5, 10, 0, 0, 0, time.Local), Earnings: 10, Zones: []string{"CBD"}},
		{Timestamp: time.Date(2026, 12, 20, 10, 0, 0, 0, time.Local), Earnings: 20, Zones: []string{"CBD"}},
	}

	aggs, err := AggregateByPeriod(sessions, types.PeriodMonthly)
	if err != nil {
		t.Fatal(err)
	}
	if len(aggs) != 2 {
		t.Fatalf("got %d buckets, want 2", len(aggs))
	}
	if aggs[0].Label != "December 2026" || aggs[1].Label != "January 2027" {
		t.Errorf("labels = %q, %q", aggs[0].Label, aggs[1].Label)
	}
}

func TestAggregateByPeriod_UnknownPeriod(t *testing.T) {
	_, err := AggregateByPeriod(nil, types.Period("hourly"))
	if !errors.Is(err, types.ErrUnknownPeriod) {
		t.Fatalf("err = %v, want ErrUnknownPeriod", err)
	}
}
