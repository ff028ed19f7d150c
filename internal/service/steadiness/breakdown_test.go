package steadiness

import (
	"context"
	"testing"
	"time"

	"github.com/steadyapp/steady-backend/internal/domain/models"
	"github.com/steadyapp/steady-backend/internal/domain/types"
)

func TestGetConsistencyBreakdown_InsufficientData(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	result, err := s.GetConsistencyBreakdown(ctx, "ghost")
	if err != nil {
		t.Fatal(err)
	}
	if result.Reason != "No session data" {
		t.Fatalf("reason = %q", result.Reason)
	}

	mustLoad(t, s, "driver1", weeklySessions("driver1", []float64{800, 810, 790}, nil, nil))
	result, err = s.GetConsistencyBreakdown(ctx, "driver1")
	if err != nil {
		t.Fatal(err)
	}
	if result.Reason != "Insufficient data" {
		t.Fatalf("reason = %q", result.Reason)
	}
	if result.HourConsistency != 0 || result.OverallScore != 0 {
		t.Fatalf("expected zeroed result, got %+v", result)
	}
}

func TestGetConsistencyBreakdown_SteadyHoursVolatileRate(t *testing.T) {
	s := newTestService(t)

	// Two sessions per week, all 5 hours, alternating $200 and $40: weekly
	// hours totals are identical while $/hr swings between 40 and 8.
	var sessions []models.Session
	for week := 0; week < 2; week++ {
		for j, earnings := range []float64{200, 40} {
			sessions = append(sessions, models.Session{
				DriverID:    "driver1",
				Timestamp:   testRef.AddDate(0, 0, -7*week-j),
				HoursWorked: 5,
				Earnings:    earnings,
				Zones:       []string{"CBD"},
			})
		}
	}
	mustLoad(t, s, "driver1", sessions)

	result, err := s.GetConsistencyBreakdown(context.Background(), "driver1")
	if err != nil {
		t.Fatal(err)
	}
	if result.HourConsistency != 100 {
		t.Fatalf("hour consistency = %d, want 100 for identical weekly hours", result.HourConsistency)
	}
	if result.EarningsConsistency >= 100 {
		t.Fatalf("earnings consistency = %d, want < 100 for swinging $/hr", result.EarningsConsistency)
	}
	if result.ZoneConsistency != 100 {
		t.Fatalf("zone consistency = %d, want 100 for a single zone", result.ZoneConsistency)
	}
	if result.Details.WeeksAnalyzed != 2 {
		t.Fatalf("weeks analyzed = %d, want 2", result.Details.WeeksAnalyzed)
	}
}

func TestGetConsistencyBreakdown_OverallMatchesSteadinessScore(t *testing.T) {
	s := newTestService(t)
	mustLoad(t, s, "driver1", weeklySessions("driver1", []float64{800, 820, 810, 790, 805, 815}, nil, nil))
	ctx := context.Background()

	breakdown, err := s.GetConsistencyBreakdown(ctx, "driver1")
	if err != nil {
		t.Fatal(err)
	}
	score, err := s.GetSteadinessScore(ctx, "driver1", types.PeriodWeekly)
	if err != nil {
		t.Fatal(err)
	}
	// Overall is the recomputed weekly steadiness score, not a component mean.
	if breakdown.OverallScore != score.Score {
		t.Fatalf("overall = %d, weekly steadiness = %d", breakdown.OverallScore, score.Score)
	}
}

func TestGetConsistencyBreakdown_ZeroHourSessionsExcludedFromRate(t *testing.T) {
	s := newTestService(t)

	sessions := weeklySessions("driver1", []float64{400, 400, 400, 400}, []float64{8, 8, 8, 8}, nil)
	// A zero-hour session carries no rate and must not drag the component.
	sessions = append(sessions, models.Session{
		DriverID:  "driver1",
		Timestamp: testRef.Add(-2 * time.Hour),
		Earnings:  50,
		Zones:     []string{"CBD"},
	})
	mustLoad(t, s, "driver1", sessions)

	result, err := s.GetConsistencyBreakdown(context.Background(), "driver1")
	if err != nil {
		t.Fatal(err)
	}
	if result.EarningsConsistency != 100 {
		t.Fatalf("earnings consistency = %d, want 100 when every rated session earns $50/hr", result.EarningsConsistency)
	}
}

func TestBuildInsights_Order(t *testing.T) {
	// Weak zones, strong hours: weak tip, praise, tier, compound are all
	// present and in that order.
	insights := buildInsights(80, 45, 30, 38.5, 41.2, 9)

	wantCodes := []types.InsightCode{
		types.InsightWeakComponent,
		types.InsightStrongComponent,
		types.InsightTierNeedsRoutine,
		types.InsightShiftToPeakDemand,
	}
	if len(insights) != len(wantCodes) {
		t.Fatalf("got %d insights %v, want %d", len(insights), insights, len(wantCodes))
	}
	for i, want := range wantCodes {
		if insights[i].Code != want {
			t.Errorf("insight[%d] = %q, want %q", i, insights[i].Code, want)
		}
	}
	if insights[0].Component != types.ComponentZones || insights[0].Value != 9 {
		t.Errorf("weak insight = %+v, want zones with unique-zone target", insights[0])
	}
	if insights[1].Component != types.ComponentHours || insights[1].Value != 80 {
		t.Errorf("strong insight = %+v, want hours at 80", insights[1])
	}
}

func TestBuildInsights_CompoundTips(t *testing.T) {
	// Both hours and zones weak: the zones-and-hours tip wins over peak-demand.
	insights := buildInsights(50, 80, 40, 20, 35, 12)
	found := false
	for _, in := range insights {
		if in.Code == types.InsightFocusZonesAndHours {
			found = true
		}
		if in.Code == types.InsightShiftToPeakDemand {
			t.Error("peak-demand tip must not fire together with zones-and-hours")
		}
	}
	if !found {
		t.Fatal("expected focus_zones_and_hours insight")
	}

	// Weak earnings with solid hours: shift to peak demand.
	insights = buildInsights(85, 50, 80, 40, 22, 3)
	found = false
	for _, in := range insights {
		if in.Code == types.InsightShiftToPeakDemand {
			found = true
		}
	}
	if !found {
		t.Fatal("expected shift_to_peak_demand insight")
	}
}

func TestBuildInsights_TierBuckets(t *testing.T) {
	tests := []struct {
		name                  string
		hours, earnings, zone int
		want                  types.InsightCode
	}{
		{"strong", 80, 85, 90, types.InsightTierStrong},
		{"on track", 65, 70, 62, types.InsightTierOnTrack},
		{"needs routine", 40, 55, 50, types.InsightTierNeedsRoutine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := buildInsights(tt.hours, tt.earnings, tt.zone, 30, 35, 3)
			found := false
			for _, in := range insights {
				if in.Code == tt.want {
					found = true
				}
			}
			if !found {
				t.Fatalf("insights %v missing tier %q", insights, tt.want)
			}
		})
	}
}

func TestBuildInsights_MiddlingScoresGetOnlyTier(t *testing.T) {
	// Nothing weak, nothing strong: just the tier summary.
	insights := buildInsights(70, 68, 65, 30, 35, 3)
	if len(insights) != 1 || insights[0].Code != types.InsightTierOnTrack {
		t.Fatalf("insights = %v, want only the on-track tier", insights)
	}
}
