package steadiness

import (
	"context"
	"time"

	"github.com/steadyapp/steady-backend/internal/domain/models"
	"github.com/steadyapp/steady-backend/internal/domain/types"
	"github.com/steadyapp/steady-backend/pkg/metrics"
)

// GetConsistencyBreakdown explains a driver's steadiness through three
// independent component scores over the trailing lookback: weekly hours
// consistency, per-session earnings-rate consistency, and zone consistency.
// The overall score is the full weekly steadiness score recomputed through
// the main pipeline, not a combination of the three components (shipped
// behavior, kept until product decides otherwise).
func (s *Service) GetConsistencyBreakdown(ctx context.Context, driverID string) (result models.ConsistencyBreakdown, err error) {
	start := time.Now()
	defer func() { metrics.RecordScoreComputation(serviceName, "consistency_breakdown", err, time.Since(start)) }()

	sessions, ok := s.driverSessions(driverID)
	if !ok {
		return emptyBreakdown("No session data"), nil
	}

	cutoff := s.now().AddDate(0, 0, -s.cfg.LookbackDays)
	recent := recentSessions(sessions, cutoff)
	if len(recent) < s.cfg.MinSessionsForAnalysis {
		return emptyBreakdown("Insufficient data"), nil
	}

	weekly, err := AggregateByPeriod(recent, types.PeriodWeekly)
	if err != nil {
		return models.ConsistencyBreakdown{}, err
	}
	if len(weekly) < 2 {
		return emptyBreakdown("Need at least 2 weeks"), nil
	}

	// Hour consistency: spread of weekly hours totals.
	weeklyHours := make([]float64, len(weekly))
	for i, w := range weekly {
		weeklyHours[i] = w.Hours
	}
	hoursCV := CV(weeklyHours)
	hourConsistency := ScoreFromCV(hoursCV, s.cfg.MaxCVForScoring, s.cfg.CVScalingFactor)

	// Earnings consistency: spread of per-session $/hr, zero-hour sessions
	// excluded since they carry no rate.
	var ephValues []float64
	for _, sess := range recent {
		if sess.HoursWorked > 0 {
			ephValues = append(ephValues, sess.EarningsPerHour())
		}
	}
	ephCV := CV(ephValues)
	earningsConsistency := ScoreFromCV(ephCV, s.cfg.MaxCVForScoring, s.cfg.CVScalingFactor)

	// Zone consistency: inverse normalized entropy of the zone multiset.
	var zones []string
	for _, sess := range recent {
		zones = append(zones, sess.Zones...)
	}
	entropy, _, uniqueZones := ZoneEntropy(zones)
	zoneConsistency := ZoneScore(zones)

	overall, err := s.GetSteadinessScore(ctx, driverID, types.PeriodWeekly)
	if err != nil {
		return models.ConsistencyBreakdown{}, err
	}

	avgWeeklyHours := mean(weeklyHours)
	avgEph := mean(ephValues)

	s.l.Debug(ctx, "computed consistency breakdown",
		"driver_id", driverID,
		"hours", hourConsistency, "earnings", earningsConsistency, "zones", zoneConsistency)

	return models.ConsistencyBreakdown{
		HourConsistency:     hourConsistency,
		EarningsConsistency: earningsConsistency,
		ZoneConsistency:     zoneConsistency,
		OverallScore:        overall.Score,
		Insights: buildInsights(
			hourConsistency, earningsConsistency, zoneConsistency,
			avgWeeklyHours, avgEph, uniqueZones,
		),
		Details: models.BreakdownDetails{
			HoursCV:           round1(hoursCV),
			EphCV:             round1(ephCV),
			ZoneEntropy:       round2(entropy),
			AvgWeeklyHours:    round1(avgWeeklyHours),
			AvgEph:            round2(avgEph),
			UniqueZonesWorked: uniqueZones,
			WeeksAnalyzed:     len(weekly),
		},
	}, nil
}

// buildInsights emits the breakdown insights in fixed order: weak-component
// tip, strong-component praise, tier summary, compound tip, with a generic
// fallback if nothing qualified.
func buildInsights(hours, earnings, zones int, avgWeeklyHours, avgEph float64, uniqueZones int) []types.Insight {
	type component struct {
		name  types.Component
		score int
		// the observed average the tip template quotes
		avg float64
	}
	components := []component{
		{types.ComponentHours, hours, round1(avgWeeklyHours)},
		{types.ComponentEarnings, earnings, round2(avgEph)},
		{types.ComponentZones, zones, float64(uniqueZones)},
	}

	weakest, strongest := components[0], components[0]
	for _, c := range components[1:] {
		if c.score < weakest.score {
			weakest = c
		}
		if c.score > strongest.score {
			strongest = c
		}
	}

	var insights []types.Insight

	if weakest.score < 60 {
		insights = append(insights, types.Insight{
			Code:      types.InsightWeakComponent,
			Component: weakest.name,
			Value:     weakest.avg,
		})
	}

	if strongest.score >= 75 {
		insights = append(insights, types.Insight{
			Code:      types.InsightStrongComponent,
			Component: strongest.name,
			Value:     float64(strongest.score),
		})
	}

	meanScore := float64(hours+earnings+zones) / 3
	tier := types.InsightTierNeedsRoutine
	switch {
	case meanScore >= 75:
		tier = types.InsightTierStrong
	case meanScore >= 60:
		tier = types.InsightTierOnTrack
	}
	insights = append(insights, types.Insight{Code: tier, Value: round1(meanScore)})

	if hours < 60 && zones < 60 {
		insights = append(insights, types.Insight{Code: types.InsightFocusZonesAndHours})
	} else if earnings < 60 && hours >= 70 {
		insights = append(insights, types.Insight{Code: types.InsightShiftToPeakDemand})
	}

	if len(insights) == 0 {
		insights = append(insights, types.Insight{Code: types.InsightKeepItUp})
	}

	return insights
}

func emptyBreakdown(reason string) models.ConsistencyBreakdown {
	return models.ConsistencyBreakdown{
		Reason:   reason,
		Insights: []types.Insight{},
	}
}
