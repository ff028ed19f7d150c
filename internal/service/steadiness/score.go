package steadiness

import (
	"context"
	"fmt"
	"time"

	"github.com/steadyapp/steady-backend/internal/domain/models"
	"github.com/steadyapp/steady-backend/internal/domain/types"
	"github.com/steadyapp/steady-backend/pkg/metrics"
)

// GetSteadinessScore computes the headline 0-100 consistency rating for a
// driver over the trailing lookback window: sessions are aggregated into
// periods, the CV of period earnings is mapped onto a score, and the score is
// ranked against the cohort. Insufficient data yields a reasoned empty
// result, not an error; an unknown period is a caller bug and fails fast.
func (s *Service) GetSteadinessScore(ctx context.Context, driverID string, period types.Period) (result models.SteadinessResult, err error) {
	start := time.Now()
	defer func() { metrics.RecordScoreComputation(serviceName, "steadiness_score", err, time.Since(start)) }()

	if _, err = types.ParsePeriod(string(period)); err != nil {
		return models.SteadinessResult{}, err
	}

	sessions, ok := s.driverSessions(driverID)
	if !ok {
		return emptySteadiness(period, "No session data found"), nil
	}

	cutoff := s.now().AddDate(0, 0, -s.cfg.LookbackDays)
	recent := recentSessions(sessions, cutoff)

	if len(recent) < s.cfg.MinSessionsForAnalysis {
		return emptySteadiness(period, fmt.Sprintf("Need at least %d sessions", s.cfg.MinSessionsForAnalysis)), nil
	}

	aggregates, err := AggregateByPeriod(recent, period)
	if err != nil {
		return models.SteadinessResult{}, err
	}
	if len(aggregates) < 2 {
		return emptySteadiness(period, fmt.Sprintf("Need at least 2 %s periods", period)), nil
	}

	earnings := make([]float64, len(aggregates))
	minE, maxE := aggregates[0].Earnings, aggregates[0].Earnings
	for i, agg := range aggregates {
		earnings[i] = agg.Earnings
		if agg.Earnings < minE {
			minE = agg.Earnings
		}
		if agg.Earnings > maxE {
			maxE = agg.Earnings
		}
	}

	cv := CV(earnings)
	score := ScoreFromCV(cv, s.cfg.MaxCVForScoring, s.cfg.CVScalingFactor)
	percentile := s.percentileFor(driverID, score, period)

	s.l.Debug(ctx, "computed steadiness score",
		"driver_id", driverID, "period", period, "score", score, "cv", cv, "percentile", percentile)

	return models.SteadinessResult{
		Score:        score,
		Percentile:   percentile,
		Comparison:   comparisonCode(percentile),
		Period:       period,
		CV:           round1(cv),
		SampleSize:   len(aggregates),
		MeanEarnings: round2(mean(earnings)),
		StdDev:       round2(sampleStdDev(earnings)),
		EarningsRange: models.EarningsRange{
			Min: round2(minE),
			Max: round2(maxE),
		},
	}, nil
}

// scoreOnly runs the scoring path for a history without percentile ranking.
// Used to fill percentile cohorts; returns 0 on insufficient data, which the
// cohort filter treats as invalid.
func (s *Service) scoreOnly(sessions []models.Session, period types.Period) int {
	cutoff := s.now().AddDate(0, 0, -s.cfg.LookbackDays)
	recent := recentSessions(sessions, cutoff)
	if len(recent) < s.cfg.MinSessionsForAnalysis {
		return 0
	}

	aggregates, err := AggregateByPeriod(recent, period)
	if err != nil || len(aggregates) < 2 {
		return 0
	}

	earnings := make([]float64, len(aggregates))
	for i, agg := range aggregates {
		earnings[i] = agg.Earnings
	}

	return ScoreFromCV(CV(earnings), s.cfg.MaxCVForScoring, s.cfg.CVScalingFactor)
}

func emptySteadiness(period types.Period, reason string) models.SteadinessResult {
	return models.SteadinessResult{
		Period:     period,
		Reason:     reason,
		Comparison: types.ComparisonNone,
	}
}
