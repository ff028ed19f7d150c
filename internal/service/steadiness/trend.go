package steadiness

import (
	"context"
	"fmt"
	"time"

	"github.com/steadyapp/steady-backend/internal/domain/models"
	"github.com/steadyapp/steady-backend/internal/domain/types"
	"github.com/steadyapp/steady-backend/pkg/metrics"
)

// GetVolatilityTrend traces earnings volatility over the trailing lookback:
// a fixed-width window of consecutive weekly aggregates slides one week at a
// time, each position contributing the CV of its window's earnings, labeled
// by the window's last week. The direction compares the first window's CV to
// the last one's. weeks <= 0 selects the configured default lookback.
func (s *Service) GetVolatilityTrend(ctx context.Context, driverID string, weeks int) (result models.VolatilityTrend, err error) {
	start := time.Now()
	defer func() { metrics.RecordScoreComputation(serviceName, "volatility_trend", err, time.Since(start)) }()

	if weeks <= 0 {
		weeks = s.cfg.DefaultTrendWeeks
	}

	sessions, ok := s.driverSessions(driverID)
	if !ok {
		return emptyTrend(weeks, "No session data found"), nil
	}

	cutoff := s.now().AddDate(0, 0, -weeks*7)
	recent := recentSessions(sessions, cutoff)

	weekly, err := AggregateByPeriod(recent, types.PeriodWeekly)
	if err != nil {
		return models.VolatilityTrend{}, err
	}

	window := s.cfg.RollingWindowWeeks
	if len(weekly) < window {
		return emptyTrend(weeks, fmt.Sprintf("Need at least %d weeks of data", window)), nil
	}

	// Slide the window one week at a time; len(weekly) >= window guarantees
	// at least one position.
	cvs := make([]float64, 0, len(weekly)-window+1)
	points := make([]models.TrendPoint, 0, len(weekly)-window+1)
	for i := 0; i+window <= len(weekly); i++ {
		earnings := make([]float64, window)
		for j, agg := range weekly[i : i+window] {
			earnings[j] = agg.Earnings
		}
		cv := CV(earnings)
		cvs = append(cvs, cv)
		points = append(points, models.TrendPoint{
			Week:       weekly[i+window-1].Label,
			Volatility: round1(cv),
		})
	}

	direction := types.TrendInsufficientData
	changePct := 0.0
	if len(cvs) >= 2 {
		first, last := cvs[0], cvs[len(cvs)-1]
		if first != 0 {
			changePct = (last - first) / first * 100
		}
		switch {
		case changePct < -5:
			direction = types.TrendImproving
		case changePct > 5:
			direction = types.TrendDeclining
		default:
			direction = types.TrendStable
		}
	}

	s.l.Debug(ctx, "computed volatility trend",
		"driver_id", driverID, "weeks", weeks, "windows", len(points), "direction", direction)

	return models.VolatilityTrend{
		CurrentVolatility: round1(cvs[len(cvs)-1]),
		Trend:             points,
		Direction:         direction,
		ChangePct:         round1(changePct),
		LookbackWeeks:     weeks,
	}, nil
}

func emptyTrend(weeks int, reason string) models.VolatilityTrend {
	return models.VolatilityTrend{
		Trend:         []models.TrendPoint{},
		Direction:     types.TrendInsufficientData,
		LookbackWeeks: weeks,
		Reason:        reason,
	}
}
