package steadiness

import (
	"math"

	"github.com/steadyapp/steady-backend/internal/domain/types"
	"github.com/steadyapp/steady-backend/pkg/metrics"
)

// percentileFor ranks a score against the cached cohort for (city, period):
// the valid (>0) steadiness scores of every other loaded driver. The cohort
// is computed through the score-only path, so a cache fill cannot re-enter
// the ranking machinery. An empty cohort yields the neutral median 50.
func (s *Service) percentileFor(driverID string, score int, period types.Period) int {
	key := cohortKey{city: s.cfg.City, period: period}

	s.mu.RLock()
	scores, ok := s.cohorts[key]
	s.mu.RUnlock()

	if ok {
		metrics.PercentileCacheHits.WithLabelValues(serviceName).Inc()
	} else {
		metrics.PercentileCacheMisses.WithLabelValues(serviceName).Inc()

		s.mu.Lock()
		// Another request may have filled the cohort while we waited.
		scores, ok = s.cohorts[key]
		if !ok {
			scores = make([]int, 0, len(s.sessions))
			for otherID, history := range s.sessions {
				if otherID == driverID {
					continue
				}
				if sc := s.scoreOnly(history, period); sc > 0 {
					scores = append(scores, sc)
				}
			}
			s.cohorts[key] = scores
		}
		s.mu.Unlock()
	}

	if len(scores) == 0 {
		return 50
	}

	lower := 0
	for _, v := range scores {
		if v < score {
			lower++
		}
	}
	return int(math.Round(float64(lower) / float64(len(scores)) * 100))
}

// comparisonCode buckets a percentile into its banded classification.
// The >=75 and >=50 bands share one code: both render as
// "more consistent than N%" with the percentile interpolated.
func comparisonCode(percentile int) types.ComparisonCode {
	switch {
	case percentile >= 90:
		return types.ComparisonTopDecile
	case percentile >= 50:
		return types.ComparisonAboveAverage
	case percentile >= 25:
		return types.ComparisonRoomToImprove
	default:
		return types.ComparisonHighVariability
	}
}
