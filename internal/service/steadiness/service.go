package steadiness

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/steadyapp/steady-backend/internal/domain/models"
	"github.com/steadyapp/steady-backend/internal/domain/types"
	"github.com/steadyapp/steady-backend/pkg/logger"
	wrap "github.com/steadyapp/steady-backend/pkg/logger/wrapper"
	"github.com/steadyapp/steady-backend/pkg/metrics"
)

const serviceName = "steadiness"

// Config holds the engine tuning parameters, calibrated for rideshare
// economics. Defaults() matches production calibration.
type Config struct {
	// City names the comparison cohort for percentile ranking.
	City string

	// CVScalingFactor converts CV percentage points into score points.
	CVScalingFactor float64
	// MaxCVForScoring caps the CV: anything above scores 0.
	MaxCVForScoring float64
	// MinSessionsForAnalysis is the minimum raw sessions inside the lookback.
	MinSessionsForAnalysis int
	// RollingWindowWeeks is the fixed width of the volatility trend window.
	RollingWindowWeeks int
	// LookbackDays bounds steadiness and breakdown analysis.
	LookbackDays int
	// DefaultTrendWeeks is the volatility lookback when the caller passes none.
	DefaultTrendWeeks int
}

// Defaults returns the production engine calibration.
func Defaults() Config {
	return Config{
		City:                   "Sydney",
		CVScalingFactor:        2.5,
		MaxCVForScoring:        40,
		MinSessionsForAnalysis: 4,
		RollingWindowWeeks:     4,
		LookbackDays:           90,
		DefaultTrendWeeks:      12,
	}
}

// cohortKey identifies one cached percentile cohort.
type cohortKey struct {
	city   string
	period types.Period
}

/*
Service is the steadiness engine. It owns the two caches the computation
depends on: the per-driver session history and the per-(cohort, period)
percentile cohorts. The cohort cache is pure memoization over the session
map, so every (re)load invalidates it; a stale cohort is a correctness bug,
not a tuning knob. One mutex guards both so a reload is never observed
mid-update by a concurrent computation.
*/
type Service struct {
	cfg Config
	l   logger.Logger
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string][]models.Session
	cohorts  map[cohortKey][]int
}

// New returns an engine with the given calibration. The clock is injected so
// the trailing lookback windows are testable.
func New(cfg Config, l logger.Logger) *Service {
	return &Service{
		cfg:      cfg,
		l:        l,
		now:      time.Now,
		sessions: make(map[string][]models.Session),
		cohorts:  make(map[cohortKey][]int),
	}
}

// Load replaces a driver's session history. Sessions are validated (negative
// hours or earnings are rejected outright), copied, and stably sorted by
// timestamp ascending. Every successful load invalidates the percentile
// cohort cache, since cohort membership or values may have changed.
func (s *Service) Load(ctx context.Context, driverID string, sessions []models.Session) error {
	for i, sess := range sessions {
		if sess.HoursWorked < 0 {
			return wrap.Error(ctx, fmt.Errorf("driver %s session %d: %w", driverID, i, types.ErrNegativeHours))
		}
		if sess.Earnings < 0 {
			return wrap.Error(ctx, fmt.Errorf("driver %s session %d: %w", driverID, i, types.ErrNegativeEarnings))
		}
	}

	// Own a copy; callers keep no handle into stored history.
	owned := make([]models.Session, len(sessions))
	copy(owned, sessions)
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].Timestamp.Before(owned[j].Timestamp)
	})

	s.mu.Lock()
	s.sessions[driverID] = owned
	s.invalidateCohortsLocked()
	drivers := len(s.sessions)
	s.mu.Unlock()

	metrics.LoadedDriversGauge.WithLabelValues(serviceName).Set(float64(drivers))
	s.l.Debug(ctx, "loaded driver sessions", "driver_id", driverID, "sessions", len(owned))

	return nil
}

// LoadBulk loads histories for multiple drivers. Fails on the first driver
// with invalid sessions; earlier drivers stay loaded.
func (s *Service) LoadBulk(ctx context.Context, sessionsByDriver map[string][]models.Session) error {
	for driverID, sessions := range sessionsByDriver {
		if err := s.Load(ctx, driverID, sessions); err != nil {
			return err
		}
	}
	return nil
}

// invalidateCohortsLocked drops every cached percentile cohort.
// Caller must hold s.mu.
func (s *Service) invalidateCohortsLocked() {
	if len(s.cohorts) > 0 {
		metrics.PercentileCacheInvalidations.WithLabelValues(serviceName).Inc()
	}
	clear(s.cohorts)
}

// driverSessions returns the stored history for a driver. The returned slice
// must not be mutated; stored sessions are immutable by contract.
func (s *Service) driverSessions(driverID string) ([]models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions, ok := s.sessions[driverID]
	return sessions, ok
}

// recentSessions filters a history to sessions at or after the cutoff.
func recentSessions(sessions []models.Session, cutoff time.Time) []models.Session {
	out := make([]models.Session, 0, len(sessions))
	for _, sess := range sessions {
		if !sess.Timestamp.Before(cutoff) {
			out = append(out, sess)
		}
	}
	return out
}
