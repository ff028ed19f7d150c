package models

import (
	"time"

	"github.com/steadyapp/steady-backend/internal/domain/types"
)

// Session is the atomic unit of driver history: one stretch of driving with
// its hours, gross earnings and the zones visited (in order, not deduplicated).
// Sessions are immutable once stored; the ingestion collaborator builds them,
// the engine only reads them.
type Session struct {
	DriverID    string    `json:"driver_id"`
	Timestamp   time.Time `json:"timestamp"`
	HoursWorked float64   `json:"hours_worked"`
	Earnings    float64   `json:"earnings"`
	Zones       []string  `json:"zones"`
}

// EarningsPerHour is the session's earnings rate, 0 for zero-hour sessions.
func (s Session) EarningsPerHour() float64 {
	if s.HoursWorked <= 0 {
		return 0
	}
	return s.Earnings / s.HoursWorked
}

// PeriodAggregate is one calendar bucket of sessions. Built fresh on every
// aggregation call, never persisted.
type PeriodAggregate struct {
	Key           types.PeriodKey
	Label         string
	Earnings      float64
	Hours         float64
	SessionsCount int
	Zones         []string
}

// EarningsPerHour is the bucket's average earnings rate, 0 for zero hours.
func (a PeriodAggregate) EarningsPerHour() float64 {
	if a.Hours <= 0 {
		return 0
	}
	return a.Earnings / a.Hours
}
