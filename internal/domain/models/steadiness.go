package models

import "github.com/steadyapp/steady-backend/internal/domain/types"

// EarningsRange is the min/max per-period earnings observed in the window.
type EarningsRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SteadinessResult is the headline consistency metric for one driver.
// Reason is only set on insufficient-data results, in which case every
// numeric field is zero.
type SteadinessResult struct {
	Score         int                  `json:"score"`
	Percentile    int                  `json:"percentile"`
	Comparison    types.ComparisonCode `json:"comparison"`
	Reason        string               `json:"reason,omitempty"`
	Period        types.Period         `json:"period"`
	CV            float64              `json:"cv"`
	SampleSize    int                  `json:"sample_size"`
	MeanEarnings  float64              `json:"mean_earnings"`
	StdDev        float64              `json:"std_dev"`
	EarningsRange EarningsRange        `json:"earnings_range"`
}

// BreakdownDetails are the raw metrics behind the component scores,
// exposed for transparency.
type BreakdownDetails struct {
	HoursCV          float64 `json:"hours_cv"`
	EphCV            float64 `json:"eph_cv"`
	ZoneEntropy      float64 `json:"zone_entropy"`
	AvgWeeklyHours   float64 `json:"avg_weekly_hours"`
	AvgEph           float64 `json:"avg_eph"`
	UniqueZonesWorked int    `json:"unique_zones_worked"`
	WeeksAnalyzed    int     `json:"weeks_analyzed"`
}

// ConsistencyBreakdown explains a steadiness score through three component
// scores. OverallScore is the full weekly steadiness score recomputed through
// the main pipeline, NOT an average of the three components. That mirrors the
// shipped behavior; reconcile only after product signs off.
type ConsistencyBreakdown struct {
	HourConsistency     int              `json:"hour_consistency"`
	EarningsConsistency int              `json:"earnings_consistency"`
	ZoneConsistency     int              `json:"zone_consistency"`
	OverallScore        int              `json:"overall_score"`
	Insights            []types.Insight  `json:"insights"`
	Reason              string           `json:"reason,omitempty"`
	Details             BreakdownDetails `json:"details"`
}

// TrendPoint is one rolling-window volatility measurement, labeled by the
// window's last week.
type TrendPoint struct {
	Week       string  `json:"week"`
	Volatility float64 `json:"volatility"`
}

// VolatilityTrend traces how earnings volatility moved over the lookback.
type VolatilityTrend struct {
	CurrentVolatility float64              `json:"current_volatility"`
	Trend             []TrendPoint         `json:"trend"`
	Direction         types.TrendDirection `json:"direction"`
	ChangePct         float64              `json:"change_pct"`
	LookbackWeeks     int                  `json:"lookback_weeks"`
	Reason            string               `json:"reason,omitempty"`
}
