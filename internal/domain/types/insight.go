package types

// Component names one of the three consistency breakdown components.
type Component string

const (
	ComponentHours    Component = "hours"
	ComponentEarnings Component = "earnings"
	ComponentZones    Component = "zones"
)

// InsightCode is a structured breakdown insight. The engine emits codes with
// numeric parameters; rendering them as copy is the presentation layer's job.
type InsightCode string

const (
	// weakest component scored below 60; Value carries its observed average
	// (weekly hours, $/hr, or unique zone count depending on Component)
	InsightWeakComponent InsightCode = "weak_component"
	// strongest component scored 75 or above; Value carries its score
	InsightStrongComponent InsightCode = "strong_component"
	// tier summary over the mean of the three components; Value carries the mean
	InsightTierStrong       InsightCode = "tier_strong"
	InsightTierOnTrack      InsightCode = "tier_on_track"
	InsightTierNeedsRoutine InsightCode = "tier_needs_routine"
	// both hours and zones below 60
	InsightFocusZonesAndHours InsightCode = "focus_zones_and_hours"
	// earnings below 60 while hours at 70 or above
	InsightShiftToPeakDemand InsightCode = "shift_to_peak_demand"
	// fallback when nothing else qualified
	InsightKeepItUp InsightCode = "keep_it_up"
)

// Insight pairs a code with the numeric parameters its template needs.
type Insight struct {
	Code      InsightCode `json:"code"`
	Component Component   `json:"component,omitempty"`
	Value     float64     `json:"value,omitempty"`
}

// ComparisonCode is the banded percentile classification behind the
// "more consistent than N% of drivers" copy.
type ComparisonCode string

const (
	ComparisonTopDecile       ComparisonCode = "top_decile"        // percentile >= 90
	ComparisonAboveAverage    ComparisonCode = "above_average"     // percentile >= 50
	ComparisonRoomToImprove   ComparisonCode = "room_to_improve"   // percentile >= 25
	ComparisonHighVariability ComparisonCode = "high_variability"  // below 25
	ComparisonNone            ComparisonCode = "insufficient_data" // empty results
)
