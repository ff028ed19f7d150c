package dto

import (
	"fmt"
	"time"

	"github.com/steadyapp/steady-backend/internal/domain/models"
	"github.com/steadyapp/steady-backend/internal/domain/types"
	"github.com/steadyapp/steady-backend/pkg/validator"
)

type SessionPayload struct {
	Timestamp   time.Time `json:"timestamp"`
	HoursWorked float64   `json:"hours_worked"`
	Earnings    float64   `json:"earnings"`
	Zones       []string  `json:"zones"`
}

type LoadSessionsRequest struct {
	DriverID string           `json:"driver_id"`
	Sessions []SessionPayload `json:"sessions"`
}

func (r *LoadSessionsRequest) Validate(v *validator.Validator) {
	v.Check(r.DriverID != "", "driver_id", "must be provided")
	v.Check(len(r.Sessions) > 0, "sessions", "must contain at least one session")
	for i, s := range r.Sessions {
		field := fmt.Sprintf("sessions[%d]", i)
		v.Check(!s.Timestamp.IsZero(), field+".timestamp", "must be provided")
		v.Check(s.HoursWorked >= 0, field+".hours_worked", "must not be negative")
		v.Check(s.Earnings >= 0, field+".earnings", "must not be negative")
	}
}

func (r *LoadSessionsRequest) ToModel() []models.Session {
	sessions := make([]models.Session, 0, len(r.Sessions))
	for _, s := range r.Sessions {
		sessions = append(sessions, models.Session{
			DriverID:    r.DriverID,
			Timestamp:   s.Timestamp,
			HoursWorked: s.HoursWorked,
			Earnings:    s.Earnings,
			Zones:       s.Zones,
		})
	}
	return sessions
}

// SteadinessScoreResponse adds rendered comparison copy on top of the
// engine result.
type SteadinessScoreResponse struct {
	models.SteadinessResult
	ComparisonText string `json:"comparison_text"`
}

func ToScoreResponse(result models.SteadinessResult, city string) SteadinessScoreResponse {
	return SteadinessScoreResponse{
		SteadinessResult: result,
		ComparisonText:   comparisonText(result, city),
	}
}

// comparisonText renders the banded percentile classification, e.g.
// "More consistent than 72% of Sydney drivers".
func comparisonText(result models.SteadinessResult, city string) string {
	if result.Reason != "" {
		return result.Reason
	}

	switch result.Comparison {
	case types.ComparisonTopDecile:
		return fmt.Sprintf("Exceptionally consistent - top 10%% of %s drivers", city)
	case types.ComparisonAboveAverage:
		return fmt.Sprintf("More consistent than %d%% of %s drivers", result.Percentile, city)
	case types.ComparisonRoomToImprove:
		return fmt.Sprintf("Room to improve consistency - %dth percentile in %s", result.Percentile, city)
	case types.ComparisonHighVariability:
		return "High income variability - focus on building routine"
	default:
		return ""
	}
}

type BreakdownResponse struct {
	models.ConsistencyBreakdown
	InsightText []string `json:"insight_text"`
}

func ToBreakdownResponse(result models.ConsistencyBreakdown) BreakdownResponse {
	texts := make([]string, 0, len(result.Insights))
	for _, ins := range result.Insights {
		texts = append(texts, insightText(ins))
	}
	return BreakdownResponse{
		ConsistencyBreakdown: result,
		InsightText:          texts,
	}
}

func insightText(ins types.Insight) string {
	switch ins.Code {
	case types.InsightWeakComponent:
		switch ins.Component {
		case types.ComponentHours:
			return fmt.Sprintf("Your weekly hours vary a lot - aim for a routine around %.1f hours each week", ins.Value)
		case types.ComponentEarnings:
			return fmt.Sprintf("Your hourly rate swings session to session - your average is $%.2f/hr, target work that holds it steady", ins.Value)
		case types.ComponentZones:
			return fmt.Sprintf("You spread work across %.0f zones - focus on your top 2-3 zones to improve", ins.Value)
		}
	case types.InsightStrongComponent:
		switch ins.Component {
		case types.ComponentHours:
			return fmt.Sprintf("Your hours are consistent (%.0f%%) - a solid base to build on", ins.Value)
		case types.ComponentEarnings:
			return fmt.Sprintf("Your earnings rate is consistent (%.0f%%) - a solid base to build on", ins.Value)
		case types.ComponentZones:
			return fmt.Sprintf("Your zone routine is consistent (%.0f%%) - a solid base to build on", ins.Value)
		}
	case types.InsightTierStrong:
		return "You have a strong routine - income should stay predictable"
	case types.InsightTierOnTrack:
		return "You're on track - tightening your routine will lift predictability further"
	case types.InsightTierNeedsRoutine:
		return "Your pattern is irregular - building a weekly routine is the fastest way to steady income"
	case types.InsightFocusZonesAndHours:
		return "Pick 2-3 zones and fixed hours - working the same places at the same times steadies both"
	case types.InsightShiftToPeakDemand:
		return "Your hours are steady but earnings are not - shift your schedule toward peak demand"
	case types.InsightKeepItUp:
		return "Keep it up - your driving pattern looks steady"
	}
	return ""
}

type VolatilityResponse struct {
	models.VolatilityTrend
	Summary string `json:"summary"`
}

func ToVolatilityResponse(result models.VolatilityTrend) VolatilityResponse {
	return VolatilityResponse{
		VolatilityTrend: result,
		Summary:         volatilitySummary(result),
	}
}

func volatilitySummary(result models.VolatilityTrend) string {
	switch result.Direction {
	case types.TrendImproving:
		return fmt.Sprintf("Volatility down %.1f%% over the last %d weeks - your income is getting steadier", -result.ChangePct, result.LookbackWeeks)
	case types.TrendDeclining:
		return fmt.Sprintf("Volatility up %.1f%% over the last %d weeks - your income is getting less predictable", result.ChangePct, result.LookbackWeeks)
	case types.TrendStable:
		return fmt.Sprintf("Volatility roughly flat over the last %d weeks", result.LookbackWeeks)
	default:
		return result.Reason
	}
}
