package steadiness

import (
	"fmt"
	"sort"

	"github.com/steadyapp/steady-backend/internal/domain/models"
	"github.com/steadyapp/steady-backend/internal/domain/types"
)

// AggregateByPeriod groups sessions into calendar buckets of the given
// granularity: midnight-truncated local dates, ISO Monday-anchored weeks, or
// calendar months. Earnings and hours are summed, zones concatenated without
// deduplication, and the result is sorted ascending by period key, so the
// total earnings over the output always equal the total of the input.
func AggregateByPeriod(sessions []models.Session, period types.Period) ([]models.PeriodAggregate, error) {
	buckets := make(map[types.PeriodKey]*models.PeriodAggregate)

	for _, s := range sessions {
		var key types.PeriodKey
		switch period {
		case types.PeriodDaily:
			key = types.DayKey(s.Timestamp)
		case types.PeriodWeekly:
			key = types.WeekKey(s.Timestamp)
		case types.PeriodMonthly:
			key = types.MonthKey(s.Timestamp)
		default:
			return nil, fmt.Errorf("%w: %q", types.ErrUnknownPeriod, period)
		}

		agg, ok := buckets[key]
		if !ok {
			agg = &models.PeriodAggregate{Key: key, Label: key.Label()}
			buckets[key] = agg
		}
		agg.Earnings += s.Earnings
		agg.Hours += s.HoursWorked
		agg.SessionsCount++
		agg.Zones = append(agg.Zones, s.Zones...)
	}

	out := make([]models.PeriodAggregate, 0, len(buckets))
	for _, agg := range buckets {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Less(out[j].Key) })

	return out, nil
}
