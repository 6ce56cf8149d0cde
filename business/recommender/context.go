package recommender

import (
	"strings"
	"time"

	"fairTune/domain"
)

// timeCategory buckets an hour the way listeners experience the day.
func timeCategory(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return domain.TimeMorning
	case hour >= 12 && hour < 17:
		return domain.TimeAfternoon
	case hour >= 17 && hour < 22:
		return domain.TimeEvening
	default:
		return domain.TimeNight
	}
}

// DeriveContext builds the listening context for a point in time.
func DeriveContext(now time.Time) domain.ListeningContext {
	day := strings.ToLower(now.Weekday().String())

	return domain.ListeningContext{
		Hour:         now.Hour(),
		TimeCategory: timeCategory(now.Hour()),
		DayOfWeek:    day,
		IsWeekend:    day == "saturday" || day == "sunday",
	}
}

// buildBaseContext is the event-context skeleton shared by serving and
// feedback logging.
func buildBaseContext(now time.Time, lc domain.ListeningContext, platform string) map[string]any {
	return map[string]any{
		"hour":          lc.Hour,
		"time_category": lc.TimeCategory,
		"day_of_week":   lc.DayOfWeek,
		"is_weekend":    lc.IsWeekend,
		"platform":      platform,
		"event_time":    now.Format(time.RFC3339),
	}
}

// mergeContext overlays extra onto base; extra wins on key conflicts.
func mergeContext(base, extra map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
