package recommender

import (
	"testing"
	"time"

	"fairTune/domain"
)

func TestTimeCategoryBuckets(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, domain.TimeNight},
		{5, domain.TimeNight},
		{6, domain.TimeMorning},
		{11, domain.TimeMorning},
		{12, domain.TimeAfternoon},
		{16, domain.TimeAfternoon},
		{17, domain.TimeEvening},
		{21, domain.TimeEvening},
		{22, domain.TimeNight},
		{23, domain.TimeNight},
	}

	for _, tt := range tests {
		if got := timeCategory(tt.hour); got != tt.want {
			t.Errorf("timeCategory(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestDeriveContext(t *testing.T) {
	// 2024-01-06 was a Saturday
	saturday := time.Date(2024, 1, 6, 9, 30, 0, 0, time.UTC)
	lc := DeriveContext(saturday)

	if lc.Hour != 9 {
		t.Errorf("hour = %d, want 9", lc.Hour)
	}
	if lc.TimeCategory != domain.TimeMorning {
		t.Errorf("time category = %q, want morning", lc.TimeCategory)
	}
	if lc.DayOfWeek != "saturday" {
		t.Errorf("day of week = %q, want saturday", lc.DayOfWeek)
	}
	if !lc.IsWeekend {
		t.Error("saturday must count as weekend")
	}

	monday := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	lc = DeriveContext(monday)

	if lc.DayOfWeek != "monday" {
		t.Errorf("day of week = %q, want monday", lc.DayOfWeek)
	}
	if lc.IsWeekend {
		t.Error("monday must not count as weekend")
	}
	if lc.TimeCategory != domain.TimeNight {
		t.Errorf("time category = %q, want night", lc.TimeCategory)
	}
}

func TestBuildBaseContext(t *testing.T) {
	now := time.Date(2024, 1, 6, 9, 30, 0, 0, time.UTC)
	ctx := buildBaseContext(now, DeriveContext(now), "mobile")

	if ctx["time_category"] != domain.TimeMorning {
		t.Errorf("time_category = %v", ctx["time_category"])
	}
	if ctx["day_of_week"] != "saturday" {
		t.Errorf("day_of_week = %v", ctx["day_of_week"])
	}
	if ctx["is_weekend"] != true {
		t.Errorf("is_weekend = %v", ctx["is_weekend"])
	}
	if ctx["platform"] != "mobile" {
		t.Errorf("platform = %v", ctx["platform"])
	}
	if ctx["event_time"] != "2024-01-06T09:30:00Z" {
		t.Errorf("event_time = %v", ctx["event_time"])
	}
}

func TestMergeContextExtraWins(t *testing.T) {
	base := map[string]any{"platform": "web", "hour": 9}
	extra := map[string]any{"platform": "mobile", "mood": "happy"}

	merged := mergeContext(base, extra)

	if merged["platform"] != "mobile" {
		t.Errorf("platform = %v, extra must win", merged["platform"])
	}
	if merged["hour"] != 9 {
		t.Errorf("hour = %v, base keys must survive", merged["hour"])
	}
	if merged["mood"] != "happy" {
		t.Errorf("mood = %v", merged["mood"])
	}

	if base["platform"] != "web" {
		t.Error("merge mutated the base map")
	}
}
