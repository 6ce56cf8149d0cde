package domain

// Time-of-day buckets used for contextual relevance.
const (
	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeEvening   = "evening"
	TimeNight     = "night"
)

// ListeningContext describes the situation a recommendation is served
// into. Mood and activity come from the client, the rest is derived from
// the request time.
type ListeningContext struct {
	Hour         int    `json:"hour"`
	TimeCategory string `json:"time_category"`
	DayOfWeek    string `json:"day_of_week"`
	IsWeekend    bool   `json:"is_weekend"`
	Mood         string `json:"mood,omitempty"`
	Activity     string `json:"activity,omitempty"`
	Platform     string `json:"platform,omitempty"`
}

// MoodSuggestions lists the moods clients may tag a session with.
func MoodSuggestions() []string {
	return []string{
		"energetic",
		"chill",
		"happy",
		"melancholic",
		"focused",
		"romantic",
		"nostalgic",
		"adventurous",
		"relaxed",
		"motivated",
	}
}

// ActivitySuggestions lists the activities clients may tag a session with.
func ActivitySuggestions() []string {
	return []string{
		"workout",
		"study",
		"commute",
		"cooking",
		"cleaning",
		"party",
		"sleep",
		"meditation",
		"social",
		"creative",
	}
}
