package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	// UnknownArtistID keys tracks whose artist metadata is missing.
	UnknownArtistID = "unknown"

	// DefaultPopularity is assumed when a candidate payload carries no
	// popularity field (0-100 scale).
	DefaultPopularity = 50
)

type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Key returns the identifier used for diversity counting, preferring the
// catalog id over the display name.
func (a Artist) Key() string {
	if a.ID != "" {
		return a.ID
	}

	return a.Name
}

type Album struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
}

// AudioFeatures holds the 0-1 scaled signal features of a track. Missing
// keys read as a neutral 0.5.
type AudioFeatures map[string]float64

func (f AudioFeatures) Get(key string, fallback float64) float64 {
	if f == nil {
		return fallback
	}
	if v, ok := f[key]; ok {
		return v
	}

	return fallback
}

// NormalizeAudioFeatures rescales raw feature values into the 0-1 range
// the relevance metrics expect. Unknown keys are dropped.
func NormalizeAudioFeatures(raw AudioFeatures) AudioFeatures {
	if raw == nil {
		return nil
	}

	normalized := make(AudioFeatures, len(raw))
	for key, value := range raw {
		switch key {
		case "acousticness", "danceability", "energy", "instrumentalness",
			"liveness", "speechiness", "valence":
			normalized[key] = value
		case "tempo":
			normalized[key] = clamp01((value - 50) / 150)
		case "loudness":
			normalized[key] = clamp01((value + 60) / 60)
		case "key":
			normalized[key] = value / 11
		case "mode":
			normalized[key] = value
		}
	}

	return normalized
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}

	return v
}

type Track struct {
	ID            string        `json:"id"`
	Title         string        `json:"name"`
	Artists       []Artist      `json:"artists"`
	Album         *Album        `json:"album,omitempty"`
	Genres        []string      `json:"genres,omitempty"`
	Popularity    int           `json:"popularity"`
	DurationMS    int           `json:"duration_ms"`
	Explicit      bool          `json:"explicit"`
	AudioFeatures AudioFeatures `json:"audio_features,omitempty"`
	BaseScore     float64       `json:"base_score"`
}

// PrimaryArtistID identifies the track's first-listed artist. Fairness
// grouping and history membership both key on it.
func (t Track) PrimaryArtistID() string {
	if len(t.Artists) == 0 {
		return UnknownArtistID
	}

	a := t.Artists[0]
	if a.ID != "" {
		return a.ID
	}
	if a.Name != "" {
		return a.Name
	}

	return UnknownArtistID
}

func (t Track) PrimaryArtistName() string {
	if len(t.Artists) == 0 {
		return UnknownArtistID
	}

	return t.Artists[0].Name
}

// ReleaseYear parses the album release date, which may be a full date or
// just a year. Missing or unparsable dates read as the fallback year.
func (t Track) ReleaseYear(fallback int) int {
	if t.Album == nil || len(t.Album.ReleaseDate) < 4 {
		return fallback
	}

	year, err := strconv.Atoi(t.Album.ReleaseDate[:4])
	if err != nil {
		return fallback
	}

	return year
}

// FormatDuration renders the track length as MM:SS.
func (t Track) FormatDuration() string {
	seconds := t.DurationMS / 1000
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// DecodeTrackPayload parses a stored candidate payload. A payload without
// a popularity field gets DefaultPopularity so the debias stages always
// have a value to work with.
func DecodeTrackPayload(raw []byte) (Track, error) {
	var aux struct {
		Track
		Popularity *int `json:"popularity"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return Track{}, fmt.Errorf("failed to decode track payload: %w", err)
	}

	track := aux.Track
	if aux.Popularity != nil {
		track.Popularity = *aux.Popularity
	} else {
		track.Popularity = DefaultPopularity
	}

	return track, nil
}
