package debias

import (
	"time"

	"fairTune/domain"
)

// DiversityPromoter rewards tracks that stand apart from the rest of the
// candidate set: rare artists, rare genres, and older releases.
type DiversityPromoter struct {
	weight        float64
	referenceYear int
}

func NewDiversityPromoter(weight float64, referenceYear int) *DiversityPromoter {
	if weight <= 0 {
		weight = DefaultDiversityWeight
	}
	if referenceYear <= 0 {
		referenceYear = time.Now().Year()
	}

	return &DiversityPromoter{weight: weight, referenceYear: referenceYear}
}

func (d *DiversityPromoter) Apply(tracks []domain.ScoredTrack) []domain.ScoredTrack {
	if len(tracks) == 0 {
		return []domain.ScoredTrack{}
	}

	artistCounts := make(map[string]int, len(tracks))
	for _, st := range tracks {
		artistCounts[st.Track.PrimaryArtistID()]++
	}

	out := make([]domain.ScoredTrack, 0, len(tracks))
	for i, st := range tracks {
		st = st.Clone()

		// a track splits its boost with every other track by the same artist
		count := artistCounts[st.Track.PrimaryArtistID()]
		if count < 1 {
			count = 1
		}
		boost := 1.0 / float64(count)
		st.Scores[domain.ScoreDiversityBoost] = boost
		st.Scores[domain.ScoreDiversityAdjusted] = st.Track.BaseScore * (1.0 + boost*d.weight)

		st.Scores[domain.ScoreGenreDiversityBoost] = 1.0 / float64(genreOverlap(tracks, i)+1)

		age := d.referenceYear - st.Track.ReleaseYear(d.referenceYear)
		st.Scores[domain.ScoreTemporalDiversityBoost] = temporalBoost(age)

		out = append(out, st)
	}

	return out
}

// genreOverlap counts how many other candidates share at least one genre
// with tracks[i]. A track with no genre data overlaps nothing.
func genreOverlap(tracks []domain.ScoredTrack, i int) int {
	overlap := 0
	for j, other := range tracks {
		if i == j {
			continue
		}
		if sharesGenre(tracks[i].Track.Genres, other.Track.Genres) {
			overlap++
		}
	}

	return overlap
}

func sharesGenre(a, b []string) bool {
	for _, ga := range a {
		for _, gb := range b {
			if ga == gb {
				return true
			}
		}
	}

	return false
}

// temporalBoost favors catalog depth: the older the release, the larger
// the multiplier.
func temporalBoost(age int) float64 {
	switch {
	case age > 20:
		return 1.3
	case age > 10:
		return 1.2
	case age > 5:
		return 1.1
	default:
		return 1.0
	}
}
