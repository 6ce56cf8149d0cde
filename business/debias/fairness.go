package debias

import (
	"sort"

	"fairTune/domain"
)

// Popularity categories for quota-based allocation.
const (
	CategoryMainstream = "mainstream"
	CategoryIndie      = "indie"
	CategoryVintage    = "vintage"
)

// categoryOrder fixes the iteration order so quota allocation is
// deterministic.
var categoryOrder = []string{CategoryMainstream, CategoryIndie, CategoryVintage}

// AllocateByArtist selects up to maxCount tracks while capping how many
// any single artist may take. Artists with fewer selections so far get
// picked first; ties go to the artist that appeared earliest in the
// input. The result may be shorter than maxCount when caps exhaust the
// eligible pool.
func AllocateByArtist(tracks []domain.ScoredTrack, maxCount int) []domain.ScoredTrack {
	if len(tracks) == 0 || maxCount <= 0 {
		return []domain.ScoredTrack{}
	}

	// group by primary artist, remembering first-appearance order
	order := make([]string, 0, len(tracks))
	groups := make(map[string][]domain.ScoredTrack, len(tracks))
	for _, st := range tracks {
		id := st.Track.PrimaryArtistID()
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		groups[id] = append(groups[id], st)
	}

	for _, id := range order {
		g := groups[id]
		sort.SliceStable(g, func(i, j int) bool {
			return g[i].DebiasedScore > g[j].DebiasedScore
		})
		groups[id] = g
	}

	perArtistCap := maxCount / len(groups)
	if perArtistCap < 1 {
		perArtistCap = 1
	}

	selected := make([]domain.ScoredTrack, 0, maxCount)
	counts := make(map[string]int, len(groups))
	for len(selected) < maxCount {
		// round-robin: the least-served artist that is under cap and
		// still has tracks left
		best := ""
		for _, id := range order {
			if counts[id] >= perArtistCap || len(groups[id]) == 0 {
				continue
			}
			if best == "" || counts[id] < counts[best] {
				best = id
			}
		}
		if best == "" {
			break
		}

		selected = append(selected, groups[best][0])
		groups[best] = groups[best][1:]
		counts[best]++
	}

	return selected
}

// AllocateByCategory fills the result by popularity-category quota:
// each category gets floor(total * percentage) slots from its own
// best-scored tracks. Quotas below a combined 100% simply yield a
// shorter list.
func AllocateByCategory(tracks []domain.ScoredTrack, total int, quotas map[string]float64) []domain.ScoredTrack {
	if len(tracks) == 0 || total <= 0 || len(quotas) == 0 {
		return []domain.ScoredTrack{}
	}

	buckets := make(map[string][]domain.ScoredTrack, len(categoryOrder))
	for _, st := range tracks {
		c := categorize(st.Track.Popularity)
		buckets[c] = append(buckets[c], st)
	}

	selected := make([]domain.ScoredTrack, 0, total)
	for _, category := range categoryOrder {
		pct, ok := quotas[category]
		if !ok || pct <= 0 {
			continue
		}

		bucket := buckets[category]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].DebiasedScore > bucket[j].DebiasedScore
		})

		need := int(float64(total) * pct)
		if need > len(bucket) {
			need = len(bucket)
		}
		selected = append(selected, bucket[:need]...)
	}

	return selected
}

func categorize(popularity int) string {
	switch {
	case popularity > 70:
		return CategoryMainstream
	case popularity < 30:
		return CategoryIndie
	default:
		return CategoryVintage
	}
}
