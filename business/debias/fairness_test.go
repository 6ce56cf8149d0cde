package debias

import (
	"testing"

	"fairTune/domain"
)

func debiasedTrack(id, artistID string, score float64) domain.ScoredTrack {
	st := trackWithArtist(id, artistID, score)
	st.DebiasedScore = score
	return st
}

func TestAllocateByArtistRoundRobin(t *testing.T) {
	in := []domain.ScoredTrack{
		debiasedTrack("a1", "A", 0.9),
		debiasedTrack("a2", "A", 0.8),
		debiasedTrack("a3", "A", 0.7),
		debiasedTrack("b1", "B", 0.6),
		debiasedTrack("b2", "B", 0.5),
	}

	out := AllocateByArtist(in, 4)

	// cap is 4/2 = 2 per artist; least-served alternates, ties go to
	// the artist seen first
	wantOrder := []string{"a1", "b1", "a2", "b2"}
	if len(out) != len(wantOrder) {
		t.Fatalf("selected %d tracks, want %d", len(out), len(wantOrder))
	}
	for i, want := range wantOrder {
		if out[i].Track.ID != want {
			t.Errorf("position %d = %s, want %s", i, out[i].Track.ID, want)
		}
	}
}

func TestAllocateByArtistStopsWhenCapsExhaust(t *testing.T) {
	in := []domain.ScoredTrack{
		debiasedTrack("a1", "A", 0.9),
		debiasedTrack("a2", "A", 0.8),
		debiasedTrack("a3", "A", 0.7),
		debiasedTrack("a4", "A", 0.6),
		debiasedTrack("b1", "B", 0.5),
	}

	out := AllocateByArtist(in, 4)

	// cap 2: A takes two, B has only one, then nobody is eligible
	if len(out) != 3 {
		t.Fatalf("selected %d tracks, want 3", len(out))
	}

	counts := map[string]int{}
	for _, st := range out {
		counts[st.Track.PrimaryArtistID()]++
	}
	if counts["A"] != 2 || counts["B"] != 1 {
		t.Errorf("per-artist counts = %v, want A:2 B:1", counts)
	}
}

func TestAllocateByArtistSingleArtist(t *testing.T) {
	in := []domain.ScoredTrack{
		debiasedTrack("a1", "A", 0.9),
		debiasedTrack("a2", "A", 0.8),
		debiasedTrack("a3", "A", 0.7),
	}

	// one group owns the whole cap
	out := AllocateByArtist(in, 3)
	if len(out) != 3 {
		t.Fatalf("selected %d tracks, want 3", len(out))
	}
}

func TestAllocateByArtistPicksBestWithinGroup(t *testing.T) {
	in := []domain.ScoredTrack{
		debiasedTrack("a_low", "A", 0.1),
		debiasedTrack("a_high", "A", 0.9),
		debiasedTrack("b1", "B", 0.5),
	}

	out := AllocateByArtist(in, 2)

	if out[0].Track.ID != "a_high" {
		t.Errorf("first pick = %s, want a_high", out[0].Track.ID)
	}
}

func TestAllocateByArtistEmptyAndZero(t *testing.T) {
	if out := AllocateByArtist(nil, 5); len(out) != 0 {
		t.Errorf("nil input: got %d tracks", len(out))
	}
	if out := AllocateByArtist([]domain.ScoredTrack{debiasedTrack("a", "A", 1)}, 0); len(out) != 0 {
		t.Errorf("zero count: got %d tracks", len(out))
	}
}

func TestAllocateByCategoryQuotas(t *testing.T) {
	in := []domain.ScoredTrack{}
	addWithPopularity := func(id string, pop int, score float64) {
		st := debiasedTrack(id, "ar_"+id, score)
		st.Track.Popularity = pop
		in = append(in, st)
	}

	addWithPopularity("main1", 90, 0.9)
	addWithPopularity("main2", 80, 0.8)
	addWithPopularity("main3", 75, 0.7)
	addWithPopularity("indie1", 10, 0.6)
	addWithPopularity("indie2", 20, 0.5)
	addWithPopularity("vintage1", 50, 0.4)

	quotas := map[string]float64{
		CategoryMainstream: 0.4,
		CategoryIndie:      0.3,
		CategoryVintage:    0.3,
	}

	out := AllocateByCategory(in, 6, quotas)

	// floor(6*0.4)=2 mainstream, floor(6*0.3)=1 indie, 1 vintage
	if len(out) != 4 {
		t.Fatalf("selected %d tracks, want 4", len(out))
	}

	wantOrder := []string{"main1", "main2", "indie1", "vintage1"}
	for i, want := range wantOrder {
		if out[i].Track.ID != want {
			t.Errorf("position %d = %s, want %s", i, out[i].Track.ID, want)
		}
	}
}

func TestAllocateByCategoryShortBucket(t *testing.T) {
	in := []domain.ScoredTrack{}
	st := debiasedTrack("main1", "A", 0.9)
	st.Track.Popularity = 95
	in = append(in, st)

	out := AllocateByCategory(in, 10, map[string]float64{CategoryMainstream: 1.0})

	// the bucket only holds one track; the result is simply shorter
	if len(out) != 1 {
		t.Fatalf("selected %d tracks, want 1", len(out))
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		popularity int
		want       string
	}{
		{95, CategoryMainstream},
		{71, CategoryMainstream},
		{70, CategoryVintage},
		{30, CategoryVintage},
		{29, CategoryIndie},
		{0, CategoryIndie},
	}
	for _, tt := range tests {
		if got := categorize(tt.popularity); got != tt.want {
			t.Errorf("categorize(%d) = %s, want %s", tt.popularity, got, tt.want)
		}
	}
}
