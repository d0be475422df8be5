package library

import (
	"context"
	"testing"

	"github.com/rsrkatangur0811/watchman/internal/models"
	"github.com/rsrkatangur0811/watchman/internal/services/tmdb"
)

// fakeProber serves a fixed set of existing episodes
type fakeProber struct {
	existing map[[2]int]bool
	probes   [][2]int
}

func (p *fakeProber) Episode(ctx context.Context, showID, season, episode int) (*models.Episode, error) {
	p.probes = append(p.probes, [2]int{season, episode})
	if !p.existing[[2]int{season, episode}] {
		return nil, tmdb.ErrNotFound
	}
	return &models.Episode{SeasonNumber: season, EpisodeNumber: episode}, nil
}

func TestResolveNextEpisodeSameSeason(t *testing.T) {
	store := testStore(t)
	if err := store.MarkEpisodeWatched(1399, 1, 5, "", ""); err != nil {
		t.Fatalf("MarkEpisodeWatched failed: %v", err)
	}

	prober := &fakeProber{existing: map[[2]int]bool{{1, 6}: true}}
	ep, err := store.ResolveNextEpisode(context.Background(), prober, 1399)
	if err != nil {
		t.Fatalf("ResolveNextEpisode failed: %v", err)
	}
	if ep.SeasonNumber != 1 || ep.EpisodeNumber != 6 {
		t.Errorf("next = s%de%d, want s1e6", ep.SeasonNumber, ep.EpisodeNumber)
	}
}

func TestResolveNextEpisodeRollsOverToNextSeason(t *testing.T) {
	store := testStore(t)
	if err := store.MarkEpisodeWatched(1399, 1, 10, "", ""); err != nil {
		t.Fatalf("MarkEpisodeWatched failed: %v", err)
	}

	// Season 1 ends at episode 10, so the probe for e11 misses and the
	// resolver falls back to the next season's opener
	prober := &fakeProber{existing: map[[2]int]bool{{2, 1}: true}}
	ep, err := store.ResolveNextEpisode(context.Background(), prober, 1399)
	if err != nil {
		t.Fatalf("ResolveNextEpisode failed: %v", err)
	}
	if ep.SeasonNumber != 2 || ep.EpisodeNumber != 1 {
		t.Errorf("next = s%de%d, want s2e1", ep.SeasonNumber, ep.EpisodeNumber)
	}
	if len(prober.probes) != 2 || prober.probes[0] != [2]int{1, 11} {
		t.Errorf("probes = %v, want [[1 11] [2 1]]", prober.probes)
	}
}

func TestResolveNextEpisodeErrorWhenNothingExists(t *testing.T) {
	store := testStore(t)
	if err := store.MarkEpisodeWatched(1399, 3, 1, "", ""); err != nil {
		t.Fatalf("MarkEpisodeWatched failed: %v", err)
	}

	// Both the same-season candidate and the next-season fallback miss
	prober := &fakeProber{existing: map[[2]int]bool{}}
	_, err := store.ResolveNextEpisode(context.Background(), prober, 1399)
	if err == nil {
		t.Fatal("expected an error when no next episode exists")
	}
	if len(prober.probes) != 2 {
		t.Errorf("probes = %v, want fallback attempt after s3e2 miss", prober.probes)
	}
}
