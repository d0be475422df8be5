package controllers

import (
	"context"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/rsrkatangur0811/watchman/internal/models"
	"github.com/rsrkatangur0811/watchman/internal/services/tmdb"
)

// SearchResults holds one query's title and people matches
type SearchResults struct {
	Titles []*models.Title `json:"titles"`
	People []models.Person `json:"people"`
}

// SearchController runs multi-kind searches
type SearchController struct {
	tmdb   *tmdb.Service
	logger *logrus.Logger
}

// NewSearchController creates the search controller
func NewSearchController(service *tmdb.Service, logger *logrus.Logger) *SearchController {
	return &SearchController{tmdb: service, logger: logger}
}

// Search queries titles and people in parallel. Title matches without a
// poster and people without a profile image are dropped; titles are ordered
// by edit distance between the query and the display name so near-exact
// matches surface first.
func (c *SearchController) Search(ctx context.Context, query string) (*SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &SearchResults{}, nil
	}

	results := &SearchResults{}
	client := c.tmdb.Client()
	p := pool.New().WithContext(ctx)

	p.Go(func(ctx context.Context) error {
		titles, err := client.FetchTitles(ctx, models.FamilySearch, models.MediaTypeMulti, tmdb.FetchOptions{Query: query})
		if err != nil {
			return err
		}
		kept := make([]*models.Title, 0, len(titles))
		for _, t := range filterTitles(titles) {
			if t.PosterPath != "" && t.MediaType != "person" {
				kept = append(kept, t)
			}
		}
		results.Titles = kept
		return nil
	})

	p.Go(func(ctx context.Context) error {
		people, err := client.SearchPeople(ctx, query)
		if err != nil {
			// People results are secondary; title matches still render
			c.logger.WithError(err).WithField("query", query).Warn("Failed to search people")
			return nil
		}
		kept := make([]models.Person, 0, len(people))
		for _, person := range people {
			if person.ProfilePath != "" {
				kept = append(kept, person)
			}
		}
		results.People = kept
		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}

	rankByRelevance(results.Titles, query)
	return results, nil
}

// rankByRelevance orders titles by edit distance to the query, breaking
// ties by vote count
func rankByRelevance(titles []*models.Title, query string) {
	q := strings.ToLower(query)
	distance := func(t *models.Title) int {
		return levenshtein.ComputeDistance(q, strings.ToLower(t.DisplayName()))
	}
	sort.SliceStable(titles, func(i, j int) bool {
		di, dj := distance(titles[i]), distance(titles[j])
		if di != dj {
			return di < dj
		}
		return titles[i].VoteCount > titles[j].VoteCount
	})
}
