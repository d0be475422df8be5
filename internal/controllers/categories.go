package controllers

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/rsrkatangur0811/watchman/internal/models"
	"github.com/rsrkatangur0811/watchman/internal/services/tmdb"
)

// CategoryConfig defines one curated discovery shelf. Zero values mean the
// filter is unset. Genres may list several comma-separated ids but only the
// first drives the query.
type CategoryConfig struct {
	Title    string
	Subtitle string

	Keywords       string
	Genres         string
	ExcludeGenres  string
	Language       string
	OriginCountry  string
	VoteAvg        float64
	VoteCount      int
	VoteCountMax   int
	ReleaseDateGte string
	ReleaseDateLte string
	RuntimeLte     int
	MaxSeasons     int

	MovieOnly bool
	TVOnly    bool
}

var movieConfigs = []CategoryConfig{
	{Title: "Festival Favorites", Subtitle: "Hidden gems from film festivals", Keywords: "207474", MovieOnly: true},
	{Title: "Cult Classics", Subtitle: "Fan-favorite oddballs", Keywords: "15060", MovieOnly: true},
	{Title: "Feel-Good Movies", Subtitle: "Heartwarming comfort watches", Keywords: "9799", Genres: "35,10749", VoteAvg: 6.5, VoteCount: 100, MovieOnly: true},
	{Title: "Slow Burn Thrillers", Subtitle: "Tension that builds gradually", Keywords: "207265", Genres: "53", MovieOnly: true},
	{Title: "Short & Sweet", Subtitle: "Under 100 minutes", VoteAvg: 6.5, VoteCount: 500, RuntimeLte: 100, MovieOnly: true},
	{Title: "Critics' Darlings", Subtitle: "High rating, lower popularity", VoteAvg: 7.5, VoteCount: 50, VoteCountMax: 500, MovieOnly: true},
	{Title: "90s Nostalgia", Subtitle: "Released between 1990-1999", VoteAvg: 6.5, VoteCount: 500, ReleaseDateGte: "1990-01-01", ReleaseDateLte: "1999-12-31", MovieOnly: true},
	{Title: "2000s Throwback", Subtitle: "Released between 2000-2009", VoteAvg: 6.5, VoteCount: 500, ReleaseDateGte: "2000-01-01", ReleaseDateLte: "2009-12-31", MovieOnly: true},
	{Title: "Family Time", Subtitle: "Family-friendly picks", Genres: "10751", VoteAvg: 6.0, VoteCount: 100, MovieOnly: true},
	{Title: "Mind-Bending", Subtitle: "Twisty, high-concept stories", Keywords: "310", MovieOnly: true},
	{Title: "Underrated Gems", Subtitle: "Decent rating with low vote count", VoteAvg: 6.5, VoteCount: 50, VoteCountMax: 1000, MovieOnly: true},
	{Title: "International Hits", Subtitle: "High-rated non-English titles", Language: "fr|de|es|it|pt|ja|ko|zh|hi", VoteAvg: 7.0, VoteCount: 500, MovieOnly: true},
}

var tvConfigs = []CategoryConfig{
	{Title: "Comfort Binge", Subtitle: "Easy-to-watch episodic shows", Keywords: "288414", TVOnly: true},
	{Title: "Mini-Series Spotlight", Subtitle: "Limited series only", Keywords: "10714", MaxSeasons: 1, TVOnly: true},
	{Title: "Underrated Series", Subtitle: "High rating, low popularity", VoteAvg: 7.5, VoteCount: 50, VoteCountMax: 500, TVOnly: true},
	{Title: "Slow Burn Series", Subtitle: "Long-form, serialized storytelling", Keywords: "207265", TVOnly: true},
	{Title: "Feel-Good TV", Subtitle: "Lighthearted, uplifting shows", Keywords: "9799", Genres: "35", VoteAvg: 6.5, VoteCount: 100, TVOnly: true},
	{Title: "Crime & Mystery", Subtitle: "Detective and investigation series", Genres: "80,9648", VoteCount: 100, TVOnly: true},
	{Title: "K-Drama Corner", Subtitle: "Korean dramas", Language: "ko", OriginCountry: "KR", TVOnly: true},
	{Title: "Sitcom Classics", Subtitle: "Comedy shows with many seasons", Genres: "35", VoteAvg: 7.0, VoteCount: 500, TVOnly: true},
	{Title: "Docu-Series", Subtitle: "Non-fiction and true-story series", Genres: "99", VoteCount: 50, TVOnly: true},
	{Title: "Family Watchlist", Subtitle: "Family-appropriate series", Genres: "10751", VoteAvg: 6.0, VoteCount: 100, TVOnly: true},
	{Title: "Hidden Gems", Subtitle: "Vote count floor + mid popularity", VoteAvg: 7.0, VoteCount: 100, VoteCountMax: 1000, TVOnly: true},
}

var sharedConfigs = []CategoryConfig{
	{Title: "Asian Cinema", Subtitle: "Best from the East", Language: "ja|ko|zh|hi|th"},
	{Title: "Anime", Subtitle: "Japanese Animation", Genres: "16", Language: "ja"},
	{Title: "Superhero", Subtitle: "Heroes and Villains", Keywords: "9715"},
	{Title: "Adult Animation", Subtitle: "Not for kids", Genres: "16", ExcludeGenres: "10751"},
	{Title: "Award Winning", Subtitle: "Critically Acclaimed", VoteAvg: 8.0, VoteCount: 1000},
	{Title: "Real Life", Subtitle: "Based on true stories", Keywords: "9672"},
	{Title: "Blockbuster", Subtitle: "Big budget hits", Keywords: "187056"},
	{Title: "Biographical", Subtitle: "Life stories", Keywords: "6092"},
}

// CategoriesController builds the curated discovery shelves
type CategoriesController struct {
	tmdb   *tmdb.Service
	logger *logrus.Logger
}

// NewCategoriesController creates the categories controller
func NewCategoriesController(service *tmdb.Service, logger *logrus.Logger) *CategoriesController {
	return &CategoriesController{tmdb: service, logger: logger}
}

// MovieConfigs returns the configurations applicable to movies, in shelf order
func MovieConfigs() []CategoryConfig {
	configs := append([]CategoryConfig{}, movieConfigs...)
	for _, cfg := range sharedConfigs {
		if !cfg.TVOnly {
			configs = append(configs, cfg)
		}
	}
	return configs
}

// TVConfigs returns the configurations applicable to shows, in shelf order
func TVConfigs() []CategoryConfig {
	configs := append([]CategoryConfig{}, tvConfigs...)
	for _, cfg := range sharedConfigs {
		if !cfg.MovieOnly {
			configs = append(configs, cfg)
		}
	}
	return configs
}

// BuildMovieSections fetches every movie-applicable shelf concurrently
func (c *CategoriesController) BuildMovieSections(ctx context.Context) []models.CategorySection {
	return c.buildSections(ctx, models.MediaTypeMovie, MovieConfigs())
}

// BuildTVSections fetches every show-applicable shelf concurrently
func (c *CategoriesController) BuildTVSections(ctx context.Context) []models.CategorySection {
	return c.buildSections(ctx, models.MediaTypeTV, TVConfigs())
}

// buildSections fans out one discover query per configuration, drops empty
// shelves, and re-sorts the survivors to configuration order so completion
// order never leaks into presentation.
func (c *CategoriesController) buildSections(ctx context.Context, kind models.MediaType, configs []CategoryConfig) []models.CategorySection {
	var (
		p        = pool.New().WithContext(ctx)
		mu       sync.Mutex
		sections []models.CategorySection
	)

	for _, cfg := range configs {
		cfg := cfg
		p.Go(func(ctx context.Context) error {
			section, err := c.fetchCategory(ctx, kind, cfg)
			if err != nil {
				c.logger.WithError(err).WithFields(logrus.Fields{
					"category":   cfg.Title,
					"media_type": kind,
				}).Warn("Failed to fetch category")
				return nil
			}
			if section == nil {
				return nil
			}
			mu.Lock()
			sections = append(sections, *section)
			mu.Unlock()
			return nil
		})
	}
	_ = p.Wait()

	// Sections arrive in completion order; restore configuration order
	sortByConfigOrder(sections, configs)
	return sections
}

// fetchCategory runs one discover query and applies the season-cap
// post-filter when configured
func (c *CategoriesController) fetchCategory(ctx context.Context, kind models.MediaType, cfg CategoryConfig) (*models.CategorySection, error) {
	titles, err := c.tmdb.Client().FetchTitles(ctx, models.FamilyDiscover, kind, tmdb.FetchOptions{
		GenreID:        firstGenreID(cfg.Genres),
		Keywords:       cfg.Keywords,
		ExcludeGenres:  cfg.ExcludeGenres,
		Language:       cfg.Language,
		OriginCountry:  cfg.OriginCountry,
		VoteAverageMin: cfg.VoteAvg,
		VoteCountMin:   cfg.VoteCount,
		VoteCountMax:   cfg.VoteCountMax,
		ReleaseDateGte: cfg.ReleaseDateGte,
		ReleaseDateLte: cfg.ReleaseDateLte,
		RuntimeLte:     cfg.RuntimeLte,
	})
	if err != nil {
		return nil, err
	}

	if cfg.MaxSeasons > 0 {
		titles = c.applySeasonCap(ctx, kind, titles, cfg.MaxSeasons)
	}

	items := filterTitles(titles)
	if len(items) == 0 {
		return nil, nil
	}
	return &models.CategorySection{Title: cfg.Title, Subtitle: cfg.Subtitle, Items: items}, nil
}

// applySeasonCap keeps titles whose season count is known and within the
// cap, and verifies the rest with one concurrent detail fetch each.
// Verification failures drop the title silently.
func (c *CategoriesController) applySeasonCap(ctx context.Context, kind models.MediaType, titles []*models.Title, maxSeasons int) []*models.Title {
	var known, unverified []*models.Title
	for _, t := range titles {
		switch {
		case t.NumberOfSeasons == nil:
			unverified = append(unverified, t)
		case *t.NumberOfSeasons <= maxSeasons:
			known = append(known, t)
		}
	}
	if len(unverified) == 0 {
		return known
	}

	verified := make([]*models.Title, len(unverified))
	p := pool.New().WithContext(ctx)
	for i, t := range unverified {
		i, id := i, t.ID
		p.Go(func(ctx context.Context) error {
			detail, err := c.tmdb.Client().FetchTitleDetails(ctx, kind, id)
			if err != nil {
				return nil
			}
			if detail.NumberOfSeasons != nil && *detail.NumberOfSeasons <= maxSeasons {
				verified[i] = detail
			}
			return nil
		})
	}
	_ = p.Wait()

	for _, t := range verified {
		if t != nil {
			known = append(known, t)
		}
	}
	return known
}

func firstGenreID(genres string) int {
	first, _, _ := strings.Cut(genres, ",")
	id, err := strconv.Atoi(first)
	if err != nil {
		return 0
	}
	return id
}

// sortByConfigOrder orders sections by their shelf title's position in the
// configuration list; unknown titles sort first.
func sortByConfigOrder(sections []models.CategorySection, configs []CategoryConfig) {
	index := make(map[string]int, len(configs))
	for i, cfg := range configs {
		index[cfg.Title] = i
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return index[sections[i].Title] < index[sections[j].Title]
	})
}
