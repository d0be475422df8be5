package controllers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/rsrkatangur0811/watchman/internal/models"
	"github.com/rsrkatangur0811/watchman/internal/services/tmdb"
)

// filterTitles drops records carrying the unreliable perfect-rating marker
func filterTitles(titles []*models.Title) []*models.Title {
	filtered := make([]*models.Title, 0, len(titles))
	for _, t := range titles {
		if t.VoteAverage < models.SentinelRating {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

const featuredLimit = 20

// HomeContent aggregates every home screen shelf
type HomeContent struct {
	TrendingMovies []*models.Title `json:"trending_movies"`
	TrendingTV     []*models.Title `json:"trending_tv"`
	TopRatedMovies []*models.Title `json:"top_rated_movies"`
	TopRatedTV     []*models.Title `json:"top_rated_tv"`
	UpcomingMovies []*models.Title `json:"upcoming_movies"`
	NowPlaying     []*models.Title `json:"now_playing_movies"`
	PopularMovies  []*models.Title `json:"popular_movies"`
	PopularTV      []*models.Title `json:"popular_tv"`
	AiringTodayTV  []*models.Title `json:"airing_today_tv"`
	OnTheAirTV     []*models.Title `json:"on_the_air_tv"`
	TrendingPeople []models.Person `json:"trending_people"`
	Featured       []*models.Title `json:"featured"`
}

// HomeController builds the home screen shelves
type HomeController struct {
	tmdb   *tmdb.Service
	logger *logrus.Logger
}

// NewHomeController creates the home controller
func NewHomeController(service *tmdb.Service, logger *logrus.Logger) *HomeController {
	return &HomeController{tmdb: service, logger: logger}
}

// BuildHome fans out one fetch per shelf and joins the results. A failing
// branch leaves its shelf empty; only the join itself can fail.
func (c *HomeController) BuildHome(ctx context.Context) *HomeContent {
	content := &HomeContent{}
	client := c.tmdb.Client()

	// Each branch writes only its own field, so no joint locking is needed
	p := pool.New().WithContext(ctx)

	shelf := func(name string, family models.Family, kind models.MediaType, dst *[]*models.Title) {
		p.Go(func(ctx context.Context) error {
			titles, err := client.FetchTitles(ctx, family, kind, tmdb.FetchOptions{})
			if err != nil {
				c.logger.WithError(err).WithField("shelf", name).Warn("Failed to fetch home shelf")
				return nil
			}
			*dst = filterTitles(titles)
			return nil
		})
	}

	shelf("trending_movies", models.FamilyTrending, models.MediaTypeMovie, &content.TrendingMovies)
	shelf("trending_tv", models.FamilyTrending, models.MediaTypeTV, &content.TrendingTV)
	shelf("top_rated_movies", models.FamilyTopRated, models.MediaTypeMovie, &content.TopRatedMovies)
	shelf("top_rated_tv", models.FamilyTopRated, models.MediaTypeTV, &content.TopRatedTV)
	shelf("now_playing_movies", models.FamilyNowPlaying, models.MediaTypeMovie, &content.NowPlaying)
	shelf("popular_movies", models.FamilyPopular, models.MediaTypeMovie, &content.PopularMovies)
	shelf("popular_tv", models.FamilyPopular, models.MediaTypeTV, &content.PopularTV)
	shelf("airing_today_tv", models.FamilyAiringToday, models.MediaTypeTV, &content.AiringTodayTV)
	shelf("on_the_air_tv", models.FamilyOnTheAir, models.MediaTypeTV, &content.OnTheAirTV)

	p.Go(func(ctx context.Context) error {
		titles, err := client.FetchTitles(ctx, models.FamilyUpcoming, models.MediaTypeMovie, tmdb.FetchOptions{})
		if err != nil {
			c.logger.WithError(err).Warn("Failed to fetch upcoming movies")
			return nil
		}
		content.UpcomingMovies = futureTitles(filterTitles(titles))
		return nil
	})

	p.Go(func(ctx context.Context) error {
		people, err := client.FetchPopularPeople(ctx, 1)
		if err != nil {
			c.logger.WithError(err).Warn("Failed to fetch trending people")
			return nil
		}
		kept := make([]models.Person, 0, len(people))
		for _, person := range people {
			if person.ProfilePath != "" && person.Name != "" {
				kept = append(kept, person)
			}
		}
		content.TrendingPeople = kept
		return nil
	})

	// Branches never return errors, so Wait only reports ctx cancellation
	_ = p.Wait()

	content.Featured = interleaveFeatured(content.TrendingMovies, content.TrendingTV)
	return content
}

// futureTitles keeps only releases strictly after today
func futureTitles(titles []*models.Title) []*models.Title {
	today := time.Now().Format("2006-01-02")
	future := make([]*models.Title, 0, len(titles))
	for _, t := range titles {
		if t.ReleaseDate > today {
			future = append(future, t)
		}
	}
	return future
}

// interleaveFeatured alternates trending movies and shows into one carousel
func interleaveFeatured(movies, shows []*models.Title) []*models.Title {
	longest := len(movies)
	if len(shows) > longest {
		longest = len(shows)
	}

	featured := make([]*models.Title, 0, featuredLimit)
	for i := 0; i < longest && len(featured) < featuredLimit; i++ {
		if i < len(movies) {
			featured = append(featured, movies[i])
		}
		if i < len(shows) && len(featured) < featuredLimit {
			featured = append(featured, shows[i])
		}
	}
	return featured
}
