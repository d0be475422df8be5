package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rsrkatangur0811/watchman/internal/models"
)

const (
	posterBaseURL   = "https://image.tmdb.org/t/p/w500"
	defaultLanguage = "en-US"
)

// FetchOptions narrows a list request. Zero values mean unset; Page defaults
// to 1. Discover-only filters are ignored by the other families.
type FetchOptions struct {
	Query string
	Year  int
	Page  int

	// Discover filters
	GenreID        int
	Keywords       string
	ExcludeGenres  string
	Language       string
	OriginCountry  string
	VoteAverageMin float64
	VoteCountMin   int
	VoteCountMax   int
	ReleaseDateGte string
	ReleaseDateLte string
	RuntimeLte     int
	SortBy         string
}

// buildListURL constructs a list endpoint URL for one (family, kind) pair.
// Trending maps the multi kind to the "all" path segment; search and discover
// take their filters from opts.
func (c *Client) buildListURL(family models.Family, kind models.MediaType, opts FetchOptions) (string, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", defaultLanguage)
	params.Set("page", strconv.Itoa(page))

	var path string
	switch family {
	case models.FamilyTrending:
		segment := string(kind)
		if kind == models.MediaTypeMulti {
			segment = "all"
		}
		path = fmt.Sprintf("/3/trending/%s/day", segment)
	case models.FamilyTopRated, models.FamilyUpcoming, models.FamilyNowPlaying,
		models.FamilyPopular, models.FamilyAiringToday, models.FamilyOnTheAir:
		if kind == models.MediaTypeMulti {
			return "", fmt.Errorf("%w: %s does not support multi", ErrURLBuild, family)
		}
		path = fmt.Sprintf("/3/%s/%s", kind, family)
	case models.FamilySearch:
		if opts.Query == "" {
			return "", fmt.Errorf("%w: search requires a query", ErrURLBuild)
		}
		path = fmt.Sprintf("/3/search/%s", kind)
		params.Set("query", opts.Query)
		params.Set("include_adult", "false")
	case models.FamilyDiscover:
		if kind == models.MediaTypeMulti {
			return "", fmt.Errorf("%w: discover does not support multi", ErrURLBuild)
		}
		path = fmt.Sprintf("/3/discover/%s", kind)
		applyDiscoverFilters(params, kind, opts)
	default:
		return "", fmt.Errorf("%w: unknown family %q", ErrURLBuild, family)
	}

	if opts.Year > 0 && family == models.FamilyDiscover {
		if kind == models.MediaTypeMovie {
			params.Set("primary_release_year", strconv.Itoa(opts.Year))
		} else {
			params.Set("first_air_date_year", strconv.Itoa(opts.Year))
		}
	}

	return c.baseURL + path + "?" + params.Encode(), nil
}

func applyDiscoverFilters(params url.Values, kind models.MediaType, opts FetchOptions) {
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "popularity.desc"
	}
	params.Set("sort_by", sortBy)

	if opts.GenreID > 0 {
		params.Set("with_genres", strconv.Itoa(opts.GenreID))
	}
	if opts.Keywords != "" {
		params.Set("with_keywords", opts.Keywords)
	}
	if opts.ExcludeGenres != "" {
		params.Set("without_genres", opts.ExcludeGenres)
	}
	if opts.Language != "" {
		params.Set("with_original_language", opts.Language)
	}
	if opts.OriginCountry != "" {
		params.Set("with_origin_country", opts.OriginCountry)
	}
	if opts.VoteAverageMin > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(opts.VoteAverageMin, 'f', -1, 64))
	}
	if opts.VoteCountMin > 0 {
		params.Set("vote_count.gte", strconv.Itoa(opts.VoteCountMin))
	}
	if opts.VoteCountMax > 0 {
		params.Set("vote_count.lte", strconv.Itoa(opts.VoteCountMax))
	}
	if opts.RuntimeLte > 0 {
		params.Set("with_runtime.lte", strconv.Itoa(opts.RuntimeLte))
	}

	dateField := "primary_release_date"
	if kind == models.MediaTypeTV {
		dateField = "first_air_date"
	}
	if opts.ReleaseDateGte != "" {
		params.Set(dateField+".gte", opts.ReleaseDateGte)
	}
	if opts.ReleaseDateLte != "" {
		params.Set(dateField+".lte", opts.ReleaseDateLte)
	}
}

// FetchTitles retrieves one page of a list endpoint and resolves poster paths
func (c *Client) FetchTitles(ctx context.Context, family models.Family, kind models.MediaType, opts FetchOptions) ([]*models.Title, error) {
	list, err := c.FetchTitlePage(ctx, family, kind, opts)
	if err != nil {
		return nil, err
	}
	return list.Results, nil
}

// FetchTitlePage retrieves one page of a list endpoint together with its
// paging metadata
func (c *Client) FetchTitlePage(ctx context.Context, family models.Family, kind models.MediaType, opts FetchOptions) (*models.TitleList, error) {
	endpoint, err := c.buildListURL(family, kind, opts)
	if err != nil {
		return nil, err
	}

	var list models.TitleList
	if err := c.getJSON(ctx, endpoint, &list); err != nil {
		return nil, fmt.Errorf("failed to fetch %s/%s titles: %w", family, kind, err)
	}

	for _, title := range list.Results {
		resolvePosterPath(title)
	}
	return &list, nil
}

// resolvePosterPath rewrites a relative poster path to a full image URL
func resolvePosterPath(t *models.Title) {
	if t.PosterPath == "" || strings.Contains(t.PosterPath, "http") {
		return
	}
	path := t.PosterPath
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	t.PosterPath = posterBaseURL + path
}

// FetchTitleDetails retrieves the bare detail record for one title without
// any appended sub-resources
func (c *Client) FetchTitleDetails(ctx context.Context, kind models.MediaType, id int) (*models.Title, error) {
	endpoint := fmt.Sprintf("%s/3/%s/%d?api_key=%s&language=%s", c.baseURL, kind, id, c.apiKey, defaultLanguage)

	var title models.Title
	if err := c.getJSON(ctx, endpoint, &title); err != nil {
		return nil, fmt.Errorf("failed to fetch %s %d: %w", kind, id, err)
	}
	resolvePosterPath(&title)
	return &title, nil
}

// FetchMovieCertification retrieves and resolves the certification for a movie
func (c *Client) FetchMovieCertification(ctx context.Context, id int) (string, error) {
	endpoint := fmt.Sprintf("%s/3/movie/%d/release_dates?api_key=%s", c.baseURL, id, c.apiKey)

	var dates models.ReleaseDates
	if err := c.getJSON(ctx, endpoint, &dates); err != nil {
		return "", fmt.Errorf("failed to fetch movie %d release dates: %w", id, err)
	}
	return dates.Certification(), nil
}

// FetchTVCertification retrieves and resolves the rating for a show
func (c *Client) FetchTVCertification(ctx context.Context, id int) (string, error) {
	endpoint := fmt.Sprintf("%s/3/tv/%d/content_ratings?api_key=%s", c.baseURL, id, c.apiKey)

	var ratings models.ContentRatings
	if err := c.getJSON(ctx, endpoint, &ratings); err != nil {
		return "", fmt.Errorf("failed to fetch tv %d content ratings: %w", id, err)
	}
	return ratings.Certification(), nil
}

// FetchPopularPeople retrieves one page of trending people
func (c *Client) FetchPopularPeople(ctx context.Context, page int) ([]models.Person, error) {
	if page < 1 {
		page = 1
	}
	endpoint := fmt.Sprintf("%s/3/person/popular?api_key=%s&language=%s&page=%d", c.baseURL, c.apiKey, defaultLanguage, page)

	var list models.PersonList
	if err := c.getJSON(ctx, endpoint, &list); err != nil {
		return nil, fmt.Errorf("failed to fetch popular people: %w", err)
	}
	return list.Results, nil
}

// SearchPeople searches people by name; an empty query returns no results
func (c *Client) SearchPeople(ctx context.Context, query string) ([]models.Person, error) {
	if query == "" {
		return nil, nil
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", defaultLanguage)
	params.Set("query", query)
	params.Set("include_adult", "false")
	endpoint := c.baseURL + "/3/search/person?" + params.Encode()

	var list models.PersonList
	if err := c.getJSON(ctx, endpoint, &list); err != nil {
		return nil, fmt.Errorf("failed to search people: %w", err)
	}
	return list.Results, nil
}

// FetchPersonDetail retrieves one person's biography record
func (c *Client) FetchPersonDetail(ctx context.Context, id int) (*models.PersonDetail, error) {
	endpoint := fmt.Sprintf("%s/3/person/%d?api_key=%s&language=%s", c.baseURL, id, c.apiKey, defaultLanguage)

	var person models.PersonDetail
	if err := c.getJSON(ctx, endpoint, &person); err != nil {
		return nil, fmt.Errorf("failed to fetch person %d: %w", id, err)
	}
	return &person, nil
}

// FetchCombinedCredits retrieves a person's merged movie and TV filmography
func (c *Client) FetchCombinedCredits(ctx context.Context, personID int) (*models.CombinedCredits, error) {
	endpoint := fmt.Sprintf("%s/3/person/%d/combined_credits?api_key=%s&language=%s", c.baseURL, personID, c.apiKey, defaultLanguage)

	var credits models.CombinedCredits
	if err := c.getJSON(ctx, endpoint, &credits); err != nil {
		return nil, fmt.Errorf("failed to fetch combined credits for person %d: %w", personID, err)
	}
	for _, title := range credits.Cast {
		resolvePosterPath(title)
	}
	for _, title := range credits.Crew {
		resolvePosterPath(title)
	}
	return &credits, nil
}

// FetchCollection retrieves a franchise collection with its member titles
func (c *Client) FetchCollection(ctx context.Context, collectionID int) (*models.TitleList, error) {
	endpoint := fmt.Sprintf("%s/3/collection/%d?api_key=%s&language=%s", c.baseURL, collectionID, c.apiKey, defaultLanguage)

	var body struct {
		Parts []*models.Title `json:"parts"`
	}
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return nil, fmt.Errorf("failed to fetch collection %d: %w", collectionID, err)
	}
	for _, title := range body.Parts {
		resolvePosterPath(title)
	}
	return &models.TitleList{Results: body.Parts}, nil
}

// FetchSeasonDetail retrieves one season with its episodes and credits
func (c *Client) FetchSeasonDetail(ctx context.Context, showID, season int) (*models.SeasonDetail, error) {
	endpoint := fmt.Sprintf("%s/3/tv/%d/season/%d?api_key=%s&language=%s&append_to_response=credits",
		c.baseURL, showID, season, c.apiKey, defaultLanguage)

	var detail models.SeasonDetail
	if err := c.getJSON(ctx, endpoint, &detail); err != nil {
		return nil, fmt.Errorf("failed to fetch tv %d season %d: %w", showID, season, err)
	}
	return &detail, nil
}

// FetchEpisode retrieves a single episode record
func (c *Client) FetchEpisode(ctx context.Context, showID, season, episode int) (*models.Episode, error) {
	endpoint := fmt.Sprintf("%s/3/tv/%d/season/%d/episode/%d?api_key=%s&language=%s",
		c.baseURL, showID, season, episode, c.apiKey, defaultLanguage)

	var ep models.Episode
	if err := c.getJSON(ctx, endpoint, &ep); err != nil {
		return nil, fmt.Errorf("failed to fetch tv %d s%de%d: %w", showID, season, episode, err)
	}
	return &ep, nil
}

// FetchCountries retrieves the configuration country list
func (c *Client) FetchCountries(ctx context.Context) ([]models.Country, error) {
	endpoint := fmt.Sprintf("%s/3/configuration/countries?api_key=%s", c.baseURL, c.apiKey)

	var countries []models.Country
	if err := c.getJSON(ctx, endpoint, &countries); err != nil {
		return nil, fmt.Errorf("failed to fetch countries: %w", err)
	}
	return countries, nil
}

// FetchLanguages retrieves the configuration language list
func (c *Client) FetchLanguages(ctx context.Context) ([]models.Language, error) {
	endpoint := fmt.Sprintf("%s/3/configuration/languages?api_key=%s", c.baseURL, c.apiKey)

	var languages []models.Language
	if err := c.getJSON(ctx, endpoint, &languages); err != nil {
		return nil, fmt.Errorf("failed to fetch languages: %w", err)
	}
	return languages, nil
}

// FetchFullTitle retrieves the combined detail envelope for one title with
// every sub-resource appended in a single request. Movies append
// release_dates, shows append content_ratings.
func (c *Client) FetchFullTitle(ctx context.Context, kind models.MediaType, id int) (*models.TitleDetailResponse, error) {
	appends := []string{"credits", "images", "videos", "recommendations", "reviews", "watch/providers"}
	if kind == models.MediaTypeMovie {
		appends = append(appends, "release_dates")
	} else {
		appends = append(appends, "content_ratings")
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", defaultLanguage)
	params.Set("append_to_response", strings.Join(appends, ","))
	params.Set("include_image_language", "en,null")
	endpoint := fmt.Sprintf("%s/3/%s/%d?%s", c.baseURL, kind, id, params.Encode())

	var detail models.TitleDetailResponse
	if err := c.getJSON(ctx, endpoint, &detail); err != nil {
		return nil, fmt.Errorf("failed to fetch full %s %d: %w", kind, id, err)
	}
	resolvePosterPath(&detail.Title)
	if detail.Recommendations != nil {
		for _, title := range detail.Recommendations.Results {
			resolvePosterPath(title)
		}
	}
	return &detail, nil
}
