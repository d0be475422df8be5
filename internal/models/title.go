package models

import "encoding/json"

// Title is the canonical media record decoded from TMDB list and detail
// responses. Movies populate Title, shows populate Name; exactly one of the
// two is meaningful per record and the media kind is inferred from that
// unless MediaType was set explicitly (multi search results carry it).
type Title struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	Runtime      int     `json:"runtime,omitempty"`
	Budget       int64   `json:"budget,omitempty"`
	Revenue      int64   `json:"revenue,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	Status       string  `json:"status,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
	VoteCount    int     `json:"vote_count,omitempty"`
	Genres       []Genre `json:"genres,omitempty"`

	// TV specific fields; NumberOfSeasons stays a pointer so a missing
	// field can be told apart from zero during season-cap filtering
	NumberOfSeasons *int     `json:"number_of_seasons,omitempty"`
	Seasons         []Season `json:"seasons,omitempty"`

	MediaType string `json:"media_type,omitempty"`

	// Credit specific fields (populated on combined-credits results)
	Character  string `json:"character,omitempty"`
	Job        string `json:"job,omitempty"`
	Department string `json:"department,omitempty"`

	BelongsToCollection *Collection  `json:"belongs_to_collection,omitempty"`
	CreatedBy           []Creator    `json:"created_by,omitempty"`
	Images              *TitleImages `json:"images,omitempty"`

	// Populated by enrichment after the initial decode
	Certification   string  `json:"certification,omitempty"`
	CriticsScore    int     `json:"critics_score,omitempty"`
	AudienceScore   int     `json:"audience_score,omitempty"`
	LetterboxdScore float64 `json:"letterboxd_score,omitempty"`
}

// UnmarshalJSON coalesces the per-kind date field names (release_date for
// movies, first_air_date for shows) into ReleaseDate.
func (t *Title) UnmarshalJSON(data []byte) error {
	type alias Title
	aux := struct {
		*alias
		FirstAirDate string `json:"first_air_date"`
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if t.ReleaseDate == "" {
		t.ReleaseDate = aux.FirstAirDate
	}
	return nil
}

// Kind returns the media kind, inferred from which display name field is
// populated when the record does not carry an explicit media type.
func (t *Title) Kind() MediaType {
	switch t.MediaType {
	case string(MediaTypeMovie):
		return MediaTypeMovie
	case string(MediaTypeTV):
		return MediaTypeTV
	}
	if t.Name != "" {
		return MediaTypeTV
	}
	return MediaTypeMovie
}

// DisplayName returns the populated display name field
func (t *Title) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Title
}

// Genre is a TMDB genre reference
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Collection is an optional parent franchise reference
type Collection struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	PosterPath   string `json:"poster_path,omitempty"`
	BackdropPath string `json:"backdrop_path,omitempty"`
}

// Creator identifies a show creator from the created_by block
type Creator struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Season summarizes one season of a show
type Season struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	SeasonNumber int    `json:"season_number"`
	EpisodeCount int    `json:"episode_count,omitempty"`
	PosterPath   string `json:"poster_path,omitempty"`
}

// Episode is a single episode record
type Episode struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Overview      string `json:"overview,omitempty"`
	StillPath     string `json:"still_path,omitempty"`
	EpisodeNumber int    `json:"episode_number"`
	SeasonNumber  int    `json:"season_number"`
	AirDate       string `json:"air_date,omitempty"`
}

// TitleImages holds the logo/backdrop variants from the images sub-resource
type TitleImages struct {
	Logos     []ImageInfo `json:"logos,omitempty"`
	Backdrops []ImageInfo `json:"backdrops,omitempty"`
}

// ImageInfo describes one image variant
type ImageInfo struct {
	FilePath    string  `json:"file_path"`
	AspectRatio float64 `json:"aspect_ratio,omitempty"`
	Width       int     `json:"width,omitempty"`
	Height      int     `json:"height,omitempty"`
	Language    string  `json:"iso_639_1,omitempty"`
	VoteAverage float64 `json:"vote_average,omitempty"`
}

// Cast is an acting credit keyed by person id
type Cast struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character,omitempty"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// Crew is a production credit; Job classifies Director vs Creator roles
type Crew struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// CreditsResponse is the credits sub-resource wrapper
type CreditsResponse struct {
	ID   int    `json:"id,omitempty"`
	Cast []Cast `json:"cast"`
	Crew []Crew `json:"crew"`
}

// Review is a user review record
type Review struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	URL       string `json:"url,omitempty"`
}

// Video is a trailer/clip reference
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Person is a people-list entry
type Person struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	ProfilePath        string `json:"profile_path,omitempty"`
	KnownForDepartment string `json:"known_for_department,omitempty"`
}

// PersonDetail extends Person with biography data
type PersonDetail struct {
	Person
	Biography    string `json:"biography,omitempty"`
	Birthday     string `json:"birthday,omitempty"`
	Deathday     string `json:"deathday,omitempty"`
	PlaceOfBirth string `json:"place_of_birth,omitempty"`
}

// TitleList is the standard paged results wrapper
type TitleList struct {
	Page         int      `json:"page,omitempty"`
	Results      []*Title `json:"results"`
	TotalPages   int      `json:"total_pages,omitempty"`
	TotalResults int      `json:"total_results,omitempty"`
}

// PersonList is the paged people results wrapper
type PersonList struct {
	Results []Person `json:"results"`
}

// VideoResponse wraps the videos sub-resource
type VideoResponse struct {
	Results []Video `json:"results"`
}

// ReviewResponse wraps the reviews sub-resource
type ReviewResponse struct {
	Results []Review `json:"results"`
}

// ProviderItem is one streaming offer within a region
type ProviderItem struct {
	ProviderID      int    `json:"provider_id"`
	ProviderName    string `json:"provider_name"`
	LogoPath        string `json:"logo_path,omitempty"`
	DisplayPriority int    `json:"display_priority"`
}

// ProviderRegion groups offers for one country by monetization model
type ProviderRegion struct {
	Link     string         `json:"link,omitempty"`
	Flatrate []ProviderItem `json:"flatrate,omitempty"`
	Rent     []ProviderItem `json:"rent,omitempty"`
	Buy      []ProviderItem `json:"buy,omitempty"`
}

// ProviderResponse maps region codes to their availability blocks
type ProviderResponse struct {
	Results map[string]ProviderRegion `json:"results"`
}

// SeasonDetail is the season endpoint response with appended credits
type SeasonDetail struct {
	ID       int              `json:"id,omitempty"`
	Episodes []Episode        `json:"episodes"`
	Credits  *CreditsResponse `json:"credits,omitempty"`
}

// CombinedCredits is a person's merged movie and TV filmography
type CombinedCredits struct {
	Cast []*Title `json:"cast"`
	Crew []*Title `json:"crew"`
}

// Country is a configuration list entry; wire fields keep their upstream
// names so the list decodes without key conversion
type Country struct {
	Code        string `json:"iso_3166_1"`
	EnglishName string `json:"english_name"`
	NativeName  string `json:"native_name,omitempty"`
}

// Language is a configuration list entry
type Language struct {
	Code        string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
	Name        string `json:"name,omitempty"`
}

// CategorySection is a named shelf of titles built per discovery request
type CategorySection struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Items    []*Title `json:"items"`
}
