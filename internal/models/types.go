package models

// MediaType represents the type of media (movie or tv show)
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
	MediaTypeMulti MediaType = "multi"
)

// Family represents a TMDB list endpoint family sharing a URL-building strategy
type Family string

const (
	FamilyTrending    Family = "trending"
	FamilyTopRated    Family = "top_rated"
	FamilyUpcoming    Family = "upcoming"
	FamilyNowPlaying  Family = "now_playing"
	FamilyPopular     Family = "popular"
	FamilyAiringToday Family = "airing_today"
	FamilyOnTheAir    Family = "on_the_air"
	FamilySearch      Family = "search"
	FamilyDiscover    Family = "discover"
)

// SentinelRating is an upstream vote average that marks unreliable data.
// Titles carrying it are excluded from every list-producing operation.
const SentinelRating = 10.0
