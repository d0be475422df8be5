package models

import (
	"encoding/json"
	"sort"
)

// TitleDetailResponse is the combined envelope returned by the append-pattern
// detail fetch: core title fields plus every appended sub-resource. All
// sub-resources are optional so a failed append never fails the whole decode.
type TitleDetailResponse struct {
	Title

	Credits         *CreditsResponse  `json:"credits,omitempty"`
	Videos          *VideoResponse    `json:"videos,omitempty"`
	Reviews         *ReviewResponse   `json:"reviews,omitempty"`
	Recommendations *TitleList        `json:"recommendations,omitempty"`
	ReleaseDates    *ReleaseDates     `json:"release_dates,omitempty"`
	ContentRatings  *ContentRatings   `json:"content_ratings,omitempty"`
	WatchProviders  *ProviderResponse `json:"watch/providers,omitempty"`
}

// UnmarshalJSON decodes the core fields and the appended sub-resources in
// two passes; the embedded Title's unmarshaler would otherwise swallow the
// appended keys.
func (r *TitleDetailResponse) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &r.Title); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	// A malformed individual append must not fail the envelope, so each
	// sub-resource decodes independently and drops on error.
	decodeAppend(raw, "credits", &r.Credits)
	decodeAppend(raw, "videos", &r.Videos)
	decodeAppend(raw, "reviews", &r.Reviews)
	decodeAppend(raw, "recommendations", &r.Recommendations)
	decodeAppend(raw, "release_dates", &r.ReleaseDates)
	decodeAppend(raw, "content_ratings", &r.ContentRatings)
	decodeAppend(raw, "watch/providers", &r.WatchProviders)
	return nil
}

func decodeAppend[T any](raw map[string]json.RawMessage, key string, dst **T) {
	msg, ok := raw[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(msg, &v); err != nil {
		return
	}
	*dst = &v
}

// ToTitle extracts the core title record from the envelope
func (r *TitleDetailResponse) ToTitle() *Title {
	t := r.Title
	return &t
}

// Certification resolves the embedded certification data, movie release
// dates first, then show content ratings.
func (r *TitleDetailResponse) Certification() string {
	if r.ReleaseDates != nil {
		if cert := r.ReleaseDates.Certification(); cert != certNotRated {
			return cert
		}
	}
	if r.ContentRatings != nil {
		return r.ContentRatings.Certification()
	}
	return certNotRated
}

// Providers returns the flatrate offers for one region, ordered by the
// provider-supplied display priority. Rent and buy offers are ignored.
func (r *TitleDetailResponse) Providers(region string) []ProviderItem {
	if r.WatchProviders == nil {
		return nil
	}
	block, ok := r.WatchProviders.Results[region]
	if !ok || len(block.Flatrate) == 0 {
		return nil
	}
	providers := make([]ProviderItem, len(block.Flatrate))
	copy(providers, block.Flatrate)
	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].DisplayPriority < providers[j].DisplayPriority
	})
	return providers
}

const certNotRated = "NR"

// ReleaseDates is the movie certification sub-resource: per-country groups
// of release entries with a type code and certification string
type ReleaseDates struct {
	Results []ReleaseDateCountry `json:"results"`
}

// ReleaseDateCountry groups release entries for one country
type ReleaseDateCountry struct {
	CountryCode  string        `json:"iso_3166_1"`
	ReleaseDates []ReleaseDate `json:"release_dates"`
}

// ReleaseDate is one release entry; type 3 is theatrical, 4 is digital
type ReleaseDate struct {
	Certification string `json:"certification"`
	Type          int    `json:"type"`
}

// Certification resolves a movie certification with a fixed precedence:
// within the first US group prefer theatrical/digital entries with a
// non-empty certification, then any non-empty US entry, then any country.
// Returns "NR" when nothing qualifies.
func (r *ReleaseDates) Certification() string {
	var us *ReleaseDateCountry
	for i := range r.Results {
		if r.Results[i].CountryCode == "US" {
			us = &r.Results[i]
			break
		}
	}
	if us != nil {
		for _, rd := range us.ReleaseDates {
			if (rd.Type == 3 || rd.Type == 4) && rd.Certification != "" {
				return rd.Certification
			}
		}
		for _, rd := range us.ReleaseDates {
			if rd.Certification != "" {
				return rd.Certification
			}
		}
	}
	for _, country := range r.Results {
		for _, rd := range country.ReleaseDates {
			if rd.Certification != "" {
				return rd.Certification
			}
		}
	}
	return certNotRated
}

// ContentRatings is the show certification sub-resource
type ContentRatings struct {
	Results []ContentRating `json:"results"`
}

// ContentRating is one per-country show rating
type ContentRating struct {
	CountryCode string `json:"iso_3166_1"`
	Rating      string `json:"rating"`
}

// Certification resolves a show rating: the US entry when it has one,
// otherwise the first non-empty rating, otherwise "NR".
func (r *ContentRatings) Certification() string {
	for _, cr := range r.Results {
		if cr.CountryCode == "US" && cr.Rating != "" {
			return cr.Rating
		}
	}
	for _, cr := range r.Results {
		if cr.Rating != "" {
			return cr.Rating
		}
	}
	return certNotRated
}
