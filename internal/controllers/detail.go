package controllers

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/rsrkatangur0811/watchman/internal/models"
	"github.com/rsrkatangur0811/watchman/internal/services/tmdb"
)

// DetailContent is the fully-enriched detail view of one title
type DetailContent struct {
	Title           *models.Title         `json:"title"`
	Certification   string                `json:"certification"`
	Providers       []models.ProviderItem `json:"providers,omitempty"`
	Cast            []models.Cast         `json:"cast,omitempty"`
	Crew            []models.Crew         `json:"crew,omitempty"`
	Videos          []models.Video        `json:"videos,omitempty"`
	Reviews         []models.Review       `json:"reviews,omitempty"`
	Recommendations []*models.Title       `json:"recommendations,omitempty"`
	Seasons         []models.Season       `json:"seasons,omitempty"`
	Images          *models.TitleImages   `json:"images,omitempty"`
	DirectorID      int                   `json:"director_id,omitempty"`
	DirectorName    string                `json:"director_name,omitempty"`
	CollectionID    int                   `json:"collection_id,omitempty"`
	CollectionName  string                `json:"collection_name,omitempty"`
}

// RelatedContent carries the secondary enrichment for a detail view
type RelatedContent struct {
	DirectorCredits []*models.Title `json:"director_credits,omitempty"`
	CollectionParts []*models.Title `json:"collection_parts,omitempty"`
}

// SeasonContent is one season's episodes with the merged cast
type SeasonContent struct {
	Episodes []models.Episode `json:"episodes"`
	Cast     []models.Cast    `json:"cast,omitempty"`
}

// DetailController assembles title detail views
type DetailController struct {
	tmdb   *tmdb.Service
	scores tmdb.ScoreSynthesizer
	region string
	logger *logrus.Logger
}

// NewDetailController creates the detail controller. region selects which
// country's streaming offers are shown.
func NewDetailController(service *tmdb.Service, scores tmdb.ScoreSynthesizer, region string, logger *logrus.Logger) *DetailController {
	return &DetailController{tmdb: service, scores: scores, region: region, logger: logger}
}

// GetDetail fetches the combined envelope and extracts the detail view.
// Secondary enrichment (director filmography, franchise siblings) is warmed
// in the background so a follow-up Related call is a cache hit.
func (c *DetailController) GetDetail(ctx context.Context, kind models.MediaType, id int) (*DetailContent, error) {
	envelope, err := c.tmdb.FetchFullTitle(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	title := envelope.ToTitle()
	title.Certification = envelope.Certification()
	c.scores.Apply(title)

	content := &DetailContent{
		Title:         title,
		Certification: title.Certification,
		Providers:     envelope.Providers(c.region),
		Seasons:       title.Seasons,
		Images:        title.Images,
	}
	if envelope.Credits != nil {
		content.Cast = envelope.Credits.Cast
		content.Crew = envelope.Credits.Crew
	}
	if envelope.Videos != nil {
		content.Videos = envelope.Videos.Results
	}
	if envelope.Reviews != nil {
		content.Reviews = envelope.Reviews.Results
	}
	if envelope.Recommendations != nil {
		content.Recommendations = filterTitles(envelope.Recommendations.Results)
	}
	if crew, ok := keyCreator(kind, content.Crew); ok {
		content.DirectorID = crew.ID
		content.DirectorName = crew.Name
	}
	if title.BelongsToCollection != nil {
		content.CollectionID = title.BelongsToCollection.ID
		content.CollectionName = title.BelongsToCollection.Name
	}

	c.warmRelated(content.DirectorID, content.CollectionID)
	return content, nil
}

// keyCreator finds the credit that anchors the "more from" shelf: the first
// Director for movies, the first Executive Producer or Creator for shows
func keyCreator(kind models.MediaType, crew []models.Crew) (models.Crew, bool) {
	for _, member := range crew {
		if kind == models.MediaTypeMovie {
			if member.Job == "Director" {
				return member, true
			}
			continue
		}
		if member.Job == "Executive Producer" || member.Job == "Creator" {
			return member, true
		}
	}
	return models.Crew{}, false
}

// warmRelated populates the enrichment caches without blocking the detail
// response; failures only lose the warm-up
func (c *DetailController) warmRelated(directorID, collectionID int) {
	if directorID == 0 && collectionID == 0 {
		return
	}
	go func() {
		ctx := c.tmdb.Lifetime()
		if directorID != 0 {
			if _, err := c.tmdb.DirectorCredits(ctx, directorID); err != nil {
				c.logger.WithError(err).WithField("person_id", directorID).Debug("Director credits warm-up failed")
			}
		}
		if collectionID != 0 {
			if _, err := c.tmdb.CollectionParts(ctx, collectionID); err != nil {
				c.logger.WithError(err).WithField("collection_id", collectionID).Debug("Collection warm-up failed")
			}
		}
	}()
}

// Related fetches the secondary enrichment for one title. Both parts are
// optional; a failed part is logged and omitted rather than failing the call.
func (c *DetailController) Related(ctx context.Context, directorID, collectionID, excludeTitleID int) *RelatedContent {
	related := &RelatedContent{}

	if directorID != 0 {
		credits, err := c.tmdb.DirectorCredits(ctx, directorID)
		if err != nil {
			c.logger.WithError(err).WithField("person_id", directorID).Warn("Failed to fetch director credits")
		} else {
			related.DirectorCredits = filterTitles(credits)
		}
	}

	if collectionID != 0 {
		parts, err := c.tmdb.CollectionParts(ctx, collectionID)
		if err != nil {
			c.logger.WithError(err).WithField("collection_id", collectionID).Warn("Failed to fetch collection")
		} else {
			kept := make([]*models.Title, 0, len(parts))
			for _, t := range filterTitles(parts) {
				if t.ID != excludeTitleID {
					kept = append(kept, t)
				}
			}
			related.CollectionParts = kept
		}
	}

	return related
}

// GetSeason fetches one season and merges its cast with the show-level
// cast: series billing order comes first, then season-only actors in their
// season billing order.
func (c *DetailController) GetSeason(ctx context.Context, showID, season int, showCast []models.Cast) (*SeasonContent, error) {
	detail, err := c.tmdb.SeasonDetails(ctx, showID, season)
	if err != nil {
		return nil, err
	}

	content := &SeasonContent{Episodes: detail.Episodes}

	merged := make([]models.Cast, 0, len(showCast))
	seen := make(map[int]struct{}, len(showCast))
	for _, member := range showCast {
		merged = append(merged, member)
		seen[member.ID] = struct{}{}
	}
	if detail.Credits != nil {
		for _, member := range detail.Credits.Cast {
			if _, dup := seen[member.ID]; dup {
				continue
			}
			seen[member.ID] = struct{}{}
			merged = append(merged, member)
		}
	}
	content.Cast = merged

	return content, nil
}
