package tmdb

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/rsrkatangur0811/watchman/internal/models"
)

// ScoreSynthesizer fills in the external-rating fields of a title. The
// upstream API carries no critic or audience data, so the values are
// derived locally.
type ScoreSynthesizer interface {
	Apply(t *models.Title)
}

// RandomScoreSynthesizer derives plausible scores from the vote average:
// critics is the average on a 100 scale, audience trails it by a random
// 5-15 points, and the five-star score is the average halved minus a
// small random offset.
type RandomScoreSynthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomScoreSynthesizer seeds the synthesizer from the clock
func NewRandomScoreSynthesizer() *RandomScoreSynthesizer {
	return NewSeededScoreSynthesizer(time.Now().UnixNano())
}

// NewSeededScoreSynthesizer uses a fixed seed for reproducible output
func NewSeededScoreSynthesizer(seed int64) *RandomScoreSynthesizer {
	return &RandomScoreSynthesizer{rng: rand.New(rand.NewSource(seed))}
}

// Apply fills the score fields in place. Titles without a vote average are
// left untouched.
func (s *RandomScoreSynthesizer) Apply(t *models.Title) {
	if t.VoteAverage <= 0 {
		return
	}

	s.mu.Lock()
	audienceDrop := 5 + s.rng.Intn(11)
	starOffset := 0.1 + s.rng.Float64()*0.4
	s.mu.Unlock()

	critics := int(math.Round(t.VoteAverage * 10))
	audience := critics - audienceDrop
	if audience < 0 {
		audience = 0
	}

	t.CriticsScore = critics
	t.AudienceScore = audience
	t.LetterboxdScore = t.VoteAverage/2 - starOffset
}
