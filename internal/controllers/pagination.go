package controllers

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/rsrkatangur0811/watchman/internal/models"
)

// PageFetcher retrieves one page of titles for the paginator's standing query
type PageFetcher func(ctx context.Context, page int) ([]*models.Title, error)

// Paginator accumulates an infinite-scroll list: it deduplicates by title
// id in first-seen order, skips pages the rating filter empties out, and
// stamps every fetch with a generation so results from before a reset are
// discarded instead of applied.
type Paginator struct {
	logger *logrus.Logger

	mu         sync.Mutex
	fetch      PageFetcher
	page       int
	hasMore    bool
	inFlight   bool
	generation int
	seen       map[int]struct{}
	items      []*models.Title
}

// NewPaginator creates a paginator for one standing query
func NewPaginator(fetch PageFetcher, logger *logrus.Logger) *Paginator {
	return &Paginator{
		logger:  logger,
		fetch:   fetch,
		page:    1,
		hasMore: true,
		seen:    make(map[int]struct{}),
	}
}

// Reset swaps in a new standing query and clears the accumulated state.
// The generation bump invalidates any fetch still in flight.
func (p *Paginator) Reset(fetch PageFetcher) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.fetch = fetch
	p.page = 1
	p.hasMore = true
	p.inFlight = false
	p.generation++
	p.seen = make(map[int]struct{})
	p.items = nil
}

// Items returns a snapshot of the accumulated list
func (p *Paginator) Items() []*models.Title {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot := make([]*models.Title, len(p.items))
	copy(snapshot, p.items)
	return snapshot
}

// HasMore reports whether further pages may exist
func (p *Paginator) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// LoadMore fetches and appends the next page. It is a no-op while a fetch
// is in flight or after upstream exhaustion. A page whose items are all
// filtered out advances the counter and retries immediately rather than
// surfacing an empty page. A fetch error clears the in-flight flag so the
// same trigger can retry, without forcing hasMore false.
func (p *Paginator) LoadMore(ctx context.Context) error {
	p.mu.Lock()
	if p.inFlight || !p.hasMore {
		p.mu.Unlock()
		return nil
	}
	p.inFlight = true
	generation := p.generation
	fetch := p.fetch
	page := p.page
	p.mu.Unlock()

	for {
		raw, err := fetch(ctx, page)

		p.mu.Lock()
		if p.generation != generation {
			// A reset happened while the request was in flight
			p.mu.Unlock()
			return nil
		}
		if err != nil {
			p.inFlight = false
			p.mu.Unlock()
			p.logger.WithError(err).WithField("page", page).Warn("Failed to load page")
			return err
		}

		if len(raw) == 0 {
			p.hasMore = false
			p.inFlight = false
			p.mu.Unlock()
			return nil
		}

		filtered := filterTitles(raw)
		if len(filtered) == 0 {
			// Every item was filtered out; advance and retry so infinite
			// scroll does not stall on a hollow page
			page++
			p.page = page
			p.mu.Unlock()
			continue
		}

		for _, t := range filtered {
			if _, dup := p.seen[t.ID]; dup {
				continue
			}
			p.seen[t.ID] = struct{}{}
			p.items = append(p.items, t)
		}
		p.page = page + 1
		p.inFlight = false
		p.mu.Unlock()
		return nil
	}
}
