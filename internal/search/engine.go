package search

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"leadscout-engine/internal/domain"
)

const defaultWorkers = 5

// defaultPageStarts covers ten result pages per backend.
var defaultPageStarts = []int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}

// seenSet deduplicates result URLs across every backend and page of one
// run. It is created per run and owned by the engine; mutation is
// serialized so concurrent merges can never double-process a URL.
type seenSet struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

func newSeenSet() *seenSet {
	return &seenSet{urls: make(map[string]struct{})}
}

// Add reports whether u was newly added. First-seen wins; later
// duplicates are silently dropped by the caller.
func (s *seenSet) Add(u string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.urls[u]; ok {
		return false
	}
	s.urls[u] = struct{}{}
	return true
}

// Engine fans an ICP query out across its backends and page offsets
// with bounded concurrency, deduplicates by result URL, and enriches
// each unique result as batches complete.
type Engine struct {
	Backends []Backend
	Enricher *Enricher

	// Workers bounds in-flight backend calls; zero means the default 5.
	Workers int
	// PageStarts overrides the pagination offsets; nil means 0,10..90.
	PageStarts []int
}

// Run executes one search run. Backend failures degrade to zero results
// for that call; nothing here aborts the run. The returned partition has
// no ordering guarantee beyond "every unique URL was processed once".
func (e *Engine) Run(ctx context.Context, q domain.Query) domain.Partition {
	query := BuildQuery(q)
	log.Printf("[search] query: %s", query)

	workers := e.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	starts := e.PageStarts
	if starts == nil {
		starts = defaultPageStarts
	}

	results := make(chan []Result, len(e.Backends)*len(starts))

	var g errgroup.Group
	g.SetLimit(workers)

	for _, b := range e.Backends {
		for _, start := range starts {
			b, start := b, start
			g.Go(func() error {
				res, err := b.Search(ctx, query, start)
				if err != nil {
					// best-effort: don't cancel sibling calls
					log.Printf("[search:%s] start=%d: %v", b.Name(), start, err)
					return nil
				}
				results <- res
				return nil
			})
		}
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	seen := newSeenSet()
	var part domain.Partition

	// Batches arrive in completion order. Enrichment itself is
	// sequential, one target at a time.
	for batch := range results {
		for _, r := range batch {
			if r.URL == "" || !seen.Add(r.URL) {
				continue
			}
			part.Add(e.Enricher.Enrich(ctx, r))
		}
	}

	log.Printf("[search] done: %d with contact info, %d without",
		len(part.With), len(part.Without))
	return part
}
