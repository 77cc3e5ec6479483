package services

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/devdev758/indiainflation/internal/core/domain"
	"github.com/devdev758/indiainflation/internal/core/ports/driven"
	"github.com/devdev758/indiainflation/internal/core/ports/driving"
	"github.com/devdev758/indiainflation/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// queryCacheCapacity bounds the number of cached lookups. Eviction is
// oldest-inserted-first, not access-order.
const queryCacheCapacity = 100

// defaultSearchLimit caps the number of results per lookup.
const defaultSearchLimit = 20

// queryEntry is one in-flight or completed lookup. Storing the lookup
// itself (not just the result) gives concurrent callers for the same
// key exactly one outbound fetch.
type queryEntry struct {
	done    chan struct{}
	results []domain.SearchResult
	err     error
}

// SearchService answers dataset lookups against the search
// collaborator, deduplicating concurrent and repeated queries through
// a bounded insertion-order cache.
type SearchService struct {
	index   driven.SearchIndex
	limiter *rate.Limiter

	mu       sync.Mutex
	entries  map[string]*queryEntry
	order    []string
	capacity int
}

// NewSearchService creates a search service over a collaborator index.
// The limiter is optional (can be nil) and throttles outbound lookups.
func NewSearchService(index driven.SearchIndex, limiter *rate.Limiter) *SearchService {
	return &SearchService{
		index:    index,
		limiter:  limiter,
		entries:  make(map[string]*queryEntry),
		capacity: queryCacheCapacity,
	}
}

// Search returns items matching the query, serving repeated lookups
// from the cache. The query is trimmed and lowercased before keying so
// "Rice" and " rice " share a slot.
func (s *SearchService) Search(ctx context.Context, query, category string) ([]domain.SearchResult, error) {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return nil, domain.ErrInvalidInput
	}
	key := normalized + "\x00" + strings.ToLower(strings.TrimSpace(category))

	s.mu.Lock()
	if entry, ok := s.entries[key]; ok {
		s.mu.Unlock()
		select {
		case <-entry.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return entry.results, entry.err
	}

	entry := &queryEntry{done: make(chan struct{})}
	s.entries[key] = entry
	s.order = append(s.order, key)
	s.evictOldestLocked()
	s.mu.Unlock()

	entry.results, entry.err = s.lookup(ctx, normalized, category)
	if entry.err != nil {
		// Drop the failed entry so a transient failure does not poison
		// future lookups for this key.
		s.mu.Lock()
		if s.entries[key] == entry {
			delete(s.entries, key)
			s.removeFromOrderLocked(key)
		}
		s.mu.Unlock()
	}
	close(entry.done)

	return entry.results, entry.err
}

// lookup performs the outbound collaborator call.
func (s *SearchService) lookup(ctx context.Context, query, category string) ([]domain.SearchResult, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	logger.Debug("search: querying collaborator for %q (category=%q)", query, category)
	return s.index.Search(ctx, query, strings.ToLower(strings.TrimSpace(category)), defaultSearchLimit)
}

// ClearCache drops all cached lookups.
func (s *SearchService) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*queryEntry)
	s.order = nil
}

// evictOldestLocked removes oldest-inserted entries once the bound is
// exceeded. Caller must hold the lock.
func (s *SearchService) evictOldestLocked() {
	for len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, oldest)
		logger.Debug("search: evicted cached query %q", oldest)
	}
}

// removeFromOrderLocked drops one key from the insertion-order list.
// Caller must hold the lock.
func (s *SearchService) removeFromOrderLocked(key string) {
	for i, candidate := range s.order {
		if candidate == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
