package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/mergington/activities/internal/catalog"
)

const maxRecentSearches = 10

// Relevance weights for full-query substring hits per field, plus the
// popularity multiplier. Scores order results and are never surfaced.
const (
	nameWeight        = 10.0
	descriptionWeight = 5.0
	categoryWeight    = 3.0
	popularityFactor  = 0.1
)

// Reader is the slice of the catalog the engine needs: an ordered read of
// every activity.
type Reader interface {
	List(ctx context.Context) ([]catalog.Activity, error)
}

// Result is the search response: the final count, the echoed query and
// filters, and the ordered activities.
type Result struct {
	Total   int                `json:"total"`
	Query   string             `json:"query"`
	Filters Filters            `json:"filters"`
	Results []catalog.Activity `json:"results"`
}

// Engine orchestrates free-text search, filtering, ranking, sorting, and
// suggestion tracking over a catalog. Construct one per catalog instance;
// there is no process-wide state.
type Engine struct {
	cat    Reader
	logger *slog.Logger

	mu      sync.RWMutex
	index   *Index
	options *optionSet
	recent  []string
}

// NewEngine creates an engine reading from the given catalog.
func NewEngine(cat Reader, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cat:     cat,
		logger:  logger,
		index:   NewIndex(),
		options: newOptionSet(),
	}
}

// IndexActivity adds one activity to the text index and registers its
// category and schedule as discoverable filter options.
func (e *Engine) IndexActivity(a catalog.Activity) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.index.Add(a)
	e.options.register(a)
}

// RegisterActivities indexes every activity currently in the catalog.
func (e *Engine) RegisterActivities(ctx context.Context) error {
	activities, err := e.cat.List(ctx)
	if err != nil {
		return fmt.Errorf("listing catalog: %w", err)
	}
	for _, a := range activities {
		e.IndexActivity(a)
	}
	e.logger.Debug("catalog indexed", "activities", len(activities))
	return nil
}

// Search runs the full query pipeline: text-index candidate selection,
// filtering, relevance ranking, and ordering.
//
// A blank query skips the text stage entirely and applies only the filters,
// preserving catalog order; blank queries are not recorded as recent
// searches. An explicit sort key overrides the default ordering on both
// paths.
func (e *Engine) Search(ctx context.Context, query string, f Filters, sortKey SortKey) (Result, error) {
	res := Result{Query: query, Filters: f, Results: []catalog.Activity{}}

	if strings.TrimSpace(query) == "" {
		matched, err := e.FilterActivities(ctx, f)
		if err != nil {
			return Result{}, err
		}
		sortActivities(matched, sortKey)
		res.Results = matched
		res.Total = len(matched)
		return res, nil
	}

	e.recordSearch(query)

	terms := strings.Fields(strings.ToLower(query))

	e.mu.RLock()
	candidates := e.index.Candidates(terms)
	e.mu.RUnlock()

	if len(candidates) == 0 {
		return res, nil
	}

	activities, err := e.cat.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("listing catalog: %w", err)
	}

	matched := make([]catalog.Activity, 0, len(candidates))
	for _, a := range activities {
		if _, ok := candidates[a.ID]; !ok {
			continue
		}
		if !f.Matches(a) {
			continue
		}
		matched = append(matched, a)
	}

	if sortKey != SortNone {
		sortActivities(matched, sortKey)
	} else {
		rankByRelevance(matched, query)
	}

	res.Results = matched
	res.Total = len(matched)
	return res, nil
}

// FilterActivities applies the filters to the whole catalog with no text
// search and no ranking. Catalog order is preserved.
func (e *Engine) FilterActivities(ctx context.Context, f Filters) ([]catalog.Activity, error) {
	activities, err := e.cat.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	if !f.Active() {
		return activities, nil
	}
	matched := make([]catalog.Activity, 0, len(activities))
	for _, a := range activities {
		if f.Matches(a) {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// RecentSearches returns a copy of the recent query list, most recent first.
func (e *Engine) RecentSearches() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, len(e.recent))
	copy(out, e.recent)
	return out
}

// FilterOptions returns the discoverable filter values seen so far.
func (e *Engine) FilterOptions() Options {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.options.snapshot()
}

// recordSearch promotes query to the front of the recent list, deduplicating
// and capping at maxRecentSearches.
func (e *Engine) recordSearch(query string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, q := range e.recent {
		if q == query {
			e.recent = append(e.recent[:i], e.recent[i+1:]...)
			break
		}
	}
	e.recent = append([]string{query}, e.recent...)
	if len(e.recent) > maxRecentSearches {
		e.recent = e.recent[:maxRecentSearches]
	}
}

// rankByRelevance orders items by descending score. The sort is stable, so
// equal scores keep catalog order.
func rankByRelevance(items []catalog.Activity, query string) {
	q := strings.ToLower(query)
	scores := make([]float64, len(items))
	for i, a := range items {
		scores[i] = relevanceScore(a, q)
	}
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	ranked := make([]catalog.Activity, len(items))
	for i, idx := range order {
		ranked[i] = items[idx]
	}
	copy(items, ranked)
}

// relevanceScore weights full-query substring hits: name over description
// over category, plus a small popularity boost.
func relevanceScore(a catalog.Activity, loweredQuery string) float64 {
	var score float64
	if strings.Contains(strings.ToLower(a.Name), loweredQuery) {
		score += nameWeight
	}
	if strings.Contains(strings.ToLower(a.Description), loweredQuery) {
		score += descriptionWeight
	}
	if strings.Contains(strings.ToLower(a.Category), loweredQuery) {
		score += categoryWeight
	}
	score += float64(a.Popularity) * popularityFactor
	return score
}
