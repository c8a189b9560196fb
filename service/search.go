package service

import (
	"context"
	"fmt"
	"sort"

	"bridgefacile-backend/models"

	"github.com/antzucaro/matchr"
)

const (
	defaultSearchLimit  = 20
	defaultSuggestLimit = 10
)

// SearchResult is the envelope returned by a law search.
type SearchResult struct {
	Results []*models.Law        `json:"results"`
	Total   int                  `json:"total"`
	Query   string               `json:"query"`
	Filters models.SearchFilters `json:"filters"`
}

// SearchService runs store-backed text search and law-number suggestions.
type SearchService struct {
	laws LawStore
}

// NewSearchService creates a new search service
func NewSearchService(laws LawStore) *SearchService {
	return &SearchService{laws: laws}
}

// Search matches query as a substring of title, content or law number,
// narrowed by the optional filters.
func (s *SearchService) Search(ctx context.Context, query string, filters models.SearchFilters, limit int) (*SearchResult, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	laws, err := s.laws.SearchLaws(ctx, query, filters, limit)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	return &SearchResult{
		Results: laws,
		Total:   len(laws),
		Query:   query,
		Filters: filters,
	}, nil
}

// Suggest returns law numbers starting with partial, most similar first.
func (s *SearchService) Suggest(ctx context.Context, partial string) ([]models.LawSuggestion, error) {
	suggestions, err := s.laws.SuggestLawNumbers(ctx, partial, defaultSuggestLimit)
	if err != nil {
		return nil, fmt.Errorf("suggestion lookup failed: %w", err)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return matchr.JaroWinkler(partial, suggestions[i].LawNumber, false) >
			matchr.JaroWinkler(partial, suggestions[j].LawNumber, false)
	})
	return suggestions, nil
}
