package service

import (
	"context"
	"fmt"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
	"github.com/pkordes/sf-experiences/backend/internal/search"
)

// relatedLimit is how many related experiences a detail view carries.
const relatedLimit = 3

// SearchQuery is one search request: free text, explicit facets, and the
// landing-page budget shortcut. A landing-page occasion arrives as the
// occasion facet itself.
type SearchQuery struct {
	Text   string
	Facets domain.Facets

	// Budget seeds Facets.PriceLevels with one level when it is 1-4 and no
	// price facet is selected. Other values are ignored.
	Budget *int

	Page domain.PaginationParams
}

// SearchResult is one page of matches plus what the query was read as.
type SearchResult struct {
	Experiences   []domain.Experience
	Interpreted   domain.PartialFilter
	Total         int
	ActiveFilters int
}

// ExperienceDetail is a single experience with its favorite flag and a few
// related experiences.
type ExperienceDetail struct {
	Experience domain.Experience
	Favorite   bool
	Related    []domain.Experience
}

// SearchService runs the interpreter and filter engine over the catalog.
type SearchService struct {
	catalog Catalog
	store   *Store
}

// NewSearchService constructs a SearchService.
func NewSearchService(catalog Catalog, store *Store) *SearchService {
	return &SearchService{catalog: catalog, store: store}
}

// Search filters the catalog and returns the requested page. Total counts
// every match, not just the page.
func (s *SearchService) Search(_ context.Context, q SearchQuery) SearchResult {
	matches, parsed, facets := s.match(q)
	lo, hi := pageOrDefault(q.Page).Window(len(matches))
	return SearchResult{
		Experiences:   matches[lo:hi],
		Interpreted:   parsed,
		Total:         len(matches),
		ActiveFilters: facets.ActiveCount(),
	}
}

func (s *SearchService) match(q SearchQuery) ([]domain.Experience, domain.PartialFilter, domain.Facets) {
	facets := seedFacets(q)
	parsed := search.Interpret(q.Text)
	return search.Filter(s.catalog.All(), q.Text, parsed, facets), parsed, facets
}

// pageOrDefault treats an unset page as the first, full-size page.
func pageOrDefault(p domain.PaginationParams) domain.PaginationParams {
	if p.Page < 1 || p.Limit < 1 {
		return domain.NewPaginationParams(nil, nil)
	}
	return p
}

func seedFacets(q SearchQuery) domain.Facets {
	f := q.Facets
	if q.Budget != nil && *q.Budget >= 1 && *q.Budget <= 4 && len(f.PriceLevels) == 0 {
		f.PriceLevels = []int{*q.Budget}
	}
	return f
}

// Get returns the detail view of one experience.
func (s *SearchService) Get(_ context.Context, id string) (ExperienceDetail, error) {
	exp, ok := s.catalog.Get(id)
	if !ok {
		return ExperienceDetail{}, fmt.Errorf("service.SearchService.Get: experience %q: %w", id, domain.ErrNotFound)
	}
	related := s.catalog.Related(id, relatedLimit)
	if related == nil {
		related = []domain.Experience{}
	}
	return ExperienceDetail{
		Experience: exp,
		Favorite:   s.store.HasFavorite(id),
		Related:    related,
	}, nil
}

// Neighborhoods lists the catalog's neighborhoods in first-seen order, for
// the neighborhood facet.
func (s *SearchService) Neighborhoods(_ context.Context) []string {
	return s.catalog.Neighborhoods()
}
