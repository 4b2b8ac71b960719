package domain

// PaginationParams carries page/limit values from the HTTP layer to the services.
// Page is 1-indexed. Limit is capped at MaxPageLimit by NewPaginationParams.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return.
	Limit int
}

// MaxPageLimit bounds a single page. The whole catalog fits in one page.
const MaxPageLimit = 100

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil pointers fall back to page=1, limit=MaxPageLimit.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: MaxPageLimit}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Window returns the [lo, hi) slice bounds of the page within n elements.
// Pages past the end yield an empty window. The bound is checked by division
// first, so a huge page number cannot overflow the offset.
func (p PaginationParams) Window(n int) (lo, hi int) {
	if p.Page < 1 || p.Limit < 1 || p.Page-1 >= (n+p.Limit-1)/p.Limit {
		return n, n
	}
	lo = (p.Page - 1) * p.Limit
	hi = min(lo+p.Limit, n)
	return lo, hi
}
