package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
	"github.com/pkordes/sf-experiences/backend/internal/service"
)

// pathParam binds a required simple-style path parameter.
func pathParam(r *http.Request, name string) (string, error) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return "", fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return v, nil
}

// queryParam binds an optional form-style, exploded query parameter, so
// arrays arrive as repeated keys (?type=food&type=arts).
func queryParam(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return nil
}

// pathParams binds several path parameters in order, writing a 400 on the
// first failure.
func pathParams(w http.ResponseWriter, r *http.Request, names ...string) ([]string, bool) {
	out := make([]string, len(names))
	for i, name := range names {
		v, err := pathParam(r, name)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// paginationParams reads ?page= and ?limit=.
func paginationParams(r *http.Request) (domain.PaginationParams, error) {
	var page, limit *int
	if err := queryParam(r, "page", &page); err != nil {
		return domain.PaginationParams{}, err
	}
	if err := queryParam(r, "limit", &limit); err != nil {
		return domain.PaginationParams{}, err
	}
	return domain.NewPaginationParams(page, limit), nil
}

// searchParams holds the raw search query parameters shared by
// GET /experiences and GET /map.
type searchParams struct {
	Q             *string
	Types         []string
	Prices        []int
	Neighborhoods []string
	TimesOfDay    []string
	Occasions     []string
	Indoor        *bool
	Outdoor       *bool
	KidFriendly   *bool
	Accessibility *bool
	Budget        *int
}

func bindSearchParams(r *http.Request) (searchParams, error) {
	var p searchParams
	bindings := []struct {
		name string
		dest any
	}{
		{"q", &p.Q},
		{"type", &p.Types},
		{"price", &p.Prices},
		{"neighborhood", &p.Neighborhoods},
		{"time_of_day", &p.TimesOfDay},
		{"occasion", &p.Occasions},
		{"indoor", &p.Indoor},
		{"outdoor", &p.Outdoor},
		{"kid_friendly", &p.KidFriendly},
		{"accessibility", &p.Accessibility},
		{"budget", &p.Budget},
	}
	for _, b := range bindings {
		if err := queryParam(r, b.name, b.dest); err != nil {
			return searchParams{}, err
		}
	}
	return p, nil
}

// searchQuery converts the request's query string into a service.SearchQuery.
// Unknown enum values are rejected rather than silently matching nothing.
func searchQuery(r *http.Request) (service.SearchQuery, error) {
	p, err := bindSearchParams(r)
	if err != nil {
		return service.SearchQuery{}, err
	}

	q := service.SearchQuery{
		Budget: p.Budget,
		Facets: domain.Facets{
			PriceLevels:   p.Prices,
			Neighborhoods: p.Neighborhoods,
			Indoor:        deref(p.Indoor),
			Outdoor:       deref(p.Outdoor),
			KidFriendly:   deref(p.KidFriendly),
			Accessibility: deref(p.Accessibility),
		},
	}
	if p.Q != nil {
		q.Text = *p.Q
	}
	for _, price := range p.Prices {
		if price < 1 || price > 4 {
			return service.SearchQuery{}, fmt.Errorf("invalid price %d: must be between 1 and 4", price)
		}
	}
	for _, v := range p.Types {
		t := domain.ExperienceType(v)
		if !t.Valid() {
			return service.SearchQuery{}, fmt.Errorf("unknown type %q", v)
		}
		q.Facets.Types = append(q.Facets.Types, t)
	}
	for _, v := range p.TimesOfDay {
		t := domain.TimeOfDay(v)
		if !t.Valid() {
			return service.SearchQuery{}, fmt.Errorf("unknown time_of_day %q", v)
		}
		q.Facets.TimesOfDay = append(q.Facets.TimesOfDay, t)
	}
	for _, v := range p.Occasions {
		o := domain.Occasion(v)
		if !o.Valid() {
			return service.SearchQuery{}, fmt.Errorf("unknown occasion %q", v)
		}
		q.Facets.Occasions = append(q.Facets.Occasions, o)
	}

	q.Page, err = paginationParams(r)
	if err != nil {
		return service.SearchQuery{}, err
	}
	return q, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
