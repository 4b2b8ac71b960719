package handler

import (
	"net/http"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

// pagination is the page envelope of every list response.
type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type experienceListResponse struct {
	Data          []domain.Experience  `json:"data"`
	Interpreted   domain.PartialFilter `json:"interpreted"`
	ActiveFilters int                  `json:"active_filters"`
	Pagination    pagination           `json:"pagination"`
}

type experienceDetailResponse struct {
	domain.Experience
	Reservable bool                `json:"reservable"`
	Favorite   bool                `json:"favorite"`
	Related    []domain.Experience `json:"related"`
}

type neighborhoodListResponse struct {
	Data []string `json:"data"`
}

// ListExperiences handles GET /experiences.
// Supports free text (?q=), facet arrays (?type=&price=&neighborhood=&time_of_day=&occasion=),
// boolean facets, the landing-page ?budget= shortcut, and ?page= / ?limit=.
func (s *Server) ListExperiences(w http.ResponseWriter, r *http.Request) {
	q, err := searchQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	res := s.search.Search(r.Context(), q)
	writeJSON(w, http.StatusOK, experienceListResponse{
		Data:          nonNil(res.Experiences),
		Interpreted:   res.Interpreted,
		ActiveFilters: res.ActiveFilters,
		Pagination:    pagination{Page: q.Page.Page, Limit: q.Page.Limit, Total: res.Total},
	})
}

// GetExperience handles GET /experiences/{id}.
func (s *Server) GetExperience(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathParams(w, r, "id")
	if !ok {
		return
	}

	detail, err := s.search.Get(r.Context(), ids[0])
	if err != nil {
		writeServiceError(w, r, err, "experience not found")
		return
	}
	writeJSON(w, http.StatusOK, experienceDetailResponse{
		Experience: detail.Experience,
		Reservable: detail.Experience.Reservable(),
		Favorite:   detail.Favorite,
		Related:    nonNil(detail.Related),
	})
}

// ListNeighborhoods handles GET /neighborhoods.
func (s *Server) ListNeighborhoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, neighborhoodListResponse{Data: nonNil(s.search.Neighborhoods(r.Context()))})
}

// GetMap handles GET /map. It takes the search parameters plus ?selected=.
func (s *Server) GetMap(w http.ResponseWriter, r *http.Request) {
	q, err := searchQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	var selected *string
	if err := queryParam(r, "selected", &selected); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, s.maps.View(r.Context(), q, deref(selected)))
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
