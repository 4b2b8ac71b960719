package service

import (
	"context"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

// MapService positions search results for the map collaborator. Without a
// map credential it falls back to plain normalized coordinates.
type MapService struct {
	search *SearchService
	token  string
}

// NewMapService constructs a MapService. An empty token selects fallback mode.
func NewMapService(search *SearchService, token string) *MapService {
	return &MapService{search: search, token: token}
}

// View returns markers for every experience matching q. selected marks one
// marker; an id that matches none is ignored. Pagination in q is ignored.
func (s *MapService) View(_ context.Context, q SearchQuery, selected string) domain.MapView {
	matches, _, _ := s.search.match(q)

	view := domain.MapView{
		Mode:    domain.MapFallback,
		Center:  domain.CityCenter,
		Bounds:  domain.CityBounds,
		Markers: make([]domain.MapMarker, 0, len(matches)),
	}
	if s.token != "" {
		view.Mode = domain.MapInteractive
		view.Token = s.token
	}

	for _, e := range matches {
		m := domain.MapMarker{
			ExperienceID: e.ID,
			Name:         e.Name,
			Type:         e.Type,
			Lat:          e.Lat,
			Lng:          e.Lng,
			Selected:     e.ID == selected,
		}
		if view.Mode == domain.MapFallback {
			x, y := domain.CityBounds.Normalize(e.Lat, e.Lng)
			m.X, m.Y = &x, &y
		}
		view.Markers = append(view.Markers, m)
	}
	return view
}
