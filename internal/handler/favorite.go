package handler

import (
	"net/http"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

type favoriteListResponse struct {
	Data []domain.Experience `json:"data"`
}

type favoriteResponse struct {
	Favorite bool `json:"favorite"`
}

// ListFavorites handles GET /favorites.
func (s *Server) ListFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, favoriteListResponse{Data: nonNil(s.favorites.List(r.Context()))})
}

// GetFavorite handles GET /favorites/{id}. Unknown ids are simply not favorites.
func (s *Server) GetFavorite(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathParams(w, r, "id")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, favoriteResponse{Favorite: s.favorites.Has(r.Context(), ids[0])})
}

// AddFavorite handles PUT /favorites/{id}. Adding twice is a no-op.
func (s *Server) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathParams(w, r, "id")
	if !ok {
		return
	}
	if err := s.favorites.Add(r.Context(), ids[0]); err != nil {
		writeServiceError(w, r, err, "experience not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveFavorite handles DELETE /favorites/{id}. Removing an absent id is a no-op.
func (s *Server) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathParams(w, r, "id")
	if !ok {
		return
	}
	s.favorites.Remove(r.Context(), ids[0])
	w.WriteHeader(http.StatusNoContent)
}
