package service

import (
	"context"
	"fmt"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

// FavoriteService manages the favorites set. Only catalog experiences can
// be added.
type FavoriteService struct {
	store   *Store
	catalog Catalog
}

// NewFavoriteService constructs a FavoriteService.
func NewFavoriteService(store *Store, catalog Catalog) *FavoriteService {
	return &FavoriteService{store: store, catalog: catalog}
}

// List returns the favorite experiences in catalog order. Stored ids that
// are no longer in the catalog are skipped.
func (s *FavoriteService) List(_ context.Context) []domain.Experience {
	favs := make(map[string]bool)
	for _, id := range s.store.Favorites() {
		favs[id] = true
	}
	out := []domain.Experience{}
	for _, e := range s.catalog.All() {
		if favs[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

// Add marks the experience as a favorite. It is idempotent.
func (s *FavoriteService) Add(ctx context.Context, id string) error {
	if _, ok := s.catalog.Get(id); !ok {
		return fmt.Errorf("service.FavoriteService.Add: experience %q: %w", id, domain.ErrNotFound)
	}
	s.store.AddFavorite(ctx, id)
	return nil
}

// Remove unmarks the experience. Removing a non-favorite is a no-op.
func (s *FavoriteService) Remove(ctx context.Context, id string) {
	s.store.RemoveFavorite(ctx, id)
}

// Has reports whether the experience is a favorite.
func (s *FavoriteService) Has(_ context.Context, id string) bool {
	return s.store.HasFavorite(id)
}
