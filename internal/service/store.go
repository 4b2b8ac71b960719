// Package service contains the business logic for the SF Experiences planner.
// The Store is the single aggregate root for favorites and itineraries; the
// other services validate input, resolve catalog references, and call it.
// No I/O lives here: persistence goes through the repo.StateRepo port.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
	"github.com/pkordes/sf-experiences/backend/internal/repo"
)

// Store holds the planner state in memory and writes the whole state through
// to its StateRepo after every successful mutation. All access is serialized,
// so each process is a single writer; across processes the repo is
// last-writer-wins.
//
// Reads return deep copies. Mutators that reference an absent itinerary or
// item return domain.ErrNotFound and leave the state untouched.
type Store struct {
	mu    sync.Mutex
	state domain.State
	repo  repo.StateRepo
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithClock replaces time.Now as the source of creation and default start times.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the random UUID source for itinerary and item ids.
func WithIDGenerator(newID func() string) StoreOption {
	return func(s *Store) { s.newID = newID }
}

// NewStore loads the persisted state and returns a ready Store.
// A malformed payload is logged and replaced by the empty state; any other
// load failure is returned.
func NewStore(ctx context.Context, r repo.StateRepo, logger *slog.Logger, opts ...StoreOption) (*Store, error) {
	s := &Store{
		repo:  r,
		log:   logger,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	state, err := r.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrMalformedState):
		logger.Warn("persisted planner state is malformed; starting empty", "error", err)
		state = domain.EmptyState()
	case err != nil:
		return nil, fmt.Errorf("service.NewStore: %w", err)
	}
	state.Normalize()
	s.state = state
	return s, nil
}

// Now returns the store's clock reading.
func (s *Store) Now() time.Time { return s.now() }

// mutate runs fn against the live state under the lock and persists the
// result when fn succeeds. fn must not modify the state before it is sure to
// succeed. A failed save is logged and the in-memory change stands.
func (s *Store) mutate(ctx context.Context, fn func(st *domain.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(&s.state); err != nil {
		return err
	}
	s.persistLocked(ctx)
	return nil
}

func (s *Store) persistLocked(ctx context.Context) {
	// The request may be gone by the time the write happens; the write must not be.
	if err := s.repo.Save(context.WithoutCancel(ctx), s.state); err != nil {
		s.log.Error("persist planner state", "error", err)
	}
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := domain.State{
		Favorites:   slices.Clone(s.state.Favorites),
		Itineraries: make([]domain.Itinerary, len(s.state.Itineraries)),
	}
	for i, it := range s.state.Itineraries {
		out.Itineraries[i] = it.Clone()
	}
	return out
}

// ---- itineraries -----------------------------------------------------------

// Itineraries returns every itinerary in creation order.
func (s *Store) Itineraries() []domain.Itinerary {
	return s.Snapshot().Itineraries
}

// Itinerary returns one itinerary by id.
func (s *Store) Itinerary(id string) (domain.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.state.Itineraries, id)
	if i < 0 {
		return domain.Itinerary{}, fmt.Errorf("service.Store.Itinerary: %w", domain.ErrNotFound)
	}
	return s.state.Itineraries[i].Clone(), nil
}

// CreateItinerary appends a new itinerary with a fresh id and no items.
// CreatedAt is taken from the clock unless already set.
func (s *Store) CreateItinerary(ctx context.Context, it domain.Itinerary) domain.Itinerary {
	var created domain.Itinerary
	_ = s.mutate(ctx, func(st *domain.State) error {
		created = s.newItinerary(it)
		st.Itineraries = append(st.Itineraries, created)
		return nil
	})
	return created.Clone()
}

func (s *Store) newItinerary(it domain.Itinerary) domain.Itinerary {
	it = it.Clone()
	it.ID = s.newID()
	it.Items = []domain.ItineraryItem{}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = s.now()
	}
	return it
}

// UpdateItinerary merges the non-nil patch fields into the itinerary.
func (s *Store) UpdateItinerary(ctx context.Context, id string, patch domain.ItineraryPatch) (domain.Itinerary, error) {
	var updated domain.Itinerary
	err := s.mutate(ctx, func(st *domain.State) error {
		i := indexOf(st.Itineraries, id)
		if i < 0 {
			return domain.ErrNotFound
		}
		it := &st.Itineraries[i]
		if patch.Name != nil {
			it.Name = *patch.Name
		}
		if patch.Occasion != nil {
			it.Occasion = *patch.Occasion
		}
		if patch.Duration != nil {
			it.Duration = *patch.Duration
		}
		if patch.Budget != nil {
			it.Budget = patch.Budget.Clone()
		}
		if patch.PartySize != nil {
			it.PartySize = *patch.PartySize
		}
		updated = it.Clone()
		return nil
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.Store.UpdateItinerary: %w", err)
	}
	return updated, nil
}

// DeleteItinerary removes the itinerary and its items.
func (s *Store) DeleteItinerary(ctx context.Context, id string) error {
	err := s.mutate(ctx, func(st *domain.State) error {
		i := indexOf(st.Itineraries, id)
		if i < 0 {
			return domain.ErrNotFound
		}
		st.Itineraries = slices.Delete(st.Itineraries, i, i+1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.Store.DeleteItinerary: %w", err)
	}
	return nil
}

// AddItem appends a snapshot of exp to the itinerary. An empty startTime
// defaults to the current wall-clock time.
func (s *Store) AddItem(ctx context.Context, itineraryID string, exp domain.Experience, startTime string) (domain.Itinerary, error) {
	var updated domain.Itinerary
	err := s.mutate(ctx, func(st *domain.State) error {
		i := indexOf(st.Itineraries, itineraryID)
		if i < 0 {
			return domain.ErrNotFound
		}
		s.appendItem(&st.Itineraries[i], exp, startTime)
		updated = st.Itineraries[i].Clone()
		return nil
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.Store.AddItem: %w", err)
	}
	return updated, nil
}

func (s *Store) appendItem(it *domain.Itinerary, exp domain.Experience, startTime string) {
	if startTime == "" {
		startTime = s.now().Format(domain.StartTimeLayout)
	}
	it.Items = append(it.Items, domain.ItineraryItem{
		ID:           s.newID(),
		ExperienceID: exp.ID,
		Experience:   exp.Clone(),
		StartTime:    startTime,
		Order:        len(it.Items),
	})
}

// AddItemOrCreate adds exp to the itinerary named by itineraryID, or, when
// that id is empty or unknown, to a new itinerary built from template. It
// reports whether an itinerary was created.
func (s *Store) AddItemOrCreate(ctx context.Context, itineraryID string, template domain.Itinerary, exp domain.Experience) (domain.Itinerary, bool, error) {
	var (
		updated domain.Itinerary
		created bool
	)
	err := s.mutate(ctx, func(st *domain.State) error {
		i := -1
		if itineraryID != "" {
			i = indexOf(st.Itineraries, itineraryID)
		}
		if i < 0 {
			st.Itineraries = append(st.Itineraries, s.newItinerary(template))
			i = len(st.Itineraries) - 1
			created = true
		}
		s.appendItem(&st.Itineraries[i], exp, "")
		updated = st.Itineraries[i].Clone()
		return nil
	})
	if err != nil {
		return domain.Itinerary{}, false, fmt.Errorf("service.Store.AddItemOrCreate: %w", err)
	}
	return updated, created, nil
}

// RemoveItem deletes the item and re-densifies the remaining orders.
func (s *Store) RemoveItem(ctx context.Context, itineraryID, itemID string) (domain.Itinerary, error) {
	var updated domain.Itinerary
	err := s.mutate(ctx, func(st *domain.State) error {
		it, j, err := findItem(st, itineraryID, itemID)
		if err != nil {
			return err
		}
		it.Items = slices.Delete(it.Items, j, j+1)
		it.Resequence()
		updated = it.Clone()
		return nil
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.Store.RemoveItem: %w", err)
	}
	return updated, nil
}

// MoveItem moves the item to toIndex, clamped to the valid range, and
// resequences every item. Moving an item onto its own position changes
// nothing and is not persisted.
func (s *Store) MoveItem(ctx context.Context, itineraryID, itemID string, toIndex int) (domain.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, from, err := findItem(&s.state, itineraryID, itemID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.Store.MoveItem: %w", err)
	}

	to := max(0, min(toIndex, len(it.Items)-1))
	if to != from {
		item := it.Items[from]
		it.Items = slices.Delete(it.Items, from, from+1)
		it.Items = slices.Insert(it.Items, to, item)
		it.Resequence()
		s.persistLocked(ctx)
	}
	return it.Clone(), nil
}

// SetItemTime overwrites the item's start time. Overlaps with other items
// are allowed.
func (s *Store) SetItemTime(ctx context.Context, itineraryID, itemID, startTime string) (domain.Itinerary, error) {
	var updated domain.Itinerary
	err := s.mutate(ctx, func(st *domain.State) error {
		it, j, err := findItem(st, itineraryID, itemID)
		if err != nil {
			return err
		}
		it.Items[j].StartTime = startTime
		updated = it.Clone()
		return nil
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.Store.SetItemTime: %w", err)
	}
	return updated, nil
}

func indexOf(its []domain.Itinerary, id string) int {
	return slices.IndexFunc(its, func(it domain.Itinerary) bool { return it.ID == id })
}

func findItem(st *domain.State, itineraryID, itemID string) (*domain.Itinerary, int, error) {
	i := indexOf(st.Itineraries, itineraryID)
	if i < 0 {
		return nil, -1, domain.ErrNotFound
	}
	it := &st.Itineraries[i]
	j := it.ItemIndex(itemID)
	if j < 0 {
		return nil, -1, domain.ErrNotFound
	}
	return it, j, nil
}

// ---- favorites -------------------------------------------------------------

// Favorites returns the favorite ids in the order they were added.
func (s *Store) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Favorites)
}

// HasFavorite reports whether id is a favorite.
func (s *Store) HasFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.state.Favorites, id)
}

// AddFavorite adds id to the favorites set. Adding a member again changes
// nothing and is not persisted.
func (s *Store) AddFavorite(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.state.Favorites, id) {
		return
	}
	s.state.Favorites = append(s.state.Favorites, id)
	s.persistLocked(ctx)
}

// RemoveFavorite removes id from the favorites set, if present.
func (s *Store) RemoveFavorite(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.state.Favorites, id)
	if i < 0 {
		return
	}
	s.state.Favorites = slices.Delete(s.state.Favorites, i, i+1)
	s.persistLocked(ctx)
}
