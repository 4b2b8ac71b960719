package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

// Catalog is the read-only experience source the services depend on.
// *catalog.Catalog satisfies it.
type Catalog interface {
	All() []domain.Experience
	Get(id string) (domain.Experience, bool)
	Related(id string, n int) []domain.Experience
	Neighborhoods() []string
}

// defaultNamePrefix starts the name of an itinerary created without one.
const defaultNamePrefix = "My SF Experience - "

// ItineraryService implements business logic for itinerary operations.
type ItineraryService struct {
	store   *Store
	catalog Catalog
}

// NewItineraryService constructs an ItineraryService over the store and catalog.
func NewItineraryService(store *Store, catalog Catalog) *ItineraryService {
	return &ItineraryService{store: store, catalog: catalog}
}

// Create validates the attributes, fills in defaults, and stores a new
// empty itinerary. Defaults: a dated name, occasion "general", duration
// "full-day".
func (s *ItineraryService) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	it, err := s.withDefaults(it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	return s.store.CreateItinerary(ctx, it), nil
}

func (s *ItineraryService) withDefaults(it domain.Itinerary) (domain.Itinerary, error) {
	it.CreatedAt = s.store.Now()
	it.Name = strings.TrimSpace(it.Name)
	if it.Name == "" {
		it.Name = defaultName(it.CreatedAt)
	}
	if it.Occasion == "" {
		it.Occasion = domain.OccasionGeneral
	}
	if it.Duration == "" {
		it.Duration = domain.DurationFullDay
	}
	if err := validateAttributes(it.Occasion, it.Duration, it.PartySize, it.Budget); err != nil {
		return domain.Itinerary{}, err
	}
	return it, nil
}

func defaultName(t time.Time) string {
	return defaultNamePrefix + t.Format("Jan 2")
}

func validateAttributes(o domain.Occasion, d domain.PlanDuration, p domain.PartySize, b *domain.Budget) error {
	if !o.Valid() {
		return fmt.Errorf("%w: unknown occasion %q", domain.ErrValidation, o)
	}
	if !d.Valid() {
		return fmt.Errorf("%w: unknown duration %q", domain.ErrValidation, d)
	}
	if p != "" && !p.Valid() {
		return fmt.Errorf("%w: unknown party size %q", domain.ErrValidation, p)
	}
	if b != nil {
		return b.Validate()
	}
	return nil
}

// Get returns a single itinerary by id.
func (s *ItineraryService) Get(_ context.Context, id string) (domain.Itinerary, error) {
	it, err := s.store.Itinerary(id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Get: %w", err)
	}
	return it, nil
}

// List returns one page of itineraries in creation order, plus the total count.
func (s *ItineraryService) List(_ context.Context, p domain.PaginationParams) ([]domain.Itinerary, int) {
	all := s.store.Itineraries()
	lo, hi := pageOrDefault(p).Window(len(all))
	return all[lo:hi], len(all)
}

// Update validates and applies a partial update.
func (s *ItineraryService) Update(ctx context.Context, id string, patch domain.ItineraryPatch) (domain.Itinerary, error) {
	if err := validatePatch(&patch); err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	it, err := s.store.UpdateItinerary(ctx, id, patch)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	return it, nil
}

func validatePatch(patch *domain.ItineraryPatch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return fmt.Errorf("%w: name must not be blank", domain.ErrValidation)
		}
		patch.Name = &name
	}
	if patch.Occasion != nil && !patch.Occasion.Valid() {
		return fmt.Errorf("%w: unknown occasion %q", domain.ErrValidation, *patch.Occasion)
	}
	if patch.Duration != nil && !patch.Duration.Valid() {
		return fmt.Errorf("%w: unknown duration %q", domain.ErrValidation, *patch.Duration)
	}
	if patch.PartySize != nil && *patch.PartySize != "" && !patch.PartySize.Valid() {
		return fmt.Errorf("%w: unknown party size %q", domain.ErrValidation, *patch.PartySize)
	}
	if patch.Budget != nil {
		return patch.Budget.Validate()
	}
	return nil
}

// Delete removes an itinerary.
func (s *ItineraryService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteItinerary(ctx, id); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	return nil
}

// AddItem resolves the experience in the catalog and appends a snapshot of
// it, scheduled at the current time.
func (s *ItineraryService) AddItem(ctx context.Context, itineraryID, experienceID string) (domain.Itinerary, error) {
	exp, err := s.experience(experienceID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.AddItem: %w", err)
	}
	it, err := s.store.AddItem(ctx, itineraryID, exp, "")
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.AddItem: %w", err)
	}
	return it, nil
}

// RemoveItem deletes one item.
func (s *ItineraryService) RemoveItem(ctx context.Context, itineraryID, itemID string) (domain.Itinerary, error) {
	it, err := s.store.RemoveItem(ctx, itineraryID, itemID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.RemoveItem: %w", err)
	}
	return it, nil
}

// MoveItem reorders one item to position (zero-based, clamped).
func (s *ItineraryService) MoveItem(ctx context.Context, itineraryID, itemID string, position int) (domain.Itinerary, error) {
	it, err := s.store.MoveItem(ctx, itineraryID, itemID, position)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.MoveItem: %w", err)
	}
	return it, nil
}

// SetItemTime sets an item's start time. The time must be HH:MM on a
// 24-hour clock; a single-digit hour is accepted and zero-padded.
func (s *ItineraryService) SetItemTime(ctx context.Context, itineraryID, itemID, startTime string) (domain.Itinerary, error) {
	t, err := time.Parse(domain.StartTimeLayout, strings.TrimSpace(startTime))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.SetItemTime: %w: start time %q is not HH:MM", domain.ErrValidation, startTime)
	}
	it, err := s.store.SetItemTime(ctx, itineraryID, itemID, t.Format(domain.StartTimeLayout))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.SetItemTime: %w", err)
	}
	return it, nil
}

// QuickAdd adds an experience straight from the browsing view. When
// itineraryID is empty or names no itinerary, a default itinerary is created
// first. It reports whether that happened. An unknown experience creates
// nothing.
func (s *ItineraryService) QuickAdd(ctx context.Context, experienceID, itineraryID string) (domain.Itinerary, bool, error) {
	exp, err := s.experience(experienceID)
	if err != nil {
		return domain.Itinerary{}, false, fmt.Errorf("service.ItineraryService.QuickAdd: %w", err)
	}
	template, err := s.withDefaults(domain.Itinerary{})
	if err != nil {
		return domain.Itinerary{}, false, fmt.Errorf("service.ItineraryService.QuickAdd: %w", err)
	}
	it, created, err := s.store.AddItemOrCreate(ctx, itineraryID, template, exp)
	if err != nil {
		return domain.Itinerary{}, false, fmt.Errorf("service.ItineraryService.QuickAdd: %w", err)
	}
	return it, created, nil
}

func (s *ItineraryService) experience(id string) (domain.Experience, error) {
	exp, ok := s.catalog.Get(id)
	if !ok {
		return domain.Experience{}, fmt.Errorf("experience %q: %w", id, domain.ErrNotFound)
	}
	return exp, nil
}
