package service_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/sf-experiences/backend/internal/catalog"
	"github.com/pkordes/sf-experiences/backend/internal/domain"
	"github.com/pkordes/sf-experiences/backend/internal/repo"
	"github.com/pkordes/sf-experiences/backend/internal/service"
)

// mockStateRepo is a hand-written test double for repo.StateRepo.
// Each method is a function field; nil fields fall back to an empty load
// and a save that records the state.
type mockStateRepo struct {
	load func(ctx context.Context) (domain.State, error)
	save func(ctx context.Context, s domain.State) error

	mu    sync.Mutex
	saves []domain.State
}

func (m *mockStateRepo) Load(ctx context.Context) (domain.State, error) {
	if m.load == nil {
		return domain.EmptyState(), nil
	}
	return m.load(ctx)
}

func (m *mockStateRepo) Save(ctx context.Context, s domain.State) error {
	m.mu.Lock()
	m.saves = append(m.saves, s)
	m.mu.Unlock()
	if m.save == nil {
		return nil
	}
	return m.save(ctx, s)
}

func (m *mockStateRepo) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saves)
}

// compile-time check: mockStateRepo must satisfy repo.StateRepo.
var _ repo.StateRepo = (*mockStateRepo)(nil)

// ---- helpers ---------------------------------------------------------------

var fixedNow = time.Date(2026, 3, 7, 14, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

// sequentialIDs returns an id generator yielding id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newStore(t *testing.T, r repo.StateRepo) *service.Store {
	t.Helper()
	s, err := service.NewStore(context.Background(), r, discardLogger(),
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithIDGenerator(sequentialIDs()),
	)
	require.NoError(t, err)
	return s
}

func experience(id string, typ domain.ExperienceType, hood string, duration, price int) domain.Experience {
	return domain.Experience{
		ID:           id,
		Name:         "Experience " + id,
		Description:  "Description of " + id,
		Type:         typ,
		Neighborhood: hood,
		Lat:          37.78,
		Lng:          -122.42,
		PriceLevel:   price,
		TimeOfDay:    domain.TimeAnytime,
		ImageURL:     "/images/" + id + ".jpg",
		Duration:     duration,
	}
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]domain.Experience{
		experience("x", domain.TypeFood, "Mission District", 60, 2),
		experience("y", domain.TypeOutdoor, "Presidio", 90, 1),
		experience("z", domain.TypeArts, "SoMa", 120, 3),
		experience("w", domain.TypeFood, "SoMa", 45, 4),
	})
	require.NoError(t, err)
	return c
}

func itemIDs(it domain.Itinerary) []string {
	out := make([]string, len(it.Items))
	for i, item := range it.Items {
		out[i] = item.ExperienceID
	}
	return out
}

func orders(it domain.Itinerary) []int {
	out := make([]int, len(it.Items))
	for i, item := range it.Items {
		out[i] = item.Order
	}
	return out
}
