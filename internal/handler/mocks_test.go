package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
	"github.com/pkordes/sf-experiences/backend/internal/handler"
	"github.com/pkordes/sf-experiences/backend/internal/service"
)

// ---- mocks -----------------------------------------------------------------
// Each mock is a hand-written test double. Set only the method fields your
// test needs; calling an unset field panics, which fails the test loudly.

type mockSearchServicer struct {
	search        func(ctx context.Context, q service.SearchQuery) service.SearchResult
	get           func(ctx context.Context, id string) (service.ExperienceDetail, error)
	neighborhoods func(ctx context.Context) []string
}

func (m *mockSearchServicer) Search(ctx context.Context, q service.SearchQuery) service.SearchResult {
	return m.search(ctx, q)
}
func (m *mockSearchServicer) Get(ctx context.Context, id string) (service.ExperienceDetail, error) {
	return m.get(ctx, id)
}
func (m *mockSearchServicer) Neighborhoods(ctx context.Context) []string {
	return m.neighborhoods(ctx)
}

type mockItineraryServicer struct {
	create      func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	get         func(ctx context.Context, id string) (domain.Itinerary, error)
	list        func(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int)
	update      func(ctx context.Context, id string, patch domain.ItineraryPatch) (domain.Itinerary, error)
	delete      func(ctx context.Context, id string) error
	addItem     func(ctx context.Context, itineraryID, experienceID string) (domain.Itinerary, error)
	removeItem  func(ctx context.Context, itineraryID, itemID string) (domain.Itinerary, error)
	moveItem    func(ctx context.Context, itineraryID, itemID string, position int) (domain.Itinerary, error)
	setItemTime func(ctx context.Context, itineraryID, itemID, startTime string) (domain.Itinerary, error)
	quickAdd    func(ctx context.Context, experienceID, itineraryID string) (domain.Itinerary, bool, error)
}

func (m *mockItineraryServicer) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return m.create(ctx, it)
}
func (m *mockItineraryServicer) Get(ctx context.Context, id string) (domain.Itinerary, error) {
	return m.get(ctx, id)
}
func (m *mockItineraryServicer) List(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int) {
	return m.list(ctx, p)
}
func (m *mockItineraryServicer) Update(ctx context.Context, id string, patch domain.ItineraryPatch) (domain.Itinerary, error) {
	return m.update(ctx, id, patch)
}
func (m *mockItineraryServicer) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}
func (m *mockItineraryServicer) AddItem(ctx context.Context, itineraryID, experienceID string) (domain.Itinerary, error) {
	return m.addItem(ctx, itineraryID, experienceID)
}
func (m *mockItineraryServicer) RemoveItem(ctx context.Context, itineraryID, itemID string) (domain.Itinerary, error) {
	return m.removeItem(ctx, itineraryID, itemID)
}
func (m *mockItineraryServicer) MoveItem(ctx context.Context, itineraryID, itemID string, position int) (domain.Itinerary, error) {
	return m.moveItem(ctx, itineraryID, itemID, position)
}
func (m *mockItineraryServicer) SetItemTime(ctx context.Context, itineraryID, itemID, startTime string) (domain.Itinerary, error) {
	return m.setItemTime(ctx, itineraryID, itemID, startTime)
}
func (m *mockItineraryServicer) QuickAdd(ctx context.Context, experienceID, itineraryID string) (domain.Itinerary, bool, error) {
	return m.quickAdd(ctx, experienceID, itineraryID)
}

type mockFavoriteServicer struct {
	list   func(ctx context.Context) []domain.Experience
	add    func(ctx context.Context, id string) error
	remove func(ctx context.Context, id string)
	has    func(ctx context.Context, id string) bool
}

func (m *mockFavoriteServicer) List(ctx context.Context) []domain.Experience { return m.list(ctx) }
func (m *mockFavoriteServicer) Add(ctx context.Context, id string) error     { return m.add(ctx, id) }
func (m *mockFavoriteServicer) Remove(ctx context.Context, id string)        { m.remove(ctx, id) }
func (m *mockFavoriteServicer) Has(ctx context.Context, id string) bool      { return m.has(ctx, id) }

type mockExportServicer struct {
	export func(ctx context.Context) []domain.ExportRow
}

func (m *mockExportServicer) Export(ctx context.Context) []domain.ExportRow {
	return m.export(ctx)
}

type mockMapServicer struct {
	view func(ctx context.Context, q service.SearchQuery, selected string) domain.MapView
}

func (m *mockMapServicer) View(ctx context.Context, q service.SearchQuery, selected string) domain.MapView {
	return m.view(ctx, q, selected)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.SearchServicer    = (*mockSearchServicer)(nil)
	_ handler.ItineraryServicer = (*mockItineraryServicer)(nil)
	_ handler.FavoriteServicer  = (*mockFavoriteServicer)(nil)
	_ handler.ExportServicer    = (*mockExportServicer)(nil)
	_ handler.MapServicer       = (*mockMapServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

const shareBase = "http://localhost:3000"

// deps groups the mocks a test wires; nil entries stay nil interfaces.
type deps struct {
	search      *mockSearchServicer
	itineraries *mockItineraryServicer
	favorites   *mockFavoriteServicer
	export      *mockExportServicer
	maps        *mockMapServicer
}

// newHTTPHandler wires a Server with the given mocks into the chi router.
// This mirrors how main.go wires it in production.
func newHTTPHandler(d deps) http.Handler {
	var (
		search      handler.SearchServicer
		itineraries handler.ItineraryServicer
		favorites   handler.FavoriteServicer
		export      handler.ExportServicer
		maps        handler.MapServicer
	)
	if d.search != nil {
		search = d.search
	}
	if d.itineraries != nil {
		itineraries = d.itineraries
	}
	if d.favorites != nil {
		favorites = d.favorites
	}
	if d.export != nil {
		export = d.export
	}
	if d.maps != nil {
		maps = d.maps
	}
	return handler.NewServer(search, itineraries, favorites, export, maps, shareBase).Routes()
}

func serve(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func experienceFixture(id string) domain.Experience {
	return domain.Experience{
		ID:           id,
		Name:         "Experience " + id,
		Type:         domain.TypeFood,
		Neighborhood: "Mission District",
		Lat:          37.76,
		Lng:          -122.42,
		PriceLevel:   2,
		TimeOfDay:    domain.TimeEvening,
		ImageURL:     "/images/" + id + ".jpg",
		Duration:     90,
	}
}

func itineraryFixture() domain.Itinerary {
	level := 3
	return domain.Itinerary{
		ID:        "it-1",
		Name:      "Birthday in the Mission",
		Occasion:  domain.OccasionBirthday,
		Duration:  domain.DurationEvening,
		Budget:    &domain.Budget{Level: &level},
		PartySize: domain.PartyCouple,
		CreatedAt: time.Date(2026, 3, 7, 14, 30, 0, 0, time.UTC),
		Items: []domain.ItineraryItem{
			{ID: "item-1", ExperienceID: "a", Experience: experienceFixture("a"), StartTime: "18:00", Order: 0},
			{ID: "item-2", ExperienceID: "b", Experience: experienceFixture("b"), StartTime: "20:00", Order: 1},
		},
	}
}
