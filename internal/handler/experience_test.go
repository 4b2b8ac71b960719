package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
	"github.com/pkordes/sf-experiences/backend/internal/service"
)

type experienceList struct {
	Data          []domain.Experience  `json:"data"`
	Interpreted   domain.PartialFilter `json:"interpreted"`
	ActiveFilters int                  `json:"active_filters"`
	Pagination    struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
	} `json:"pagination"`
}

// ---- GET /experiences ------------------------------------------------------

func TestListExperiences_BindsQueryIntoSearch(t *testing.T) {
	var got service.SearchQuery
	svc := &mockSearchServicer{
		search: func(_ context.Context, q service.SearchQuery) service.SearchResult {
			got = q
			return service.SearchResult{
				Experiences:   []domain.Experience{experienceFixture("a")},
				Interpreted:   domain.PartialFilter{Types: []domain.ExperienceType{domain.TypeFood}},
				Total:         7,
				ActiveFilters: 5,
			}
		},
	}

	rec := serve(t, newHTTPHandler(deps{search: svc}), http.MethodGet,
		"/experiences?q=tacos+under+%2420&type=food&type=arts&price=1&price=2&neighborhood=Mission+District"+
			"&time_of_day=evening&occasion=birthday&kid_friendly=true&budget=2&page=2&limit=3", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tacos under $20", got.Text)
	assert.Equal(t, []domain.ExperienceType{domain.TypeFood, domain.TypeArts}, got.Facets.Types)
	assert.Equal(t, []int{1, 2}, got.Facets.PriceLevels)
	assert.Equal(t, []string{"Mission District"}, got.Facets.Neighborhoods)
	assert.Equal(t, []domain.TimeOfDay{domain.TimeEvening}, got.Facets.TimesOfDay)
	assert.Equal(t, []domain.Occasion{domain.OccasionBirthday}, got.Facets.Occasions)
	assert.True(t, got.Facets.KidFriendly)
	assert.False(t, got.Facets.Indoor)
	require.NotNil(t, got.Budget)
	assert.Equal(t, 2, *got.Budget)
	assert.Equal(t, domain.PaginationParams{Page: 2, Limit: 3}, got.Page)

	body := decode[experienceList](t, rec)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "a", body.Data[0].ID)
	assert.Equal(t, []domain.ExperienceType{domain.TypeFood}, body.Interpreted.Types)
	assert.Equal(t, 5, body.ActiveFilters)
	assert.Equal(t, 7, body.Pagination.Total)
	assert.Equal(t, 2, body.Pagination.Page)
	assert.Equal(t, 3, body.Pagination.Limit)
}

func TestListExperiences_DefaultsAndEmptyData(t *testing.T) {
	svc := &mockSearchServicer{
		search: func(_ context.Context, q service.SearchQuery) service.SearchResult {
			return service.SearchResult{}
		},
	}

	rec := serve(t, newHTTPHandler(deps{search: svc}), http.MethodGet, "/experiences", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
	body := decode[experienceList](t, rec)
	assert.Equal(t, 1, body.Pagination.Page)
	assert.Equal(t, domain.MaxPageLimit, body.Pagination.Limit)
}

func TestListExperiences_400_BadParams(t *testing.T) {
	for _, target := range []string{
		"/experiences?type=museum",
		"/experiences?price=9",
		"/experiences?price=cheap",
		"/experiences?time_of_day=midnight",
		"/experiences?occasion=wedding",
		"/experiences?indoor=maybe",
		"/experiences?page=first",
	} {
		t.Run(target, func(t *testing.T) {
			rec := serve(t, newHTTPHandler(deps{search: &mockSearchServicer{}}), http.MethodGet, target, nil)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "bad_request", decode[errorBody](t, rec).Error.Code)
		})
	}
}

// ---- GET /experiences/{id} -------------------------------------------------

func TestGetExperience_200(t *testing.T) {
	exp := experienceFixture("a")
	exp.BookingURL = "https://example.com/book"
	svc := &mockSearchServicer{
		get: func(_ context.Context, id string) (service.ExperienceDetail, error) {
			assert.Equal(t, "a", id)
			return service.ExperienceDetail{Experience: exp, Favorite: true, Related: []domain.Experience{experienceFixture("b")}}, nil
		},
	}

	rec := serve(t, newHTTPHandler(deps{search: svc}), http.MethodGet, "/experiences/a", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "a", body["id"])
	assert.Equal(t, true, body["favorite"])
	assert.Equal(t, true, body["reservable"])
	assert.Len(t, body["related"], 1)
}

func TestGetExperience_404(t *testing.T) {
	svc := &mockSearchServicer{
		get: func(_ context.Context, id string) (service.ExperienceDetail, error) {
			return service.ExperienceDetail{}, fmt.Errorf("service.SearchService.Get: experience %q: %w", id, domain.ErrNotFound)
		},
	}

	rec := serve(t, newHTTPHandler(deps{search: svc}), http.MethodGet, "/experiences/nope", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[errorBody](t, rec)
	assert.Equal(t, "not_found", body.Error.Code)
	assert.Equal(t, `experience "nope": not found`, body.Error.Message)
}

// ---- GET /neighborhoods ----------------------------------------------------

func TestListNeighborhoods(t *testing.T) {
	svc := &mockSearchServicer{
		neighborhoods: func(context.Context) []string { return []string{"Mission District", "SoMa"} },
	}

	rec := serve(t, newHTTPHandler(deps{search: svc}), http.MethodGet, "/neighborhoods", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":["Mission District","SoMa"]}`, rec.Body.String())
}

// ---- GET /map --------------------------------------------------------------

func TestGetMap_PassesQueryAndSelection(t *testing.T) {
	var gotQuery service.SearchQuery
	var gotSelected string
	x, y := 50.0, 25.0
	svc := &mockMapServicer{
		view: func(_ context.Context, q service.SearchQuery, selected string) domain.MapView {
			gotQuery, gotSelected = q, selected
			return domain.MapView{
				Mode:   domain.MapFallback,
				Center: domain.CityCenter,
				Bounds: domain.CityBounds,
				Markers: []domain.MapMarker{
					{ExperienceID: "a", Name: "A", Type: domain.TypeArts, X: &x, Y: &y, Selected: true},
				},
			}
		},
	}

	rec := serve(t, newHTTPHandler(deps{maps: svc}), http.MethodGet, "/map?q=soma&type=arts&selected=a", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "soma", gotQuery.Text)
	assert.Equal(t, []domain.ExperienceType{domain.TypeArts}, gotQuery.Facets.Types)
	assert.Equal(t, "a", gotSelected)

	view := decode[domain.MapView](t, rec)
	assert.Equal(t, domain.MapFallback, view.Mode)
	require.Len(t, view.Markers, 1)
	require.NotNil(t, view.Markers[0].X)
	assert.InDelta(t, 50.0, *view.Markers[0].X, 0.001)
	assert.True(t, view.Markers[0].Selected)
}
