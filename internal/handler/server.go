// Package handler implements the HTTP handlers for the SF Experiences API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (experience.go, itinerary.go, etc.) but share the same Server struct
// so they can access its dependencies. Routes wires them onto a chi router.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
	"github.com/pkordes/sf-experiences/backend/internal/service"
)

// SearchServicer defines the catalog search operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without building a store or catalog.
type SearchServicer interface {
	Search(ctx context.Context, q service.SearchQuery) service.SearchResult
	Get(ctx context.Context, id string) (service.ExperienceDetail, error)
	Neighborhoods(ctx context.Context) []string
}

// ItineraryServicer defines the itinerary operations the handlers depend on.
type ItineraryServicer interface {
	Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	Get(ctx context.Context, id string) (domain.Itinerary, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int)
	Update(ctx context.Context, id string, patch domain.ItineraryPatch) (domain.Itinerary, error)
	Delete(ctx context.Context, id string) error
	AddItem(ctx context.Context, itineraryID, experienceID string) (domain.Itinerary, error)
	RemoveItem(ctx context.Context, itineraryID, itemID string) (domain.Itinerary, error)
	MoveItem(ctx context.Context, itineraryID, itemID string, position int) (domain.Itinerary, error)
	SetItemTime(ctx context.Context, itineraryID, itemID, startTime string) (domain.Itinerary, error)
	QuickAdd(ctx context.Context, experienceID, itineraryID string) (domain.Itinerary, bool, error)
}

// FavoriteServicer defines the favorites operations the handlers depend on.
type FavoriteServicer interface {
	List(ctx context.Context) []domain.Experience
	Add(ctx context.Context, id string) error
	Remove(ctx context.Context, id string)
	Has(ctx context.Context, id string) bool
}

// ExportServicer defines the export operation the handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) []domain.ExportRow
}

// MapServicer defines the map view operation the handler depends on.
type MapServicer interface {
	View(ctx context.Context, q service.SearchQuery, selected string) domain.MapView
}

// Server holds the dependencies of every endpoint.
type Server struct {
	search       SearchServicer
	itineraries  ItineraryServicer
	favorites    FavoriteServicer
	export       ExportServicer
	maps         MapServicer
	shareBaseURL string
}

// NewServer constructs the Server with all its dependencies. shareBaseURL is
// the public planner URL encoded into share QR codes.
func NewServer(
	search SearchServicer,
	itineraries ItineraryServicer,
	favorites FavoriteServicer,
	export ExportServicer,
	maps MapServicer,
	shareBaseURL string,
) *Server {
	return &Server{
		search:       search,
		itineraries:  itineraries,
		favorites:    favorites,
		export:       export,
		maps:         maps,
		shareBaseURL: shareBaseURL,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil, nil, "")
}

// Routes returns the API router. Cross-cutting middleware is applied by the
// caller in main.go.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/experiences", s.ListExperiences)
	r.Get("/experiences/{id}", s.GetExperience)
	r.Get("/neighborhoods", s.ListNeighborhoods)
	r.Get("/map", s.GetMap)

	r.Get("/itineraries", s.ListItineraries)
	r.Post("/itineraries", s.CreateItinerary)
	r.Get("/itineraries/{id}", s.GetItinerary)
	r.Patch("/itineraries/{id}", s.UpdateItinerary)
	r.Delete("/itineraries/{id}", s.DeleteItinerary)
	r.Post("/itineraries/{id}/items", s.AddItem)
	r.Delete("/itineraries/{id}/items/{itemId}", s.RemoveItem)
	r.Put("/itineraries/{id}/items/{itemId}/position", s.MoveItem)
	r.Put("/itineraries/{id}/items/{itemId}/time", s.SetItemTime)
	r.Get("/itineraries/{id}/print.pdf", s.PrintItinerary)
	r.Get("/itineraries/{id}/qr.png", s.ItineraryQRCode)
	r.Post("/planner/quick-add", s.QuickAdd)

	r.Get("/favorites", s.ListFavorites)
	r.Get("/favorites/{id}", s.GetFavorite)
	r.Put("/favorites/{id}", s.AddFavorite)
	r.Delete("/favorites/{id}", s.RemoveFavorite)

	r.Get("/export", s.GetExport)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: errorDetail{
			Code: "method_not_allowed", Message: r.Method + " is not supported on " + r.URL.Path,
		}})
	})
	return r
}
