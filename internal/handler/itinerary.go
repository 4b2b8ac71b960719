package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

// itineraryResponse is an itinerary with its derived totals.
type itineraryResponse struct {
	domain.Itinerary
	BudgetLabel          string `json:"budget_label,omitempty"`
	TotalDurationMinutes int    `json:"total_duration_minutes"`
	EstimatedCost        int    `json:"estimated_cost"`
}

type itineraryListResponse struct {
	Data       []itineraryResponse `json:"data"`
	Pagination pagination          `json:"pagination"`
}

type quickAddResponse struct {
	Itinerary itineraryResponse `json:"itinerary"`
	Created   bool              `json:"created"`
}

type createItineraryRequest struct {
	Name      string              `json:"name"`
	Occasion  domain.Occasion     `json:"occasion"`
	Duration  domain.PlanDuration `json:"duration"`
	Budget    *domain.Budget      `json:"budget"`
	PartySize domain.PartySize    `json:"party_size"`
}

type updateItineraryRequest struct {
	Name      *string              `json:"name"`
	Occasion  *domain.Occasion     `json:"occasion"`
	Duration  *domain.PlanDuration `json:"duration"`
	Budget    *domain.Budget       `json:"budget"`
	PartySize *domain.PartySize    `json:"party_size"`
}

type addItemRequest struct {
	ExperienceID string `json:"experience_id"`
}

type moveItemRequest struct {
	Position *int `json:"position"`
}

type setItemTimeRequest struct {
	StartTime string `json:"start_time"`
}

type quickAddRequest struct {
	ExperienceID string `json:"experience_id"`
	ItineraryID  string `json:"itinerary_id"`
}

const itineraryNotFound = "itinerary not found"

// CreateItinerary handles POST /itineraries.
func (s *Server) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var body createItineraryRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.itineraries.Create(r.Context(), domain.Itinerary{
		Name:      body.Name,
		Occasion:  body.Occasion,
		Duration:  body.Duration,
		Budget:    body.Budget,
		PartySize: body.PartySize,
	})
	if err != nil {
		writeServiceError(w, r, err, itineraryNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, itineraryToResponse(created))
}

// ListItineraries handles GET /itineraries.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=100, max=100).
func (s *Server) ListItineraries(w http.ResponseWriter, r *http.Request) {
	params, err := paginationParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	its, total := s.itineraries.List(r.Context(), params)
	data := make([]itineraryResponse, len(its))
	for i, it := range its {
		data[i] = itineraryToResponse(it)
	}
	writeJSON(w, http.StatusOK, itineraryListResponse{
		Data:       data,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetItinerary handles GET /itineraries/{id}.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathParams(w, r, "id")
	if !ok {
		return
	}

	it, err := s.itineraries.Get(r.Context(), ids[0])
	if err != nil {
		writeServiceError(w, r, err, itineraryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// UpdateItinerary handles PATCH /itineraries/{id}. Omitted fields are left unchanged.
func (s *Server) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathParams(w, r, "id")
	if !ok {
		return
	}
	var body updateItineraryRequest
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := s.itineraries.Update(r.Context(), ids[0], domain.ItineraryPatch{
		Name:      body.Name,
		Occasion:  body.Occasion,
		Duration:  body.Duration,
		Budget:    body.Budget,
		PartySize: body.PartySize,
	})
	if err != nil {
		writeServiceError(w, r, err, itineraryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(updated))
}

// DeleteItinerary handles DELETE /itineraries/{id}.
func (s *Server) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathParams(w, r, "id")
	if !ok {
		return
	}

	if err := s.itineraries.Delete(r.Context(), ids[0]); err != nil {
		writeServiceError(w, r, err, itineraryNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /itineraries/{id}/items.
func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathParams(w, r, "id")
	if !ok {
		return
	}
	var body addItemRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.ExperienceID == "" {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(errors.New("experience_id is required")))
		return
	}

	it, err := s.itineraries.AddItem(r.Context(), ids[0], body.ExperienceID)
	if err != nil {
		writeServiceError(w, r, err, itineraryNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, itineraryToResponse(it))
}

// RemoveItem handles DELETE /itineraries/{id}/items/{itemId}.
func (s *Server) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathParams(w, r, "id", "itemId")
	if !ok {
		return
	}

	it, err := s.itineraries.RemoveItem(r.Context(), ids[0], ids[1])
	if err != nil {
		writeServiceError(w, r, err, "itinerary item not found")
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// MoveItem handles PUT /itineraries/{id}/items/{itemId}/position.
func (s *Server) MoveItem(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathParams(w, r, "id", "itemId")
	if !ok {
		return
	}
	var body moveItemRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Position == nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(errors.New("position is required")))
		return
	}

	it, err := s.itineraries.MoveItem(r.Context(), ids[0], ids[1], *body.Position)
	if err != nil {
		writeServiceError(w, r, err, "itinerary item not found")
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// SetItemTime handles PUT /itineraries/{id}/items/{itemId}/time.
func (s *Server) SetItemTime(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathParams(w, r, "id", "itemId")
	if !ok {
		return
	}
	var body setItemTimeRequest
	if !decodeBody(w, r, &body) {
		return
	}

	it, err := s.itineraries.SetItemTime(r.Context(), ids[0], ids[1], body.StartTime)
	if err != nil {
		writeServiceError(w, r, err, "itinerary item not found")
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// QuickAdd handles POST /planner/quick-add. It answers 201 when a new
// itinerary had to be created and 200 otherwise.
func (s *Server) QuickAdd(w http.ResponseWriter, r *http.Request) {
	var body quickAddRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.ExperienceID == "" {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(errors.New("experience_id is required")))
		return
	}

	it, created, err := s.itineraries.QuickAdd(r.Context(), body.ExperienceID, body.ItineraryID)
	if err != nil {
		writeServiceError(w, r, err, "experience not found")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, quickAddResponse{Itinerary: itineraryToResponse(it), Created: created})
}

// itineraryToResponse adds the derived totals to a domain.Itinerary.
func itineraryToResponse(it domain.Itinerary) itineraryResponse {
	resp := itineraryResponse{
		Itinerary:            it,
		TotalDurationMinutes: it.TotalDurationMinutes(),
		EstimatedCost:        it.EstimatedCost(),
	}
	if resp.Items == nil {
		resp.Items = []domain.ItineraryItem{}
	}
	if it.Budget != nil {
		resp.BudgetLabel = it.Budget.String()
	}
	return resp
}
