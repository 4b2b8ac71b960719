package service

import (
	"context"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

// ExportService flattens every itinerary into export rows.
type ExportService struct {
	store *Store
}

// NewExportService constructs an ExportService over the store.
func NewExportService(store *Store) *ExportService {
	return &ExportService{store: store}
}

// Export returns one ExportRow per item across all itineraries, in creation
// then item order. Itineraries with no items contribute one row with empty
// item fields.
func (s *ExportService) Export(_ context.Context) []domain.ExportRow {
	its := s.store.Itineraries()
	rows := make([]domain.ExportRow, 0, len(its))
	for _, it := range its {
		rows = append(rows, ItineraryRows(it)...)
	}
	return rows
}

// ItineraryRows flattens one itinerary.
func ItineraryRows(it domain.Itinerary) []domain.ExportRow {
	base := domain.ExportRow{
		ItineraryID:   it.ID,
		ItineraryName: it.Name,
		Occasion:      string(it.Occasion),
		Duration:      string(it.Duration),
		CreatedAt:     it.CreatedAt,
	}
	if it.Budget != nil {
		base.Budget = it.Budget.String()
	}
	if len(it.Items) == 0 {
		return []domain.ExportRow{base}
	}

	rows := make([]domain.ExportRow, 0, len(it.Items))
	for _, item := range it.Items {
		row := base
		pos := item.Order
		row.Position = &pos
		row.StartTime = item.StartTime
		row.ExperienceID = item.ExperienceID
		row.ExperienceName = item.Experience.Name
		row.Neighborhood = item.Experience.Neighborhood
		row.DurationMinutes = item.Experience.Duration
		row.PriceLevel = item.Experience.PriceLevel
		rows = append(rows, row)
	}
	return rows
}
