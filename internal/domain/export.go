package domain

import "time"

// ExportRow is a single row in the full planner export.
// It is a flat, denormalized view: one row per itinerary item, with the
// itinerary fields repeated for every item. Itineraries with no items yield
// one row with zero values for all item fields.
type ExportRow struct {
	// Itinerary fields, repeated for every item.
	ItineraryID   string
	ItineraryName string
	Occasion      string
	Duration      string
	Budget        string // empty when unset
	CreatedAt     time.Time

	// Item fields are zero values when the itinerary has no items.
	// Position is nil for the empty-itinerary row.
	Position        *int
	StartTime       string
	ExperienceID    string
	ExperienceName  string
	Neighborhood    string
	DurationMinutes int
	PriceLevel      int
}
