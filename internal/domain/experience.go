// Package domain contains the core data types for the SF Experiences planner.
// This package has no dependencies on other internal packages and is imported
// by every other internal package (catalog, search, repo, service, handler).
package domain

import "strings"

// ExperienceType is the closed set of experience categories.
type ExperienceType string

const (
	TypeFood          ExperienceType = "food"
	TypeOutdoor       ExperienceType = "outdoor"
	TypeArts          ExperienceType = "arts"
	TypeNightlife     ExperienceType = "nightlife"
	TypeShopping      ExperienceType = "shopping"
	TypeWellness      ExperienceType = "wellness"
	TypeSightseeing   ExperienceType = "sightseeing"
	TypeHidden        ExperienceType = "hidden"
	TypeFamily        ExperienceType = "family"
	TypeActivities    ExperienceType = "activities"
	TypeEntertainment ExperienceType = "entertainment"
	TypeCultural      ExperienceType = "cultural"
	TypeFree          ExperienceType = "free"
)

var validTypes = map[ExperienceType]bool{
	TypeFood: true, TypeOutdoor: true, TypeArts: true, TypeNightlife: true,
	TypeShopping: true, TypeWellness: true, TypeSightseeing: true, TypeHidden: true,
	TypeFamily: true, TypeActivities: true, TypeEntertainment: true, TypeCultural: true,
	TypeFree: true,
}

// Valid reports whether t is one of the known experience types.
func (t ExperienceType) Valid() bool { return validTypes[t] }

// TimeOfDay is the part of the day an experience is best suited to.
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeAnytime   TimeOfDay = "anytime"
	TimeLunch     TimeOfDay = "lunch"
)

// Valid reports whether t is one of the known times of day.
func (t TimeOfDay) Valid() bool {
	switch t {
	case TimeMorning, TimeAfternoon, TimeEvening, TimeAnytime, TimeLunch:
		return true
	}
	return false
}

// Experience is a single curated catalog entry. Experiences are read-only
// once the catalog is loaded; itineraries embed copies of them.
type Experience struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Type          ExperienceType `json:"type"`
	Neighborhood  string         `json:"neighborhood"`
	Address       string         `json:"address"`
	Lat           float64        `json:"lat"`
	Lng           float64        `json:"lng"`
	PriceLevel    int            `json:"price_level"` // 1 (cheapest) to 4
	TimeOfDay     TimeOfDay      `json:"time_of_day"`
	Indoor        bool           `json:"indoor"`
	Outdoor       bool           `json:"outdoor"`
	KidFriendly   bool           `json:"kid_friendly"`
	Accessibility bool           `json:"accessibility"`
	ImageURL      string         `json:"image_url"`
	BookingURL    string         `json:"booking_url,omitempty"`
	Duration      int            `json:"duration"` // minutes
	Rating        *float64       `json:"rating,omitempty"`
	Hours         string         `json:"hours,omitempty"`
	Highlights    []string       `json:"highlights,omitempty"`
}

// Clone returns a copy of e whose rating and highlights are not shared.
func (e Experience) Clone() Experience {
	e.Rating = clonePtr(e.Rating)
	if e.Highlights != nil {
		e.Highlights = append([]string{}, e.Highlights...)
	}
	return e
}

// Reservable reports whether the experience can be booked ahead.
func (e Experience) Reservable() bool { return e.BookingURL != "" }

// MatchesText reports whether the lowercased query is a substring of the
// experience's name, description, or neighborhood, ignoring case.
func (e Experience) MatchesText(lowerQuery string) bool {
	return strings.Contains(strings.ToLower(e.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(e.Description), lowerQuery) ||
		strings.Contains(strings.ToLower(e.Neighborhood), lowerQuery)
}

// FormatPrice renders a price level for display: "$" repeated level times,
// or "Free" for level 1 when showFree is set.
func FormatPrice(level int, showFree bool) string {
	if level == 1 && showFree {
		return "Free"
	}
	if level < 1 {
		return ""
	}
	return strings.Repeat("$", level)
}
