package search

import (
	"slices"
	"strings"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

// Eligible reports whether an experience suits the occasion. Unknown
// occasions, and "general", impose no restriction.
func Eligible(o domain.Occasion, e domain.Experience) bool {
	desc := strings.ToLower(e.Description)
	switch o {
	case domain.OccasionDateNight:
		return (e.Type == domain.TypeFood && e.PriceLevel >= 2) ||
			e.Type == domain.TypeNightlife ||
			(e.Type == domain.TypeOutdoor && strings.Contains(desc, "sunset"))
	case domain.OccasionBirthday:
		return typeIn(e, domain.TypeFood, domain.TypeNightlife, domain.TypeArts, domain.TypeOutdoor)
	case domain.OccasionAnniversary:
		return e.PriceLevel >= 2 && typeIn(e, domain.TypeFood, domain.TypeNightlife, domain.TypeArts)
	case domain.OccasionMemorial:
		return typeIn(e, domain.TypeOutdoor, domain.TypeArts) ||
			strings.Contains(desc, "peaceful") ||
			strings.Contains(desc, "quiet") ||
			strings.Contains(desc, "serene")
	case domain.OccasionFamily:
		return e.KidFriendly
	case domain.OccasionSolo:
		return e.Accessibility && typeIn(e, domain.TypeOutdoor, domain.TypeArts, domain.TypeFood)
	case domain.OccasionFriends:
		return typeIn(e, domain.TypeNightlife, domain.TypeFood, domain.TypeOutdoor)
	}
	return true
}

func typeIn(e domain.Experience, types ...domain.ExperienceType) bool {
	return slices.Contains(types, e.Type)
}
