package search

import (
	"slices"
	"strings"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

// Filter narrows experiences by the interpreted query, the free text, the
// explicit facets, and occasion eligibility, in that order. Every pass only
// removes items, so the result keeps the input order. The result is never nil.
//
// When the query was understood (parsed has constraints) the text stage
// matches each residual word on its own; otherwise the whole query must
// appear as a substring of the name, description, or neighborhood.
func Filter(experiences []domain.Experience, freeText string, parsed domain.PartialFilter, facets domain.Facets) []domain.Experience {
	needles := textNeedles(freeText, parsed)
	occasion, hasOccasion := activeOccasion(parsed, facets)

	out := make([]domain.Experience, 0, len(experiences))
	for _, e := range experiences {
		if parsed.PriceLevels != nil && !slices.Contains(parsed.PriceLevels, e.PriceLevel) {
			continue
		}
		if parsed.Types != nil && !slices.Contains(parsed.Types, e.Type) {
			continue
		}
		if !matchesAll(e, needles) {
			continue
		}
		if !matchesFacets(e, facets) {
			continue
		}
		if hasOccasion && !Eligible(occasion, e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func textNeedles(freeText string, parsed domain.PartialFilter) []string {
	lower := strings.ToLower(strings.TrimSpace(freeText))
	if lower == "" {
		return nil
	}
	if !parsed.HasConstraints() {
		return []string{lower}
	}
	return strings.Fields(parsed.Residual)
}

func matchesAll(e domain.Experience, needles []string) bool {
	for _, n := range needles {
		if !e.MatchesText(n) {
			return false
		}
	}
	return true
}

// activeOccasion picks the single occasion to apply: the first explicit one,
// or else the first one read from the query.
func activeOccasion(parsed domain.PartialFilter, facets domain.Facets) (domain.Occasion, bool) {
	if len(facets.Occasions) > 0 {
		return facets.Occasions[0], true
	}
	if len(parsed.Occasions) > 0 {
		return parsed.Occasions[0], true
	}
	return "", false
}

func matchesFacets(e domain.Experience, f domain.Facets) bool {
	if len(f.Types) > 0 && !slices.Contains(f.Types, e.Type) {
		return false
	}
	if len(f.PriceLevels) > 0 && !slices.Contains(f.PriceLevels, e.PriceLevel) {
		return false
	}
	if len(f.Neighborhoods) > 0 && !slices.Contains(f.Neighborhoods, e.Neighborhood) {
		return false
	}
	if len(f.TimesOfDay) > 0 && !slices.Contains(f.TimesOfDay, e.TimeOfDay) {
		return false
	}
	if f.Indoor && !e.Indoor {
		return false
	}
	if f.Outdoor && !e.Outdoor {
		return false
	}
	if f.KidFriendly && !e.KidFriendly {
		return false
	}
	if f.Accessibility && !e.Accessibility {
		return false
	}
	return true
}
