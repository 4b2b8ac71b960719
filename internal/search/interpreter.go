// Package search implements the free-text query interpreter and the filter
// engine that narrows the catalog. Everything here is pure and deterministic.
package search

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

// pricePattern captures a "maximum dollar amount" phrase. Only the first
// match in a query is honored.
var pricePattern = regexp.MustCompile(`(?:under|below|less than|max|up to)\s*\$?(\d+)`)

type occasionWord struct {
	word string
	tag  domain.Occasion
}

type typeWord struct {
	word string
	tag  domain.ExperienceType
}

// Dictionary order is output order.
var occasionWords = []occasionWord{
	{"romantic", domain.OccasionDateNight},
	{"date", domain.OccasionDateNight},
	{"birthday", domain.OccasionBirthday},
	{"anniversary", domain.OccasionAnniversary},
	{"memorial", domain.OccasionMemorial},
	{"remembrance", domain.OccasionMemorial},
	{"family", domain.OccasionFamily},
	{"kids", domain.OccasionFamily},
	{"children", domain.OccasionFamily},
	{"solo", domain.OccasionSolo},
	{"friends", domain.OccasionFriends},
}

var typeWords = []typeWord{
	{"restaurant", domain.TypeFood},
	{"dining", domain.TypeFood},
	{"food", domain.TypeFood},
	{"eat", domain.TypeFood},
	{"dinner", domain.TypeFood},
	{"brunch", domain.TypeFood},
	{"park", domain.TypeOutdoor},
	{"outdoor", domain.TypeOutdoor},
	{"hike", domain.TypeOutdoor},
	{"museum", domain.TypeArts},
	{"art", domain.TypeArts},
	{"culture", domain.TypeArts},
	{"bar", domain.TypeNightlife},
	{"lounge", domain.TypeNightlife},
	{"nightlife", domain.TypeNightlife},
	{"shop", domain.TypeShopping},
	{"shopping", domain.TypeShopping},
	{"spa", domain.TypeWellness},
	{"wellness", domain.TypeWellness},
	{"sightseeing", domain.TypeSightseeing},
	{"tour", domain.TypeSightseeing},
	{"hidden", domain.TypeHidden},
	{"gem", domain.TypeHidden},
}

var scenicWords = []string{"bay", "waterfront", "view"}

// scenicKeywords is the hint recorded for any scenic word.
var scenicKeywords = []string{"bay", "view"}

// fillerWords are dropped from the residual text once a query has been
// understood, so "food in the mission" leaves just "mission".
var fillerWords = map[string]bool{
	"in": true, "the": true, "a": true, "an": true, "at": true, "for": true,
	"with": true, "near": true, "and": true, "on": true, "of": true, "to": true,
}

// Interpret reads a free-text query into a structured partial filter.
// Matching is case-insensitive substring matching against fixed dictionaries.
// Blank input yields the zero PartialFilter.
func Interpret(text string) domain.PartialFilter {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return domain.PartialFilter{}
	}

	var out domain.PartialFilter
	rest := lower

	if loc := pricePattern.FindStringSubmatchIndex(lower); loc != nil {
		// An amount too large for int is not a constraint.
		if amount, err := strconv.Atoi(lower[loc[2]:loc[3]]); err == nil {
			out.PriceLevels = priceLevelsUnder(amount)
			rest = lower[:loc[0]] + " " + lower[loc[1]:]
		}
	}

	for _, ow := range occasionWords {
		if strings.Contains(lower, ow.word) && !slices.Contains(out.Occasions, ow.tag) {
			out.Occasions = append(out.Occasions, ow.tag)
		}
	}
	for _, tw := range typeWords {
		if strings.Contains(lower, tw.word) && !slices.Contains(out.Types, tw.tag) {
			out.Types = append(out.Types, tw.tag)
		}
	}
	for _, w := range scenicWords {
		if strings.Contains(lower, w) {
			out.Keywords = append([]string(nil), scenicKeywords...)
			break
		}
	}

	if !out.HasConstraints() {
		out.Residual = lower
		return out
	}
	out.Residual = strings.Join(residualWords(rest), " ")
	return out
}

// priceLevelsUnder maps a dollar ceiling to the allowed price levels.
func priceLevelsUnder(amount int) []int {
	switch {
	case amount < 50:
		return []int{1}
	case amount < 100:
		return []int{1, 2}
	case amount < 200:
		return []int{1, 2, 3}
	default:
		return []int{1, 2, 3, 4}
	}
}

// residualWords returns the words of text that did not contribute an
// occasion or type, with filler words removed.
func residualWords(text string) []string {
	var out []string
	for _, w := range strings.Fields(text) {
		if fillerWords[w] || consumed(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func consumed(word string) bool {
	for _, ow := range occasionWords {
		if strings.Contains(word, ow.word) {
			return true
		}
	}
	for _, tw := range typeWords {
		if strings.Contains(word, tw.word) {
			return true
		}
	}
	return false
}
