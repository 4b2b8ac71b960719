package domain

import (
	"fmt"
	"time"
)

// Occasion is the planning occasion an itinerary is built around.
// The same tags drive the occasion eligibility rules in search.
type Occasion string

const (
	OccasionGeneral     Occasion = "general"
	OccasionBirthday    Occasion = "birthday"
	OccasionAnniversary Occasion = "anniversary"
	OccasionMemorial    Occasion = "memorial"
	OccasionDateNight   Occasion = "date-night"
	OccasionFamily      Occasion = "family"
	OccasionSolo        Occasion = "solo"
	OccasionFriends     Occasion = "friends"
)

// Valid reports whether o is one of the known occasion tags.
func (o Occasion) Valid() bool {
	switch o {
	case OccasionGeneral, OccasionBirthday, OccasionAnniversary, OccasionMemorial,
		OccasionDateNight, OccasionFamily, OccasionSolo, OccasionFriends:
		return true
	}
	return false
}

// PlanDuration is the planning bucket for an itinerary.
type PlanDuration string

const (
	DurationHalfDay PlanDuration = "half-day"
	DurationFullDay PlanDuration = "full-day"
	DurationEvening PlanDuration = "evening"
	DurationCustom  PlanDuration = "custom"
)

// Valid reports whether d is one of the known planning buckets.
func (d PlanDuration) Valid() bool {
	switch d {
	case DurationHalfDay, DurationFullDay, DurationEvening, DurationCustom:
		return true
	}
	return false
}

// PartySize describes who the itinerary is for.
type PartySize string

const (
	PartySolo       PartySize = "solo"
	PartyCouple     PartySize = "couple"
	PartySmallGroup PartySize = "small-group"
	PartyLargeGroup PartySize = "large-group"
)

// Valid reports whether p is one of the known party sizes.
func (p PartySize) Valid() bool {
	switch p {
	case PartySolo, PartyCouple, PartySmallGroup, PartyLargeGroup:
		return true
	}
	return false
}

// Budget is either a discrete price level (1-4) or a custom dollar amount.
// Exactly one of Level and Custom is set on a valid Budget.
type Budget struct {
	Level  *int `json:"level,omitempty"`
	Custom *int `json:"custom,omitempty"`
}

// Clone returns a copy that shares no pointers with b. A nil budget stays nil.
func (b *Budget) Clone() *Budget {
	if b == nil {
		return nil
	}
	return &Budget{Level: clonePtr(b.Level), Custom: clonePtr(b.Custom)}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Validate checks that exactly one budget form is set and within range.
func (b Budget) Validate() error {
	switch {
	case b.Level != nil && b.Custom != nil:
		return fmt.Errorf("%w: budget must be either a level or a custom amount", ErrValidation)
	case b.Level != nil:
		if *b.Level < 1 || *b.Level > 4 {
			return fmt.Errorf("%w: budget level must be between 1 and 4", ErrValidation)
		}
	case b.Custom != nil:
		if *b.Custom < 0 {
			return fmt.Errorf("%w: custom budget must not be negative", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: budget requires a level or a custom amount", ErrValidation)
	}
	return nil
}

// String renders the budget the way the planner displays it, e.g. "$2" or "$350".
func (b Budget) String() string {
	switch {
	case b.Level != nil:
		return fmt.Sprintf("$%d", *b.Level)
	case b.Custom != nil:
		return fmt.Sprintf("$%d", *b.Custom)
	}
	return ""
}

// StartTimeLayout is the wall-clock format of ItineraryItem.StartTime.
const StartTimeLayout = "15:04"

// ItineraryItem is one scheduled stop in an itinerary. Experience is a copy
// taken when the item was added, so later catalog changes do not affect it.
type ItineraryItem struct {
	ID           string     `json:"id"`
	ExperienceID string     `json:"experience_id"`
	Experience   Experience `json:"experience"`
	StartTime    string     `json:"start_time"` // StartTimeLayout
	Order        int        `json:"order"`
}

// Itinerary is the planning aggregate: a named, ordered list of items.
// Items are kept sorted by Order, and Order is always 0..len(Items)-1.
type Itinerary struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Occasion  Occasion        `json:"occasion"`
	Duration  PlanDuration    `json:"duration"`
	Budget    *Budget         `json:"budget,omitempty"`
	PartySize PartySize       `json:"party_size,omitempty"`
	Items     []ItineraryItem `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
}

// ItineraryPatch carries a partial update. Nil fields are left unchanged.
type ItineraryPatch struct {
	Name      *string
	Occasion  *Occasion
	Duration  *PlanDuration
	Budget    *Budget
	PartySize *PartySize
}

// priceEstimates maps a price level to the planner's per-stop dollar estimate.
var priceEstimates = map[int]int{1: 25, 2: 75, 3: 150, 4: 300}

// PriceEstimate returns the dollar estimate for a price level, or 0 for an
// unknown level.
func PriceEstimate(level int) int {
	return priceEstimates[level]
}

// TotalDurationMinutes is the sum of the durations of every item.
func (it Itinerary) TotalDurationMinutes() int {
	total := 0
	for _, item := range it.Items {
		total += item.Experience.Duration
	}
	return total
}

// EstimatedCost is the sum of the per-level dollar estimates of every item.
func (it Itinerary) EstimatedCost() int {
	total := 0
	for _, item := range it.Items {
		total += PriceEstimate(item.Experience.PriceLevel)
	}
	return total
}

// Resequence reassigns every item's Order to its slice position.
func (it *Itinerary) Resequence() {
	for i := range it.Items {
		it.Items[i].Order = i
	}
}

// ItemIndex returns the slice position of the item with the given id, or -1.
func (it Itinerary) ItemIndex(itemID string) int {
	for i, item := range it.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the itinerary so callers cannot mutate
// store-owned slices.
func (it Itinerary) Clone() Itinerary {
	out := it
	out.Items = make([]ItineraryItem, len(it.Items))
	for i, item := range it.Items {
		item.Experience = item.Experience.Clone()
		out.Items[i] = item
	}
	out.Budget = it.Budget.Clone()
	return out
}
