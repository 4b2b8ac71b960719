package domain

import "sort"

// State is the persisted planner payload: the favorites set and every
// itinerary, in creation order.
type State struct {
	Favorites   []string    `json:"favorites"`
	Itineraries []Itinerary `json:"itineraries"`
}

// EmptyState returns a State with non-nil, empty collections.
func EmptyState() State {
	return State{Favorites: []string{}, Itineraries: []Itinerary{}}
}

// Normalize makes a decoded State safe to use: nil collections become empty,
// duplicate favorites are dropped, and item orders are re-densified.
// Older payloads may violate these rules; the store calls this after loading.
func (s *State) Normalize() {
	if s.Favorites == nil {
		s.Favorites = []string{}
	}
	if s.Itineraries == nil {
		s.Itineraries = []Itinerary{}
	}

	seen := make(map[string]bool, len(s.Favorites))
	favs := s.Favorites[:0]
	for _, id := range s.Favorites {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		favs = append(favs, id)
	}
	s.Favorites = favs

	for i := range s.Itineraries {
		if s.Itineraries[i].Items == nil {
			s.Itineraries[i].Items = []ItineraryItem{}
		}
		sortItemsByOrder(s.Itineraries[i].Items)
		s.Itineraries[i].Resequence()
	}
}

func sortItemsByOrder(items []ItineraryItem) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
}
