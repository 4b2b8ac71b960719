package domain

// PartialFilter is the structured reading of a free-text query.
// Nil slices mean "no constraint on this field".
type PartialFilter struct {
	PriceLevels []int            `json:"price_levels,omitempty"`
	Types       []ExperienceType `json:"types,omitempty"`
	Occasions   []Occasion       `json:"occasions,omitempty"`

	// Keywords holds informational scenic hints ("bay", "view"). They never
	// narrow a result on their own.
	Keywords []string `json:"keywords,omitempty"`

	// Residual is the lowercased query text left after removing the price
	// phrase, the words that produced Types or Occasions, and filler words.
	// It equals the whole trimmed query when nothing was recognized.
	Residual string `json:"residual,omitempty"`
}

// HasConstraints reports whether the query produced any narrowing field.
func (p PartialFilter) HasConstraints() bool {
	return p.PriceLevels != nil || p.Types != nil || p.Occasions != nil
}

// Facets are the explicit filters a user selects. Empty slices and false
// booleans impose no constraint; every specified facet must hold.
type Facets struct {
	Types         []ExperienceType
	PriceLevels   []int
	Neighborhoods []string
	TimesOfDay    []TimeOfDay
	Indoor        bool
	Outdoor       bool
	KidFriendly   bool
	Accessibility bool

	// Occasions are matched by eligibility rules; only the first is applied.
	Occasions []Occasion
}

// ActiveCount is the number of selected facet values: one per selected
// list entry plus one per enabled boolean.
func (f Facets) ActiveCount() int {
	n := len(f.Types) + len(f.PriceLevels) + len(f.Neighborhoods) + len(f.TimesOfDay) + len(f.Occasions)
	for _, on := range []bool{f.Indoor, f.Outdoor, f.KidFriendly, f.Accessibility} {
		if on {
			n++
		}
	}
	return n
}
