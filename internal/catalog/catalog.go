// Package catalog holds the static, versioned set of experiences bundled with
// the server. It is decoded and validated once at startup and never mutated.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

//go:embed experiences.json
var bundled []byte

// Catalog is an immutable, ordered collection of experiences.
// It is safe for concurrent use because nothing mutates it after New.
type Catalog struct {
	version     string
	experiences []domain.Experience
	byID        map[string]int
}

type document struct {
	Version     string              `json:"version"`
	Experiences []domain.Experience `json:"experiences"`
}

// Load decodes and validates the catalog embedded in the binary.
func Load() (*Catalog, error) {
	return Parse(bundled)
}

// Parse decodes a catalog document and validates every record.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog.Parse: %w", err)
	}
	c, err := New(doc.Experiences)
	if err != nil {
		return nil, fmt.Errorf("catalog.Parse: %w", err)
	}
	c.version = doc.Version
	return c, nil
}

// New builds a Catalog from experiences in the given order. It returns an
// error describing every invalid record.
func New(experiences []domain.Experience) (*Catalog, error) {
	c := &Catalog{
		experiences: make([]domain.Experience, len(experiences)),
		byID:        make(map[string]int, len(experiences)),
	}
	for i, e := range experiences {
		c.experiences[i] = e.Clone()
	}

	var errs []error
	for i, e := range c.experiences {
		if e.ID == "" {
			errs = append(errs, fmt.Errorf("experience #%d: id is required", i))
			continue
		}
		if _, dup := c.byID[e.ID]; dup {
			errs = append(errs, fmt.Errorf("experience %q: duplicate id", e.ID))
			continue
		}
		c.byID[e.ID] = i
		if err := validate(e); err != nil {
			errs = append(errs, fmt.Errorf("experience %q: %w", e.ID, err))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, errors.Join(errs...))
	}
	return c, nil
}

func validate(e domain.Experience) error {
	var problems []string
	if strings.TrimSpace(e.Name) == "" {
		problems = append(problems, "name is required")
	}
	if !e.Type.Valid() {
		problems = append(problems, fmt.Sprintf("unknown type %q", e.Type))
	}
	if e.PriceLevel < 1 || e.PriceLevel > 4 {
		problems = append(problems, fmt.Sprintf("price_level %d out of range 1-4", e.PriceLevel))
	}
	if !e.TimeOfDay.Valid() {
		problems = append(problems, fmt.Sprintf("unknown time_of_day %q", e.TimeOfDay))
	}
	if e.Duration <= 0 {
		problems = append(problems, "duration must be positive")
	}
	if e.ImageURL == "" {
		problems = append(problems, "image_url is required")
	}
	if !domain.CityBounds.Contains(e.Lat, e.Lng) {
		problems = append(problems, fmt.Sprintf("location %.4f,%.4f outside city bounds", e.Lat, e.Lng))
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Version is the catalog document's version string.
func (c *Catalog) Version() string { return c.version }

// Len is the number of experiences.
func (c *Catalog) Len() int { return len(c.experiences) }

// All returns every experience in catalog order. The slice is a copy.
func (c *Catalog) All() []domain.Experience {
	out := make([]domain.Experience, len(c.experiences))
	for i, e := range c.experiences {
		out[i] = e.Clone()
	}
	return out
}

// Get looks up an experience by id.
func (c *Catalog) Get(id string) (domain.Experience, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Experience{}, false
	}
	return c.experiences[i].Clone(), true
}

// Related returns up to n experiences that share the neighborhood or the type
// of the experience with the given id, in catalog order, excluding itself.
// An unknown id yields nil.
func (c *Catalog) Related(id string, n int) []domain.Experience {
	self, ok := c.Get(id)
	if !ok || n <= 0 {
		return nil
	}
	var out []domain.Experience
	for _, e := range c.experiences {
		if e.ID == self.ID {
			continue
		}
		if e.Neighborhood == self.Neighborhood || e.Type == self.Type {
			out = append(out, e.Clone())
			if len(out) == n {
				break
			}
		}
	}
	return out
}

// Neighborhoods returns the distinct neighborhoods in first-seen order.
func (c *Catalog) Neighborhoods() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range c.experiences {
		if !seen[e.Neighborhood] {
			seen[e.Neighborhood] = true
			out = append(out, e.Neighborhood)
		}
	}
	return out
}
