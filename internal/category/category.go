// Package category holds the material category table and resolves a texture
// unit's category from its name.
package category

import (
	"fmt"
	"strings"
)

// Names of categories the rest of the program refers to directly.
const (
	Metal         = "Metal"
	Uncategorized = "Uncategorized"
)

// Category is a material category. Keywords are lowercase substrings matched
// against a unit name.
type Category struct {
	Name        string   `yaml:"name"`
	DisplayName string   `yaml:"display_name"`
	Keywords    []string `yaml:"keywords"`
}

// matches reports whether any keyword occurs in lower.
func (c *Category) matches(lower string) bool {
	for _, kw := range c.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Defaults returns the built-in categories. The order is a priority list:
// Resolve returns the first match, so Metal beats Rusted for "rusted_metal".
func Defaults() []Category {
	return []Category{
		{Name: "Metal", DisplayName: "Metal", Keywords: []string{"metal", "steel", "iron", "copper", "brass", "aluminum"}},
		{Name: "Stone", DisplayName: "Stone", Keywords: []string{"stone", "rock", "granite", "marble"}},
		{Name: "Fabric", DisplayName: "Fabric / Textile", Keywords: []string{"fabric", "textile", "cloth", "cotton", "wool"}},
		{Name: "Concrete", DisplayName: "Concrete", Keywords: []string{"concrete", "cement"}},
		{Name: "Brick", DisplayName: "Brick", Keywords: []string{"brick", "masonry"}},
		{Name: "Plastic", DisplayName: "Plastic", Keywords: []string{"plastic", "polymer"}},
		{Name: "Leather", DisplayName: "Leather", Keywords: []string{"leather", "hide"}},
		{Name: "Ground", DisplayName: "Ground / Soil", Keywords: []string{"ground", "soil", "dirt", "earth"}},
		{Name: "Grass", DisplayName: "Grass", Keywords: []string{"grass", "lawn", "turf"}},
		{Name: "Sand", DisplayName: "Sand", Keywords: []string{"sand", "beach", "desert"}},
		{Name: "Tile", DisplayName: "Tile", Keywords: []string{"tile", "ceramic", "porcelain"}},
		{Name: "Paper", DisplayName: "Paper / Cardboard", Keywords: []string{"paper", "cardboard", "carton"}},
		{Name: "Glass", DisplayName: "Glass", Keywords: []string{"glass", "transparent"}},
		{Name: "Painted", DisplayName: "Painted Surfaces", Keywords: []string{"paint", "painted", "coating"}},
		{Name: "Rusted", DisplayName: "Rusted / Corroded", Keywords: []string{"rust", "rusted", "corroded", "oxidized"}},
		{Name: "Asphalt", DisplayName: "Asphalt", Keywords: []string{"asphalt", "tarmac", "road"}},
		{Name: "Water", DisplayName: "Water", Keywords: []string{"water", "liquid", "sea", "ocean"}},
		{Name: "Snow", DisplayName: "Snow / Ice", Keywords: []string{"snow", "ice", "frozen"}},
		{Name: "Organic", DisplayName: "Organic / Bark / Leaves", Keywords: []string{"bark", "leaves", "organic", "wood", "tree"}},
		{Name: "Uncategorized", DisplayName: "Uncategorized", Keywords: []string{}},
	}
}

// Registry is an ordered, immutable set of categories. Units hold pointers
// into it, so two units of the same category share one *Category.
type Registry struct {
	categories []*Category
	fallback   *Category
}

// NewRegistry copies cats into a registry. Keywords are lower-cased and
// trimmed. If no Uncategorized entry is present one is appended; an
// Uncategorized entry must not carry keywords.
func NewRegistry(cats []Category) (*Registry, error) {
	r := &Registry{categories: make([]*Category, 0, len(cats)+1)}
	seen := make(map[string]bool, len(cats))

	for _, c := range cats {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("category with empty name")
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, fmt.Errorf("duplicate category %q", name)
		}
		seen[key] = true

		display := c.DisplayName
		if display == "" {
			display = name
		}
		keywords := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}

		cat := &Category{Name: name, DisplayName: display, Keywords: keywords}
		if strings.EqualFold(name, Uncategorized) {
			if len(keywords) > 0 {
				return nil, fmt.Errorf("category %q must not have keywords", Uncategorized)
			}
			r.fallback = cat
		}
		r.categories = append(r.categories, cat)
	}

	if r.fallback == nil {
		r.fallback = &Category{Name: Uncategorized, DisplayName: Uncategorized, Keywords: []string{}}
		r.categories = append(r.categories, r.fallback)
	}
	return r, nil
}

// Default returns a registry over Defaults.
func Default() *Registry {
	r, err := NewRegistry(Defaults())
	if err != nil {
		panic(fmt.Sprintf("category: invalid default table: %v", err))
	}
	return r
}

// Resolve returns the first category whose keywords occur in the
// lower-cased name, or the Uncategorized entry.
func (r *Registry) Resolve(name string) *Category {
	lower := strings.ToLower(name)
	for _, c := range r.categories {
		if c.matches(lower) {
			return c
		}
	}
	return r.fallback
}

// Lookup finds a category by name, ignoring case.
func (r *Registry) Lookup(name string) (*Category, bool) {
	for _, c := range r.categories {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return nil, false
}

// Uncategorized returns the fallback category.
func (r *Registry) Uncategorized() *Category {
	return r.fallback
}

// All returns the categories in priority order.
func (r *Registry) All() []*Category {
	out := make([]*Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// Names returns category names in priority order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.categories))
	for i, c := range r.categories {
		names[i] = c.Name
	}
	return names
}
