// Package pass maps texture filenames to PBR pass roles.
package pass

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Type is the semantic role of a texture file within a material.
type Type int

const (
	BaseColor Type = iota
	Normal
	Roughness
	Height
	AO
	Metallic
	Specular
	Displacement
	Opacity
	Emission
	Unknown
)

var typeNames = [...]string{
	BaseColor:    "BaseColor",
	Normal:       "Normal",
	Roughness:    "Roughness",
	Height:       "Height",
	AO:           "AO",
	Metallic:     "Metallic",
	Specular:     "Specular",
	Displacement: "Displacement",
	Opacity:      "Opacity",
	Emission:     "Emission",
	Unknown:      "Unknown",
}

// Types returns every pass type in declaration order, Unknown last.
func Types() []Type {
	out := make([]Type, 0, len(typeNames))
	for t := range typeNames {
		out = append(out, Type(t))
	}
	return out
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// Parse resolves a pass type from its name, ignoring case.
func Parse(s string) (Type, error) {
	s = strings.TrimSpace(s)
	for i, name := range typeNames {
		if strings.EqualFold(name, s) {
			return Type(i), nil
		}
	}
	return Unknown, fmt.Errorf("unknown pass type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Rule maps a lowercase filename keyword to a pass type.
type Rule struct {
	Keyword string `yaml:"keyword"`
	Type    Type   `yaml:"type"`
}

// DefaultRules returns the built-in keyword table. Order is priority: the
// first keyword found in a filename decides its type.
func DefaultRules() []Rule {
	return []Rule{
		{"basecolor", BaseColor},
		{"base_color", BaseColor},
		{"diffuse", BaseColor},
		{"albedo", BaseColor},
		{"col", BaseColor},
		{"normal", Normal},
		{"nor", Normal},
		{"nrm", Normal},
		{"roughness", Roughness},
		{"rough", Roughness},
		{"rgh", Roughness},
		{"height", Height},
		{"disp", Displacement},
		{"displacement", Displacement},
		{"ao", AO},
		{"ambient", AO},
		{"occlusion", AO},
		{"metallic", Metallic},
		{"metal", Metallic},
		{"specular", Specular},
		{"spec", Specular},
		{"opacity", Opacity},
		{"alpha", Opacity},
		{"emission", Emission},
		{"emit", Emission},
	}
}

// Classifier assigns pass types by first substring match over an ordered
// rule table. It is safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// New builds a classifier over rules. Keywords are lower-cased; empty
// keywords are dropped since they would match every filename.
func New(rules []Rule) *Classifier {
	c := &Classifier{rules: make([]Rule, 0, len(rules))}
	for _, r := range rules {
		kw := strings.ToLower(strings.TrimSpace(r.Keyword))
		if kw == "" {
			continue
		}
		c.rules = append(c.rules, Rule{Keyword: kw, Type: r.Type})
	}
	return c
}

// Default returns a classifier over DefaultRules.
func Default() *Classifier {
	return New(DefaultRules())
}

// Rules returns a copy of the classifier's table in priority order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify returns the type of the first rule whose keyword occurs in the
// lower-cased name, or Unknown.
func (c *Classifier) Classify(name string) Type {
	lower := strings.ToLower(name)
	for _, r := range c.rules {
		if strings.Contains(lower, r.Keyword) {
			return r.Type
		}
	}
	return Unknown
}

// ClassifyFile classifies a path by its base name without extension.
func (c *Classifier) ClassifyFile(path string) Type {
	base := filepath.Base(path)
	return c.Classify(strings.TrimSuffix(base, filepath.Ext(base)))
}
