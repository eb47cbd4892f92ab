package selector_test

import (
	"testing"

	"github.com/mydehq/texlib/internal/category"
	"github.com/mydehq/texlib/internal/pass"
	"github.com/mydehq/texlib/internal/selector"
	"github.com/mydehq/texlib/internal/types"
)

func unit(t *testing.T, cat string, passes ...pass.Type) *types.TextureUnit {
	t.Helper()
	c, ok := category.Default().Lookup(cat)
	if !ok {
		t.Fatalf("unknown category %q", cat)
	}
	u := &types.TextureUnit{Name: "unit", Category: c}
	for i, p := range passes {
		name := p.String() + "_" + string(rune('a'+i)) + ".png"
		u.Passes = append(u.Passes, types.TexturePass{Name: name, Path: "/lib/unit/" + name, Type: p})
	}
	return u
}

func TestRepresentative(t *testing.T) {
	tests := []struct {
		name     string
		category string
		passes   []pass.Type
		wantIdx  int
	}{
		{"Metal prefers metallic", "Metal", []pass.Type{pass.BaseColor, pass.Normal, pass.Metallic}, 2},
		{"Metal first metallic", "Metal", []pass.Type{pass.Metallic, pass.Metallic}, 0},
		{"Metal without metallic falls back to base color", "Metal", []pass.Type{pass.Normal, pass.BaseColor}, 1},
		{"Metal with neither uses first pass", "Metal", []pass.Type{pass.Normal, pass.Roughness}, 0},
		{"Non-metal ignores metallic", "Stone", []pass.Type{pass.Metallic, pass.BaseColor}, 1},
		{"Non-metal first pass", "Paper", []pass.Type{pass.AO, pass.Metallic}, 0},
		{"Single pass", "Uncategorized", []pass.Type{pass.Unknown}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := unit(t, tt.category, tt.passes...)
			got, ok := selector.Representative(u)
			if !ok {
				t.Fatal("Representative() ok = false")
			}
			if want := u.Passes[tt.wantIdx]; got != want {
				t.Errorf("Representative() = %s; want %s", got.Name, want.Name)
			}
		})
	}
}

func TestRepresentativeEmpty(t *testing.T) {
	u := unit(t, "Metal")
	if _, ok := selector.Representative(u); ok {
		t.Error("Representative() on a unit without passes should report false")
	}
	if _, ok := selector.ForExport(u, selector.Request{Composite: true}); ok {
		t.Error("ForExport() on a unit without passes should report false")
	}
}

func TestForExport(t *testing.T) {
	tests := []struct {
		name     string
		category string
		passes   []pass.Type
		request  string
		wantIdx  int
	}{
		{"Composite metal uses metallic", "Metal", []pass.Type{pass.BaseColor, pass.Metallic}, "composite", 1},
		{"Composite metal without metallic", "Metal", []pass.Type{pass.Normal, pass.BaseColor}, "composite", 1},
		{"Composite stone uses base color", "Stone", []pass.Type{pass.Metallic, pass.BaseColor}, "Composite", 1},
		{"Composite without base color", "Stone", []pass.Type{pass.Normal, pass.AO}, "composite", 0},
		{"Explicit normal", "Stone", []pass.Type{pass.BaseColor, pass.Normal}, "normal", 1},
		{"Explicit missing falls back", "Stone", []pass.Type{pass.BaseColor, pass.Normal}, "Emission", 0},
		{"Explicit metallic on non-metal", "Brick", []pass.Type{pass.BaseColor, pass.Metallic}, "metallic", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := selector.ParseRequest(tt.request)
			if err != nil {
				t.Fatalf("ParseRequest(%q) error = %v", tt.request, err)
			}
			u := unit(t, tt.category, tt.passes...)
			got, ok := selector.ForExport(u, req)
			if !ok {
				t.Fatal("ForExport() ok = false")
			}
			if want := u.Passes[tt.wantIdx]; got != want {
				t.Errorf("ForExport(%s) = %s; want %s", req, got.Name, want.Name)
			}
		})
	}
}

func TestParseRequest(t *testing.T) {
	if _, err := selector.ParseRequest("sparkle"); err == nil {
		t.Error("ParseRequest(sparkle) should fail")
	}
	req, err := selector.ParseRequest("COMPOSITE")
	if err != nil || !req.Composite {
		t.Errorf("ParseRequest(COMPOSITE) = %+v, %v", req, err)
	}
	if req.String() != "composite" {
		t.Errorf("String() = %q", req.String())
	}
}
