package category_test

import (
	"slices"
	"testing"

	"github.com/mydehq/texlib/internal/category"
)

func TestDefaultOrder(t *testing.T) {
	want := []string{
		"Metal", "Stone", "Fabric", "Concrete", "Brick", "Plastic", "Leather",
		"Ground", "Grass", "Sand", "Tile", "Paper", "Glass", "Painted",
		"Rusted", "Asphalt", "Water", "Snow", "Organic", "Uncategorized",
	}
	got := category.Default().Names()
	if !slices.Equal(got, want) {
		t.Errorf("Names() = %v\nwant %v", got, want)
	}
}

func TestResolve(t *testing.T) {
	reg := category.Default()

	tests := []struct {
		name     string
		unitName string
		want     string
	}{
		{"Metal precedes Rusted", "rusted_metal_panel", "Metal"},
		{"Steel precedes rust", "Rusty_Steel_Panel", "Metal"},
		{"Paper", "old_paper_box", "Paper"},
		{"Substring not whole word", "brickyard_01", "Brick"},
		{"Case insensitive", "GRANITE_Slab", "Stone"},
		{"Rusted alone", "corroded_pipe", "Rusted"},
		{"Organic", "Oak_Bark", "Organic"},
		{"Hide inside another word", "rawhide_strap", "Leather"},
		{"Fallback", "mystery_material_07", "Uncategorized"},
		{"Empty name", "", "Uncategorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reg.Resolve(tt.unitName)
			if got == nil {
				t.Fatalf("Resolve(%q) returned nil", tt.unitName)
			}
			if got.Name != tt.want {
				t.Errorf("Resolve(%q) = %q; want %q", tt.unitName, got.Name, tt.want)
			}
		})
	}
}

func TestResolveSharesEntries(t *testing.T) {
	reg := category.Default()
	a := reg.Resolve("steel_a")
	b := reg.Resolve("iron_b")
	if a != b {
		t.Error("units of the same category should share the registry entry")
	}
	if reg.Resolve("???") != reg.Uncategorized() {
		t.Error("fallback should be the registry's Uncategorized entry")
	}
}

func TestNewRegistry(t *testing.T) {
	t.Run("AppendsUncategorized", func(t *testing.T) {
		reg, err := category.NewRegistry([]category.Category{
			{Name: "Wood", Keywords: []string{" OAK ", "pine"}},
		})
		if err != nil {
			t.Fatalf("NewRegistry() error = %v", err)
		}
		if got := reg.Names(); !slices.Equal(got, []string{"Wood", "Uncategorized"}) {
			t.Errorf("Names() = %v", got)
		}
		if got := reg.Resolve("Oak_Planks").Name; got != "Wood" {
			t.Errorf("keywords should be normalized, Resolve = %q", got)
		}
		wood, ok := reg.Lookup("wood")
		if !ok || wood.DisplayName != "Wood" {
			t.Errorf("Lookup(wood) = %+v, %v", wood, ok)
		}
	})

	t.Run("Duplicate", func(t *testing.T) {
		_, err := category.NewRegistry([]category.Category{{Name: "Wood"}, {Name: "wood"}})
		if err == nil {
			t.Error("expected duplicate name error")
		}
	})

	t.Run("EmptyName", func(t *testing.T) {
		if _, err := category.NewRegistry([]category.Category{{Name: " "}}); err == nil {
			t.Error("expected empty name error")
		}
	})

	t.Run("UncategorizedWithKeywords", func(t *testing.T) {
		_, err := category.NewRegistry([]category.Category{
			{Name: "Uncategorized", Keywords: []string{"misc"}},
		})
		if err == nil {
			t.Error("expected error for Uncategorized keywords")
		}
	})
}

func TestAllReturnsCopy(t *testing.T) {
	reg := category.Default()
	all := reg.All()
	all[0] = nil
	if reg.All()[0] == nil {
		t.Error("All() must not expose the registry's slice")
	}
}
