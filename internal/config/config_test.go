package config_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/mydehq/texlib/internal/category"
	"github.com/mydehq/texlib/internal/config"
	"github.com/mydehq/texlib/internal/pass"
	"github.com/mydehq/texlib/internal/scanner"
	"github.com/mydehq/texlib/internal/types"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "settings.yml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestGetDefaults(t *testing.T) {
	d := config.GetDefaults()
	if d.ThumbnailSize != 150 {
		t.Errorf("ThumbnailSize = %v; want 150", d.ThumbnailSize)
	}
	if !d.IsDarkTheme {
		t.Error("IsDarkTheme should default to true")
	}
	if d.LibraryPath != "" {
		t.Errorf("LibraryPath = %q; want empty", d.LibraryPath)
	}
	if !slices.Equal(d.Formats, scanner.DefaultFormats) {
		t.Errorf("Formats = %v", d.Formats)
	}

	// Defaults must not alias the scanner's table.
	d.Formats[0] = ".changed"
	if scanner.DefaultFormats[0] == ".changed" {
		t.Error("GetDefaults shares the DefaultFormats slice")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    types.Settings
		wantErr bool
	}{
		{
			name: "yaml",
			body: "LibraryPath: /data/textures\nThumbnailSize: 220\nIsDarkTheme: false\n",
			want: types.Settings{LibraryPath: "/data/textures", ThumbnailSize: 220, IsDarkTheme: false},
		},
		{
			name: "json from the desktop app",
			body: `{"LibraryPath": "C:\\Textures", "ThumbnailSize": 180.0, "IsDarkTheme": true}`,
			want: types.Settings{LibraryPath: `C:\Textures`, ThumbnailSize: 180, IsDarkTheme: true},
		},
		{
			name: "partial file keeps defaults",
			body: "LibraryPath: /lib\n",
			want: types.Settings{LibraryPath: "/lib", ThumbnailSize: 150, IsDarkTheme: true},
		},
		{
			name: "non-positive thumbnail size",
			body: "ThumbnailSize: -3\n",
			want: types.Settings{ThumbnailSize: 150, IsDarkTheme: true},
		},
		{
			name:    "malformed",
			body:    "LibraryPath: [unclosed\n",
			want:    types.Settings{ThumbnailSize: 150, IsDarkTheme: true},
			wantErr: true,
		},
		{
			name:    "wrong type",
			body:    "ThumbnailSize: huge\n",
			want:    types.Settings{ThumbnailSize: 150, IsDarkTheme: true},
			wantErr: true,
		},
		{
			name:    "invalid category table",
			body:    "LibraryPath: /lib\nCategories:\n  - name: Metal\n  - name: metal\n",
			want:    types.Settings{ThumbnailSize: 150, IsDarkTheme: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.Load(writeSettings(t, tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v; wantErr %v", err, tt.wantErr)
			}
			if got.LibraryPath != tt.want.LibraryPath || got.ThumbnailSize != tt.want.ThumbnailSize || got.IsDarkTheme != tt.want.IsDarkTheme {
				t.Errorf("Load() = %+v; want %+v", got, tt.want)
			}
			if len(got.Formats) == 0 {
				t.Error("Formats should never be empty")
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	got, err := config.Load(filepath.Join(t.TempDir(), "nope", "settings.yml"))
	if err != nil {
		t.Fatalf("Load() error = %v; a missing file is not an error", err)
	}
	if got.ThumbnailSize != 150 || !got.IsDarkTheme {
		t.Errorf("Load() = %+v; want defaults", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "settings.yml")
	in := config.GetDefaults()
	in.LibraryPath = "/srv/textures"
	in.Workers = 3
	in.Formats = []string{".png", ".exr"}
	in.Categories = []category.Category{{Name: "Wood", DisplayName: "Wood", Keywords: []string{"oak", "pine"}}}
	in.PassRules = []pass.Rule{{Keyword: "_d", Type: pass.BaseColor}, {Keyword: "_n", Type: pass.Normal}}

	if err := config.Save(p, in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	out, err := config.Load(p)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if out.LibraryPath != in.LibraryPath || out.Workers != 3 {
		t.Errorf("round trip = %+v", out)
	}
	if !slices.Equal(out.Formats, in.Formats) {
		t.Errorf("Formats = %v; want %v", out.Formats, in.Formats)
	}
	if !slices.Equal(out.PassRules, in.PassRules) {
		t.Errorf("PassRules = %v; want %v", out.PassRules, in.PassRules)
	}

	reg, err := config.Registry(out)
	if err != nil {
		t.Fatalf("Registry() error = %v", err)
	}
	if got := reg.Resolve("pine_planks").Name; got != "Wood" {
		t.Errorf("Resolve(pine_planks) = %q; want Wood", got)
	}
	if got := reg.Resolve("steel").Name; got != category.Uncategorized {
		t.Errorf("custom table should replace the built-in one, got %q", got)
	}

	cls := config.Classifier(out)
	if got := cls.Classify("plank_n"); got != pass.Normal {
		t.Errorf("Classify(plank_n) = %v; want Normal", got)
	}
}

func TestBuiltInTables(t *testing.T) {
	s := config.GetDefaults()
	reg, err := config.Registry(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(reg.All()) != len(category.Defaults()) {
		t.Errorf("registry has %d categories; want the built-in %d", len(reg.All()), len(category.Defaults()))
	}
	if got := config.Classifier(s).Classify("wall_albedo"); got != pass.BaseColor {
		t.Errorf("Classify(wall_albedo) = %v", got)
	}
}

func TestPathEnvOverride(t *testing.T) {
	t.Setenv(config.EnvPath, "/tmp/custom/settings.yml")
	p, err := config.Path()
	if err != nil {
		t.Fatal(err)
	}
	if p != "/tmp/custom/settings.yml" {
		t.Errorf("Path() = %q", p)
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"metal_a/a_col.PNG", "metal_a/maps/a_nrm.exr", "docs/readme.txt", "stone_b/b.jpg"} {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := config.Scan(root, scanner.DefaultFormats)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if res.TotalFolders != 4 || res.TextureFolders != 2 || !res.HasImages {
		t.Errorf("Scan() = %+v", res)
	}
	want := []string{".png", ".exr", ".jpg"}
	if !slices.Equal(res.DetectedFormats, want) {
		t.Errorf("DetectedFormats = %v; want %v", res.DetectedFormats, want)
	}

	if _, err := config.Scan(filepath.Join(root, "missing"), scanner.DefaultFormats); err == nil {
		t.Error("Scan() of a missing dir should fail")
	}
}
