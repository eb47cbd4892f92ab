package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/mydehq/texlib"
	"github.com/mydehq/texlib/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagScanCategory  string
	flagScanSearch    string
	flagScanYAML      bool
	flagScanWorkers   int
	flagScanNoThumbs  bool
	flagScanShowPaths bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan the library and list its textures",
	Long:  "Scans the library folder, groups image files into texture sets and prints each set with its category, passes and resolution.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runScan(cmd, libraryPath(args))
	},
}

func init() {
	scanCmd.Flags().StringVarP(&flagScanCategory, "category", "c", "", "Only list textures of this category")
	scanCmd.Flags().StringVarP(&flagScanSearch, "search", "s", "", "Only list textures whose name or tags contain this text")
	scanCmd.Flags().BoolVar(&flagScanYAML, "yaml", false, "Print the result as YAML")
	scanCmd.Flags().IntVarP(&flagScanWorkers, "workers", "w", 0, "Folders scanned in parallel (default from settings)")
	scanCmd.Flags().BoolVar(&flagScanNoThumbs, "no-thumbnails", false, "Skip thumbnail decoding")
	scanCmd.Flags().BoolVarP(&flagScanShowPaths, "paths", "p", false, "List every pass file")
	RootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, path string) {
	var opts []texlib.Option
	if flagScanWorkers > 0 {
		opts = append(opts, texlib.WithWorkers(flagScanWorkers))
	}
	if flagScanNoThumbs {
		opts = append(opts, texlib.WithoutThumbnails())
	}

	start := time.Now()
	res := loadLibrary(cmd.Context(), path, opts...)
	units := texlib.Filter(res.Units, texlib.Query{Text: flagScanSearch, Category: flagScanCategory})
	logger.Debug("Scan finished", "path", path, "units", len(res.Units), "took", time.Since(start))

	if flagScanYAML {
		printYAML(units, res.Warnings)
		return
	}

	if len(units) == 0 {
		fmt.Printf("No textures found in: %s\n", ui.StylePath.Render(path))
		printWarnings(res.Warnings)
		return
	}

	fmt.Printf("%s in: %s\n\n", ui.StyleHeader.Render(fmt.Sprintf("%d textures", len(units))), ui.StylePath.Render(path))
	fmt.Println(unitTable(units))

	if flagScanShowPaths {
		for _, u := range units {
			fmt.Printf("\n%s\n", ui.StyleCommand.Render(u.Name))
			for _, p := range u.Passes {
				fmt.Printf(" %s %-12s %s\n", ui.StyleDim.Render("-"), p.Type, ui.StylePath.Render(p.Path))
			}
		}
	}
	printWarnings(res.Warnings)
}

func unitTable(units []*texlib.TextureUnit) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("NAME", "CATEGORY", "PASSES", "RESOLUTION", "IMPORTED", "TAGS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, u := range units {
		names := make([]string, 0, len(u.Passes))
		for _, pt := range u.PassTypes() {
			names = append(names, pt.String())
		}
		t.Row(
			u.Name,
			ui.StyleCategory.Render(u.Category.DisplayName),
			strings.Join(names, ", "),
			u.Resolution,
			humanize.Time(u.ImportDate),
			strings.Join(u.Tags, ", "),
		)
	}
	return t.String()
}

func printWarnings(warnings []texlib.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Printf("\n%s\n", ui.StyleWarn.Render(fmt.Sprintf("%d warnings", len(warnings))))
	for _, w := range warnings {
		fmt.Printf(" %s %s\n", ui.StyleDim.Render("-"), w.String())
	}
}

type passRecord struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

type unitRecord struct {
	Name       string       `yaml:"name"`
	Category   string       `yaml:"category"`
	Resolution string       `yaml:"resolution"`
	Thumbnail  string       `yaml:"thumbnail"`
	Imported   time.Time    `yaml:"imported"`
	Source     string       `yaml:"source,omitempty"`
	Tags       []string     `yaml:"tags,omitempty"`
	Passes     []passRecord `yaml:"passes"`
}

func printYAML(units []*texlib.TextureUnit, warnings []texlib.Warning) {
	doc := struct {
		Units    []unitRecord `yaml:"units"`
		Warnings []string     `yaml:"warnings,omitempty"`
	}{Units: make([]unitRecord, 0, len(units))}

	for _, u := range units {
		rec := unitRecord{
			Name:       u.Name,
			Category:   u.CategoryName(),
			Resolution: u.Resolution,
			Thumbnail:  u.ThumbnailPath,
			Imported:   u.ImportDate,
			Source:     u.Source,
			Tags:       u.Tags,
		}
		for _, p := range u.Passes {
			rec.Passes = append(rec.Passes, passRecord{Name: p.Name, Type: p.Type.String(), Path: p.Path})
		}
		doc.Units = append(doc.Units, rec)
	}
	for _, w := range warnings {
		doc.Warnings = append(doc.Warnings, w.String())
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		fail("Failed to encode YAML", err)
	}
	enc.Close()
}
