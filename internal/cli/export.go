package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/mydehq/texlib"
	"github.com/mydehq/texlib/internal/ui"
	"github.com/spf13/cobra"
)

var (
	flagExportPass string
	flagExportTo   string
	flagThumbOut   string
	flagThumbWidth int
)

var exportCmd = &cobra.Command{
	Use:   "export <texture>",
	Short: "Print or copy the file to hand to another program",
	Long: "Selects one pass file of a texture. 'composite' picks the Metallic pass of metal textures and the BaseColor pass otherwise; " +
		"a missing pass falls back to the first file. With --to the file is copied into that folder.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		req, err := texlib.ParseRequest(flagExportPass)
		if err != nil {
			fail("Invalid --pass", err)
		}
		u := findUnit(cmd.Context(), args[0])

		if flagExportTo == "" {
			p, err := texlib.ExportPath(u, req)
			if err != nil {
				fail("Export failed", err)
			}
			fmt.Println(p)
			return
		}

		dst, err := texlib.Export(u, req, flagExportTo)
		if err != nil {
			fail("Export failed", err)
		}
		size := ""
		if info, err := os.Stat(dst); err == nil {
			size = ui.StyleDim.Render(" (" + humanize.Bytes(uint64(info.Size())) + ")")
		}
		fmt.Printf("%s %s%s\n", ui.StyleHeader.Render("Exported:"), ui.StylePath.Render(dst), size)
	},
}

var thumbnailCmd = &cobra.Command{
	Use:   "thumbnail <texture>",
	Short: "Write a JPEG preview of a texture",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		u := findUnit(cmd.Context(), args[0])

		out := flagThumbOut
		if out == "" {
			out = u.Name + ".jpg"
		}
		width := flagThumbWidth
		if width <= 0 {
			width = int(settings.ThumbnailSize)
		}

		if err := texlib.WriteThumbnail(u, out, width, texlib.WithLogger(logger)); err != nil {
			fail("Failed to write thumbnail", err)
		}
		abs, _ := filepath.Abs(out)
		fmt.Printf("%s %s\n", ui.StyleHeader.Render("Thumbnail:"), ui.StylePath.Render(abs))
	},
}

func init() {
	exportCmd.Flags().StringVar(&flagExportPass, "pass", "composite", "Pass to export: composite or a pass type (BaseColor, Normal, ...)")
	exportCmd.Flags().StringVar(&flagExportTo, "to", "", "Copy the file into this folder")
	thumbnailCmd.Flags().StringVarP(&flagThumbOut, "output", "o", "", "Output file (default <texture>.jpg)")
	thumbnailCmd.Flags().IntVar(&flagThumbWidth, "width", 0, "Maximum width in pixels (default ThumbnailSize from settings)")
	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(thumbnailCmd)
}
