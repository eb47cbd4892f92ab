package cli

import (
	"fmt"
	"strings"

	"github.com/mydehq/texlib/internal/config"
	"github.com/mydehq/texlib/internal/ui"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List material categories in priority order",
	Long:  "Prints the category table. A texture takes the first category with a keyword found in its folder name.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		reg, err := config.Registry(settings)
		if err != nil {
			fail("Invalid category table", err)
		}
		for i, c := range reg.All() {
			keywords := StyleKeywords(c.Keywords)
			if len(c.Keywords) == 0 {
				keywords = ui.StyleDim.Render("(fallback)")
			}
			fmt.Printf("%2d. %-26s %s\n", i+1, ui.StyleCategory.Render(c.DisplayName), keywords)
		}
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify <filename...>",
	Short: "Show the pass type of file names",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cls := config.Classifier(settings)
		width := 0
		for _, a := range args {
			width = max(width, len(a))
		}
		for _, a := range args {
			fmt.Printf("%-*s  %s\n", width, a, ui.StyleCommand.Render(cls.ClassifyFile(a).String()))
		}
	},
}

func init() {
	RootCmd.AddCommand(categoriesCmd)
	RootCmd.AddCommand(classifyCmd)
}

// StyleKeywords renders a keyword list for terminal output.
func StyleKeywords(keywords []string) string {
	styled := make([]string, len(keywords))
	for i, k := range keywords {
		styled[i] = ui.StyleDim.Render(k)
	}
	return strings.Join(styled, ui.StyleDim.Render(", "))
}
