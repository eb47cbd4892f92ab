package cli

import (
	"fmt"
	"strings"

	"github.com/mydehq/texlib"
	"github.com/mydehq/texlib/internal/ui"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag <texture> <tag...>",
	Short: "Add search tags to a texture",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		u := findUnit(cmd.Context(), args[0])
		if err := texlib.Tag(u, args[1:]...); err != nil {
			fail("Failed to tag", err)
		}
		printTags(u)
	},
}

var untagCmd = &cobra.Command{
	Use:   "untag <texture> <tag...>",
	Short: "Remove search tags from a texture",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		u := findUnit(cmd.Context(), args[0])
		if err := texlib.Untag(u, args[1:]...); err != nil {
			fail("Failed to untag", err)
		}
		printTags(u)
	},
}

func init() {
	RootCmd.AddCommand(tagCmd)
	RootCmd.AddCommand(untagCmd)
}

func printTags(u *texlib.TextureUnit) {
	tags := ui.StyleDim.Render("(none)")
	if len(u.Tags) > 0 {
		tags = strings.Join(u.Tags, ", ")
	}
	fmt.Printf("%s %s\n", ui.StyleHeader.Render(u.Name+":"), tags)
}
