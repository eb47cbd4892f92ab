package cli

import (
	"fmt"
	"os"

	"github.com/mydehq/texlib/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or edit the settings file interactively",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if settingsPath == "" {
			logger.Error("No settings location", "hint", "pass --config")
			os.Exit(1)
		}
		flags := ui.InitFlags{
			ConfigPath: settingsPath,
			Library:    flagLibrary,
			HasLibrary: cmd.Flags().Changed("library"),
		}
		if _, err := ui.RunInitWizard(settings, flags); err != nil {
			fail("Init failed", err)
		}
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("# %s\n", settingsPath)
		data, err := yaml.Marshal(settings)
		if err != nil {
			fail("Failed to encode settings", err)
		}
		fmt.Print(string(data))
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(configCmd)
}
