// matchctl runs matching passes locally from scene files, without a server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "matchctl",
	Short: "Run geometric correspondence matching from the command line",
	Long: `matchctl loads a design scene and a reference scene from JSON files,
runs an intersection-volume matching pass between them, and prints a
summary report. Settings can be supplied as a TOML file; unset values
fall back to engine defaults.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("matchctl v1.0.0")
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
