package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Overridden with -ldflags at release time.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the recrutai version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version %s\n", app, version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
