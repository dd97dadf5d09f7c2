package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints the callsight version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print the version of the callsight binary.",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("callsight %s\n", Version)
	},
}
