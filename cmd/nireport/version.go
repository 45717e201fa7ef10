package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neuroprep/nireport/internal/version"
)

// versionCmd prints detailed build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Show the nireport version, commit, and build metadata.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Info())
	},
}

// NewVersionCmd returns the version cobra command
func NewVersionCmd() *cobra.Command {
	return versionCmd
}
