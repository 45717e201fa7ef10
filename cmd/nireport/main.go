package main

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/neuroprep/nireport/internal/version"
)

// logger is the application-wide structured logger (writes to stderr). It is
// handed down to every service explicitly; there is no logging singleton in
// the library packages.
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

var rootCmd = &cobra.Command{
	Use:   "nireport",
	Short: "HTML reportlet generation for fMRI preprocessing pipelines",
	Long: `nireport renders the small HTML/SVG reportlet fragments that a
report aggregator composes into a full preprocessing report:

  • Subject summaries (scan counts, task/run breakdown, FreeSurfer status)
  • About summaries (pipeline version, command, timestamp)
  • MELODIC decomposition diagnostics (with a non-convergence fallback)
  • ICA-AROMA classification diagnostics (noise components highlighted)

The MELODIC and ICA-AROMA commands wrap the external FSL tools and hand the
rendering itself to an external component plotting routine.`,
	Version: version.Short(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetLevel(charmlog.DebugLevel)
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file path")

	rootCmd.AddCommand(NewSubjectCmd())
	rootCmd.AddCommand(NewAboutCmd())
	rootCmd.AddCommand(NewMelodicCmd())
	rootCmd.AddCommand(NewAromaCmd())
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewInitCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
