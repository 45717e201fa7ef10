package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/neuroprep/nireport/internal/config"
)

var initForce bool

const configTemplate = `# nireport configuration
# Values here are overridden by NIREPORT_* environment variables and CLI flags.

[output]
# Default output format: text | json | yaml | html
format = "html"
# Where generated reportlets are written
# directory = "reportlets"
# Don't auto-open HTML reportlets in a browser
no_open = true

[report]
# Compress rendered SVG reportlets
compress = true
# Mask outlining the brain on component plots (derived from data when unset)
# report_mask = "brain_mask.nii.gz"
melodic_report_name = "melodic_reportlet.svg"
aroma_report_name = "ica_aroma_reportlet.svg"

[freesurfer]
# FreeSurfer subjects directory; leave unset when reconstruction is not run
# subjects_dir = "/data/freesurfer"

[tools]
melodic = "melodic"
aroma = "ICA_AROMA.py"
plotter = "plot_melodic_components"
`

// initCmd writes a starter project configuration file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a " + config.ProjectConfigName + " configuration file",
	Long: `Create a starter ` + config.ProjectConfigName + ` in the current directory with
all settings documented. Existing files are preserved unless --force is given.`,
	RunE: runInitCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration file")
}

// NewInitCmd returns the init cobra command
func NewInitCmd() *cobra.Command {
	return initCmd
}

func runInitCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	path := filepath.Join(cwd, config.ProjectConfigName)

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.ProjectConfigName)
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.ProjectConfigName, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.ProjectConfigName)
	return nil
}
