package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neuroprep/nireport/app"
	"github.com/neuroprep/nireport/domain"
	"github.com/neuroprep/nireport/internal/config"
	"github.com/neuroprep/nireport/internal/version"
	"github.com/neuroprep/nireport/service"
)

var (
	aboutVersion string
	aboutCommand string
	aboutOutput  string
	aboutWorkDir string

	aboutJSON bool
	aboutYAML bool
	aboutText bool
)

// aboutCmd generates the about reportlet
var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Generate the pipeline about reportlet",
	Long: `Generate the about reportlet: pipeline version, the exact command line
that produced the derivatives, and a generation timestamp.

Examples:
  # Record this invocation verbatim
  nireport about -o about.html

  # Record the enclosing pipeline's identity instead
  nireport about --version-string "fmriprep 25.1.0" \
      --command "fmriprep /data /out participant" -o about.html`,
	RunE: runAboutCommand,
}

func init() {
	aboutCmd.Flags().StringVar(&aboutVersion, "version-string", "", "Pipeline version to record (default: nireport's own)")
	aboutCmd.Flags().StringVar(&aboutCommand, "command", "", "Command line to record (default: this invocation)")
	aboutCmd.Flags().StringVarP(&aboutOutput, "output", "o", "", "Output file (default: stdout)")
	aboutCmd.Flags().StringVar(&aboutWorkDir, "work-dir", "", "Write report.html into this working directory")

	aboutCmd.Flags().BoolVar(&aboutJSON, "json", false, "Emit summary data as JSON")
	aboutCmd.Flags().BoolVar(&aboutYAML, "yaml", false, "Emit summary data as YAML")
	aboutCmd.Flags().BoolVar(&aboutText, "text", false, "Emit summary data as plain text")
	aboutCmd.Flags().Bool(config.FlagNoOpen, false, "Don't auto-open HTML reportlets in a browser")
}

// NewAboutCmd returns the about cobra command
func NewAboutCmd() *cobra.Command {
	return aboutCmd
}

func runAboutCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	uc := app.NewAboutSummaryUseCase(
		service.NewAboutSummaryService(logger),
		service.NewSummaryFormatter(),
		service.NewFileOutputWriter(os.Stderr),
		logger,
	)

	versionString := aboutVersion
	if versionString == "" {
		versionString = version.Short()
	}
	command := aboutCommand
	if command == "" {
		command = strings.Join(os.Args, " ")
	}

	req := domain.AboutSummaryRequest{
		Version:      versionString,
		Command:      command,
		OutputFormat: resolveFormat(cfg, aboutJSON, aboutYAML, aboutText),
		OutputWriter: cmd.OutOrStdout(),
		OutputPath:   aboutOutput,
		NoOpen:       cfg.Output.NoOpen,
	}

	if aboutWorkDir != "" {
		path, err := uc.ExecuteWorkDir(cmd.Context(), req, aboutWorkDir, service.NewSummaryReportWriter(logger))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}

	return uc.Execute(cmd.Context(), req)
}
