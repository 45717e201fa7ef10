package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neuroprep/nireport/app"
	"github.com/neuroprep/nireport/domain"
	"github.com/neuroprep/nireport/internal/config"
	"github.com/neuroprep/nireport/service"
)

var (
	subjectID         string
	subjectT1w        []string
	subjectT2w        []string
	subjectBold       []string
	subjectStdSpaces  []string
	subjectNstdSpaces []string

	subjectBidsDir   string
	subjectOutputDir string
	subjectOutput    string
	subjectWorkDir   string

	subjectJSON bool
	subjectYAML bool
	subjectText bool
)

// subjectCmd generates subject summary reportlets
var subjectCmd = &cobra.Command{
	Use:   "subject",
	Short: "Generate a subject summary reportlet",
	Long: `Generate the subject summary reportlet: subject identity, structural and
functional scan counts, per-task run breakdown, output spaces, and
FreeSurfer reconstruction status.

Functional series follow the BIDS naming convention; a series name without a
task entity is a fatal error. A --bold value may list several comma-separated
files for split acquisitions; the first file stands for the series.

Examples:
  # Single subject from explicit file lists
  nireport subject --subject 01 \
      --t1w sub-01_T1w.nii.gz \
      --bold sub-01_task-rest_run-1_bold.nii.gz \
      --bold sub-01_task-rest_run-2_bold.nii.gz \
      --std-space MNI152NLin2009cAsym -o sub-01_report.html

  # Whole dataset, one reportlet per subject
  nireport subject --bids-dir /data/bids --output-dir /out/reportlets

  # Data dump instead of the HTML fragment
  nireport subject --bids-dir /data/bids --output-dir /out --json`,
	RunE: runSubjectCommand,
}

func init() {
	subjectCmd.Flags().StringVar(&subjectID, "subject", "", "Subject label (without the sub- prefix)")
	subjectCmd.Flags().StringSliceVar(&subjectT1w, "t1w", nil, "T1-weighted structural images")
	subjectCmd.Flags().StringSliceVar(&subjectT2w, "t2w", nil, "T2-weighted structural images")
	subjectCmd.Flags().StringArrayVar(&subjectBold, "bold", nil, "Functional series (repeatable; comma-separate split acquisitions)")
	subjectCmd.Flags().StringSliceVar(&subjectStdSpaces, "std-space", nil, "Standard output space labels")
	subjectCmd.Flags().StringSliceVar(&subjectNstdSpaces, "nstd-space", nil, "Non-standard output space labels")
	subjectCmd.Flags().String(config.FlagSubjectsDir, "", "FreeSurfer subjects directory")

	subjectCmd.Flags().StringVar(&subjectBidsDir, "bids-dir", "", "BIDS dataset root for batch generation")
	subjectCmd.Flags().StringVar(&subjectOutputDir, "output-dir", "", "Output directory for batch generation")
	subjectCmd.Flags().StringVarP(&subjectOutput, "output", "o", "", "Output file (default: stdout)")
	subjectCmd.Flags().StringVar(&subjectWorkDir, "work-dir", "", "Write report.html into this working directory")

	subjectCmd.Flags().BoolVar(&subjectJSON, "json", false, "Emit summary data as JSON")
	subjectCmd.Flags().BoolVar(&subjectYAML, "yaml", false, "Emit summary data as YAML")
	subjectCmd.Flags().BoolVar(&subjectText, "text", false, "Emit summary data as plain text")
	subjectCmd.Flags().Bool(config.FlagNoOpen, false, "Don't auto-open HTML reportlets in a browser")
}

// NewSubjectCmd returns the subject cobra command
func NewSubjectCmd() *cobra.Command {
	return subjectCmd
}

func runSubjectCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	uc := app.NewSubjectSummaryUseCase(
		service.NewSubjectSummaryService(logger),
		service.NewSummaryFormatter(),
		service.NewFileOutputWriter(os.Stderr),
		service.NewProgressManager(),
		logger,
	)

	base := domain.SubjectSummaryRequest{
		SubjectsDir:  cfg.FreeSurfer.SubjectsDir,
		StdSpaces:    subjectStdSpaces,
		NstdSpaces:   subjectNstdSpaces,
		OutputFormat: resolveFormat(cfg, subjectJSON, subjectYAML, subjectText),
		NoOpen:       cfg.Output.NoOpen,
	}

	if subjectBidsDir != "" {
		outputDir := subjectOutputDir
		if outputDir == "" {
			outputDir = cfg.Output.Directory
		}
		if outputDir == "" {
			return domain.NewValidationError("--output-dir is required with --bids-dir")
		}
		return uc.ExecuteBatch(cmd.Context(), subjectBidsDir, outputDir, base)
	}

	req := base
	req.SubjectID = subjectID
	req.T1w = subjectT1w
	req.T2w = subjectT2w
	for _, entry := range subjectBold {
		req.Bold = append(req.Bold, domain.Series(strings.Split(entry, ",")))
	}

	if subjectWorkDir != "" {
		path, err := uc.ExecuteWorkDir(cmd.Context(), req, subjectWorkDir, service.NewSummaryReportWriter(logger))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}

	req.OutputWriter = cmd.OutOrStdout()
	req.OutputPath = subjectOutput

	return uc.Execute(cmd.Context(), req)
}
