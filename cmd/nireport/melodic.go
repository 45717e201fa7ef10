package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neuroprep/nireport/app"
	"github.com/neuroprep/nireport/domain"
	"github.com/neuroprep/nireport/internal/config"
	"github.com/neuroprep/nireport/service"
)

var (
	melodicInFiles []string
	melodicOutDir  string
	melodicMask    string
	melodicTR      float64
	melodicDim     int
	melodicNoBET   bool

	melodicWorkDir        string
	melodicGenerateReport bool
	melodicOutReport      string
	melodicSkipRun        bool
)

// melodicCmd wraps a MELODIC run with optional reportlet generation
var melodicCmd = &cobra.Command{
	Use:   "melodic",
	Short: "Run MELODIC and render its component reportlet",
	Long: `Run the MELODIC ICA decomposition and, when requested, render a visual
reportlet of the estimated components.

Without --generate-report the wrapper behaves exactly like the bare tool.
When the decomposition produces no mixing matrix, the run is treated as
non-convergent: an HTML notice replaces the image reportlet and the command
still exits successfully.

Examples:
  # Plain decomposition, no reportlet
  nireport melodic --in bold.nii.gz --out-dir melodic.ica --tr 2.0

  # Decomposition plus reportlet
  nireport melodic --in bold.nii.gz --out-dir melodic.ica --tr 2.0 \
      --generate-report --out-report melodic_reportlet.svg

  # Render a reportlet for an existing decomposition
  nireport melodic --in bold.nii.gz --out-dir melodic.ica \
      --skip-run --generate-report`,
	RunE: runMelodicCommand,
}

func init() {
	melodicCmd.Flags().StringSliceVar(&melodicInFiles, "in", nil, "Input 4D functional images (at least one)")
	melodicCmd.Flags().StringVar(&melodicOutDir, "out-dir", "", "MELODIC output directory (default: working directory)")
	melodicCmd.Flags().StringVar(&melodicMask, "mask", "", "Mask restricting the decomposition")
	melodicCmd.Flags().Float64Var(&melodicTR, "tr", 0, "Repetition time in seconds")
	melodicCmd.Flags().IntVar(&melodicDim, "dim", 0, "Cap on the number of estimated components")
	melodicCmd.Flags().BoolVar(&melodicNoBET, "nobet", false, "Skip brain extraction inside MELODIC")

	melodicCmd.Flags().StringVar(&melodicWorkDir, "work-dir", ".", "Per-invocation scratch directory")
	melodicCmd.Flags().BoolVar(&melodicGenerateReport, "generate-report", false, "Render the component reportlet after the run")
	melodicCmd.Flags().StringVar(&melodicOutReport, "out-report", "", "Reportlet filename (default: melodic_reportlet.svg)")
	melodicCmd.Flags().String(config.FlagReportMask, "", "Mask outlining the brain on the reportlet")
	melodicCmd.Flags().Bool(config.FlagCompress, false, "Compress the rendered SVG")
	melodicCmd.Flags().BoolVar(&melodicSkipRun, "skip-run", false, "Reuse an existing decomposition instead of running the tool")

	melodicCmd.Flags().String(config.FlagMelodicCmd, "", "MELODIC executable to invoke")
	melodicCmd.Flags().String(config.FlagPlotterCmd, "", "Component plotting executable to invoke")
}

// NewMelodicCmd returns the melodic cobra command
func NewMelodicCmd() *cobra.Command {
	return melodicCmd
}

func runMelodicCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	runner := service.NewExecToolRunner(logger)
	plotter := service.NewExecComponentPlotter(cfg.Tools.Plotter, runner, logger)
	svc := service.NewMelodicReportService(cfg.Tools.Melodic, runner, plotter, logger)
	uc := app.NewMelodicReportUseCase(svc, logger)

	outReport := melodicOutReport
	if outReport == "" {
		outReport = cfg.Report.MelodicReportName
	}

	resp, err := uc.Execute(cmd.Context(), domain.MelodicReportRequest{
		Melodic: domain.MelodicOptions{
			InFiles: melodicInFiles,
			OutDir:  melodicOutDir,
			Mask:    melodicMask,
			TRSec:   melodicTR,
			Dim:     melodicDim,
			NoBET:   melodicNoBET,
		},
		Report: domain.ReportOptions{
			GenerateReport: melodicGenerateReport,
			OutReport:      outReport,
			ReportMask:     cfg.Report.ReportMask,
			CompressReport: cfg.Report.Compress,
		},
		WorkDir: melodicWorkDir,
		SkipRun: melodicSkipRun,
	})
	if err != nil {
		return err
	}

	if resp.OutReport != "" {
		fmt.Fprintln(cmd.OutOrStdout(), resp.OutReport)
	}
	return nil
}
