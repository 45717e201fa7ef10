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
	aromaInFile       string
	aromaMelodicDir   string
	aromaOutDir       string
	aromaMotionParams string
	aromaMask         string
	aromaTR           float64
	aromaDenoise      string

	aromaWorkDir   string
	aromaOutReport string
	aromaSkipRun   bool
)

// aromaCmd wraps an ICA-AROMA run with reportlet generation
var aromaCmd = &cobra.Command{
	Use:   "aroma",
	Short: "Run ICA-AROMA and render its classification reportlet",
	Long: `Run the ICA-AROMA motion artifact classifier and render a reportlet of
the decomposition with the classified noise components highlighted.

The classification result is always read from classified_motion_ICs.txt
inside the tool's output directory.

Examples:
  # Classify an existing MELODIC decomposition
  nireport aroma --in bold_preproc.nii.gz --out-dir aroma.out \
      --melodic-dir melodic.ica --mc bold_mcf.par --tr 2.0

  # Render a reportlet for a finished ICA-AROMA run
  nireport aroma --in bold_preproc.nii.gz --out-dir aroma.out --skip-run`,
	RunE: runAromaCommand,
}

func init() {
	aromaCmd.Flags().StringVar(&aromaInFile, "in", "", "Preprocessed 4D functional image")
	aromaCmd.Flags().StringVar(&aromaMelodicDir, "melodic-dir", "", "Existing MELODIC decomposition to classify")
	aromaCmd.Flags().StringVar(&aromaOutDir, "out-dir", "", "ICA-AROMA output directory")
	aromaCmd.Flags().StringVar(&aromaMotionParams, "mc", "", "Motion parameter file (mcflirt format)")
	aromaCmd.Flags().StringVar(&aromaMask, "mask", "", "Mask restricting classification")
	aromaCmd.Flags().Float64Var(&aromaTR, "tr", 0, "Repetition time in seconds")
	aromaCmd.Flags().StringVar(&aromaDenoise, "den", "", "Denoising strategy (nonaggr|aggr|both|no)")

	aromaCmd.Flags().StringVar(&aromaWorkDir, "work-dir", ".", "Per-invocation scratch directory")
	aromaCmd.Flags().StringVar(&aromaOutReport, "out-report", "", "Reportlet filename (default: ica_aroma_reportlet.svg)")
	aromaCmd.Flags().String(config.FlagReportMask, "", "Mask outlining the brain on the reportlet")
	aromaCmd.Flags().Bool(config.FlagCompress, false, "Compress the rendered SVG")
	aromaCmd.Flags().BoolVar(&aromaSkipRun, "skip-run", false, "Reuse existing classification outputs instead of running the tool")

	aromaCmd.Flags().String(config.FlagAromaCmd, "", "ICA-AROMA executable to invoke")
	aromaCmd.Flags().String(config.FlagPlotterCmd, "", "Component plotting executable to invoke")
}

// NewAromaCmd returns the aroma cobra command
func NewAromaCmd() *cobra.Command {
	return aromaCmd
}

func runAromaCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	runner := service.NewExecToolRunner(logger)
	plotter := service.NewExecComponentPlotter(cfg.Tools.Plotter, runner, logger)
	svc := service.NewAromaReportService(cfg.Tools.Aroma, runner, plotter, logger)
	uc := app.NewAromaReportUseCase(svc, logger)

	outReport := aromaOutReport
	if outReport == "" {
		outReport = cfg.Report.AromaReportName
	}

	resp, err := uc.Execute(cmd.Context(), domain.AromaReportRequest{
		Aroma: domain.AromaOptions{
			InFile:       aromaInFile,
			MelodicDir:   aromaMelodicDir,
			OutDir:       aromaOutDir,
			MotionParams: aromaMotionParams,
			Mask:         aromaMask,
			TRSec:        aromaTR,
			Denoise:      aromaDenoise,
		},
		Report: domain.ReportOptions{
			GenerateReport: true,
			OutReport:      outReport,
			ReportMask:     cfg.Report.ReportMask,
			CompressReport: cfg.Report.Compress,
		},
		WorkDir: aromaWorkDir,
		SkipRun: aromaSkipRun,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.OutReport)
	return nil
}
