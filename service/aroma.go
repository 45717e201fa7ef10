package service

import (
	"context"
	"fmt"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"

	"github.com/neuroprep/nireport/domain"
	"github.com/neuroprep/nireport/internal/config"
)

// NoiseComponentsFilename is the classification result ICA-AROMA writes into
// its output directory.
const NoiseComponentsFilename = "classified_motion_ICs.txt"

// AromaReportServiceImpl wraps the ICA-AROMA noise-classification tool and
// renders a visual reportlet in which flagged components are distinguished
// from the rest. Unlike the MELODIC wrapper there is no non-convergence
// branch: a failed tool run surfaces as the tool's own error.
type AromaReportServiceImpl struct {
	command string
	runner  domain.ToolRunner
	plotter domain.ComponentPlotter
	logger  *charmlog.Logger
}

// NewAromaReportService creates a new ICA-AROMA report wrapper
func NewAromaReportService(command string, runner domain.ToolRunner, plotter domain.ComponentPlotter, logger *charmlog.Logger) *AromaReportServiceImpl {
	if command == "" {
		command = config.DefaultAromaCommand
	}
	return &AromaReportServiceImpl{
		command: command,
		runner:  runner,
		plotter: plotter,
		logger:  logger,
	}
}

// Execute runs ICA-AROMA (unless SkipRun), locates the classification file
// inside the tool's declared output directory, and renders the reportlet.
func (s *AromaReportServiceImpl) Execute(ctx context.Context, req domain.AromaReportRequest) (*domain.AromaReportResponse, error) {
	if req.WorkDir == "" {
		return nil, domain.NewValidationError("working directory is required")
	}
	if req.Aroma.InFile == "" {
		return nil, domain.NewValidationError("input file is required")
	}
	if req.Aroma.OutDir == "" {
		return nil, domain.NewValidationError("output directory is required")
	}

	if !req.SkipRun {
		if err := s.runner.Run(ctx, buildAromaArgv(s.command, req.Aroma)); err != nil {
			return nil, err
		}
	}

	outDir, err := filepath.Abs(req.Aroma.OutDir)
	if err != nil {
		return nil, domain.NewInvalidInputError("cannot resolve output directory: "+req.Aroma.OutDir, err)
	}
	noiseFile := filepath.Join(outDir, NoiseComponentsFilename)

	s.logger.Info("Generating report for ICA AROMA")

	outReport := req.Report.OutReport
	if outReport == "" {
		outReport = config.DefaultAromaReportName
	}
	if !filepath.IsAbs(outReport) {
		outReport = filepath.Join(req.WorkDir, outReport)
	}

	// ICA-AROMA runs its own decomposition when none was handed in
	melodicDir := req.Aroma.MelodicDir
	if melodicDir == "" {
		melodicDir = filepath.Join(outDir, "melodic.ica")
	}

	plot := domain.PlotRequest{
		MelodicDir:          melodicDir,
		InFile:              req.Aroma.InFile,
		TRSec:               req.Aroma.TRSec,
		OutFile:             outReport,
		Compress:            req.Report.CompressReport,
		ReportMask:          req.Report.ReportMask,
		NoiseComponentsFile: noiseFile,
	}
	if err := s.plotter.Plot(ctx, plot); err != nil {
		return nil, err
	}

	return &domain.AromaReportResponse{
		OutDir:              outDir,
		NoiseComponentsFile: noiseFile,
		OutReport:           outReport,
	}, nil
}

// buildAromaArgv assembles the ICA_AROMA.py command line from typed options
func buildAromaArgv(command string, opts domain.AromaOptions) []string {
	argv := []string{
		command,
		"-in", opts.InFile,
		"-out", opts.OutDir,
	}
	if opts.MelodicDir != "" {
		argv = append(argv, "-md", opts.MelodicDir)
	}
	if opts.MotionParams != "" {
		argv = append(argv, "-mc", opts.MotionParams)
	}
	if opts.Mask != "" {
		argv = append(argv, "-m", opts.Mask)
	}
	if opts.TRSec > 0 {
		argv = append(argv, "-tr", fmt.Sprintf("%g", opts.TRSec))
	}
	if opts.Denoise != "" {
		argv = append(argv, "-den", opts.Denoise)
	}
	return argv
}
