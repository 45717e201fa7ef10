package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"github.com/neuroprep/nireport/domain"
	"github.com/neuroprep/nireport/internal/config"
)

// mixingMatrixName is the MELODIC result file whose absence marks a
// non-convergent decomposition.
const mixingMatrixName = "melodic_mix"

// nonConvergenceNotice is written in place of the visual reportlet when the
// decomposition produced no usable output. This is a recognized terminal
// outcome, not an error.
const nonConvergenceNotice = "<h4>MELODIC did not converge, no output</h4>"

// MelodicReportServiceImpl wraps the MELODIC decomposition tool and renders
// a visual reportlet after it completes. It implements
// domain.MelodicReportService by composition: the tool options and the
// reporting fields live side by side on the request.
type MelodicReportServiceImpl struct {
	command string
	runner  domain.ToolRunner
	plotter domain.ComponentPlotter
	logger  *charmlog.Logger
}

// NewMelodicReportService creates a new MELODIC report wrapper
func NewMelodicReportService(command string, runner domain.ToolRunner, plotter domain.ComponentPlotter, logger *charmlog.Logger) *MelodicReportServiceImpl {
	if command == "" {
		command = config.DefaultMelodicCommand
	}
	return &MelodicReportServiceImpl{
		command: command,
		runner:  runner,
		plotter: plotter,
		logger:  logger,
	}
}

// Execute runs MELODIC (unless SkipRun), then applies the post-run hook:
// nothing extra when report generation is disabled, the non-convergence
// fallback when the mixing matrix is missing, the rendered reportlet
// otherwise.
func (s *MelodicReportServiceImpl) Execute(ctx context.Context, req domain.MelodicReportRequest) (*domain.MelodicReportResponse, error) {
	if req.WorkDir == "" {
		return nil, domain.NewValidationError("working directory is required")
	}
	if len(req.Melodic.InFiles) == 0 {
		return nil, domain.NewValidationError("at least one input file is required")
	}

	if !req.SkipRun {
		if err := s.runner.Run(ctx, buildMelodicArgv(s.command, req.Melodic, req.WorkDir)); err != nil {
			return nil, err
		}
	}

	melodicDir := req.Melodic.OutDir
	if melodicDir == "" {
		melodicDir = req.WorkDir
	}
	absDir, err := filepath.Abs(melodicDir)
	if err != nil {
		return nil, domain.NewInvalidInputError("cannot resolve melodic directory: "+melodicDir, err)
	}

	response := &domain.MelodicReportResponse{
		MelodicDir: absDir,
		Converged:  true,
	}

	// Leave early if there's nothing to do
	if !req.Report.GenerateReport {
		return response, nil
	}

	s.logger.Info("Generating report for MELODIC")

	outReport := req.Report.OutReport
	if outReport == "" {
		outReport = config.DefaultMelodicReportName
	}
	if !filepath.IsAbs(outReport) {
		outReport = filepath.Join(req.WorkDir, outReport)
	}

	mix := filepath.Join(absDir, mixingMatrixName)
	if _, err := os.Stat(mix); err != nil {
		if !os.IsNotExist(err) {
			// Permission or I/O trouble while probing is a real error
			return nil, domain.NewOutputError("cannot probe mixing matrix: "+mix, err)
		}

		s.logger.Warn("MELODIC outputs not found, assuming it didn't converge")
		outReport = strings.ReplaceAll(outReport, ".svg", ".html")
		if err := os.WriteFile(outReport, []byte(nonConvergenceNotice), 0o644); err != nil {
			return nil, domain.NewOutputError("failed to write non-convergence notice: "+outReport, err)
		}
		response.Converged = false
		response.OutReport = outReport
		return response, nil
	}

	plot := domain.PlotRequest{
		MelodicDir: absDir,
		InFile:     req.Melodic.InFiles[0],
		TRSec:      req.Melodic.TRSec,
		OutFile:    outReport,
		Compress:   req.Report.CompressReport,
		ReportMask: req.Report.ReportMask,
	}
	if err := s.plotter.Plot(ctx, plot); err != nil {
		return nil, err
	}

	response.OutReport = outReport
	return response, nil
}

// buildMelodicArgv assembles the melodic command line from typed options
func buildMelodicArgv(command string, opts domain.MelodicOptions, workDir string) []string {
	outDir := opts.OutDir
	if outDir == "" {
		outDir = workDir
	}

	argv := []string{
		command,
		"-i", strings.Join(opts.InFiles, ","),
		"--outdir=" + outDir,
		"--Oall",
	}
	if opts.Mask != "" {
		argv = append(argv, "-m", opts.Mask)
	}
	if opts.TRSec > 0 {
		argv = append(argv, fmt.Sprintf("--tr=%g", opts.TRSec))
	}
	if opts.Dim > 0 {
		argv = append(argv, fmt.Sprintf("--dim=%d", opts.Dim))
	}
	if opts.NoBET {
		argv = append(argv, "--nobet")
	}
	return argv
}
