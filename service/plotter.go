package service

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"

	"github.com/neuroprep/nireport/domain"
)

// ExecComponentPlotter invokes the external component plotting routine as a
// command-line tool. The routine is a black box: it either writes the
// requested output file or exits non-zero.
type ExecComponentPlotter struct {
	command string
	runner  domain.ToolRunner
	logger  *charmlog.Logger
}

// NewExecComponentPlotter creates a plotter that shells out to command
func NewExecComponentPlotter(command string, runner domain.ToolRunner, logger *charmlog.Logger) *ExecComponentPlotter {
	return &ExecComponentPlotter{
		command: command,
		runner:  runner,
		logger:  logger,
	}
}

// Plot implements domain.ComponentPlotter
func (p *ExecComponentPlotter) Plot(ctx context.Context, req domain.PlotRequest) error {
	if req.MelodicDir == "" {
		return domain.NewValidationError("melodic directory is required for plotting")
	}
	if req.OutFile == "" {
		return domain.NewValidationError("plot output file is required")
	}

	argv := []string{
		p.command,
		"--melodic-dir", req.MelodicDir,
		"--out-file", req.OutFile,
	}
	if req.InFile != "" {
		argv = append(argv, "--in-file", req.InFile)
	}
	if req.TRSec > 0 {
		argv = append(argv, "--tr", fmt.Sprintf("%g", req.TRSec))
	}
	if req.Compress {
		argv = append(argv, "--compress")
	}
	if req.ReportMask != "" {
		argv = append(argv, "--report-mask", req.ReportMask)
	}
	if req.NoiseComponentsFile != "" {
		argv = append(argv, "--noise-components", req.NoiseComponentsFile)
	}

	p.logger.Debug("plotting decomposition components", "melodic_dir", req.MelodicDir, "out", req.OutFile)

	if err := p.runner.Run(ctx, argv); err != nil {
		return domain.NewPlotError("component plotting failed", err)
	}
	return nil
}
