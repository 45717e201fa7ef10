package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuroprep/nireport/domain"
)

// stubRunner records executed command lines instead of running them
type stubRunner struct {
	calls [][]string
	err   error
}

func (r *stubRunner) Run(ctx context.Context, argv []string) error {
	r.calls = append(r.calls, argv)
	return r.err
}

// stubPlotter records plot requests instead of rendering
type stubPlotter struct {
	requests []domain.PlotRequest
	err      error
}

func (p *stubPlotter) Plot(ctx context.Context, req domain.PlotRequest) error {
	p.requests = append(p.requests, req)
	return p.err
}

func newMelodicFixture() (*MelodicReportServiceImpl, *stubRunner, *stubPlotter) {
	runner := &stubRunner{}
	plotter := &stubPlotter{}
	svc := NewMelodicReportService("melodic", runner, plotter, testLogger())
	return svc, runner, plotter
}

func TestMelodicReport_DisabledProducesNoReport(t *testing.T) {
	svc, runner, plotter := newMelodicFixture()
	workDir := t.TempDir()

	resp, err := svc.Execute(context.Background(), domain.MelodicReportRequest{
		Melodic: domain.MelodicOptions{InFiles: []string{"/data/bold.nii.gz"}},
		WorkDir: workDir,
	})
	require.NoError(t, err)

	assert.Len(t, runner.calls, 1)
	assert.Empty(t, plotter.requests)
	assert.Empty(t, resp.OutReport)
	assert.True(t, resp.Converged)

	// No extra file appears in the working directory
	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMelodicReport_NonConvergenceFallback(t *testing.T) {
	svc, _, plotter := newMelodicFixture()
	workDir := t.TempDir()

	resp, err := svc.Execute(context.Background(), domain.MelodicReportRequest{
		Melodic: domain.MelodicOptions{InFiles: []string{"/data/bold.nii.gz"}},
		Report: domain.ReportOptions{
			GenerateReport: true,
			OutReport:      "melodic_reportlet.svg",
		},
		WorkDir: workDir,
		SkipRun: true,
	})
	require.NoError(t, err)

	assert.False(t, resp.Converged)
	assert.Empty(t, plotter.requests)
	assert.Equal(t, ".html", filepath.Ext(resp.OutReport))
	assert.Equal(t, filepath.Join(workDir, "melodic_reportlet.html"), resp.OutReport)

	content, err := os.ReadFile(resp.OutReport)
	require.NoError(t, err)
	assert.Contains(t, string(content), "MELODIC did not converge")
}

func TestMelodicReport_ConvergedInvokesPlotter(t *testing.T) {
	svc, _, plotter := newMelodicFixture()
	workDir := t.TempDir()
	melodicDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(melodicDir, "melodic_mix"), []byte("0.1 0.2\n"), 0o644))

	resp, err := svc.Execute(context.Background(), domain.MelodicReportRequest{
		Melodic: domain.MelodicOptions{
			InFiles: []string{"/data/bold_e1.nii.gz", "/data/bold_e2.nii.gz"},
			OutDir:  melodicDir,
			TRSec:   2.5,
		},
		Report: domain.ReportOptions{
			GenerateReport: true,
			CompressReport: true,
			ReportMask:     "/masks/brain.nii.gz",
		},
		WorkDir: workDir,
		SkipRun: true,
	})
	require.NoError(t, err)

	require.Len(t, plotter.requests, 1)
	plot := plotter.requests[0]
	assert.Equal(t, resp.MelodicDir, plot.MelodicDir)
	assert.Equal(t, "/data/bold_e1.nii.gz", plot.InFile) // first input stands for the run
	assert.Equal(t, 2.5, plot.TRSec)
	assert.True(t, plot.Compress)
	assert.Equal(t, "/masks/brain.nii.gz", plot.ReportMask)
	assert.Empty(t, plot.NoiseComponentsFile)

	assert.True(t, resp.Converged)
	assert.Equal(t, filepath.Join(workDir, "melodic_reportlet.svg"), resp.OutReport)
	assert.Equal(t, resp.OutReport, plot.OutFile)
}

func TestMelodicReport_AbsoluteOutReportKept(t *testing.T) {
	svc, _, plotter := newMelodicFixture()
	workDir := t.TempDir()
	melodicDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(melodicDir, "melodic_mix"), []byte("1\n"), 0o644))

	outReport := filepath.Join(t.TempDir(), "custom.svg")
	resp, err := svc.Execute(context.Background(), domain.MelodicReportRequest{
		Melodic: domain.MelodicOptions{InFiles: []string{"/data/bold.nii.gz"}, OutDir: melodicDir},
		Report:  domain.ReportOptions{GenerateReport: true, OutReport: outReport},
		WorkDir: workDir,
		SkipRun: true,
	})
	require.NoError(t, err)

	assert.Equal(t, outReport, resp.OutReport)
	require.Len(t, plotter.requests, 1)
}

func TestMelodicReport_PlotterFailurePropagates(t *testing.T) {
	svc, _, plotter := newMelodicFixture()
	plotter.err = domain.NewPlotError("renderer crashed", nil)

	workDir := t.TempDir()
	melodicDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(melodicDir, "melodic_mix"), []byte("1\n"), 0o644))

	_, err := svc.Execute(context.Background(), domain.MelodicReportRequest{
		Melodic: domain.MelodicOptions{InFiles: []string{"/data/bold.nii.gz"}, OutDir: melodicDir},
		Report:  domain.ReportOptions{GenerateReport: true},
		WorkDir: workDir,
		SkipRun: true,
	})
	assert.Error(t, err)
}

func TestMelodicReport_Validation(t *testing.T) {
	svc, _, _ := newMelodicFixture()

	_, err := svc.Execute(context.Background(), domain.MelodicReportRequest{
		Melodic: domain.MelodicOptions{InFiles: []string{"/data/bold.nii.gz"}},
	})
	assert.Error(t, err, "missing working directory")

	_, err = svc.Execute(context.Background(), domain.MelodicReportRequest{WorkDir: t.TempDir()})
	assert.Error(t, err, "missing input files")
}

func TestBuildMelodicArgv(t *testing.T) {
	argv := buildMelodicArgv("melodic", domain.MelodicOptions{
		InFiles: []string{"a.nii.gz", "b.nii.gz"},
		Mask:    "mask.nii.gz",
		TRSec:   2,
		Dim:     30,
		NoBET:   true,
	}, "/work")

	joined := strings.Join(argv, " ")
	assert.Equal(t, "melodic", argv[0])
	assert.Contains(t, joined, "-i a.nii.gz,b.nii.gz")
	assert.Contains(t, joined, "--outdir=/work")
	assert.Contains(t, joined, "--tr=2")
	assert.Contains(t, joined, "--dim=30")
	assert.Contains(t, joined, "--nobet")
	assert.Contains(t, joined, "-m mask.nii.gz")
}
