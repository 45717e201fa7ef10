package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuroprep/nireport/domain"
	"github.com/neuroprep/nireport/service"
)

func newAboutUseCase() *AboutSummaryUseCase {
	logger := testLogger()
	return NewAboutSummaryUseCase(
		service.NewAboutSummaryService(logger),
		service.NewSummaryFormatter(),
		service.NewFileOutputWriter(io.Discard),
		logger,
	)
}

func TestAboutSummaryUseCase_Execute(t *testing.T) {
	uc := newAboutUseCase()
	var out bytes.Buffer

	err := uc.Execute(context.Background(), domain.AboutSummaryRequest{
		Version:      "25.1.0",
		Command:      "nireport about --version-string 25.1.0",
		OutputFormat: domain.OutputFormatHTML,
		OutputWriter: &out,
		NoOpen:       true,
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Pipeline version: 25.1.0")
	assert.Contains(t, out.String(), "Date preprocessed: ")
}

func TestAboutSummaryUseCase_ExecuteWorkDir(t *testing.T) {
	uc := newAboutUseCase()
	workDir := t.TempDir()

	path, err := uc.ExecuteWorkDir(context.Background(), domain.AboutSummaryRequest{
		Version: "25.1.0",
		Command: "nireport about",
	}, workDir, service.NewSummaryReportWriter(testLogger()))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(workDir, "report.html"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Pipeline version: 25.1.0")
}

func TestAboutSummaryUseCase_Validation(t *testing.T) {
	uc := newAboutUseCase()

	err := uc.Execute(context.Background(), domain.AboutSummaryRequest{Command: "nireport"})
	assert.Error(t, err, "missing version")

	err = uc.Execute(context.Background(), domain.AboutSummaryRequest{Version: "dev"})
	assert.Error(t, err, "missing command")
}
