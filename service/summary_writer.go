package service

import (
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"

	"github.com/neuroprep/nireport/domain"
)

// SummaryReportName is the fixed filename of summary reportlets inside a
// working directory.
const SummaryReportName = "report.html"

// SummaryReportWriter writes rendered summary segments into a working
// directory. Exactly one file is written per invocation; any write failure
// is fatal and surfaced to the caller.
type SummaryReportWriter struct {
	logger *charmlog.Logger
}

// NewSummaryReportWriter creates a new summary report writer
func NewSummaryReportWriter(logger *charmlog.Logger) *SummaryReportWriter {
	return &SummaryReportWriter{logger: logger}
}

// WriteReport renders the summary and writes it to report.html inside
// workDir, returning the path written.
func (w *SummaryReportWriter) WriteReport(workDir string, summary domain.Summary) (string, error) {
	segment, err := summary.GenerateSegment()
	if err != nil {
		return "", err
	}

	path := filepath.Join(workDir, SummaryReportName)
	if err := os.WriteFile(path, []byte(segment), 0o644); err != nil {
		return "", domain.NewOutputError("failed to write summary report: "+path, err)
	}

	w.logger.Debug("summary reportlet written", "path", path)
	return path, nil
}
