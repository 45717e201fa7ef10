package app

import (
	"context"
	"io"

	charmlog "github.com/charmbracelet/log"

	"github.com/neuroprep/nireport/domain"
)

// AboutSummaryUseCase orchestrates about summary generation
type AboutSummaryUseCase struct {
	service   domain.AboutSummaryService
	formatter domain.SummaryFormatter
	writer    domain.ReportWriter
	logger    *charmlog.Logger
}

// NewAboutSummaryUseCase creates a new about summary use case
func NewAboutSummaryUseCase(
	service domain.AboutSummaryService,
	formatter domain.SummaryFormatter,
	writer domain.ReportWriter,
	logger *charmlog.Logger,
) *AboutSummaryUseCase {
	return &AboutSummaryUseCase{
		service:   service,
		formatter: formatter,
		writer:    writer,
		logger:    logger,
	}
}

// ExecuteWorkDir renders the about summary and writes it to report.html
// inside workDir, returning the path written.
func (uc *AboutSummaryUseCase) ExecuteWorkDir(ctx context.Context, req domain.AboutSummaryRequest, workDir string, writer domain.SummaryWriter) (string, error) {
	if req.Version == "" {
		return "", domain.NewValidationError("version is required")
	}
	if req.Command == "" {
		return "", domain.NewValidationError("command is required")
	}

	response, err := uc.service.Summarize(ctx, req)
	if err != nil {
		return "", err
	}
	return writer.WriteReport(workDir, domain.RenderedSegment(response.Segment))
}

// Execute generates the about reportlet
func (uc *AboutSummaryUseCase) Execute(ctx context.Context, req domain.AboutSummaryRequest) error {
	if req.Version == "" {
		return domain.NewValidationError("version is required")
	}
	if req.Command == "" {
		return domain.NewValidationError("command is required")
	}
	if req.OutputFormat == "" {
		req.OutputFormat = domain.OutputFormatHTML
	}

	response, err := uc.service.Summarize(ctx, req)
	if err != nil {
		return err
	}

	output, err := uc.formatter.FormatAbout(response, req.OutputFormat)
	if err != nil {
		return err
	}

	return uc.writer.Write(req.OutputWriter, req.OutputPath, req.OutputFormat, req.NoOpen, func(w io.Writer) error {
		_, err := w.Write([]byte(output))
		return err
	})
}
