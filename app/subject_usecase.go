package app

import (
	"context"
	"io"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"

	"github.com/neuroprep/nireport/domain"
	"github.com/neuroprep/nireport/internal/bids"
)

// SubjectSummaryUseCase orchestrates subject summary generation
type SubjectSummaryUseCase struct {
	service   domain.SubjectSummaryService
	formatter domain.SummaryFormatter
	writer    domain.ReportWriter
	progress  domain.ProgressManager
	logger    *charmlog.Logger
}

// NewSubjectSummaryUseCase creates a new subject summary use case
func NewSubjectSummaryUseCase(
	service domain.SubjectSummaryService,
	formatter domain.SummaryFormatter,
	writer domain.ReportWriter,
	progress domain.ProgressManager,
	logger *charmlog.Logger,
) *SubjectSummaryUseCase {
	return &SubjectSummaryUseCase{
		service:   service,
		formatter: formatter,
		writer:    writer,
		progress:  progress,
		logger:    logger,
	}
}

// Execute generates one subject summary reportlet
func (uc *SubjectSummaryUseCase) Execute(ctx context.Context, req domain.SubjectSummaryRequest) error {
	if err := uc.validateRequest(&req); err != nil {
		return err
	}

	response, err := uc.service.Summarize(ctx, req)
	if err != nil {
		return err
	}

	output, err := uc.formatter.FormatSubject(response, req.OutputFormat)
	if err != nil {
		return err
	}

	return uc.writer.Write(req.OutputWriter, req.OutputPath, req.OutputFormat, req.NoOpen, func(w io.Writer) error {
		_, err := w.Write([]byte(output))
		return err
	})
}

// ExecuteWorkDir renders the subject summary and writes it to report.html
// inside workDir, returning the path written. This is the entry point for
// workflow engines that hand each reportlet its own working directory.
func (uc *SubjectSummaryUseCase) ExecuteWorkDir(ctx context.Context, req domain.SubjectSummaryRequest, workDir string, writer domain.SummaryWriter) (string, error) {
	req.OutputFormat = domain.OutputFormatHTML
	if err := uc.validateRequest(&req); err != nil {
		return "", err
	}

	response, err := uc.service.Summarize(ctx, req)
	if err != nil {
		return "", err
	}
	return writer.WriteReport(workDir, domain.RenderedSegment(response.Segment))
}

// ExecuteBatch discovers every subject under a BIDS dataset root and writes
// one reportlet per subject into outputDir/sub-<label>/.
func (uc *SubjectSummaryUseCase) ExecuteBatch(ctx context.Context, bidsDir, outputDir string, base domain.SubjectSummaryRequest) error {
	subjects, err := bids.Subjects(bidsDir)
	if err != nil {
		return err
	}
	if len(subjects) == 0 {
		return domain.NewInvalidInputError("no subjects found in "+bidsDir, nil)
	}

	uc.progress.Initialize(len(subjects))
	uc.progress.Start()
	defer uc.progress.Close()

	for i, subject := range subjects {
		select {
		case <-ctx.Done():
			uc.progress.Complete(false)
			return ctx.Err()
		default:
		}

		files, err := bids.CollectSubjectFiles(bidsDir, subject)
		if err != nil {
			uc.progress.Complete(false)
			return err
		}

		req := base
		req.SubjectID = subject
		req.T1w = files.T1w
		req.T2w = files.T2w
		req.Bold = make([]domain.Series, 0, len(files.Bold))
		for _, b := range files.Bold {
			req.Bold = append(req.Bold, domain.Series{b})
		}

		subjectDir := filepath.Join(outputDir, "sub-"+subject)
		if err := os.MkdirAll(subjectDir, 0o755); err != nil {
			uc.progress.Complete(false)
			return domain.NewOutputError("failed to create output directory: "+subjectDir, err)
		}
		req.OutputPath = filepath.Join(subjectDir, "report.html")
		req.NoOpen = true

		if err := uc.Execute(ctx, req); err != nil {
			uc.progress.Complete(false)
			return err
		}
		uc.progress.Update(i+1, len(subjects))
	}

	uc.progress.Complete(true)
	uc.logger.Info("subject reportlets generated", "subjects", len(subjects), "output", outputDir)
	return nil
}

func (uc *SubjectSummaryUseCase) validateRequest(req *domain.SubjectSummaryRequest) error {
	if req.OutputFormat == "" {
		req.OutputFormat = domain.OutputFormatHTML
	}
	switch req.OutputFormat {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML, domain.OutputFormatHTML:
	default:
		return domain.NewUnsupportedFormatError(string(req.OutputFormat))
	}

	// Input paths must exist before any summary is computed
	for _, path := range req.T1w {
		if err := checkExists(path); err != nil {
			return err
		}
	}
	for _, path := range req.T2w {
		if err := checkExists(path); err != nil {
			return err
		}
	}
	for _, series := range req.Bold {
		for _, path := range series {
			if err := checkExists(path); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		return domain.NewFileNotFoundError(path, err)
	}
	return nil
}
