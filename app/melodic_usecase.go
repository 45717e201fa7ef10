package app

import (
	"context"

	charmlog "github.com/charmbracelet/log"

	"github.com/neuroprep/nireport/domain"
)

// MelodicReportUseCase orchestrates a MELODIC run with reportlet generation
type MelodicReportUseCase struct {
	service domain.MelodicReportService
	logger  *charmlog.Logger
}

// NewMelodicReportUseCase creates a new MELODIC report use case
func NewMelodicReportUseCase(service domain.MelodicReportService, logger *charmlog.Logger) *MelodicReportUseCase {
	return &MelodicReportUseCase{service: service, logger: logger}
}

// Execute validates inputs, runs the wrapped tool, and reports the outcome
func (uc *MelodicReportUseCase) Execute(ctx context.Context, req domain.MelodicReportRequest) (*domain.MelodicReportResponse, error) {
	if req.WorkDir == "" {
		return nil, domain.NewValidationError("working directory is required")
	}
	if len(req.Melodic.InFiles) == 0 {
		return nil, domain.NewValidationError("at least one input file is required")
	}
	for _, path := range req.Melodic.InFiles {
		if err := checkExists(path); err != nil {
			return nil, err
		}
	}
	if req.Report.ReportMask != "" {
		if err := checkExists(req.Report.ReportMask); err != nil {
			return nil, err
		}
	}

	response, err := uc.service.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.Report.GenerateReport && !response.Converged {
		uc.logger.Warn("MELODIC did not converge", "notice", response.OutReport)
	}
	return response, nil
}
