package app

import (
	"context"

	charmlog "github.com/charmbracelet/log"

	"github.com/neuroprep/nireport/domain"
)

// AromaReportUseCase orchestrates an ICA-AROMA run with reportlet generation
type AromaReportUseCase struct {
	service domain.AromaReportService
	logger  *charmlog.Logger
}

// NewAromaReportUseCase creates a new ICA-AROMA report use case
func NewAromaReportUseCase(service domain.AromaReportService, logger *charmlog.Logger) *AromaReportUseCase {
	return &AromaReportUseCase{service: service, logger: logger}
}

// Execute validates inputs, runs the wrapped tool, and reports the outcome
func (uc *AromaReportUseCase) Execute(ctx context.Context, req domain.AromaReportRequest) (*domain.AromaReportResponse, error) {
	if req.WorkDir == "" {
		return nil, domain.NewValidationError("working directory is required")
	}
	if req.Aroma.InFile == "" {
		return nil, domain.NewValidationError("input file is required")
	}
	if req.Aroma.OutDir == "" {
		return nil, domain.NewValidationError("output directory is required")
	}
	if err := checkExists(req.Aroma.InFile); err != nil {
		return nil, err
	}
	if req.Aroma.MelodicDir != "" {
		if err := checkExists(req.Aroma.MelodicDir); err != nil {
			return nil, err
		}
	}
	if req.Aroma.MotionParams != "" {
		if err := checkExists(req.Aroma.MotionParams); err != nil {
			return nil, err
		}
	}

	response, err := uc.service.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ICA-AROMA reportlet generated", "report", response.OutReport)
	return response, nil
}
