package service

import (
	"context"
	"html/template"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/neuroprep/nireport/domain"
	"github.com/neuroprep/nireport/internal/bids"
	"github.com/neuroprep/nireport/internal/version"
)

// subjectTemplate mirrors the fragment the report aggregator expects: a bare
// list, no surrounding document.
const subjectTemplate = `	<ul class="elem-desc">
		<li>Subject ID: {{.SubjectID}}</li>
		<li>Structural images: {{.NumT1w}} T1-weighted{{if .NumT2w}} (+ {{.NumT2w}} T2-weighted){{end}}</li>
		<li>Functional series: {{.NumBold}}</li>
{{- if .Tasks}}
		<ul class="elem-desc">
{{- range .Tasks}}
			<li>Task: {{.Task}} ({{.Runs}} run{{if gt .Runs 1}}s{{end}})</li>
{{- end}}
		</ul>
{{- end}}
		<li>Standard output spaces: {{join .StdSpaces ", "}}</li>
		<li>Non-standard output spaces: {{join .NstdSpaces ", "}}</li>
		<li>FreeSurfer reconstruction: {{.FreeSurfer}}</li>
	</ul>
`

var subjectTmpl = template.Must(
	template.New("subject_summary").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(subjectTemplate),
)

// SubjectSummaryServiceImpl implements the SubjectSummaryService interface
type SubjectSummaryServiceImpl struct {
	logger *charmlog.Logger
}

// NewSubjectSummaryService creates a new subject summary service
func NewSubjectSummaryService(logger *charmlog.Logger) *SubjectSummaryServiceImpl {
	return &SubjectSummaryServiceImpl{logger: logger}
}

// Summarize computes the subject summary and renders its HTML segment
func (s *SubjectSummaryServiceImpl) Summarize(ctx context.Context, req domain.SubjectSummaryRequest) (*domain.SubjectSummaryResponse, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// Split acquisitions are represented by their first file
	primaries := make([]string, 0, len(req.Bold))
	for _, series := range req.Bold {
		primary := series.Primary()
		if primary == "" {
			return nil, domain.NewValidationError("functional series entry has no files")
		}
		primaries = append(primaries, primary)
	}

	tasks, err := bids.CountTasks(primaries)
	if err != nil {
		return nil, err
	}

	response := &domain.SubjectSummaryResponse{
		SubjectID:   req.SubjectID,
		NumT1w:      len(req.T1w),
		NumT2w:      len(req.T2w),
		NumBold:     len(primaries),
		Tasks:       tasks,
		StdSpaces:   req.StdSpaces,
		NstdSpaces:  req.NstdSpaces,
		FreeSurfer:  ClassifyReconStatus(req.SubjectsDir, req.SubjectID, req.T1w),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}

	segment, err := SubjectSegment{Response: response}.GenerateSegment()
	if err != nil {
		return nil, err
	}
	response.Segment = segment

	s.logger.Debug("subject summary computed",
		"subject", req.SubjectID,
		"t1w", response.NumT1w,
		"bold", response.NumBold,
		"freesurfer", response.FreeSurfer)

	return response, nil
}

// SubjectSegment renders a computed subject summary as a reportlet segment
type SubjectSegment struct {
	Response *domain.SubjectSummaryResponse
}

// GenerateSegment implements domain.Summary
func (s SubjectSegment) GenerateSegment() (string, error) {
	if s.Response == nil {
		return "", domain.NewValidationError("subject summary response is nil")
	}

	var builder strings.Builder
	if err := subjectTmpl.Execute(&builder, s.Response); err != nil {
		return "", domain.NewOutputError("failed to render subject summary segment", err)
	}
	return builder.String(), nil
}
