package service

import (
	"context"
	"html/template"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/neuroprep/nireport/domain"
)

// aboutTimestampLayout renders as e.g. 2026-08-25 14:03:11 +0200
const aboutTimestampLayout = "2006-01-02 15:04:05 -0700"

// The trailing </div> closes the container opened by the report aggregator.
const aboutTemplate = `	<ul>
		<li>Pipeline version: {{.Version}}</li>
		<li>Pipeline command: <code>{{.Command}}</code></li>
		<li>Date preprocessed: {{.Date}}</li>
	</ul>
</div>
`

var aboutTmpl = template.Must(template.New("about_summary").Parse(aboutTemplate))

// AboutSummaryServiceImpl implements the AboutSummaryService interface
type AboutSummaryServiceImpl struct {
	logger *charmlog.Logger

	// now is swappable for tests
	now func() time.Time
}

// NewAboutSummaryService creates a new about summary service
func NewAboutSummaryService(logger *charmlog.Logger) *AboutSummaryServiceImpl {
	return &AboutSummaryServiceImpl{
		logger: logger,
		now:    time.Now,
	}
}

// Summarize renders the about segment with the render-time timestamp
func (s *AboutSummaryServiceImpl) Summarize(ctx context.Context, req domain.AboutSummaryRequest) (*domain.AboutSummaryResponse, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	response := &domain.AboutSummaryResponse{
		Version: req.Version,
		Command: req.Command,
		Date:    s.now().Format(aboutTimestampLayout),
	}

	segment, err := AboutSegment{Response: response}.GenerateSegment()
	if err != nil {
		return nil, err
	}
	response.Segment = segment

	s.logger.Debug("about summary computed", "version", req.Version)
	return response, nil
}

// AboutSegment renders a computed about summary as a reportlet segment
type AboutSegment struct {
	Response *domain.AboutSummaryResponse
}

// GenerateSegment implements domain.Summary
func (a AboutSegment) GenerateSegment() (string, error) {
	if a.Response == nil {
		return "", domain.NewValidationError("about summary response is nil")
	}

	// The command line must round-trip byte for byte: consumers read the
	// exact invocation back out of the <code> element.
	data := struct {
		Version string
		Command template.HTML
		Date    string
	}{
		Version: a.Response.Version,
		Command: template.HTML(a.Response.Command),
		Date:    a.Response.Date,
	}

	var builder strings.Builder
	if err := aboutTmpl.Execute(&builder, data); err != nil {
		return "", domain.NewOutputError("failed to render about summary segment", err)
	}
	return builder.String(), nil
}
