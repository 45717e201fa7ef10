package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/neuroprep/nireport/domain"
)

// SummaryFormatterImpl implements the SummaryFormatter interface
type SummaryFormatterImpl struct{}

// NewSummaryFormatter creates a new summary formatter service
func NewSummaryFormatter() *SummaryFormatterImpl {
	return &SummaryFormatterImpl{}
}

// FormatSubject formats a subject summary according to the specified format
func (f *SummaryFormatterImpl) FormatSubject(response *domain.SubjectSummaryResponse, format domain.OutputFormat) (string, error) {
	if response == nil {
		return "", domain.NewValidationError("response cannot be nil")
	}

	switch format {
	case domain.OutputFormatHTML:
		return response.Segment, nil
	case domain.OutputFormatJSON:
		return f.formatJSON(response)
	case domain.OutputFormatYAML:
		return f.formatYAML(response)
	case domain.OutputFormatText:
		return f.formatSubjectText(response), nil
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// FormatAbout formats an about summary according to the specified format
func (f *SummaryFormatterImpl) FormatAbout(response *domain.AboutSummaryResponse, format domain.OutputFormat) (string, error) {
	if response == nil {
		return "", domain.NewValidationError("response cannot be nil")
	}

	switch format {
	case domain.OutputFormatHTML:
		return response.Segment, nil
	case domain.OutputFormatJSON:
		return f.formatJSON(response)
	case domain.OutputFormatYAML:
		return f.formatYAML(response)
	case domain.OutputFormatText:
		return f.formatAboutText(response), nil
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *SummaryFormatterImpl) formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data) + "\n", nil
}

func (f *SummaryFormatterImpl) formatYAML(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", domain.NewOutputError("failed to marshal YAML", err)
	}
	return string(data), nil
}

func (f *SummaryFormatterImpl) formatSubjectText(response *domain.SubjectSummaryResponse) string {
	var builder strings.Builder

	builder.WriteString("Subject Summary\n")
	builder.WriteString("===============\n")
	fmt.Fprintf(&builder, "Subject ID:            %s\n", response.SubjectID)
	fmt.Fprintf(&builder, "T1-weighted images:    %d\n", response.NumT1w)
	fmt.Fprintf(&builder, "T2-weighted images:    %d\n", response.NumT2w)
	fmt.Fprintf(&builder, "Functional series:     %d\n", response.NumBold)

	if len(response.Tasks) > 0 {
		builder.WriteString("Tasks:\n")
		for _, task := range response.Tasks {
			plural := "s"
			if task.Runs == 1 {
				plural = ""
			}
			fmt.Fprintf(&builder, "  - %s (%d run%s)\n", task.Task, task.Runs, plural)
		}
	}

	fmt.Fprintf(&builder, "Standard spaces:       %s\n", strings.Join(response.StdSpaces, ", "))
	fmt.Fprintf(&builder, "Non-standard spaces:   %s\n", strings.Join(response.NstdSpaces, ", "))
	fmt.Fprintf(&builder, "FreeSurfer:            %s\n", response.FreeSurfer)

	return builder.String()
}

func (f *SummaryFormatterImpl) formatAboutText(response *domain.AboutSummaryResponse) string {
	var builder strings.Builder

	builder.WriteString("About\n")
	builder.WriteString("=====\n")
	fmt.Fprintf(&builder, "Version: %s\n", response.Version)
	fmt.Fprintf(&builder, "Command: %s\n", response.Command)
	fmt.Fprintf(&builder, "Date:    %s\n", response.Date)

	return builder.String()
}
