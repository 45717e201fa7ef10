package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatHTML OutputFormat = "html"
)

// FreeSurferStatus classifies whether surface reconstruction ran for a subject
type FreeSurferStatus string

const (
	// FreeSurferNotRun means no subjects directory was supplied
	FreeSurferNotRun FreeSurferStatus = "Not run"

	// FreeSurferPreExisting means the recon wrapper would no-op because the
	// subject directory already holds a reconstruction
	FreeSurferPreExisting FreeSurferStatus = "Pre-existing directory"

	// FreeSurferRunByPipeline means the recon wrapper would execute recon-all
	FreeSurferRunByPipeline FreeSurferStatus = "Run by pipeline"
)

// Series is one functional acquisition. Split acquisitions (multi-echo or
// multi-part runs) carry more than one file; the first file stands for the
// whole series when counting and parsing.
type Series []string

// Primary returns the file that represents the series, or "" for an empty series.
func (s Series) Primary() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// SubjectSummaryRequest represents a request for a subject summary reportlet
type SubjectSummaryRequest struct {
	// Subject identification. SubjectID is optional; empty means unknown.
	SubjectID string

	// Structural images
	T1w []string
	T2w []string

	// Functional series, in acquisition order
	Bold []Series

	// FreeSurfer subjects directory. Empty means reconstruction was not run.
	SubjectsDir string

	// Output space labels
	StdSpaces  []string
	NstdSpaces []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string // path to save output file (for HTML format)
	NoOpen       bool   // don't auto-open HTML in browser
}

// TaskCount is the number of runs acquired for one task
type TaskCount struct {
	Task string `json:"task" yaml:"task"`
	Runs int    `json:"runs" yaml:"runs"`
}

// SubjectSummaryResponse represents the computed subject summary
type SubjectSummaryResponse struct {
	SubjectID  string           `json:"subject_id" yaml:"subject_id"`
	NumT1w     int              `json:"n_t1w" yaml:"n_t1w"`
	NumT2w     int              `json:"n_t2w" yaml:"n_t2w"`
	NumBold    int              `json:"n_bold" yaml:"n_bold"`
	Tasks      []TaskCount      `json:"tasks,omitempty" yaml:"tasks,omitempty"`
	StdSpaces  []string         `json:"std_spaces" yaml:"std_spaces"`
	NstdSpaces []string         `json:"nstd_spaces" yaml:"nstd_spaces"`
	FreeSurfer FreeSurferStatus `json:"freesurfer" yaml:"freesurfer"`

	// Segment is the rendered HTML reportlet fragment
	Segment string `json:"-" yaml:"-"`

	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// AboutSummaryRequest represents a request for an about reportlet
type AboutSummaryRequest struct {
	// Version is the pipeline version string
	Version string

	// Command is the command line used to invoke the pipeline
	Command string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	NoOpen       bool
}

// AboutSummaryResponse represents the computed about summary
type AboutSummaryResponse struct {
	Version string `json:"version" yaml:"version"`
	Command string `json:"command" yaml:"command"`
	Date    string `json:"date" yaml:"date"`

	// Segment is the rendered HTML reportlet fragment
	Segment string `json:"-" yaml:"-"`
}

// Summary renders one HTML reportlet segment. Implementations carry their own
// typed inputs; the segment is written to report.html by a SummaryWriter.
type Summary interface {
	// GenerateSegment renders the HTML fragment for this summary
	GenerateSegment() (string, error)
}

// SummaryWriter persists a rendered summary as report.html inside a working
// directory and returns the path written.
type SummaryWriter interface {
	WriteReport(workDir string, summary Summary) (string, error)
}

// RenderedSegment adapts an already-rendered fragment to the Summary contract.
type RenderedSegment string

// GenerateSegment implements Summary
func (r RenderedSegment) GenerateSegment() (string, error) {
	return string(r), nil
}

// SubjectSummaryService computes subject summaries
type SubjectSummaryService interface {
	// Summarize computes counts, task breakdown, and reconstruction status,
	// and renders the HTML segment
	Summarize(ctx context.Context, req SubjectSummaryRequest) (*SubjectSummaryResponse, error)
}

// AboutSummaryService computes about summaries
type AboutSummaryService interface {
	Summarize(ctx context.Context, req AboutSummaryRequest) (*AboutSummaryResponse, error)
}

// SummaryFormatter formats computed summaries for output
type SummaryFormatter interface {
	// FormatSubject formats a subject summary according to the specified format
	FormatSubject(response *SubjectSummaryResponse, format OutputFormat) (string, error)

	// FormatAbout formats an about summary according to the specified format
	FormatAbout(response *AboutSummaryResponse, format OutputFormat) (string, error)
}
