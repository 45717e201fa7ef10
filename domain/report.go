package domain

import (
	"context"
	"io"
)

// MelodicOptions are the inputs handed to the MELODIC decomposition tool
type MelodicOptions struct {
	// InFiles are the 4D functional images to decompose (at least one)
	InFiles []string

	// OutDir is where MELODIC writes its outputs. Empty means the tool runs
	// inside the working directory.
	OutDir string

	// Mask restricts the decomposition. Optional.
	Mask string

	// TRSec is the repetition time in seconds. Zero means unknown.
	TRSec float64

	// Dim caps the number of estimated components. Zero lets MELODIC decide.
	Dim int

	// NoBET skips brain extraction inside MELODIC
	NoBET bool
}

// AromaOptions are the inputs handed to the ICA-AROMA classification tool
type AromaOptions struct {
	// InFile is the preprocessed 4D functional image
	InFile string

	// MelodicDir is an existing MELODIC decomposition to classify
	MelodicDir string

	// OutDir is where ICA-AROMA writes its outputs
	OutDir string

	// MotionParams is the motion parameter file (mcflirt format)
	MotionParams string

	// Mask restricts classification. Optional.
	Mask string

	// TRSec is the repetition time in seconds. Zero means unknown.
	TRSec float64

	// Denoise selects the denoising strategy (nonaggr, aggr, both, no)
	Denoise string
}

// ReportOptions configure the visual reportlet emitted after a tool run
type ReportOptions struct {
	// GenerateReport enables reportlet generation. Default off: the wrapped
	// tool then behaves exactly like the bare tool.
	GenerateReport bool

	// OutReport is the reportlet filename. Relative paths are resolved
	// against the working directory.
	OutReport string

	// ReportMask is the mask used to draw the outline on the reportlet.
	// If not set the mask will be derived from the data.
	ReportMask string

	// CompressReport enables SVG compression of the rendered reportlet
	CompressReport bool
}

// MelodicReportRequest runs MELODIC and optionally renders its reportlet
type MelodicReportRequest struct {
	Melodic MelodicOptions
	Report  ReportOptions

	// WorkDir is the per-invocation scratch directory
	WorkDir string

	// SkipRun reuses an existing decomposition instead of invoking the tool
	SkipRun bool
}

// MelodicReportResponse records what the MELODIC wrapper produced
type MelodicReportResponse struct {
	// MelodicDir is the resolved absolute decomposition directory
	MelodicDir string `json:"melodic_dir" yaml:"melodic_dir"`

	// Converged is false when no mixing matrix was found after the run
	Converged bool `json:"converged" yaml:"converged"`

	// OutReport is the path actually written: the rendered image, or the
	// HTML fallback notice when the decomposition did not converge. Empty
	// when report generation was disabled.
	OutReport string `json:"out_report,omitempty" yaml:"out_report,omitempty"`
}

// AromaReportRequest runs ICA-AROMA and renders its reportlet
type AromaReportRequest struct {
	Aroma  AromaOptions
	Report ReportOptions

	// WorkDir is the per-invocation scratch directory
	WorkDir string

	// SkipRun reuses existing classification outputs instead of invoking the tool
	SkipRun bool
}

// AromaReportResponse records what the ICA-AROMA wrapper produced
type AromaReportResponse struct {
	// OutDir is the tool's declared output directory
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// NoiseComponentsFile is the classification result inside OutDir
	NoiseComponentsFile string `json:"noise_components_file" yaml:"noise_components_file"`

	// OutReport is the rendered reportlet path
	OutReport string `json:"out_report" yaml:"out_report"`
}

// PlotRequest carries the arguments for the external component plotting routine
type PlotRequest struct {
	// MelodicDir is the decomposition directory to plot
	MelodicDir string

	// InFile is a representative input data file
	InFile string

	// TRSec is the repetition time in seconds. Zero means unknown.
	TRSec float64

	// OutFile is where the rendered image is written
	OutFile string

	// Compress enables SVG compression
	Compress bool

	// ReportMask outlines the brain on the plot. Optional.
	ReportMask string

	// NoiseComponentsFile marks flagged components visually. Optional.
	NoiseComponentsFile string
}

// ComponentPlotter renders a diagnostic image for a decomposition. The real
// implementation shells out to an external plotting routine; it is treated as
// a black box that writes OutFile or fails.
type ComponentPlotter interface {
	Plot(ctx context.Context, req PlotRequest) error
}

// ToolRunner executes an external command line to completion
type ToolRunner interface {
	Run(ctx context.Context, argv []string) error
}

// MelodicReportService wraps the MELODIC execute-and-collect lifecycle
type MelodicReportService interface {
	Execute(ctx context.Context, req MelodicReportRequest) (*MelodicReportResponse, error)
}

// AromaReportService wraps the ICA-AROMA execute-and-collect lifecycle
type AromaReportService interface {
	Execute(ctx context.Context, req AromaReportRequest) (*AromaReportResponse, error)
}

// ReportWriter abstracts writing formatted output to a destination (file or
// writer) and handling side-effects like opening HTML reports in a browser.
//
// Implementations live in the service layer.
type ReportWriter interface {
	// Write writes formatted content using the provided writeFunc.
	// - If outputPath is non-empty, implementations should create/truncate the
	//   file at that path and pass the file as the writer to writeFunc.
	// - If outputPath is empty, implementations should pass the provided
	//   writer to writeFunc.
	Write(writer io.Writer, outputPath string, format OutputFormat, noOpen bool, writeFunc func(io.Writer) error) error
}

// ProgressManager manages progress tracking for batch reportlet generation
type ProgressManager interface {
	// Initialize sets up progress tracking with the maximum value
	Initialize(maxValue int)

	// Start starts the progress bar
	Start()

	// Complete marks the progress as completed
	Complete(success bool)

	// Update updates the progress
	Update(processed, total int)

	// SetWriter sets the output writer for progress bars
	SetWriter(writer io.Writer)

	// IsInteractive returns true if progress bars should be shown
	IsInteractive() bool

	// Close cleans up any resources
	Close()
}
