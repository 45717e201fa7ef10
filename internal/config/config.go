package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Default reportlet filenames. Relative names are resolved against the
// working directory at generation time.
const (
	// DefaultMelodicReportName is the reportlet written after a MELODIC run
	DefaultMelodicReportName = "melodic_reportlet.svg"

	// DefaultAromaReportName is the reportlet written after an ICA-AROMA run
	DefaultAromaReportName = "ica_aroma_reportlet.svg"
)

// Default external tool command names, resolved through PATH
const (
	DefaultMelodicCommand = "melodic"
	DefaultAromaCommand   = "ICA_AROMA.py"
	DefaultPlotterCommand = "plot_melodic_components"
)

// Config represents the main configuration structure
type Config struct {
	// Output holds output destination configuration
	Output OutputConfig `mapstructure:"output"`

	// Report holds visual reportlet configuration
	Report ReportConfig `mapstructure:"report"`

	// FreeSurfer holds surface reconstruction configuration
	FreeSurfer FreeSurferConfig `mapstructure:"freesurfer"`

	// Tools holds the external command names this module shells out to
	Tools ToolsConfig `mapstructure:"tools"`
}

// OutputConfig holds output destination configuration
type OutputConfig struct {
	// Format is the default output format (text|json|yaml|html)
	Format string `mapstructure:"format"`

	// Directory is where generated reportlets are written
	Directory string `mapstructure:"directory"`

	// NoOpen disables auto-opening HTML reportlets in a browser
	NoOpen bool `mapstructure:"no_open"`
}

// ReportConfig holds visual reportlet configuration
type ReportConfig struct {
	// Compress enables SVG compression of rendered reportlets
	Compress bool `mapstructure:"compress"`

	// ReportMask outlines the brain on component plots. Empty derives the
	// mask from the data.
	ReportMask string `mapstructure:"report_mask"`

	// MelodicReportName is the MELODIC reportlet filename
	MelodicReportName string `mapstructure:"melodic_report_name"`

	// AromaReportName is the ICA-AROMA reportlet filename
	AromaReportName string `mapstructure:"aroma_report_name"`
}

// FreeSurferConfig holds surface reconstruction configuration
type FreeSurferConfig struct {
	// SubjectsDir is the FreeSurfer subjects directory. Empty means
	// reconstruction is not part of the pipeline.
	SubjectsDir string `mapstructure:"subjects_dir"`
}

// ToolsConfig holds the external command names
type ToolsConfig struct {
	Melodic string `mapstructure:"melodic"`
	Aroma   string `mapstructure:"aroma"`
	Plotter string `mapstructure:"plotter"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "html",
			NoOpen: true,
		},
		Report: ReportConfig{
			Compress:          true,
			MelodicReportName: DefaultMelodicReportName,
			AromaReportName:   DefaultAromaReportName,
		},
		Tools: ToolsConfig{
			Melodic: DefaultMelodicCommand,
			Aroma:   DefaultAromaCommand,
			Plotter: DefaultPlotterCommand,
		},
	}
}

// LoadConfig resolves configuration in precedence order: defaults, then the
// project file (the given path, or a .nireport.toml discovered in or above
// the current directory), then NIREPORT_* environment variables. Explicitly
// set CLI flags are merged separately via MergeFlags.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Project-file discovery walks up from the working directory
	if configPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			configPath = FindProjectConfig(cwd)
		}
	}
	if configPath != "" {
		tomlCfg, err := LoadTomlConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		tomlCfg.ApplyTo(cfg)
	}

	// Environment sits on top of defaults and the project file
	v := viper.New()
	v.SetEnvPrefix("NIREPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, cfg)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.directory", cfg.Output.Directory)
	v.SetDefault("output.no_open", cfg.Output.NoOpen)
	v.SetDefault("report.compress", cfg.Report.Compress)
	v.SetDefault("report.report_mask", cfg.Report.ReportMask)
	v.SetDefault("report.melodic_report_name", cfg.Report.MelodicReportName)
	v.SetDefault("report.aroma_report_name", cfg.Report.AromaReportName)
	v.SetDefault("freesurfer.subjects_dir", cfg.FreeSurfer.SubjectsDir)
	v.SetDefault("tools.melodic", cfg.Tools.Melodic)
	v.SetDefault("tools.aroma", cfg.Tools.Aroma)
	v.SetDefault("tools.plotter", cfg.Tools.Plotter)
}

// Validate checks configuration invariants
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "yaml", "html":
	default:
		return fmt.Errorf("invalid output format: %s", c.Output.Format)
	}
	if c.Tools.Melodic == "" || c.Tools.Aroma == "" || c.Tools.Plotter == "" {
		return fmt.Errorf("tool commands must not be empty")
	}
	return nil
}
