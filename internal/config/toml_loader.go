package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ProjectConfigName is the per-project configuration filename
const ProjectConfigName = ".nireport.toml"

// TomlConfig represents the structure of .nireport.toml. Pointer fields
// detect unset values so the file only overrides what it mentions.
type TomlConfig struct {
	Output     TomlOutputConfig     `toml:"output"`
	Report     TomlReportConfig     `toml:"report"`
	FreeSurfer TomlFreeSurferConfig `toml:"freesurfer"`
	Tools      TomlToolsConfig      `toml:"tools"`
}

// TomlOutputConfig represents the [output] section
type TomlOutputConfig struct {
	Format    string `toml:"format"`
	Directory string `toml:"directory"`
	NoOpen    *bool  `toml:"no_open"` // pointer to detect unset
}

// TomlReportConfig represents the [report] section
type TomlReportConfig struct {
	Compress          *bool  `toml:"compress"` // pointer to detect unset
	ReportMask        string `toml:"report_mask"`
	MelodicReportName string `toml:"melodic_report_name"`
	AromaReportName   string `toml:"aroma_report_name"`
}

// TomlFreeSurferConfig represents the [freesurfer] section
type TomlFreeSurferConfig struct {
	SubjectsDir string `toml:"subjects_dir"`
}

// TomlToolsConfig represents the [tools] section
type TomlToolsConfig struct {
	Melodic string `toml:"melodic"`
	Aroma   string `toml:"aroma"`
	Plotter string `toml:"plotter"`
}

// FindProjectConfig walks up from startDir looking for .nireport.toml.
// Returns "" when no project file exists.
func FindProjectConfig(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, ProjectConfigName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadTomlConfig parses a .nireport.toml file
func LoadTomlConfig(path string) (*TomlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg TomlConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyTo overlays the values present in the TOML file onto cfg
func (t *TomlConfig) ApplyTo(cfg *Config) {
	if t.Output.Format != "" {
		cfg.Output.Format = t.Output.Format
	}
	if t.Output.Directory != "" {
		cfg.Output.Directory = t.Output.Directory
	}
	if t.Output.NoOpen != nil {
		cfg.Output.NoOpen = *t.Output.NoOpen
	}
	if t.Report.Compress != nil {
		cfg.Report.Compress = *t.Report.Compress
	}
	if t.Report.ReportMask != "" {
		cfg.Report.ReportMask = t.Report.ReportMask
	}
	if t.Report.MelodicReportName != "" {
		cfg.Report.MelodicReportName = t.Report.MelodicReportName
	}
	if t.Report.AromaReportName != "" {
		cfg.Report.AromaReportName = t.Report.AromaReportName
	}
	if t.FreeSurfer.SubjectsDir != "" {
		cfg.FreeSurfer.SubjectsDir = t.FreeSurfer.SubjectsDir
	}
	if t.Tools.Melodic != "" {
		cfg.Tools.Melodic = t.Tools.Melodic
	}
	if t.Tools.Aroma != "" {
		cfg.Tools.Aroma = t.Tools.Aroma
	}
	if t.Tools.Plotter != "" {
		cfg.Tools.Plotter = t.Tools.Plotter
	}
}
