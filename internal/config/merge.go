package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared between the CLI and the config merge. Only flags the
// user explicitly set override file or environment values.
const (
	FlagFormat      = "format"
	FlagOutputDir   = "output-dir"
	FlagNoOpen      = "no-open"
	FlagCompress    = "compress"
	FlagReportMask  = "report-mask"
	FlagSubjectsDir = "subjects-dir"
	FlagMelodicCmd  = "melodic-cmd"
	FlagAromaCmd    = "aroma-cmd"
	FlagPlotterCmd  = "plotter-cmd"
)

// MergeFlags overlays explicitly set CLI flags onto the configuration.
// Flags the command does not define are skipped.
func MergeFlags(cfg *Config, flags *pflag.FlagSet) {
	stringFlag(flags, FlagFormat, &cfg.Output.Format)
	stringFlag(flags, FlagOutputDir, &cfg.Output.Directory)
	boolFlag(flags, FlagNoOpen, &cfg.Output.NoOpen)
	boolFlag(flags, FlagCompress, &cfg.Report.Compress)
	stringFlag(flags, FlagReportMask, &cfg.Report.ReportMask)
	stringFlag(flags, FlagSubjectsDir, &cfg.FreeSurfer.SubjectsDir)
	stringFlag(flags, FlagMelodicCmd, &cfg.Tools.Melodic)
	stringFlag(flags, FlagAromaCmd, &cfg.Tools.Aroma)
	stringFlag(flags, FlagPlotterCmd, &cfg.Tools.Plotter)
}

func stringFlag(flags *pflag.FlagSet, name string, dest *string) {
	if flags.Lookup(name) == nil || !flags.Changed(name) {
		return
	}
	if v, err := flags.GetString(name); err == nil {
		*dest = v
	}
}

func boolFlag(flags *pflag.FlagSet, name string, dest *bool) {
	if flags.Lookup(name) == nil || !flags.Changed(name) {
		return
	}
	if v, err := flags.GetBool(name); err == nil {
		*dest = v
	}
}
