package main

import (
	"github.com/spf13/cobra"

	"github.com/neuroprep/nireport/domain"
	"github.com/neuroprep/nireport/internal/config"
)

// loadConfig resolves configuration for a command: defaults, project file or
// --config, NIREPORT_* environment, then explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	config.MergeFlags(cfg, cmd.Flags())
	return cfg, nil
}

// resolveFormat maps the per-command format bools onto an output format,
// falling back to the configured default.
func resolveFormat(cfg *config.Config, jsonFlag, yamlFlag, textFlag bool) domain.OutputFormat {
	switch {
	case jsonFlag:
		return domain.OutputFormatJSON
	case yamlFlag:
		return domain.OutputFormatYAML
	case textFlag:
		return domain.OutputFormatText
	default:
		return domain.OutputFormat(cfg.Output.Format)
	}
}
