package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"medviz/internal/errors"
)

// Defaults for the examination pipeline
const (
	DefaultInputFile   = "medical_examination.csv"
	DefaultOutputDir   = "."
	DefaultCatPlotFile = "catplot.png"
	DefaultHeatMapFile = "heatmap.png"
	DefaultDPI         = 96
)

// Config represents the complete pipeline configuration
type Config struct {
	Paths    PathConfig
	Render   RenderConfig
	LogLevel string
}

// PathConfig holds file system paths
type PathConfig struct {
	InputFile   string
	OutputDir   string
	CatPlotFile string
	HeatMapFile string
}

// RenderConfig holds figure rasterization settings
type RenderConfig struct {
	DPI int
}

// CatPlotPath is the full output path of the categorical plot
func (p PathConfig) CatPlotPath() string {
	return filepath.Join(p.OutputDir, p.CatPlotFile)
}

// HeatMapPath is the full output path of the correlation heatmap
func (p PathConfig) HeatMapPath() string {
	return filepath.Join(p.OutputDir, p.HeatMapFile)
}

// Default returns the configuration used when nothing is set in the environment
func Default() *Config {
	return &Config{
		Paths: PathConfig{
			InputFile:   DefaultInputFile,
			OutputDir:   DefaultOutputDir,
			CatPlotFile: DefaultCatPlotFile,
			HeatMapFile: DefaultHeatMapFile,
		},
		Render:   RenderConfig{DPI: DefaultDPI},
		LogLevel: "INFO",
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Paths:    *loadPathConfig(),
		Render:   *loadRenderConfig(),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadPathConfig() *PathConfig {
	return &PathConfig{
		InputFile:   getEnvOrDefault("MEDVIZ_INPUT", DefaultInputFile),
		OutputDir:   getEnvOrDefault("MEDVIZ_OUTPUT_DIR", DefaultOutputDir),
		CatPlotFile: getEnvOrDefault("MEDVIZ_CATPLOT_FILE", DefaultCatPlotFile),
		HeatMapFile: getEnvOrDefault("MEDVIZ_HEATMAP_FILE", DefaultHeatMapFile),
	}
}

func loadRenderConfig() *RenderConfig {
	return &RenderConfig{
		DPI: getEnvIntOrDefault("MEDVIZ_DPI", DefaultDPI),
	}
}

// Validate checks paths and render settings
func Validate(config *Config) error {
	if config.Paths.InputFile == "" {
		return errors.ConfigInvalid("input file is required")
	}
	if config.Paths.OutputDir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	for _, name := range []string{config.Paths.CatPlotFile, config.Paths.HeatMapFile} {
		if !strings.EqualFold(filepath.Ext(name), ".png") {
			return errors.ConfigInvalid("figure file must be a .png: " + strconv.Quote(name))
		}
	}
	if config.Paths.CatPlotFile == config.Paths.HeatMapFile {
		return errors.ConfigInvalid("catplot and heatmap files must differ")
	}
	if config.Render.DPI <= 0 {
		return errors.ConfigInvalid("dpi must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
