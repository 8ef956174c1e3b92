package config

import (
	"path/filepath"
	"testing"

	"medviz/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"MEDVIZ_INPUT", "MEDVIZ_OUTPUT_DIR", "MEDVIZ_CATPLOT_FILE", "MEDVIZ_HEATMAP_FILE", "MEDVIZ_DPI"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Paths, cfg.Paths)
	assert.Equal(t, DefaultDPI, cfg.Render.DPI)
	assert.Equal(t, "catplot.png", cfg.Paths.CatPlotPath())
	assert.Equal(t, "heatmap.png", cfg.Paths.HeatMapPath())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("MEDVIZ_INPUT", "exams.xlsx")
	t.Setenv("MEDVIZ_OUTPUT_DIR", "out")
	t.Setenv("MEDVIZ_CATPLOT_FILE", "cat.png")
	t.Setenv("MEDVIZ_HEATMAP_FILE", "heat.png")
	t.Setenv("MEDVIZ_DPI", "150")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "exams.xlsx", cfg.Paths.InputFile)
	assert.Equal(t, filepath.Join("out", "cat.png"), cfg.Paths.CatPlotPath())
	assert.Equal(t, filepath.Join("out", "heat.png"), cfg.Paths.HeatMapPath())
	assert.Equal(t, 150, cfg.Render.DPI)
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(c *Config){
		"empty input":   func(c *Config) { c.Paths.InputFile = "" },
		"empty out dir": func(c *Config) { c.Paths.OutputDir = "" },
		"not png":       func(c *Config) { c.Paths.HeatMapFile = "heatmap.svg" },
		"same file":     func(c *Config) { c.Paths.HeatMapFile = c.Paths.CatPlotFile },
		"zero dpi":      func(c *Config) { c.Render.DPI = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
