package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"medviz/adapters/stats/engine"
	"medviz/domain/exam"
	"medviz/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRender_WritesBothFigures(t *testing.T) {
	input, err := testkit.WriteCSV(t.TempDir(), "exam.csv", testkit.FourPatients())
	require.NoError(t, err)
	outDir := filepath.Join(t.TempDir(), "figures")

	out, err := execute(t, "render", "--input", input, "--out-dir", outDir, "--dpi", "30")
	require.NoError(t, err)

	for _, name := range []string{"catplot.png", "heatmap.png"} {
		info, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Contains(t, out, "4 of 4 rows kept after filtering")
	assert.Contains(t, out, "overweight")
}

func TestCatPlot_OnlyWritesCatPlot(t *testing.T) {
	input, err := testkit.WriteCSV(t.TempDir(), "exam.csv", testkit.FourPatients())
	require.NoError(t, err)
	outDir := t.TempDir()

	_, err = execute(t, "catplot", "--input", input, "--out-dir", outDir, "--dpi", "30")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(outDir, "catplot.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "heatmap.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestDescribe_PrintsEveryNumericColumn(t *testing.T) {
	input, err := testkit.WriteCSV(t.TempDir(), "exam.csv", testkit.FourPatients())
	require.NoError(t, err)

	out, err := execute(t, "describe", "--input", input, "--out-dir", t.TempDir())
	require.NoError(t, err)
	for _, col := range []string{exam.ColHeight, exam.ColBMI, exam.ColOverweight} {
		assert.Contains(t, out, col)
	}
}

func TestRender_InvalidDPI(t *testing.T) {
	_, err := execute(t, "render", "--out-dir", t.TempDir(), "--dpi", "0")
	assert.Error(t, err)
}

func TestRender_MissingInput(t *testing.T) {
	_, err := execute(t, "render", "--input", filepath.Join(t.TempDir(), "absent.csv"), "--out-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.csv")
}

func TestPrintCorrelation_BlanksHiddenCells(t *testing.T) {
	raw, err := exam.FromRecords(testkit.FourPatients())
	require.NoError(t, err)
	derived, err := exam.Derive(raw)
	require.NoError(t, err)
	corr, err := engine.NewStatsEngine().Correlate(derived)
	require.NoError(t, err)

	var buf bytes.Buffer
	printCorrelation(&buf, corr, engine.UpperTriangleMask(corr.Size()))
	out := buf.String()
	for _, name := range corr.Names {
		assert.Contains(t, out, name)
	}
	// smoke and active are perfectly anti-correlated in the fixture
	assert.Contains(t, out, "-1.0")
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "", formatCell(0.5, true))
	assert.Equal(t, "0.5", formatCell(0.5, false))
	assert.Equal(t, "-1.0", formatCell(-0.98, false))
	assert.Equal(t, "NaN", formatCell(math.NaN(), false))
	assert.Equal(t, "165.000", formatFloat(165))
	assert.Equal(t, "NaN", formatFloat(math.NaN()))
}

func TestWriteSummaries_Formats(t *testing.T) {
	summaries := []engine.Summary{{
		Column: "height", Count: 4, Mean: 165, StdDev: 5.77, Min: 160, Q25: 160,
		Median: 165, Q75: 170, Max: 170, Skewness: math.NaN(), Kurtosis: math.NaN(), NormalityP: math.NaN(),
	}}

	var js bytes.Buffer
	require.NoError(t, writeSummaries(&js, "json", summaries))
	assert.Contains(t, js.String(), `"column": "height"`)
	assert.Contains(t, js.String(), `"skewness": null`)

	var ym bytes.Buffer
	require.NoError(t, writeSummaries(&ym, "yaml", summaries))
	assert.Contains(t, ym.String(), "column: height")
	assert.Contains(t, ym.String(), "mean: 165")

	assert.Error(t, writeSummaries(&bytes.Buffer{}, "xml", summaries))
}

func TestDescribe_YAMLOutput(t *testing.T) {
	input, err := testkit.WriteCSV(t.TempDir(), "exam.csv", testkit.FourPatients())
	require.NoError(t, err)

	out, err := execute(t, "describe", "--input", input, "--out-dir", t.TempDir(), "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "column: BMI")
}
