package app

import (
	"io"
	"math"
	"os"
	"testing"

	"medviz/domain/exam"
	"medviz/internal"
	"medviz/internal/config"
	"medviz/internal/errors"
	"medviz/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVisualizer(t *testing.T) *Visualizer {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Render.DPI = 30
	return NewVisualizer(cfg, internal.NewLoggerTo(io.Discard, internal.LogLevelError))
}

func writeFixture(t *testing.T, records [][]string) string {
	t.Helper()
	path, err := testkit.WriteCSV(t.TempDir(), "exam.csv", records)
	require.NoError(t, err)
	return path
}

func TestVisualizer_EndToEnd(t *testing.T) {
	v := newTestVisualizer(t)
	table, err := v.Load(writeFixture(t, testkit.FourPatients()))
	require.NoError(t, err)
	assert.Equal(t, 4, table.Nrow())
	assert.True(t, table.HasColumn(exam.ColOverweight))

	cat, err := v.DrawCatPlot(table)
	require.NoError(t, err)
	assert.Equal(t, v.cfg.Paths.CatPlotPath(), cat.Figure.Path)
	_, err = os.Stat(cat.Figure.Path)
	require.NoError(t, err)

	// every (cardio, variable) group sums to the rows in that outcome
	sums := map[int]map[string]int{}
	for _, c := range cat.Counts {
		if sums[c.Cardio] == nil {
			sums[c.Cardio] = map[string]int{}
		}
		sums[c.Cardio][c.Variable] += c.Total
	}
	for outcome, byVar := range sums {
		assert.Len(t, byVar, len(exam.Indicators), "cardio=%d", outcome)
		for variable, total := range byVar {
			assert.Equal(t, 2, total, "cardio=%d %s", outcome, variable)
		}
	}

	heat, err := v.DrawHeatMap(table)
	require.NoError(t, err)
	assert.Equal(t, 4, heat.Trim.Kept)
	assert.Equal(t, v.cfg.Paths.HeatMapPath(), heat.Figure.Path)
	assert.Equal(t, heat.Correlation.Size(), len(heat.Mask))
	for i := 0; i < heat.Correlation.Size(); i++ {
		assert.True(t, heat.Mask.Hidden(i, i))
	}
	_, err = os.Stat(heat.Figure.Path)
	require.NoError(t, err)
}

func TestVisualizer_IdempotentFigures(t *testing.T) {
	v := newTestVisualizer(t)
	table, err := v.Load(writeFixture(t, testkit.FourPatients()))
	require.NoError(t, err)

	first, err := v.DrawHeatMap(table)
	require.NoError(t, err)
	second, err := v.DrawHeatMap(table)
	require.NoError(t, err)
	assert.True(t, first.Figure.Fingerprint.Equals(second.Figure.Fingerprint))

	// drawing the catplot in between does not disturb the heatmap
	_, err = v.DrawCatPlot(table)
	require.NoError(t, err)
	third, err := v.DrawHeatMap(table)
	require.NoError(t, err)
	assert.True(t, first.Figure.Fingerprint.Equals(third.Figure.Fingerprint))
}

func TestVisualizer_ExcelMatchesCSV(t *testing.T) {
	v := newTestVisualizer(t)
	records := testkit.FourPatients()

	xlsxPath, err := testkit.WriteXLSX(t.TempDir(), "exam.xlsx", records)
	require.NoError(t, err)

	fromCSV, err := v.Load(writeFixture(t, records))
	require.NoError(t, err)
	fromXLSX, err := v.Load(xlsxPath)
	require.NoError(t, err)

	csvCat, err := v.DrawCatPlot(fromCSV)
	require.NoError(t, err)
	xlsxCat, err := v.DrawCatPlot(fromXLSX)
	require.NoError(t, err)
	assert.Equal(t, csvCat.Counts, xlsxCat.Counts)

	csvHeat, err := v.DrawHeatMap(fromCSV)
	require.NoError(t, err)
	xlsxHeat, err := v.DrawHeatMap(fromXLSX)
	require.NoError(t, err)
	require.Equal(t, csvHeat.Correlation.Names, xlsxHeat.Correlation.Names)
	n := csvHeat.Correlation.Size()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a, b := csvHeat.Correlation.At(i, j), xlsxHeat.Correlation.At(i, j)
			if math.IsNaN(a) {
				assert.True(t, math.IsNaN(b))
				continue
			}
			assert.InDelta(t, a, b, 1e-12)
		}
	}
}

func TestVisualizer_Describe(t *testing.T) {
	v := newTestVisualizer(t)
	table, err := v.Load(writeFixture(t, testkit.FourPatients()))
	require.NoError(t, err)

	summaries, err := v.Describe(table)
	require.NoError(t, err)
	require.NotEmpty(t, summaries)
	for _, s := range summaries {
		assert.Equal(t, 4, s.Count, s.Column)
	}
}

func TestVisualizer_LoadErrors(t *testing.T) {
	v := newTestVisualizer(t)

	_, err := v.Load("does-not-exist.csv")
	require.Error(t, err)
	assert.Equal(t, errors.CodeLoadFailed, errors.GetCode(err))

	records := testkit.FourPatients()
	for i := range records {
		records[i] = records[i][:len(records[i])-1] // drop cardio
	}
	_, err = v.Load(writeFixture(t, records))
	require.Error(t, err)
	assert.Equal(t, errors.CodeMissingColumn, errors.GetCode(err))
}

func TestVisualizer_HeatMapInsufficientRows(t *testing.T) {
	v := newTestVisualizer(t)
	records := testkit.FourPatients()
	for i := 1; i <= 3; i++ {
		records[i][5], records[i][6] = "70", "110" // ap_lo above ap_hi
	}
	table, err := v.Load(writeFixture(t, records))
	require.NoError(t, err)

	_, err = v.DrawHeatMap(table)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInsufficientData, errors.GetCode(err))
	assert.ErrorIs(t, err, exam.ErrInsufficientData)
}

func TestVisualizer_NilTable(t *testing.T) {
	v := newTestVisualizer(t)

	_, err := v.DrawCatPlot(nil)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	_, err = v.DrawHeatMap(nil)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	_, err = v.Describe(nil)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
