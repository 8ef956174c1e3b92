package testkit

import (
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExamDataGenerator_Deterministic(t *testing.T) {
	cfg := DefaultExamConfig()
	first := NewExamDataGenerator(cfg).Records()
	second := NewExamDataGenerator(cfg).Records()

	assert.Equal(t, first, second)
	require.Len(t, first, cfg.PatientCount+1)
	assert.Equal(t, ExamHeader, first[0])
	for _, row := range first[1:] {
		assert.Len(t, row, len(ExamHeader))
	}
}

func TestExamDataGenerator_HasInvertedPressure(t *testing.T) {
	records := NewExamDataGenerator(DefaultExamConfig()).Records()

	inverted := 0
	for _, row := range records[1:] {
		hi, err := strconv.Atoi(row[5])
		require.NoError(t, err)
		lo, err := strconv.Atoi(row[6])
		require.NoError(t, err)
		if lo > hi {
			inverted++
		}
	}
	assert.Greater(t, inverted, 0)
}

func TestWriteFixtures(t *testing.T) {
	dir := t.TempDir()

	csvPath, err := WriteCSV(dir, "exam.csv", FourPatients())
	require.NoError(t, err)
	_, err = os.Stat(csvPath)
	require.NoError(t, err)

	xlsxPath, err := WriteXLSX(dir, "exam.xlsx", FourPatients())
	require.NoError(t, err)
	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	assert.Equal(t, FourPatients(), rows)
}
