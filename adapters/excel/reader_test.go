package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadRecords_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exams.csv")
	content := "id, height ,weight\n1,168,62\n2,156, 85\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	reader := NewDataReader(path)
	assert.Equal(t, "csv", reader.FileType())

	rows, err := reader.ReadRecords()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"id", "height", "weight"},
		{"1", "168", "62"},
		{"2", "156", "85"},
	}, rows)
}

func TestReadRecords_XLSXPadsShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exams.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"id", "height", "weight"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{1, 168, 62}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{2, 156}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	reader := NewDataReader(path)
	assert.Equal(t, "xlsx", reader.FileType())

	rows, err := reader.ReadRecords()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"id", "height", "weight"},
		{"1", "168", "62"},
		{"2", "156", ""},
	}, rows)
}

func TestReadRecords_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewDataReader(filepath.Join(dir, "missing.csv")).ReadRecords()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CSV file not found")

	headerOnly := filepath.Join(dir, "header.csv")
	require.NoError(t, os.WriteFile(headerOnly, []byte("id,height\n"), 0o644))
	_, err = NewDataReader(headerOnly).ReadRecords()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least a header row and one data row")
}
