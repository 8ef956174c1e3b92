package exam

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Table is a read-only view over an examination DataFrame.
// Every operation that changes rows or columns returns a new Table.
type Table struct {
	df dataframe.DataFrame
}

// NewTable wraps a DataFrame, surfacing any error it carries
func NewTable(df dataframe.DataFrame) (*Table, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecords, df.Err)
	}
	return &Table{df: df}, nil
}

// FromRecords builds a raw Table from string records whose first row is the header.
// Column types are detected per column: int, float, bool, otherwise string.
// Cells that do not parse in a numeric column become NaN.
func FromRecords(records [][]string) (*Table, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: need a header and at least one row, got %d rows", ErrMalformedRecords, len(records))
	}
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	return NewTable(df)
}

// Frame returns the underlying DataFrame
func (t *Table) Frame() dataframe.DataFrame {
	return t.df
}

// Nrow returns the number of examination rows
func (t *Table) Nrow() int {
	return t.df.Nrow()
}

// Names returns the column names in table order
func (t *Table) Names() []string {
	return t.df.Names()
}

// HasColumn reports whether the named column exists
func (t *Table) HasColumn(name string) bool {
	for _, n := range t.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Column returns a column as floats; missing cells are NaN
func (t *Table) Column(name string) ([]float64, error) {
	s, err := t.series(name)
	if err != nil {
		return nil, err
	}
	return s.Float(), nil
}

func (t *Table) series(name string) (series.Series, error) {
	if !t.HasColumn(name) {
		return series.Series{}, NewMissingColumnError(name)
	}
	s := t.df.Col(name)
	if s.Err != nil {
		return series.Series{}, fmt.Errorf("column %s: %w", name, s.Err)
	}
	return s, nil
}

// NumericColumns lists int and float columns in table order
func (t *Table) NumericColumns() []string {
	names := t.df.Names()
	types := t.df.Types()
	numeric := make([]string, 0, len(names))
	for i, name := range names {
		if types[i] == series.Int || types[i] == series.Float {
			numeric = append(numeric, name)
		}
	}
	return numeric
}

// Subset returns the rows at the given indexes, in order
func (t *Table) Subset(rows []int) (*Table, error) {
	return NewTable(t.df.Subset(rows))
}

// Require checks that every named column exists
func (t *Table) Require(columns ...string) error {
	for _, c := range columns {
		if !t.HasColumn(c) {
			return NewMissingColumnError(c)
		}
	}
	return nil
}

// withColumn returns a copy with the series added or replaced
func (t *Table) withColumn(s series.Series) (*Table, error) {
	return NewTable(t.df.Mutate(s))
}
