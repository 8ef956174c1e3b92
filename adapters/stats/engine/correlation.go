package engine

import (
	"math"

	"medviz/domain/exam"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix holds pairwise Pearson coefficients over named columns
type CorrelationMatrix struct {
	Names  []string
	Values *mat.SymDense
}

// Size returns the number of columns n of the n x n matrix
func (m *CorrelationMatrix) Size() int {
	return len(m.Names)
}

// At returns the coefficient between columns i and j
func (m *CorrelationMatrix) At(i, j int) float64 {
	return m.Values.At(i, j)
}

// Get returns the coefficient between two named columns
func (m *CorrelationMatrix) Get(a, b string) (float64, bool) {
	i, j := m.index(a), m.index(b)
	if i < 0 || j < 0 {
		return math.NaN(), false
	}
	return m.Values.At(i, j), true
}

func (m *CorrelationMatrix) index(name string) int {
	for i, n := range m.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Correlate computes Pearson correlation for every pair of numeric columns of t,
// in table column order. Pairs use only rows where both values are present.
// Columns with zero variance produce NaN, including on the diagonal.
func (e *StatsEngine) Correlate(t *exam.Table) (*CorrelationMatrix, error) {
	if t == nil || t.Nrow() < 2 {
		rows := 0
		if t != nil {
			rows = t.Nrow()
		}
		return nil, exam.NewInsufficientDataError("correlation input", rows, 2)
	}

	names := t.NumericColumns()
	if len(names) == 0 {
		return nil, exam.ErrNoNumericColumns
	}

	columns := make([][]float64, len(names))
	for i, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}

	n := len(names)
	values := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			values.SetSym(i, j, Pearson(columns[i], columns[j]))
		}
	}

	return &CorrelationMatrix{Names: names, Values: values}, nil
}

// Pearson returns the correlation of x and y over rows where neither is NaN.
// Fewer than two complete rows gives NaN.
func Pearson(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if i >= len(y) {
			break
		}
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}
