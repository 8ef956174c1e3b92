package engine

// Mask marks matrix cells hidden from the heatmap
type Mask [][]bool

// UpperTriangleMask hides the diagonal and everything above it
func UpperTriangleMask(n int) Mask {
	m := make(Mask, n)
	for i := range m {
		m[i] = make([]bool, n)
		for j := i; j < n; j++ {
			m[i][j] = true
		}
	}
	return m
}

// Hidden reports whether cell (i, j) is masked
func (m Mask) Hidden(i, j int) bool {
	return m[i][j]
}

// Count returns the number of masked cells
func (m Mask) Count() int {
	count := 0
	for _, row := range m {
		for _, hidden := range row {
			if hidden {
				count++
			}
		}
	}
	return count
}
