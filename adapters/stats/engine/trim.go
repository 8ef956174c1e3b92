package engine

import (
	"medviz/domain/exam"
)

// TrimResult is the filtered table used for correlation plus the bounds applied
type TrimResult struct {
	Table   *exam.Table
	Height  Band
	Weight  Band
	Kept    int
	Dropped int
}

// TrimOutliers keeps rows where ap_lo <= ap_hi and height and weight both fall
// inside their percentile band. All bands come from the full input table and
// the conditions are applied together in a single pass.
func (e *StatsEngine) TrimOutliers(t *exam.Table) (*TrimResult, error) {
	apHi, err := t.Column(exam.ColSystolic)
	if err != nil {
		return nil, err
	}
	apLo, err := t.Column(exam.ColDiastolic)
	if err != nil {
		return nil, err
	}
	heights, err := t.Column(exam.ColHeight)
	if err != nil {
		return nil, err
	}
	weights, err := t.Column(exam.ColWeight)
	if err != nil {
		return nil, err
	}

	heightBand := PercentileBand(exam.ColHeight, heights, e.lowerQuantile, e.upperQuantile)
	weightBand := PercentileBand(exam.ColWeight, weights, e.lowerQuantile, e.upperQuantile)

	keep := make([]int, 0, t.Nrow())
	for i := 0; i < t.Nrow(); i++ {
		if apLo[i] <= apHi[i] && heightBand.Contains(heights[i]) && weightBand.Contains(weights[i]) {
			keep = append(keep, i)
		}
	}

	result := &TrimResult{
		Height:  heightBand,
		Weight:  weightBand,
		Kept:    len(keep),
		Dropped: t.Nrow() - len(keep),
	}
	if len(keep) == 0 {
		// callers check Kept before using Table
		return result, nil
	}

	filtered, err := t.Subset(keep)
	if err != nil {
		return nil, err
	}
	result.Table = filtered
	return result, nil
}
