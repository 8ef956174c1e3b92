package exam

import (
	"github.com/go-gota/gota/series"
)

// BMI computes body-mass index from weight in kg and height in cm
func BMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}

// Binarize maps an ordinal level to 0 when it is at most 1 (normal) and 1 otherwise.
// NaN maps to 1.
func Binarize(level float64) int {
	if level <= 1 {
		return 0
	}
	return 1
}

// IsOverweight reports a BMI above the overweight threshold; NaN is not overweight
func IsOverweight(bmi float64) int {
	if bmi > OverweightThreshold {
		return 1
	}
	return 0
}

// Derive adds BMI and overweight and rewrites cholesterol and gluc to {0,1}.
// Missing or non-numeric height and weight give a NaN BMI without error.
func Derive(raw *Table) (*Table, error) {
	heights, err := raw.Column(ColHeight)
	if err != nil {
		return nil, err
	}
	weights, err := raw.Column(ColWeight)
	if err != nil {
		return nil, err
	}

	n := raw.Nrow()
	bmi := make([]float64, n)
	overweight := make([]int, n)
	for i := 0; i < n; i++ {
		bmi[i] = BMI(weights[i], heights[i])
		overweight[i] = IsOverweight(bmi[i])
	}

	out, err := raw.withColumn(series.New(bmi, series.Float, ColBMI))
	if err != nil {
		return nil, err
	}
	if out, err = out.withColumn(series.New(overweight, series.Int, ColOverweight)); err != nil {
		return nil, err
	}

	for _, col := range []string{ColCholesterol, ColGlucose} {
		levels, err := raw.Column(col)
		if err != nil {
			return nil, err
		}
		out, err = out.withColumn(series.New(binarizeAll(levels), series.Int, col))
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func binarizeAll(levels []float64) []int {
	out := make([]int, len(levels))
	for i, v := range levels {
		out[i] = Binarize(v)
	}
	return out
}
