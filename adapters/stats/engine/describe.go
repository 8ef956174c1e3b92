package engine

import (
	"math"

	"medviz/domain/exam"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Summary describes the distribution of one numeric column
type Summary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`

	// shape, NaN below four observations or for a constant column
	Skewness   float64 `json:"skewness"`
	Kurtosis   float64 `json:"excess_kurtosis"`
	NormalityP float64 `json:"normality_p"`
	Outliers   int     `json:"outliers"` // outside the 1.5 IQR Tukey fences
}

// Describe summarizes every numeric column of t, in table order
func (e *StatsEngine) Describe(t *exam.Table) ([]Summary, error) {
	names := t.NumericColumns()
	if len(names) == 0 {
		return nil, exam.ErrNoNumericColumns
	}

	summaries := make([]Summary, 0, len(names))
	for _, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summarize(name, col))
	}
	return summaries, nil
}

// summarize skips NaN cells; an all-missing column reports NaN everywhere
func summarize(name string, values []float64) Summary {
	data := finite(values)
	s := Summary{
		Column: name,
		Count:  len(data),
		Mean:   math.NaN(),
		StdDev: math.NaN(),
		Min:    math.NaN(),
		Q25:    math.NaN(),
		Median: math.NaN(),
		Q75:    math.NaN(),
		Max:    math.NaN(),

		Skewness:   math.NaN(),
		Kurtosis:   math.NaN(),
		NormalityP: math.NaN(),
	}
	if len(data) == 0 {
		return s
	}

	s.Mean, _ = stats.Mean(data)
	s.Min, _ = stats.Min(data)
	s.Max, _ = stats.Max(data)
	s.Median, _ = stats.Median(data)
	if len(data) > 1 {
		s.StdDev, _ = stats.StandardDeviationSample(data)
	}

	// quartiles use the same linear rule as the outlier band
	s.Q25 = Quantile(data, 0.25)
	s.Q75 = Quantile(data, 0.75)
	s.Outliers = tukeyOutliers(data, s.Q25, s.Q75)

	if len(data) >= 4 && s.Max > s.Min {
		s.Skewness = stat.Skew(data, nil)
		s.Kurtosis = stat.ExKurtosis(data, nil)
		s.NormalityP = jarqueBeraP(len(data), s.Skewness, s.Kurtosis)
	}

	return s
}

func tukeyOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lower, upper := q25-1.5*iqr, q75+1.5*iqr
	n := 0
	for _, x := range data {
		if x < lower || x > upper {
			n++
		}
	}
	return n
}

// jarqueBeraP is the asymptotic p-value of the Jarque-Bera normality statistic
func jarqueBeraP(n int, skew, exKurt float64) float64 {
	jb := float64(n) / 6 * (skew*skew + exKurt*exKurt/4)
	return distuv.ChiSquared{K: 2}.Survival(jb)
}
