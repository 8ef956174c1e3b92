package exam

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// CategoryCount is one row of the aggregated indicator table
type CategoryCount struct {
	Cardio   int    `json:"cardio"`
	Variable string `json:"variable"`
	Value    int    `json:"value"`
	Total    int    `json:"total"`
}

// Melt reshapes the indicator columns into long form with cardio as identifier.
// Rows are stacked indicator by indicator, so the result has
// len(Indicators) x t.Nrow() rows with columns cardio, variable, value.
func Melt(t *Table) (dataframe.DataFrame, error) {
	cardio, err := t.Column(ColCardio)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	n := t.Nrow()
	total := n * len(Indicators)
	ids := make([]float64, 0, total)
	variables := make([]string, 0, total)
	values := make([]float64, 0, total)

	for _, indicator := range Indicators {
		col, err := t.Column(indicator)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		ids = append(ids, cardio...)
		values = append(values, col...)
		for i := 0; i < n; i++ {
			variables = append(variables, indicator)
		}
	}

	long := dataframe.New(
		series.New(ids, series.Int, ColCardio),
		series.New(variables, series.String, ColVariable),
		series.New(values, series.Int, ColValue),
	)
	if long.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("melt: %w", long.Err)
	}
	return long, nil
}

type countKey struct {
	cardio   int
	variable string
	value    int
}

// CountByOutcome groups long-form rows by (cardio, variable, value) and counts them.
// Rows with a missing cardio or value are dropped. The result is sorted by
// cardio, then variable name, then value.
func CountByOutcome(long dataframe.DataFrame) ([]CategoryCount, error) {
	for _, col := range []string{ColCardio, ColVariable, ColValue} {
		if s := long.Col(col); s.Err != nil {
			return nil, NewMissingColumnError(col)
		}
	}
	cardio := long.Col(ColCardio)
	variables := long.Col(ColVariable).Records()
	values := long.Col(ColValue)

	totals := make(map[countKey]int)
	for i := 0; i < long.Nrow(); i++ {
		c, v := cardio.Elem(i), values.Elem(i)
		if c.IsNA() || v.IsNA() {
			continue
		}
		ci, err := c.Int()
		if err != nil {
			return nil, err
		}
		vi, err := v.Int()
		if err != nil {
			return nil, err
		}
		totals[countKey{cardio: ci, variable: variables[i], value: vi}]++
	}

	counts := make([]CategoryCount, 0, len(totals))
	for k, total := range totals {
		counts = append(counts, CategoryCount{Cardio: k.cardio, Variable: k.variable, Value: k.value, Total: total})
	}
	sort.Slice(counts, func(i, j int) bool {
		a, b := counts[i], counts[j]
		if a.Cardio != b.Cardio {
			return a.Cardio < b.Cardio
		}
		if a.Variable != b.Variable {
			return a.Variable < b.Variable
		}
		return a.Value < b.Value
	})
	return counts, nil
}

// Outcomes returns the distinct cardio values present in counts, ascending
func Outcomes(counts []CategoryCount) []int {
	return distinctInts(counts, func(c CategoryCount) int { return c.Cardio })
}

// Values returns the distinct indicator values present in counts, ascending
func Values(counts []CategoryCount) []int {
	return distinctInts(counts, func(c CategoryCount) int { return c.Value })
}

// Variables returns the distinct variable names present in counts, sorted
func Variables(counts []CategoryCount) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range counts {
		if !seen[c.Variable] {
			seen[c.Variable] = true
			out = append(out, c.Variable)
		}
	}
	sort.Strings(out)
	return out
}

func distinctInts(counts []CategoryCount, key func(CategoryCount) int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, c := range counts {
		k := key(c)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Ints(out)
	return out
}
