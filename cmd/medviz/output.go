package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"medviz/adapters/stats/engine"
	"medviz/domain/exam"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

func printCounts(w io.Writer, counts []exam.CategoryCount) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{exam.ColCardio, exam.ColVariable, exam.ColValue, "total"})
	for _, c := range counts {
		t.AppendRow(table.Row{c.Cardio, c.Variable, c.Value, c.Total})
	}
	t.Render()
}

// printCorrelation prints the visible lower triangle; hidden cells are blank
func printCorrelation(w io.Writer, corr *engine.CorrelationMatrix, mask engine.Mask) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{""}
	for _, name := range corr.Names {
		header = append(header, name)
	}
	t.AppendHeader(header)

	configs := make([]table.ColumnConfig, 0, len(corr.Names))
	for i := range corr.Names {
		configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight})
	}
	t.SetColumnConfigs(configs)

	for i, name := range corr.Names {
		row := table.Row{name}
		for j := range corr.Names {
			row = append(row, formatCell(corr.At(i, j), mask.Hidden(i, j)))
		}
		t.AppendRow(row)
	}
	t.Render()
}

// writeSummaries renders summaries as a table, JSON or YAML
func writeSummaries(w io.Writer, format string, summaries []engine.Summary) error {
	switch format {
	case "table", "":
		printSummaries(w, summaries)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(finiteSummaries(summaries))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(finiteSummaries(summaries)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

// summaryDoc is a Summary with NaN fields turned into nulls
type summaryDoc struct {
	Column     string   `json:"column" yaml:"column"`
	Count      int      `json:"count" yaml:"count"`
	Mean       *float64 `json:"mean" yaml:"mean"`
	StdDev     *float64 `json:"std" yaml:"std"`
	Min        *float64 `json:"min" yaml:"min"`
	Q25        *float64 `json:"q25" yaml:"q25"`
	Median     *float64 `json:"median" yaml:"median"`
	Q75        *float64 `json:"q75" yaml:"q75"`
	Max        *float64 `json:"max" yaml:"max"`
	Skewness   *float64 `json:"skewness" yaml:"skewness"`
	Kurtosis   *float64 `json:"excess_kurtosis" yaml:"excess_kurtosis"`
	NormalityP *float64 `json:"normality_p" yaml:"normality_p"`
	Outliers   int      `json:"outliers" yaml:"outliers"`
}

func finiteSummaries(summaries []engine.Summary) []summaryDoc {
	docs := make([]summaryDoc, len(summaries))
	for i, s := range summaries {
		docs[i] = summaryDoc{
			Column:     s.Column,
			Count:      s.Count,
			Mean:       orNull(s.Mean),
			StdDev:     orNull(s.StdDev),
			Min:        orNull(s.Min),
			Q25:        orNull(s.Q25),
			Median:     orNull(s.Median),
			Q75:        orNull(s.Q75),
			Max:        orNull(s.Max),
			Skewness:   orNull(s.Skewness),
			Kurtosis:   orNull(s.Kurtosis),
			NormalityP: orNull(s.NormalityP),
			Outliers:   s.Outliers,
		}
	}
	return docs
}

// encoding/json rejects NaN
func orNull(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func printSummaries(w io.Writer, summaries []engine.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max", "skew", "outliers"})
	for _, s := range summaries {
		t.AppendRow(table.Row{
			s.Column,
			s.Count,
			formatFloat(s.Mean),
			formatFloat(s.StdDev),
			formatFloat(s.Min),
			formatFloat(s.Q25),
			formatFloat(s.Median),
			formatFloat(s.Q75),
			formatFloat(s.Max),
			formatFloat(s.Skewness),
			s.Outliers,
		})
	}
	t.Render()
}

func formatCell(v float64, hidden bool) string {
	if hidden {
		return ""
	}
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.1f", v)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.3f", v)
}
