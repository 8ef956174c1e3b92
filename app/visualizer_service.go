package app

import (
	stderrors "errors"
	"fmt"
	"time"

	"medviz/adapters/excel"
	"medviz/adapters/render"
	"medviz/adapters/stats/engine"
	"medviz/domain/exam"
	"medviz/internal"
	"medviz/internal/config"
	"medviz/internal/errors"
)

// Visualizer loads examination records and draws the two summary figures
type Visualizer struct {
	cfg    *config.Config
	logger *internal.Logger
	engine *engine.StatsEngine
}

// CatPlotResult is the categorical figure plus the counts it was drawn from
type CatPlotResult struct {
	Figure *render.Figure       `json:"-"`
	Counts []exam.CategoryCount `json:"counts"`
}

// HeatMapResult is the correlation figure plus the data behind it
type HeatMapResult struct {
	Figure      *render.Figure
	Trim        *engine.TrimResult
	Correlation *engine.CorrelationMatrix
	Mask        engine.Mask
}

// NewVisualizer creates a visualizer; a nil logger falls back to the default one
func NewVisualizer(cfg *config.Config, logger *internal.Logger) *Visualizer {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Visualizer{
		cfg:    cfg,
		logger: logger.With("Visualizer"),
		engine: engine.NewStatsEngine(),
	}
}

// Load reads a CSV or XLSX file and returns the derived table
func (v *Visualizer) Load(path string) (*exam.Table, error) {
	if path == "" {
		path = v.cfg.Paths.InputFile
	}
	start := time.Now()

	records, err := excel.NewDataReader(path).ReadRecords()
	if err != nil {
		return nil, errors.LoadFailed(path, err)
	}

	raw, err := exam.FromRecords(records)
	if err != nil {
		return nil, errors.LoadFailed(path, err)
	}
	if err := raw.Require(exam.RequiredColumns...); err != nil {
		return nil, errors.WithCode(errors.CodeMissingColumn, err)
	}

	derived, err := exam.Derive(raw)
	if err != nil {
		return nil, classify(err, fmt.Sprintf("failed to derive features from %s", path))
	}

	v.logger.Info("loaded %d rows from %s in %s", derived.Nrow(), path, time.Since(start).Round(time.Millisecond))
	return derived, nil
}

// DrawCatPlot melts the indicator columns, counts them per cardio outcome and
// writes the grouped bar figure to the configured catplot path
func (v *Visualizer) DrawCatPlot(t *exam.Table) (*CatPlotResult, error) {
	if t == nil {
		return nil, errors.InvalidInput("no table to plot")
	}

	long, err := exam.Melt(t)
	if err != nil {
		return nil, classify(err, "failed to reshape indicators")
	}
	counts, err := exam.CountByOutcome(long)
	if err != nil {
		return nil, classify(err, "failed to count indicators")
	}
	v.logger.Debug("%d category counts over %d long rows", len(counts), long.Nrow())

	path := v.cfg.Paths.CatPlotPath()
	fig, err := render.CatPlot(counts, path, v.renderOptions())
	if err != nil {
		if stderrors.Is(err, exam.ErrInsufficientData) {
			return nil, errors.WithCode(errors.CodeInsufficientData, err)
		}
		return nil, errors.RenderFailed(path, err)
	}

	v.logger.Info("catplot written to %s (%s)", fig.Path, fig.Fingerprint.Short())
	return &CatPlotResult{Figure: fig, Counts: counts}, nil
}

// DrawHeatMap trims implausible rows, correlates every numeric column and
// writes the lower-triangle heatmap to the configured heatmap path
func (v *Visualizer) DrawHeatMap(t *exam.Table) (*HeatMapResult, error) {
	if t == nil {
		return nil, errors.InvalidInput("no table to plot")
	}

	trim, err := v.engine.TrimOutliers(t)
	if err != nil {
		return nil, classify(err, "failed to filter rows for correlation")
	}
	v.logger.Debug("height band [%g, %g], weight band [%g, %g]",
		trim.Height.Lower, trim.Height.Upper, trim.Weight.Lower, trim.Weight.Upper)
	v.logger.Info("kept %d of %d rows for correlation", trim.Kept, trim.Kept+trim.Dropped)
	if trim.Kept < 2 {
		return nil, errors.WithCode(errors.CodeInsufficientData,
			exam.NewInsufficientDataError("correlation filter", trim.Kept, 2))
	}

	corr, err := v.engine.Correlate(trim.Table)
	if err != nil {
		return nil, classify(err, "failed to correlate columns")
	}
	mask := engine.UpperTriangleMask(corr.Size())

	path := v.cfg.Paths.HeatMapPath()
	fig, err := render.HeatMap(corr.Names, corr, mask, path, v.renderOptions())
	if err != nil {
		return nil, errors.RenderFailed(path, err)
	}

	v.logger.Info("heatmap written to %s (%s)", fig.Path, fig.Fingerprint.Short())
	return &HeatMapResult{
		Figure:      fig,
		Trim:        trim,
		Correlation: corr,
		Mask:        mask,
	}, nil
}

// Describe summarizes every numeric column of t
func (v *Visualizer) Describe(t *exam.Table) ([]engine.Summary, error) {
	if t == nil {
		return nil, errors.InvalidInput("no table to describe")
	}
	summaries, err := v.engine.Describe(t)
	if err != nil {
		return nil, classify(err, "failed to describe table")
	}
	return summaries, nil
}

func (v *Visualizer) renderOptions() render.Options {
	return render.Options{DPI: v.cfg.Render.DPI}
}

// classify maps domain sentinels onto error codes
func classify(err error, message string) error {
	switch {
	case stderrors.Is(err, exam.ErrMissingColumn):
		return &errors.AppError{Code: errors.CodeMissingColumn, Message: message, Cause: err}
	case stderrors.Is(err, exam.ErrInsufficientData), stderrors.Is(err, exam.ErrNoNumericColumns):
		return &errors.AppError{Code: errors.CodeInsufficientData, Message: message, Cause: err}
	default:
		return errors.Wrap(err, message)
	}
}
