package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"medviz/app"
	"medviz/domain/core"
	"medviz/internal"
	"medviz/internal/config"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	input  string
	outDir string
	dpi    int
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:   "medviz",
		Short: "Medical examination charts: indicator counts by cardio outcome and a correlation heatmap",
		Long: `Render summary figures for a medical examination dataset (CSV or XLSX).

Configuration is read from the environment (a .env file is loaded if present):
- MEDVIZ_INPUT (default: medical_examination.csv)
- MEDVIZ_OUTPUT_DIR (default: .)
- MEDVIZ_CATPLOT_FILE (default: catplot.png)
- MEDVIZ_HEATMAP_FILE (default: heatmap.png)
- MEDVIZ_DPI (default: 96)
- LOG_LEVEL (error|warn|info|debug|trace, default: info)

Flags override the environment.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.input, "input", "", "Input CSV or XLSX file")
	rootCmd.PersistentFlags().StringVar(&flags.outDir, "out-dir", "", "Directory the figures are written to")
	rootCmd.PersistentFlags().IntVar(&flags.dpi, "dpi", 0, "Raster resolution of the written PNGs")

	rootCmd.AddCommand(
		newRenderCmd(flags),
		newCatPlotCmd(flags),
		newHeatMapCmd(flags),
		newDescribeCmd(flags),
	)
	return rootCmd
}

func newRenderCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Draw both the categorical plot and the heatmap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, true, true)
		},
	}
}

func newCatPlotCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "catplot",
		Short: "Draw indicator counts split by cardio outcome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, true, false)
		},
	}
}

func newHeatMapCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "heatmap",
		Short: "Draw the lower-triangle correlation heatmap of the filtered rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, false, true)
		},
	}
}

func newDescribeCmd(flags *globalFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print summary statistics of every numeric column after derivation",
		Long: `Print count, mean, std, quartiles, skewness and outlier counts per numeric column.

Example: medviz describe --input medical_examination.csv --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			v := app.NewVisualizer(cfg, logger)
			table, err := v.Load(cfg.Paths.InputFile)
			if err != nil {
				return err
			}
			summaries, err := v.Describe(table)
			if err != nil {
				return err
			}
			return writeSummaries(cmd.OutOrStdout(), output, summaries)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json|yaml")
	return cmd
}

// setup layers flags over the environment configuration
func setup(cmd *cobra.Command, flags *globalFlags) (*config.Config, *internal.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("input") {
		cfg.Paths.InputFile = flags.input
	}
	if cmd.Flags().Changed("out-dir") {
		cfg.Paths.OutputDir = flags.outDir
	}
	if cmd.Flags().Changed("dpi") {
		cfg.Render.DPI = flags.dpi
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create output dir: %w", err)
	}

	runID := core.NewRunID()
	logger := internal.NewLogger(internal.ParseLevel(cfg.LogLevel)).With("run " + runID.Short())
	logger.Debug("input=%s out=%s dpi=%d", cfg.Paths.InputFile, cfg.Paths.OutputDir, cfg.Render.DPI)
	return cfg, logger, nil
}

func run(cmd *cobra.Command, flags *globalFlags, catplot, heatmap bool) error {
	cfg, logger, err := setup(cmd, flags)
	if err != nil {
		return err
	}
	v := app.NewVisualizer(cfg, logger)

	table, err := v.Load(cfg.Paths.InputFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if catplot {
		res, err := v.DrawCatPlot(table)
		if err != nil {
			return err
		}
		printCounts(out, res.Counts)
		printWritten(out, res.Figure.Path)
	}
	if heatmap {
		res, err := v.DrawHeatMap(table)
		if err != nil {
			return err
		}
		printCorrelation(out, res.Correlation, res.Mask)
		fmt.Fprintf(out, "%d of %d rows kept after filtering\n", res.Trim.Kept, res.Trim.Kept+res.Trim.Dropped)
		printWritten(out, res.Figure.Path)
	}
	return nil
}

func printWritten(w io.Writer, path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	fmt.Fprintf(w, "%s %s\n", color.GreenString("wrote"), path)
}
