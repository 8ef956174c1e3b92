package engine

// Default percentile band used to trim height and weight outliers
const (
	DefaultLowerQuantile = 0.025
	DefaultUpperQuantile = 0.975
)

// StatsEngine computes the statistics behind the examination figures
type StatsEngine struct {
	lowerQuantile float64
	upperQuantile float64
}

// NewStatsEngine creates an engine with the 2.5-97.5 percentile band
func NewStatsEngine() *StatsEngine {
	return &StatsEngine{
		lowerQuantile: DefaultLowerQuantile,
		upperQuantile: DefaultUpperQuantile,
	}
}

// NewStatsEngineWithBand creates an engine trimming outside [lower, upper] quantiles
func NewStatsEngineWithBand(lower, upper float64) *StatsEngine {
	return &StatsEngine{
		lowerQuantile: lower,
		upperQuantile: upper,
	}
}
