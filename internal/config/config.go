// Package config defines run configuration structures and loading hooks.
//
// Conventions:
//   - New() returns the defaults of the published analysis.
//   - Load layers a YAML file and VGSALES_* environment variables on top.
//   - Validation failures wrap ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// DataPath is the input CSV.
	DataPath string `koanf:"data_path"`

	// HasHeader skips the first CSV row when true.
	HasHeader bool `koanf:"has_header"`

	// OutputDir receives every artifact of the run.
	OutputDir string `koanf:"output_dir"`

	// ResultsFile is the text report name inside OutputDir.
	ResultsFile string `koanf:"results_file"`

	// PlotFormat is the image extension for plots (png, svg, pdf, ...).
	PlotFormat string `koanf:"plot_format"`

	// PlotWidthIn and PlotHeightIn set the plot canvas in inches.
	PlotWidthIn  float64 `koanf:"plot_width_in"`
	PlotHeightIn float64 `koanf:"plot_height_in"`

	// MinReviewCount is the review-confidence threshold for critic and user scores.
	MinReviewCount float64 `koanf:"min_review_count"`

	// UserScoreScale brings user scores (0-10) onto the critic scale (0-100).
	UserScoreScale float64 `koanf:"user_score_scale"`

	// OutlierSigma is the half-width of the accepted sales band in standard deviations.
	OutlierSigma float64 `koanf:"outlier_sigma"`

	// SampleStdDev selects the n-1 estimator for the outlier band; the
	// default population estimator matches the published results.
	SampleStdDev bool `koanf:"sample_stddev"`

	// TCritical is the t statistic above which the null hypothesis is rejected.
	TCritical float64 `koanf:"t_critical"`

	// YearMin and YearMax mask rows by release year; zero disables a bound.
	YearMin int `koanf:"year_min"`
	YearMax int `koanf:"year_max"`

	// Regions lists the sales regions to process, in report order.
	Regions []string `koanf:"regions"`

	// FailFast aborts the run at the first failing region.
	FailFast bool `koanf:"fail_fast"`

	// Histograms enables per-region sales histograms.
	Histograms bool `koanf:"histograms"`

	// WorkbookFile enables an XLSX export when non-empty.
	WorkbookFile string `koanf:"workbook_file"`

	// MetricsFile enables a Prometheus textfile export when non-empty.
	MetricsFile string `koanf:"metrics_file"`

	// Summary prints the end-of-run table to stdout.
	Summary bool `koanf:"summary"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		DataPath:       "Video_Game_Sales_as_of_Jan_2017.csv",
		OutputDir:      ".",
		ResultsFile:    "results.txt",
		PlotFormat:     "png",
		PlotWidthIn:    6.4,
		PlotHeightIn:   4.8,
		MinReviewCount: 20,
		UserScoreScale: 10,
		OutlierSigma:   3,
		TCritical:      1.96,
		Regions:        []string{"Global", "NA", "EU", "JP", "Other"},
		Summary:        true,
	}
}
