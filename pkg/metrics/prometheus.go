// Package metrics provides Prometheus metrics for the sales regression batch run.
//
// A batch run has no scrape endpoint, so the registry is written to a
// node-exporter style textfile at the end of the run (see WriteTextfile).
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for a run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Input
	rowsLoaded     prometheus.Gauge
	loadDuration   prometheus.Histogram
	loadFailures   prometheus.Counter
	rowsMasked     *prometheus.GaugeVec
	validPairs     *prometheus.GaugeVec
	seriesVariance *prometheus.GaugeVec

	// Regression
	regressions        *prometheus.CounterVec
	regressionDuration *prometheus.HistogramVec
	slope              *prometheus.GaugeVec
	tStatistic         *prometheus.GaugeVec

	// Output
	artifactsWritten *prometheus.CounterVec
	artifactErrors   *prometheus.CounterVec

	// Run
	runDuration prometheus.Gauge
	lastRunUnix prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Init replaces the global manager with one built from opts on a fresh
// registry. Call it before recording anything; metrics recorded earlier are
// discarded.
func Init(opts ...Option) {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append([]Option{WithPrometheusRegistry(customRegistry)}, opts...)...)
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "vgsales",
		subsystem:        "regression",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.rowsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_loaded",
		Help:        "Number of records read from the input CSV",
		ConstLabels: labels,
	})

	m.loadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "load_duration_milliseconds",
		Help:        "Time spent reading and parsing the input CSV",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.loadFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "load_failures_total",
		Help:        "Number of failed attempts to load the input CSV",
		ConstLabels: labels,
	})

	m.rowsMasked = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "rows_masked",
			Help:        "Rows excluded from a series, by series and filter",
			ConstLabels: labels,
		},
		[]string{"series", "filter"},
	)

	m.validPairs = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "valid_pairs",
			Help:        "Jointly valid (critic score, sales) pairs entering a regression",
			ConstLabels: labels,
		},
		[]string{"region"},
	)

	m.seriesVariance = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "sales_stddev",
			Help:        "Standard deviation used to derive the outlier band for a sales column",
			ConstLabels: labels,
		},
		[]string{"region"},
	)

	m.regressions = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "regressions_total",
			Help:        "Regressions attempted, by region and outcome",
			ConstLabels: labels,
		},
		[]string{"region", "outcome"},
	)

	m.regressionDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "region_duration_milliseconds",
			Help:        "Time spent masking, fitting and reporting one region",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"region"},
	)

	m.slope = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "slope",
			Help:        "Fitted slope of sales (millions) per critic score point",
			ConstLabels: labels,
		},
		[]string{"region"},
	)

	m.tStatistic = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "t_statistic",
			Help:        "Slope divided by its standard error",
			ConstLabels: labels,
		},
		[]string{"region"},
	)

	m.artifactsWritten = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "artifacts_written_total",
			Help:        "Output artifacts written, by kind",
			ConstLabels: labels,
		},
		[]string{"kind"},
	)

	m.artifactErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "artifact_errors_total",
			Help:        "Output artifacts that failed to write, by kind",
			ConstLabels: labels,
		},
		[]string{"kind"},
	)

	m.runDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_duration_milliseconds",
		Help:        "Wall time of the last run",
		ConstLabels: labels,
	})

	m.lastRunUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_run_timestamp_seconds",
		Help:        "Unix time at which the last run finished",
		ConstLabels: labels,
	})
}

// RecordRowsLoaded sets the number of rows read from the input.
func RecordRowsLoaded(rows int) {
	globalManager.rowsLoaded.Set(float64(rows))
}

// RecordLoadLatency records CSV load latency in milliseconds.
func RecordLoadLatency(latencyMs float64) {
	globalManager.loadDuration.Observe(latencyMs)
}

// RecordLoadFailure increments the load failure counter.
func RecordLoadFailure() {
	globalManager.loadFailures.Inc()
}

// UpdateRowsMasked sets how many rows a filter excluded from a series.
func UpdateRowsMasked(series, filter string, rows int) {
	globalManager.rowsMasked.WithLabelValues(series, filter).Set(float64(rows))
}

// UpdateValidPairs sets the number of jointly valid pairs for a region.
func UpdateValidPairs(region string, pairs int) {
	globalManager.validPairs.WithLabelValues(region).Set(float64(pairs))
}

// UpdateSalesStdDev sets the standard deviation behind a region's outlier band.
func UpdateSalesStdDev(region string, stddev float64) {
	globalManager.seriesVariance.WithLabelValues(region).Set(stddev)
}

// RecordRegression counts a regression attempt with its outcome
// (e.g. "reject", "accept", "insufficient_data", "degenerate_fit").
func RecordRegression(region, outcome string) {
	globalManager.regressions.WithLabelValues(region, outcome).Inc()
}

// RecordRegionLatency records per-region processing latency in milliseconds.
func RecordRegionLatency(region string, latencyMs float64) {
	globalManager.regressionDuration.WithLabelValues(region).Observe(latencyMs)
}

// UpdateFit publishes the fitted slope and t statistic for a region.
func UpdateFit(region string, slope, tStat float64) {
	globalManager.slope.WithLabelValues(region).Set(slope)
	globalManager.tStatistic.WithLabelValues(region).Set(tStat)
}

// RecordArtifact counts a written artifact of the given kind.
func RecordArtifact(kind string) {
	globalManager.artifactsWritten.WithLabelValues(kind).Inc()
}

// RecordArtifactError counts an artifact of the given kind that failed to write.
func RecordArtifactError(kind string) {
	globalManager.artifactErrors.WithLabelValues(kind).Inc()
}

// RecordRun publishes the duration and finish time of a run.
func RecordRun(durationMs float64, finishedUnix int64) {
	globalManager.runDuration.Set(durationMs)
	globalManager.lastRunUnix.Set(float64(finishedUnix))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the current registry contents in the Prometheus text
// exposition format. The file is replaced atomically.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, GetRegistry()); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
