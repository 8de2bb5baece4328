package collector

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/zgpcy/instance-normalizer/internal/clock"
	"github.com/zgpcy/instance-normalizer/internal/fieldparse"
	"github.com/zgpcy/instance-normalizer/internal/version"
)

const namespace = "instance_normalizer"

// Metrics implements prometheus.Collector for one normalization run
type Metrics struct {
	registry *prometheus.Registry
	clock    clock.Clock

	rowsRead        *prometheus.CounterVec
	recordsKept     *prometheus.CounterVec
	recordsRejected *prometheus.CounterVec
	parseFailures   *prometheus.CounterVec
	recordsWritten  prometheus.Gauge
	runDuration     prometheus.Gauge
	lastSuccess     prometheus.Gauge
	buildInfo       *prometheus.GaugeVec
}

// New creates run metrics registered on a private registry
func New(clk clock.Clock) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		clock:    clk,
		rowsRead: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_read_total",
				Help:      "Input rows read per provider",
			},
			[]string{"provider"},
		),
		recordsKept: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_kept_total",
				Help:      "Normalized records that passed the cost filter per provider",
			},
			[]string{"provider"},
		),
		recordsRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_rejected_total",
				Help:      "Records dropped because their monthly cost could not be parsed",
			},
			[]string{"provider"},
		),
		parseFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "parse_failures_total",
				Help:      "Fields replaced by a sentinel because they could not be parsed",
			},
			[]string{"provider", "field"},
		),
		recordsWritten: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_written",
			Help:      "Records written to the output file by the last run",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the last run in seconds",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix timestamp of the last successful run",
		}),
		buildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "build_info",
				Help:      "Build version information",
			},
			[]string{"version", "git_commit", "build_date", "go_version"},
		),
	}

	versionInfo := version.Info()
	m.buildInfo.With(prometheus.Labels{
		"version":    versionInfo["version"],
		"git_commit": versionInfo["git_commit"],
		"build_date": versionInfo["build_date"],
		"go_version": versionInfo["go_version"],
	}).Set(1)

	m.registry.MustRegister(m)
	return m
}

// Describe implements prometheus.Collector
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.rowsRead.Describe(ch)
	m.recordsKept.Describe(ch)
	m.recordsRejected.Describe(ch)
	m.parseFailures.Describe(ch)
	m.recordsWritten.Describe(ch)
	m.runDuration.Describe(ch)
	m.lastSuccess.Describe(ch)
	m.buildInfo.Describe(ch)
}

// Collect implements prometheus.Collector
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.rowsRead.Collect(ch)
	m.recordsKept.Collect(ch)
	m.recordsRejected.Collect(ch)
	m.parseFailures.Collect(ch)
	m.recordsWritten.Collect(ch)
	m.runDuration.Collect(ch)
	m.lastSuccess.Collect(ch)
	m.buildInfo.Collect(ch)
}

// Registry returns the registry holding the run metrics
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ForProvider returns a recorder whose observations carry the provider label
func (m *Metrics) ForProvider(provider string) *ProviderMetrics {
	return &ProviderMetrics{metrics: m, provider: provider}
}

// Now returns the current time of the metrics clock
func (m *Metrics) Now() time.Time {
	return m.clock.Now()
}

// ObserveSuccess records a completed run that started at start
func (m *Metrics) ObserveSuccess(start time.Time, written int) {
	m.recordsWritten.Set(float64(written))
	m.runDuration.Set(clock.Since(m.clock, start).Seconds())
	m.lastSuccess.Set(float64(m.clock.Now().Unix()))
}

// ObserveFailure records the duration of a run that did not produce output
func (m *Metrics) ObserveFailure(start time.Time) {
	m.recordsWritten.Set(0)
	m.runDuration.Set(clock.Since(m.clock, start).Seconds())
}

// WriteTextfile writes the metrics in the text exposition format, for the
// node_exporter textfile collector
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

// ProviderMetrics records observations for one provider
type ProviderMetrics struct {
	metrics  *Metrics
	provider string
}

// Verify that ProviderMetrics implements fieldparse.FailureRecorder
var _ fieldparse.FailureRecorder = (*ProviderMetrics)(nil)

// RecordParseFailure implements fieldparse.FailureRecorder
func (p *ProviderMetrics) RecordParseFailure(field fieldparse.Field) {
	p.metrics.parseFailures.With(prometheus.Labels{"provider": p.provider, "field": string(field)}).Inc()
}

// RowRead counts one input row
func (p *ProviderMetrics) RowRead() {
	p.metrics.rowsRead.WithLabelValues(p.provider).Inc()
}

// RecordKept counts one record that passed the cost filter
func (p *ProviderMetrics) RecordKept() {
	p.metrics.recordsKept.WithLabelValues(p.provider).Inc()
}

// RecordRejected counts one record dropped by the cost filter
func (p *ProviderMetrics) RecordRejected() {
	p.metrics.recordsRejected.WithLabelValues(p.provider).Inc()
}
