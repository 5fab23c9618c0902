package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NewRegistry creates a registry with all pipeline collectors
// registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initIngestMetrics()
	r.initGraphMetrics()
	r.initLayoutMetrics()
	return r
}

// Prometheus exposes the underlying registry for scraping or test
// gathering.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

func (r *Registry) initIngestMetrics() {
	r.SourcesProcessedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cdrlink_sources_processed_total",
			Help: "Sources processed, by outcome and detected layout",
		},
		[]string{"status", "layout"},
	)

	r.SheetsParsedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "cdrlink_sheets_parsed_total",
			Help: "Worksheets parsed across all sources",
		},
	)

	r.ListingRowsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "cdrlink_listing_rows_total",
			Help: "Raw listing rows seen by the normalizer",
		},
	)

	r.MalformedRowsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "cdrlink_malformed_rows_total",
			Help: "Listing rows skipped for unusable endpoints or dates",
		},
	)

	r.RecordsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cdrlink_records_total",
			Help: "Canonical records produced, by interaction kind",
		},
		[]string{"kind"},
	)
}

func (r *Registry) initGraphMetrics() {
	r.BuildDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cdrlink_graph_build_duration_seconds",
			Help:    "Graph aggregation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)

	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cdrlink_graph_nodes",
			Help: "Nodes in the full aggregated graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cdrlink_graph_edges",
			Help: "Edges in the full aggregated graph",
		},
	)

	r.VisibleNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cdrlink_visible_nodes",
			Help: "Nodes in the currently filtered subgraph",
		},
	)

	r.VisibleEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cdrlink_visible_edges",
			Help: "Edges in the currently filtered subgraph",
		},
	)
}

func (r *Registry) initLayoutMetrics() {
	r.LayoutRunsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "cdrlink_layout_runs_total",
			Help: "Force simulations started",
		},
	)

	r.LayoutStepsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "cdrlink_layout_steps_total",
			Help: "Simulation ticks executed",
		},
	)

	r.LayoutEnergy = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cdrlink_layout_energy",
			Help: "Kinetic energy at the last simulation tick",
		},
	)
}

// RecordSource records one processed source with its outcome.
func (r *Registry) RecordSource(status, layout string) {
	if layout == "" {
		layout = "unknown"
	}
	r.SourcesProcessedTotal.WithLabelValues(status, layout).Inc()
}

// RecordNormalization records the outcome of listing-row extraction.
func (r *Registry) RecordNormalization(calls, sms, malformed int) {
	r.ListingRowsTotal.Add(float64(calls + sms + malformed))
	r.MalformedRowsTotal.Add(float64(malformed))
	r.RecordsTotal.WithLabelValues("call").Add(float64(calls))
	r.RecordsTotal.WithLabelValues("sms").Add(float64(sms))
}

// RecordBuild records an aggregation pass over the canonical records.
func (r *Registry) RecordBuild(nodes, edges int, duration time.Duration) {
	r.BuildDuration.Observe(duration.Seconds())
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
}

// RecordFilter records the size of the visible subgraph.
func (r *Registry) RecordFilter(nodes, edges int) {
	r.VisibleNodes.Set(float64(nodes))
	r.VisibleEdges.Set(float64(edges))
}
