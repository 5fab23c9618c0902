package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all prometheus collectors for the analysis pipeline.
// Each area gets its own init function; everything registers against a
// private registry so tests can create isolated instances.
type Registry struct {
	registry *prometheus.Registry

	// Ingestion
	SourcesProcessedTotal *prometheus.CounterVec
	SheetsParsedTotal     prometheus.Counter
	ListingRowsTotal      prometheus.Counter
	MalformedRowsTotal    prometheus.Counter
	RecordsTotal          *prometheus.CounterVec

	// Graph build
	BuildDuration prometheus.Histogram
	GraphNodes    prometheus.Gauge
	GraphEdges    prometheus.Gauge
	VisibleNodes  prometheus.Gauge
	VisibleEdges  prometheus.Gauge

	// Layout
	LayoutRunsTotal  prometheus.Counter
	LayoutStepsTotal prometheus.Counter
	LayoutEnergy     prometheus.Gauge
}
