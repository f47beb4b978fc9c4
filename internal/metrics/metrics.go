package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ViewRendersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_view_renders_total",
		Help: "Total number of rendered views",
	}, []string{"view"})
	ViewRenderFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_view_render_failures_total",
		Help: "Total render passes aborted by a query failure",
	}, []string{"view"})
	ViewRenderDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pulse_view_render_duration_ms",
		Help:    "View render duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"view"})
	SelectionResolvedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pulse_selection_resolved_total",
		Help: "Total map clicks resolved to a region",
	})
	SelectionEmptyTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pulse_selection_empty_total",
		Help: "Total map clicks that resolved to no region",
	})
	BoundaryRegions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pulse_boundary_regions",
		Help: "Number of regions in the loaded boundary dataset",
	})
)

func init() {
	prometheus.MustRegister(ViewRendersTotal)
	prometheus.MustRegister(ViewRenderFailuresTotal)
	prometheus.MustRegister(ViewRenderDurationMs)
	prometheus.MustRegister(SelectionResolvedTotal)
	prometheus.MustRegister(SelectionEmptyTotal)
	prometheus.MustRegister(BoundaryRegions)
}

// Handler returns the Prometheus scrape endpoint, mounted by the server
// entrypoint.
func Handler() http.Handler { return promhttp.Handler() }
