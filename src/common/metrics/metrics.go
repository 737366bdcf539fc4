package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PagesProcessedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stk_pages_processed_total",
		Help: "Augmentation passes by outcome",
	}, []string{"outcome"})
	AnomaliesDetectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stk_mileage_anomalies_total",
		Help: "Mileage decreases found in rendered series",
	})
	StationLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stk_station_lookups_total",
		Help: "Inspection location lookups by result",
	}, []string{"result"})
	RenderDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stk_chart_render_duration_ms",
		Help:    "Chart render duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500},
	}, []string{"format"})
	ChartCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stk_chart_cache_total",
		Help: "Chart cache reads by result",
	}, []string{"result"})
	SnapshotsForwardedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stk_snapshots_forwarded_total",
		Help: "Page snapshots forwarded from the bridge topic to the queue",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(PagesProcessedTotal)
	prometheus.MustRegister(AnomaliesDetectedTotal)
	prometheus.MustRegister(StationLookupsTotal)
	prometheus.MustRegister(RenderDurationMs)
	prometheus.MustRegister(ChartCacheTotal)
	prometheus.MustRegister(SnapshotsForwardedTotal)
}

func Handler() http.Handler { return promhttp.Handler() }
