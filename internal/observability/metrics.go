package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// risk aggregation engine.
type Metrics struct {
	FetchesStarted prometheus.Counter
	FetchesFailed  prometheus.Counter

	BatchesCompleted prometheus.Counter
	BatchDuration    prometheus.Histogram
	BatchRunning     prometheus.Gauge

	CitiesAssessed prometheus.Gauge
	CitiesNoData   prometheus.Gauge
	RiskTiers      *prometheus.CounterVec // label: tier={SAFE,CAUTION,DANGER}
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FetchesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_risk",
			Name:      "fetches_started_total",
			Help:      "Total forecast fetches started.",
		}),
		FetchesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_risk",
			Name:      "fetches_failed_total",
			Help:      "Total forecast fetches that failed, timed out, or were cancelled.",
		}),
		BatchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_risk",
			Name:      "batches_completed_total",
			Help:      "Total completed assessment batches.",
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_risk",
			Name:      "batch_duration_seconds",
			Help:      "Duration of a complete fetch-reduce-classify batch.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		}),
		BatchRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_risk",
			Name:      "batch_running",
			Help:      "1 while a batch is in flight, 0 otherwise.",
		}),
		CitiesAssessed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_risk",
			Name:      "cities_assessed",
			Help:      "Cities with populated statistics in the last batch.",
		}),
		CitiesNoData: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_risk",
			Name:      "cities_no_data",
			Help:      "Cities whose fetch failed in the last batch.",
		}),
		RiskTiers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_risk",
			Name:      "risk_tiers_total",
			Help:      "Classified cities by risk tier, accumulated across batches.",
		}, []string{"tier"}),
	}

	prometheus.MustRegister(
		m.FetchesStarted,
		m.FetchesFailed,
		m.BatchesCompleted,
		m.BatchDuration,
		m.BatchRunning,
		m.CitiesAssessed,
		m.CitiesNoData,
		m.RiskTiers,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FetchesStarted:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_risk", Name: "fetches_started_total"}),
		FetchesFailed:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_risk", Name: "fetches_failed_total"}),
		BatchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_risk", Name: "batches_completed_total"}),
		BatchDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weather_risk", Name: "batch_duration_seconds"}),
		BatchRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_risk", Name: "batch_running"}),
		CitiesAssessed:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_risk", Name: "cities_assessed"}),
		CitiesNoData:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_risk", Name: "cities_no_data"}),
		RiskTiers:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_risk", Name: "risk_tiers_total"}, []string{"tier"}),
	}
}
