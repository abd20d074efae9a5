package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "logrotator"

// Collector exposes reconcile run metrics on its own registry.
type Collector struct {
	registry *prometheus.Registry

	runsTotal     *prometheus.CounterVec
	filesModified *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	lastSuccess   prometheus.Gauge
}

func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Reconcile runs by action and outcome.",
		}, []string{"action", "status"}),
		filesModified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_modified_total",
			Help:      "Logrotate files rewritten by action.",
		}, []string{"action"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of reconcile runs.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"action"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
	}

	registry.MustRegister(c.runsTotal, c.filesModified, c.runDuration, c.lastSuccess)

	return c
}

func (c *Collector) ObserveRun(action string, status string, filesModified int, duration time.Duration) {
	c.runsTotal.WithLabelValues(action, status).Inc()
	c.filesModified.WithLabelValues(action).Add(float64(filesModified))
	c.runDuration.WithLabelValues(action).Observe(duration.Seconds())

	if status == "success" {
		c.lastSuccess.SetToCurrentTime()
	}
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
