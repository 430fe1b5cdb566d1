package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder with Prometheus metrics.
type PrometheusRecorder struct {
	reg          *prom.Registry
	pageDuration *prom.HistogramVec
	pageOutcomes *prom.CounterVec
	retries      *prom.CounterVec
}

// NewPrometheusRecorder registers the page metrics on reg (a fresh registry
// when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		pageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "serialform",
			Name:      "page_duration_seconds",
			Help:      "Time to assemble and print one serialized-form page",
			Buckets:   prom.DefBuckets,
		}, []string{"format"}),
		pageOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "serialform",
			Name:      "pages_total",
			Help:      "Page generations by outcome",
		}, []string{"format", "outcome"}),
		retries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "serialform",
			Name:      "output_retries_total",
			Help:      "Page regenerations after a document output failure",
		}, []string{"format"}),
	}
	reg.MustRegister(pr.pageDuration, pr.pageOutcomes, pr.retries)
	return pr
}

func (p *PrometheusRecorder) ObservePageDuration(format string, d time.Duration) {
	p.pageDuration.WithLabelValues(format).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPageOutcome(format string, outcome Outcome) {
	p.pageOutcomes.WithLabelValues(format, string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncOutputRetry(format string) {
	p.retries.WithLabelValues(format).Inc()
}

// Handler serves the recorder's registry.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
