package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder exports request counters and latency histograms under
// the fitbank namespace.
type PrometheusRecorder struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the collectors on reg. Pass
// prometheus.DefaultRegisterer unless the application scopes its metrics.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitbank",
			Name:      "requests_total",
			Help:      "FitBank API requests by method and outcome",
		},
		[]string{"event", "method"},
	)

	latency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fitbank",
			Name:      "request_duration_seconds",
			Help:      "FitBank API round-trip latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"event", "method"},
	)

	if err := reg.Register(requests); err != nil {
		return nil, err
	}
	if err := reg.Register(latency); err != nil {
		return nil, err
	}

	return &PrometheusRecorder{requests: requests, latency: latency}, nil
}

func (p *PrometheusRecorder) IncCounter(name string, labels map[string]string) {
	p.requests.With(prometheus.Labels{
		"event":  name,
		"method": labels["method"],
	}).Inc()
}

func (p *PrometheusRecorder) ObserveLatency(name string, d time.Duration, labels map[string]string) {
	p.latency.With(prometheus.Labels{
		"event":  name,
		"method": labels["method"],
	}).Observe(d.Seconds())
}
