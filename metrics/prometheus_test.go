package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder(reg)
	if err != nil {
		t.Fatalf("NewPrometheusRecorder: %v", err)
	}

	labels := map[string]string{"method": "GeneratePixOut"}
	rec.IncCounter("success", labels)
	rec.IncCounter("success", labels)
	rec.IncCounter("api_error", labels)
	rec.ObserveLatency("request", 150*time.Millisecond, labels)

	got := testutil.ToFloat64(rec.requests.With(prometheus.Labels{"event": "success", "method": "GeneratePixOut"}))
	if got != 2 {
		t.Errorf("success counter = %v, want 2", got)
	}
	got = testutil.ToFloat64(rec.requests.With(prometheus.Labels{"event": "api_error", "method": "GeneratePixOut"}))
	if got != 1 {
		t.Errorf("api_error counter = %v, want 1", got)
	}

	count := testutil.CollectAndCount(rec.latency, "fitbank_request_duration_seconds")
	if count != 1 {
		t.Errorf("latency series = %d, want 1", count)
	}
}

func TestPrometheusRecorderDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheusRecorder(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := NewPrometheusRecorder(reg); err == nil {
		t.Fatal("second register on the same registry must fail")
	}
}
