// internal/metrics/prom.go
// Package metrics centralises Prometheus metric registration for the
// connector binary.  It exposes typed collectors and helper update functions
// so that code can remain import-cycle‑free.  The package registers with the
// global prometheus.DefaultRegisterer, which the HTTP listener exposes via
// the /metrics handler from the Prometheus client library.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
    once sync.Once

    // Gauge metrics ---------------------------------------------------------
    ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
        Namespace: "connector",
        Subsystem: "session",
        Name:      "active",
        Help:      "Number of WebSocket sessions currently registered in the directory.",
    })

    RegistryPoolSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
        Namespace: "connector",
        Subsystem: "registry",
        Name:      "pool_size",
        Help:      "Healthy instances currently held per upstream service.",
    }, []string{"service"})

    // Counter metrics -------------------------------------------------------
    DispatchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
        Namespace: "connector",
        Subsystem: "dispatch",
        Name:      "total",
        Help:      "Inbound push deliveries by outcome (enqueued, not_found, queue_closed).",
    }, []string{"outcome"})

    UpstreamErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
        Namespace: "connector",
        Subsystem: "upstream",
        Name:      "errors_total",
        Help:      "Upstream request failures by service and kind (unaccessible, rpc).",
    }, []string{"service", "kind"})

    // Histogram metrics -----------------------------------------------------
    UpstreamLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
        Namespace: "connector",
        Subsystem: "upstream",
        Name:      "latency_seconds",
        Help:      "Latency of backend gRPC calls issued on behalf of sessions.",
        Buckets:   prometheus.DefBuckets,
    }, []string{"service", "method"})
)

// Register exports all metrics; safe to call multiple times.
func Register() {
    once.Do(func() {
        prometheus.MustRegister(
            ActiveSessions,
            RegistryPoolSize,
            DispatchTotal,
            UpstreamErrorsTotal,
            UpstreamLatency,
        )
    })
}

// ObserveUpstream records one backend RPC: its latency always, and an error
// counter when it failed.
func ObserveUpstream(service, method string, start time.Time, err error) {
    UpstreamLatency.WithLabelValues(service, method).Observe(time.Since(start).Seconds())
    if err != nil {
        UpstreamErrorsTotal.WithLabelValues(service, "rpc").Inc()
    }
}
