package observability

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GatewayMetrics records every remote API call made by the HTTP gateway.
type GatewayMetrics interface {
	RecordRequest(ctx context.Context, operation string, status int, duration time.Duration)
}

// StoreMetrics records store actions and their outcome ("success", "failure", "skipped", "stale").
type StoreMetrics interface {
	RecordAction(ctx context.Context, store, action, outcome string)
	RecordDuration(ctx context.Context, store, action string, duration time.Duration)
}

// Metrics bundles the collectors registered on one Prometheus registry.
type Metrics struct {
	Registry *prometheus.Registry
	Gateway  GatewayMetrics
	Store    StoreMetrics
}

// NewMetrics registers the portal collectors on a fresh registry.
func NewMetrics(namespace string) (*Metrics, error) {
	reg := prometheus.NewRegistry()

	gw := &promGatewayMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Remote API calls by operation and HTTP status (0 for transport failures).",
		}, []string{"operation", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Remote API call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	st := &promStoreMetrics{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "actions_total",
			Help:      "Store actions by store, action and outcome.",
		}, []string{"store", "action", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "action_duration_seconds",
			Help:      "Store action latency including remote calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"store", "action"}),
	}

	for _, c := range []prometheus.Collector{gw.requests, gw.latency, st.actions, st.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return &Metrics{Registry: reg, Gateway: gw, Store: st}, nil
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// Serve runs a /metrics endpoint until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type promGatewayMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func (m *promGatewayMetrics) RecordRequest(_ context.Context, operation string, status int, duration time.Duration) {
	m.requests.WithLabelValues(operation, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(operation).Observe(duration.Seconds())
}

type promStoreMetrics struct {
	actions *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

func (m *promStoreMetrics) RecordAction(_ context.Context, store, action, outcome string) {
	m.actions.WithLabelValues(store, action, outcome).Inc()
}

func (m *promStoreMetrics) RecordDuration(_ context.Context, store, action string, duration time.Duration) {
	m.latency.WithLabelValues(store, action).Observe(duration.Seconds())
}

// NoOpMetrics satisfies both metric interfaces and records nothing.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordRequest(context.Context, string, int, time.Duration)     {}
func (NoOpMetrics) RecordAction(context.Context, string, string, string)          {}
func (NoOpMetrics) RecordDuration(context.Context, string, string, time.Duration) {}

var (
	_ GatewayMetrics = NoOpMetrics{}
	_ StoreMetrics   = NoOpMetrics{}
)
