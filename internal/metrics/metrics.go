// Package metrics exposes the node's ambient Prometheus counters,
// wired the way the teacher's long-running services always carry a
// /metrics endpoint even when the functional spec is silent on it.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the counters the node updates.
type Metrics struct {
	registry     *prometheus.Registry
	BlocksTotal  prometheus.Counter
	RPCRequests  *prometheus.CounterVec
}

// New registers and returns a fresh Metrics bundle.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		BlocksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tendermock_blocks_total",
			Help: "Total number of blocks produced by the growth scheduler.",
		}),
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tendermock_rpc_requests_total",
			Help: "Total number of RPC requests handled, by method.",
		}, []string{"method"}),
	}
	reg.MustRegister(m.BlocksTotal, m.RPCRequests)
	return m
}

// Handler returns the /metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
