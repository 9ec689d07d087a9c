// Package metrics exposes the Prometheus instruments for provider callbacks
// and wallet calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CallbacksTotal counts provider callbacks by operation and outcome
	// (outcome is "ok" or the envelope error code).
	CallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aix_provider_callbacks_total",
		Help: "provider callbacks by operation and result",
	}, []string{"op", "result"})

	// WalletRequestsTotal counts outbound wallet calls by endpoint and outcome.
	WalletRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aix_wallet_requests_total",
		Help: "outbound wallet calls by endpoint and result",
	}, []string{"call", "result"})

	// LaunchesTotal counts game launch requests by outcome.
	LaunchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aix_launches_total",
		Help: "game launch requests by result",
	}, []string{"result"})
)

// Register adds all instruments to the given registry.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(CallbacksTotal, WalletRequestsTotal, LaunchesTotal)
}
