package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "hdwallet"

// Metrics holds the wallet counters. A nil *Metrics discards every observation.
type Metrics struct {
	Registry *prometheus.Registry

	derivedWallets   *prometheus.CounterVec
	mutations        *prometheus.CounterVec
	quarantined      prometheus.Counter
	rpcRequests      *prometheus.CounterVec
	submittedTxs     *prometheus.CounterVec
	registryAccounts prometheus.Gauge
}

// New creates the counters and registers them on a fresh registry together
// with the Go and process collectors
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		derivedWallets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "derived_keypairs_total",
			Help:      "Number of keypairs derived, by chain.",
		}, []string{"chain"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registry_mutations_total",
			Help:      "Number of registry mutations, by operation and result.",
		}, []string{"operation", "result"}),
		quarantined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quarantined_entries_total",
			Help:      "Number of persisted account entries quarantined on load.",
		}),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Number of chain RPC requests, by chain and result.",
		}, []string{"chain", "result"}),
		submittedTxs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submitted_transactions_total",
			Help:      "Number of submitted transfers, by chain and result.",
		}, []string{"chain", "result"}),
		registryAccounts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_accounts",
			Help:      "Number of accounts held by the registry.",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.derivedWallets,
		m.mutations,
		m.quarantined,
		m.rpcRequests,
		m.submittedTxs,
		m.registryAccounts,
	)

	return m
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// DerivedKeypair counts one derived keypair of chain
func (m *Metrics) DerivedKeypair(chain string) {
	if m == nil {
		return
	}
	m.derivedWallets.WithLabelValues(chain).Inc()
}

// Mutation counts one registry mutation
func (m *Metrics) Mutation(operation string, ok bool) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(operation, result(ok)).Inc()
}

// Quarantined counts n quarantined entries
func (m *Metrics) Quarantined(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.quarantined.Add(float64(n))
}

// RPCRequest counts one chain RPC request
func (m *Metrics) RPCRequest(chain string, ok bool) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(chain, result(ok)).Inc()
}

// SubmittedTransaction counts one transfer submission
func (m *Metrics) SubmittedTransaction(chain string, ok bool) {
	if m == nil {
		return
	}
	m.submittedTxs.WithLabelValues(chain, result(ok)).Inc()
}

// Accounts sets the current number of accounts
func (m *Metrics) Accounts(n int) {
	if m == nil {
		return
	}
	m.registryAccounts.Set(float64(n))
}
