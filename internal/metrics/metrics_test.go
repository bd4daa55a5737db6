package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/metrics"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.DerivedKeypair("ethereum")
		m.Mutation("create_account", true)
		m.Quarantined(3)
		m.RPCRequest("solana", false)
		m.SubmittedTransaction("ethereum", true)
		m.Accounts(2)
	})
}

func TestCounters(t *testing.T) {
	m := metrics.New()

	m.DerivedKeypair("ethereum")
	m.DerivedKeypair("ethereum")
	m.DerivedKeypair("solana")
	m.Mutation("create_wallet", true)
	m.Mutation("create_wallet", false)
	m.Quarantined(2)
	m.Quarantined(0)
	m.Accounts(4)

	families, err := m.Registry.Gather()
	require.NoError(t, err)

	byName := map[string]int{}
	for _, f := range families {
		byName[f.GetName()] = len(f.GetMetric())
	}

	assert.Equal(t, 2, byName["hdwallet_derived_keypairs_total"])
	assert.Equal(t, 2, byName["hdwallet_registry_mutations_total"])
	assert.Equal(t, 1, byName["hdwallet_quarantined_entries_total"])
	assert.Equal(t, 1, byName["hdwallet_registry_accounts"])

	count, err := testutil.GatherAndCount(m.Registry, "hdwallet_quarantined_entries_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
