package exporter

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersWithoutInit(t *testing.T) {
	before := testutil.ToFloat64(GetCounter(METRIC_VOTE_COUNT))
	IncVoteCount()
	assert.Equal(t, before+1, testutil.ToFloat64(GetCounter(METRIC_VOTE_COUNT)))
}

func TestPurchaseCountAddsIssuedUnits(t *testing.T) {
	purchases := testutil.ToFloat64(GetCounter(METRIC_PURCHASE_COUNT))
	issued := testutil.ToFloat64(GetCounter(METRIC_ISSUED_UNITS))

	IncPurchaseCount(1_000_000)

	assert.Equal(t, purchases+1, testutil.ToFloat64(GetCounter(METRIC_PURCHASE_COUNT)))
	assert.Equal(t, issued+1_000_000, testutil.ToFloat64(GetCounter(METRIC_ISSUED_UNITS)))
}

func TestInitRegistersOnce(t *testing.T) {
	registry := prometheus.NewRegistry()
	Init(registry)
	Init(registry)

	SetTreasuryState(42, 7)

	families, err := registry.Gather()
	require.NoError(t, err)
	assert.Len(t, families, len(counters)+len(gauges))
	assert.Equal(t, float64(42), testutil.ToFloat64(GetGauge(METRIC_VAULT_BALANCE)))
	assert.Equal(t, float64(7), testutil.ToFloat64(GetGauge(METRIC_ASSET_SUPPLY)))
}
