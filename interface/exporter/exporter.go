package exporter

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	METRIC_ERROR_COUNT        = "error_count"
	METRIC_PURCHASE_COUNT     = "purchase_count"
	METRIC_ISSUED_UNITS       = "issued_units"
	METRIC_WITHDRAWN_LAMPORTS = "withdrawn_lamports"
	METRIC_REGISTRATION_COUNT = "registration_count"
	METRIC_PROPOSAL_COUNT     = "proposal_count"
	METRIC_VOTE_COUNT         = "vote_count"

	METRIC_VAULT_BALANCE = "vault_balance_lamports"
	METRIC_ASSET_SUPPLY  = "asset_supply_units"
)

var (
	counters = map[string]prometheus.Counter{
		METRIC_ERROR_COUNT:        newCounter(METRIC_ERROR_COUNT, "Counts the number of failed operations"),
		METRIC_PURCHASE_COUNT:     newCounter(METRIC_PURCHASE_COUNT, "Counts the number of successful purchases"),
		METRIC_ISSUED_UNITS:       newCounter(METRIC_ISSUED_UNITS, "Counts the asset units issued by purchases"),
		METRIC_WITHDRAWN_LAMPORTS: newCounter(METRIC_WITHDRAWN_LAMPORTS, "Counts the lamports withdrawn from the vault"),
		METRIC_REGISTRATION_COUNT: newCounter(METRIC_REGISTRATION_COUNT, "Counts the number of registered voters"),
		METRIC_PROPOSAL_COUNT:     newCounter(METRIC_PROPOSAL_COUNT, "Counts the number of created proposals"),
		METRIC_VOTE_COUNT:         newCounter(METRIC_VOTE_COUNT, "Counts the number of accepted votes"),
	}

	gauges = map[string]prometheus.Gauge{
		METRIC_VAULT_BALANCE: newGauge(METRIC_VAULT_BALANCE, "Native value held by the treasury vault"),
		METRIC_ASSET_SUPPLY:  newGauge(METRIC_ASSET_SUPPLY, "Total issued supply of the treasury asset"),
	}

	once sync.Once
)

// Init registers the metrics once. Before that they still count, they are
// just not exported.
func Init(registerer prometheus.Registerer) {
	once.Do(func() {
		for _, counter := range counters {
			registerer.MustRegister(counter)
		}
		for _, gauge := range gauges {
			registerer.MustRegister(gauge)
		}
	})
}

func newCounter(name string, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voteapp",
		Subsystem: "treasury",
		Name:      name,
		Help:      help,
	})
}

func newGauge(name string, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "voteapp",
		Subsystem: "treasury",
		Name:      name,
		Help:      help,
	})
}

func GetCounter(name string) prometheus.Counter {
	return counters[name]
}

func GetGauge(name string) prometheus.Gauge {
	return gauges[name]
}

func IncErrorCount() {
	counters[METRIC_ERROR_COUNT].Inc()
}

func IncPurchaseCount(issued uint64) {
	counters[METRIC_PURCHASE_COUNT].Inc()
	counters[METRIC_ISSUED_UNITS].Add(float64(issued))
}

func AddWithdrawn(lamports uint64) {
	counters[METRIC_WITHDRAWN_LAMPORTS].Add(float64(lamports))
}

func IncRegistrationCount() {
	counters[METRIC_REGISTRATION_COUNT].Inc()
}

func IncProposalCount() {
	counters[METRIC_PROPOSAL_COUNT].Inc()
}

func IncVoteCount() {
	counters[METRIC_VOTE_COUNT].Inc()
}

func SetTreasuryState(vaultBalance uint64, supply uint64) {
	gauges[METRIC_VAULT_BALANCE].Set(float64(vaultBalance))
	gauges[METRIC_ASSET_SUPPLY].Set(float64(supply))
}
