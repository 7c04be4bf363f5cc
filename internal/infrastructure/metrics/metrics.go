package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the ledger's Prometheus metrics. It satisfies the use case
// layer's MetricsRecorder.
type Metrics struct {
	AccountsCreated      prometheus.Counter
	TransactionsCreated  prometheus.Counter
	IdempotentReplays    prometheus.Counter
	TransactionsRejected *prometheus.CounterVec
}

// New creates and registers all ledger metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "coinledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		TransactionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "coinledger_transactions_created_total",
			Help: "Total number of transactions committed",
		}),
		IdempotentReplays: promauto.NewCounter(prometheus.CounterOpts{
			Name: "coinledger_idempotent_replays_total",
			Help: "Total number of transaction resubmissions answered from the store",
		}),
		TransactionsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinledger_transactions_rejected_total",
				Help: "Total number of rejected transactions by error kind",
			},
			[]string{"kind"},
		),
	}
}

// AccountCreated records a created account.
func (m *Metrics) AccountCreated() { m.AccountsCreated.Inc() }

// TransactionCreated records a committed transaction.
func (m *Metrics) TransactionCreated() { m.TransactionsCreated.Inc() }

// IdempotentReplay records a safe replay.
func (m *Metrics) IdempotentReplay() { m.IdempotentReplays.Inc() }

// TransactionRejected records a rejected transaction by error kind.
func (m *Metrics) TransactionRejected(kind string) {
	m.TransactionsRejected.WithLabelValues(kind).Inc()
}
