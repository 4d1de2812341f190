package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for serve mode.
type Metrics struct {
	ChecksStarted prometheus.Counter
	CheckFailures *prometheus.CounterVec
	CheckDuration prometheus.Histogram

	BalanceForCheck          prometheus.Gauge
	TransactionsMatched      prometheus.Gauge
	TransactionsClassified   prometheus.Gauge
	TransactionsUnclassified prometheus.Gauge

	AlertsFired         prometheus.Counter
	AlertsDelivered     prometheus.Counter
	AlertDeliveryErrors prometheus.Counter
}

// New creates and registers all metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ChecksStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "fuelwatch_checks_started_total",
			Help: "Total number of balance checks started",
		}),
		CheckFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fuelwatch_check_failures_total",
				Help: "Total number of aborted balance checks by stage",
			},
			[]string{"stage"},
		),
		CheckDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fuelwatch_check_duration_seconds",
			Help:    "Duration of balance checks",
			Buckets: prometheus.DefBuckets,
		}),

		BalanceForCheck: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fuelwatch_balance_for_check",
			Help: "Balance compared against the threshold in the last completed check",
		}),
		TransactionsMatched: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fuelwatch_transactions_matched",
			Help: "Wallet-matched transactions in the last completed check",
		}),
		TransactionsClassified: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fuelwatch_transactions_classified",
			Help: "Transactions with a resolvable amount in the last completed check",
		}),
		TransactionsUnclassified: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fuelwatch_transactions_unclassified",
			Help: "Matched transactions without a resolvable amount in the last completed check",
		}),

		AlertsFired: factory.NewCounter(prometheus.CounterOpts{
			Name: "fuelwatch_alerts_fired_total",
			Help: "Total number of threshold alerts fired",
		}),
		AlertsDelivered: factory.NewCounter(prometheus.CounterOpts{
			Name: "fuelwatch_alerts_delivered_total",
			Help: "Total number of alerts delivered to the notifier",
		}),
		AlertDeliveryErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "fuelwatch_alert_delivery_errors_total",
			Help: "Total number of alert delivery failures",
		}),
	}
}
