package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the order placement flow, catalog lookup through debit.
	OrderCreateLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "orders_create_latency_seconds",
		Help:    "Latency of order placement",
		Buckets: prometheus.DefBuckets,
	})

	// Total orders placed successfully
	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders placed",
	})

	// Orders moved to completed by the background processor
	OrdersAutoCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_auto_completed_total",
		Help: "Orders completed by the background sweep",
	})

	// Wallet top-up requests by outcome
	WalletRequestsProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_requests_processed_total",
		Help: "Wallet top-up requests approved or declined",
	}, []string{"outcome"})
)

func Init() {
	prometheus.MustRegister(
		OrderCreateLatency,
		OrdersCreated,
		OrdersAutoCompleted,
		WalletRequestsProcessed,
	)
}
