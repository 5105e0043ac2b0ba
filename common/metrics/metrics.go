package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "expo_booth",
		Name:      "orders_created_total",
		Help:      "Number of orders created.",
	})

	OrdersCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "expo_booth",
		Name:      "orders_completed_total",
		Help:      "Number of orders settled to completed.",
	})

	OrdersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "expo_booth",
		Name:      "orders_cancelled_total",
		Help:      "Number of stale pending orders cancelled.",
	})

	SettlementConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "expo_booth",
		Name:      "settlement_conflicts_total",
		Help:      "Number of settlements aborted because a booth was already reserved.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
