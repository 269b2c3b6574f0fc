// Package metrics defines and registers all custom Prometheus metrics for
// the vending machine API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vending"

// PurchasesTotal counts purchase attempts by outcome.
// Label:
//   - outcome: "completed", "insufficient_funds", "out_of_stock",
//     "invalid_quantity", "not_found", "error"
var PurchasesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of purchase attempts, labelled by outcome.",
	},
	[]string{"outcome"},
)

// PurchaseAmountCents measures the total charged per completed purchase.
var PurchaseAmountCents = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "purchase_amount_cents",
		Help:      "Amount charged per completed purchase, in cents.",
		Buckets:   []float64{5, 10, 20, 50, 100, 200, 500, 1000, 2000},
	},
)

// DepositsTotal counts accepted coin deposits by denomination.
// Label:
//   - coin: "5", "10", "20", "50" or "100"
var DepositsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deposits_total",
		Help:      "Total number of accepted coin deposits, by denomination.",
	},
	[]string{"coin"},
)

// DepositErrorsTotal counts rejected deposits.
// Label:
//   - reason: short description of the rejection (e.g. "invalid_coin")
var DepositErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deposit_errors_total",
		Help:      "Total number of rejected deposit attempts.",
	},
	[]string{"reason"},
)

// ProductsCreatedTotal counts new catalog listings.
var ProductsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products created.",
	},
)
