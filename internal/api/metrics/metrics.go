// Package metrics defines and registers all custom Prometheus metrics
// for the Nex Trade admin backend. It is the single source of truth for
// metric names, labels, and help strings. Metrics register with the
// default registry at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nextrade"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - method: "password" or "otp"
//   - result: "success", "not_found", "inactive", "wrong_password",
//     "wrong_otp", "no_otp", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// OTPIssuedTotal counts OTP issuance requests that reached dispatch.
var OTPIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of OTP codes dispatched.",
	},
)

// RegistrationsTotal counts registration outcomes.
// Label:
//   - result: "created", "duplicate", "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// MailsSentTotal counts outbound mail deliveries.
// Label:
//   - result: "ok" or "error"
var MailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mails_sent_total",
		Help:      "Total number of outbound emails attempted, by result.",
	},
	[]string{"result"},
)

// MailQueueDepth tracks messages waiting in each mail worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of emails pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Trading metrics ───────────────────────────────────────────────────────────

// OrdersPlacedTotal counts placed trade orders.
// Label:
//   - order_type: the order side/type reported by the frontend
var OrdersPlacedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of trade orders placed, by order type.",
	},
	[]string{"order_type"},
)

// FundMovementsTotal counts deposit/withdraw record creations.
// Label:
//   - kind: "deposit" or "withdraw"
var FundMovementsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fund_movements_total",
		Help:      "Total number of deposit and withdraw records created.",
	},
	[]string{"kind"},
)
