package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Escrow lifecycle counters. Transition counters are incremented only after
// the guarded status write succeeds, so they mirror committed transitions.
var (
	PurchasesEscrowed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "charityhub_purchases_escrowed_total",
		Help: "Coin purchases created with coins moved into escrow",
	})

	PurchasesPaid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "charityhub_purchases_paid_total",
		Help: "Coin purchases with payment attested by the requester",
	})

	PurchasesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "charityhub_purchases_completed_total",
		Help: "Coin purchases completed with coins released to the requester",
	})

	PurchasesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "charityhub_purchases_rejected_total",
		Help: "Coin purchases rejected by the agent with coins returned",
	})

	PurchasesExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "charityhub_purchases_expired_total",
		Help: "Coin purchases force-expired by the watchdog",
	})

	CommissionCredits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "charityhub_commission_credits_total",
		Help: "Commission ledger entries created",
	})

	ExpirySweeps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "charityhub_expiry_sweeps_total",
		Help: "Expiry watchdog sweep iterations",
	})

	VerificationsDecided = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "charityhub_verifications_decided_total",
		Help: "Verification cases decided, by outcome",
	}, []string{"status"})
)
