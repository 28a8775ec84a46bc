package jobs

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"charityhub.backend/internal/domain/entities"
	domainerrors "charityhub.backend/internal/domain/errors"
	"charityhub.backend/pkg/metrics"
)

type expiredPurchaseSource interface {
	GetExpiredEscrowed(ctx context.Context, limit int) ([]*entities.CoinPurchase, error)
}

type purchaseExpirer interface {
	Expire(ctx context.Context, purchaseID uuid.UUID) error
}

// PurchaseExpiryJob sweeps stale escrowed purchases and force-expires them,
// returning the held coins to the agent. Each record goes through the same
// guarded transition as user-initiated paths, so a sweep racing a confirmation
// loses cleanly and a second pass over the same record is a no-op.
type PurchaseExpiryJob struct {
	purchaseRepo expiredPurchaseSource
	escrow       purchaseExpirer
	interval     time.Duration
	batchSize    int
	stop         chan struct{}
}

func NewPurchaseExpiryJob(purchaseRepo expiredPurchaseSource, escrow purchaseExpirer, interval time.Duration) *PurchaseExpiryJob {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &PurchaseExpiryJob{
		purchaseRepo: purchaseRepo,
		escrow:       escrow,
		interval:     interval,
		batchSize:    100,
		stop:         make(chan struct{}),
	}
}

func (j *PurchaseExpiryJob) Start(ctx context.Context) {
	log.Println("🕐 Starting purchase expiry watchdog...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Purchase expiry watchdog stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Purchase expiry watchdog stopped")
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

func (j *PurchaseExpiryJob) Stop() {
	close(j.stop)
}

// Sweep expires one batch of stale escrowed purchases. Exported so tests and
// operational tooling can run a single pass.
func (j *PurchaseExpiryJob) Sweep(ctx context.Context) {
	metrics.ExpirySweeps.Inc()

	stale, err := j.purchaseRepo.GetExpiredEscrowed(ctx, j.batchSize)
	if err != nil {
		log.Printf("❌ Error fetching expired purchases: %v", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	log.Printf("🔄 Expiring %d stale coin purchases...", len(stale))

	expired := 0
	for _, p := range stale {
		if err := j.escrow.Expire(ctx, p.ID); err != nil {
			// Losing the race to a user transition is expected, not a failure.
			if errors.Is(err, domainerrors.ErrInvalidStateTransition) {
				continue
			}
			log.Printf("❌ Error expiring purchase %s: %v", p.ID, err)
			continue
		}
		expired++
	}

	log.Printf("✅ Expired %d coin purchases", expired)
}
