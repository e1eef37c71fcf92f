package events

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gwak2837/shabangnet-sub003/internal/clock"
)

const (
	defaultRelayInterval  = 5 * time.Second
	defaultRelayBatchSize = 100
)

// Relay drains unpublished outbox rows on a fixed interval. Events are
// delivered to the structured log stream; claiming and marking happen in
// one transaction so concurrent relays never double-deliver.
type Relay struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	interval time.Duration
	batch    int
}

type claimedEvent struct {
	ID        int64
	EventType string
	CreatedAt time.Time
}

func NewRelay(db *gorm.DB, log *zap.Logger, clk clock.Clock) *Relay {
	return &Relay{
		db:       db,
		log:      log.Named("events.relay"),
		clock:    clk,
		interval: defaultRelayInterval,
		batch:    defaultRelayBatchSize,
	}
}

// Run drains the outbox until the context is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Flush(ctx); err != nil {
				r.log.Warn("outbox flush failed", zap.Error(err))
			}
		}
	}
}

// Flush publishes one batch and reports how many events it delivered.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	var claimed []claimedEvent
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Raw(
			`SELECT id, event_type, created_at
			 FROM outbox_events
			 WHERE published = ?
			 ORDER BY id`+lockClause(tx)+`
			 LIMIT ?`,
			false,
			r.batch,
		).Scan(&claimed).Error; err != nil {
			return err
		}
		if len(claimed) == 0 {
			return nil
		}

		ids := make([]int64, 0, len(claimed))
		for _, event := range claimed {
			ids = append(ids, event.ID)
		}
		return tx.Exec(
			`UPDATE outbox_events SET published = ? WHERE id IN ?`,
			true,
			ids,
		).Error
	})
	if err != nil {
		return 0, err
	}

	now := r.clock.Now()
	for _, event := range claimed {
		r.log.Info("event published",
			zap.Int64("event_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.Duration("queued_for", now.Sub(event.CreatedAt)),
		)
	}
	return len(claimed), nil
}

// lockClause guards the claim against concurrent relay instances. Only
// postgres supports row locks; the single-writer sqlite case needs none.
func lockClause(db *gorm.DB) string {
	if db.Name() == "postgres" {
		return " FOR UPDATE SKIP LOCKED"
	}
	return ""
}
