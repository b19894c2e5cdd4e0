package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gigmarket/internal/entity"
	"gigmarket/internal/repo"
	"gigmarket/pkg/clock"

	"github.com/google/uuid"
)

// Publisher sends one encoded event under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey, messageId string, body []byte) error
}

type Config struct {
	BatchSize    int
	PollInterval time.Duration
}

// Relay moves outbox rows to the broker. Rows are claimed inside a
// transaction that skips rows locked by other relays, published in creation
// order and stamped published_at in the same transaction. Delivery is at
// least once: a crash between publish and commit republishes the batch.
type Relay struct {
	tx    repo.Transactor
	pub   Publisher
	clock clock.Clock
	log   *slog.Logger
	cfg   Config
}

func NewRelay(tx repo.Transactor, pub Publisher, c clock.Clock, log *slog.Logger, cfg Config) *Relay {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}

	return &Relay{tx: tx, pub: pub, clock: c, log: log, cfg: cfg}
}

// message is the body published for every event.
type message struct {
	Id          uuid.UUID       `json:"id"`
	Type        string          `json:"type"`
	AggregateId uuid.UUID       `json:"aggregateId"`
	Payload     json.RawMessage `json:"payload"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

// Run relays batches until ctx is done. A full batch is followed by another
// one immediately; otherwise the relay waits for the poll interval.
func (r *Relay) Run(ctx context.Context) error {
	r.log.Info("outbox relay started",
		slog.Int("batch_size", r.cfg.BatchSize),
		slog.Duration("poll_interval", r.cfg.PollInterval),
	)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("outbox relay stopped")
			return nil
		case <-timer.C:
		}

		n, err := r.RelayOnce(ctx)
		if err != nil && ctx.Err() == nil {
			r.log.Error("outbox relay batch failed", slog.Int("published", n), slog.Any("error", err))
		}

		wait := r.cfg.PollInterval
		if err == nil && n == r.cfg.BatchSize {
			wait = 0
		}
		timer.Reset(wait)
	}
}

// RelayOnce publishes one batch and reports how many events went out. On a
// publish failure the events before it are still marked and the error is
// returned; the rest stay for the next batch.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	var published int
	var publishErr error

	err := r.tx.WithinTx(ctx, func(ctx context.Context, repos *repo.Repositories) error {
		events, err := repos.Outbox.ClaimUnpublished(ctx, r.cfg.BatchSize)
		if err != nil {
			return fmt.Errorf("claim events: %w", err)
		}

		ids := make([]uuid.UUID, 0, len(events))
		for i := range events {
			if err := r.publish(ctx, &events[i]); err != nil {
				publishErr = err
				break
			}
			ids = append(ids, events[i].Id)
		}

		if err := repos.Outbox.MarkPublished(ctx, ids, r.clock.Now()); err != nil {
			return fmt.Errorf("mark published: %w", err)
		}
		published = len(ids)

		return nil
	})
	if err != nil {
		return 0, err
	}

	if published > 0 {
		r.log.Debug("outbox events published", slog.Int("count", published))
	}

	return published, publishErr
}

func (r *Relay) publish(ctx context.Context, event *entity.OutboxEvent) error {
	body, err := json.Marshal(message{
		Id:          event.Id,
		Type:        event.Type,
		AggregateId: event.AggregateId,
		Payload:     event.Payload,
		OccurredAt:  event.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.Id, err)
	}

	if err := r.pub.Publish(ctx, event.Type, event.Id.String(), body); err != nil {
		return fmt.Errorf("publish event %s: %w", event.Id, err)
	}

	return nil
}
