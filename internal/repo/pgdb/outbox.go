package pgdb

import (
	"context"
	"time"

	"gigmarket/internal/entity"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type OutboxRepo struct {
	Conn
}

func NewOutboxRepo(c Conn) *OutboxRepo {
	return &OutboxRepo{c}
}

func (r *OutboxRepo) AddEvent(ctx context.Context, event *entity.OutboxEvent) error {
	insert := r.SqlBuilder.
		Insert("outbox_event").
		Columns("event_type", "aggregate_id", "payload", "created_at").
		Values(event.Type, event.AggregateId, string(event.Payload), event.CreatedAt)

	return r.insertReturningId(ctx, &event.Id, insert)
}

func (r *OutboxRepo) ClaimUnpublished(ctx context.Context, limit int) ([]entity.OutboxEvent, error) {
	events := make([]entity.OutboxEvent, 0)
	err := r.selectAll(ctx, &events, r.SqlBuilder.
		Select("id", "event_type", "aggregate_id", "payload", "created_at", "published_at").
		From("outbox_event").
		Where(squirrel.Eq{"published_at": nil}).
		OrderBy("created_at", "id").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED"))
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *OutboxRepo) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := r.exec(ctx, r.SqlBuilder.
		Update("outbox_event").
		Set("published_at", at).
		Where(squirrel.Eq{"id": ids}))

	return err
}
