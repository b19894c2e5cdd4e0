package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gigmarket/internal/entity"
	"gigmarket/internal/repo"
	"gigmarket/internal/repo/repo_errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type bidEvent struct {
	BidId      uuid.UUID       `json:"bidId"`
	JobId      uuid.UUID       `json:"jobId"`
	WorkerId   uuid.UUID       `json:"workerId"`
	EmployerId uuid.UUID       `json:"employerId"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
}

type jobEvent struct {
	JobId      uuid.UUID `json:"jobId"`
	EmployerId uuid.UUID `json:"employerId"`
	Status     string    `json:"status"`
}

type reviewEvent struct {
	ReviewId       uuid.UUID       `json:"reviewId"`
	JobId          uuid.UUID       `json:"jobId"`
	ReviewerId     uuid.UUID       `json:"reviewerId"`
	ReviewedUserId uuid.UUID       `json:"reviewedUserId"`
	OverallRating  decimal.Decimal `json:"overallRating"`
}

// recordEvent appends to the outbox inside the caller's transaction, so the
// event exists exactly when the state change it describes does.
func recordEvent(ctx context.Context, repos *repo.Repositories, at time.Time, eventType string, aggregateId uuid.UUID, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	err = repos.Outbox.AddEvent(ctx, &entity.OutboxEvent{
		Type:        eventType,
		AggregateId: aggregateId,
		Payload:     body,
		CreatedAt:   at,
	})
	if err != nil {
		return fmt.Errorf("record %s event: %w", eventType, err)
	}

	return nil
}

func newBidEvent(b *entity.Bid, employerId uuid.UUID) bidEvent {
	return bidEvent{
		BidId:      b.Id,
		JobId:      b.JobId,
		WorkerId:   b.WorkerId,
		EmployerId: employerId,
		Amount:     b.Amount,
		Status:     b.Status,
	}
}

// notFoundAs replaces repo_errors.ErrNotFound with the service error callers expect.
func notFoundAs(err error, target *Error) error {
	if errors.Is(err, repo_errors.ErrNotFound) {
		return target
	}

	return err
}

func authenticated(p *entity.Principal) error {
	if p == nil || p.Id == uuid.Nil {
		return ErrUnauthenticated
	}

	return nil
}
