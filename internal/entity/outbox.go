package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OutboxEvent struct {
	Id          uuid.UUID       `json:"id" db:"id"`
	Type        string          `json:"type" db:"event_type"`
	AggregateId uuid.UUID       `json:"aggregateId" db:"aggregate_id"`
	Payload     json.RawMessage `json:"payload" db:"payload"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	PublishedAt *time.Time      `json:"publishedAt,omitempty" db:"published_at"`
}
