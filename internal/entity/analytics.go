package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Raw rows the analytics engine aggregates. All of them are scoped to one
// employer; the repo filters by time, the engine splits into windows.

type CompletedJobFact struct {
	JobId          uuid.UUID `db:"job_id"`
	Category       *string   `db:"category"`
	StartDate      time.Time `db:"start_date"`
	CompletionDate time.Time `db:"completion_date"`
}

type AcceptedBidFact struct {
	JobId      uuid.UUID       `db:"job_id"`
	WorkerId   uuid.UUID       `db:"worker_id"`
	WorkerName string          `db:"worker_name"`
	Amount     decimal.Decimal `db:"amount"`
}

type GivenRatingFact struct {
	ReviewedUserId uuid.UUID       `db:"reviewed_user_id"`
	OverallRating  decimal.Decimal `db:"overall_rating"`
	CreatedAt      time.Time       `db:"created_at"`
}

type PostedJobFact struct {
	JobId      uuid.UUID `db:"job_id"`
	Status     string    `db:"status"`
	PostedDate time.Time `db:"posted_date"`
	BidCount   int       `db:"bid_count"`
}

type AnalyticsFacts struct {
	Completed []CompletedJobFact
	Bids      []AcceptedBidFact
	Ratings   []GivenRatingFact
	Posted    []PostedJobFact
}
