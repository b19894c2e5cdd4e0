package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Bid struct {
	Id                      uuid.UUID       `json:"id" db:"id"`
	JobId                   uuid.UUID       `json:"jobId" db:"job_id"`
	WorkerId                uuid.UUID       `json:"workerId" db:"worker_id"`
	Amount                  decimal.Decimal `json:"amount" db:"amount"`
	Message                 string          `json:"message" db:"message"`
	EstimatedCompletionTime *int            `json:"estimatedCompletionTime" db:"estimated_completion_time"`
	Status                  string          `json:"status" db:"status"`
	IsTeamBid               bool            `json:"isTeamBid" db:"is_team_bid"`
	CreatedAt               time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt               time.Time       `json:"updatedAt" db:"updated_at"`
}

// worker-side listing, the bid with a short view of its job
type WorkerBid struct {
	Bid
	JobTitle     string    `json:"jobTitle" db:"job_title"`
	JobStatus    string    `json:"jobStatus" db:"job_status"`
	JobStartDate time.Time `json:"jobStartDate" db:"job_start_date"`
	EmployerId   uuid.UUID `json:"employerId" db:"employer_id"`
}

// service + repo input model
type CreateBidInput struct {
	Amount                  decimal.Decimal
	Message                 string
	EstimatedCompletionTime *int
	IsTeamBid               bool
}

type UpdateBidInput struct {
	Amount                  *decimal.Decimal
	Message                 *string
	EstimatedCompletionTime *int
}

func (in *UpdateBidInput) Empty() bool {
	return in.Amount == nil && in.Message == nil && in.EstimatedCompletionTime == nil
}
