package entity

import "github.com/shopspring/decimal"

type EmployerDashboard struct {
	TotalJobsPosted int             `json:"totalJobsPosted" db:"total_jobs_posted"`
	ActiveJobs      int             `json:"activeJobs" db:"active_jobs"`
	InProgressJobs  int             `json:"inProgressJobs" db:"in_progress_jobs"`
	CompletedJobs   int             `json:"completedJobs" db:"completed_jobs"`
	TotalSpent      decimal.Decimal `json:"totalSpent" db:"total_spent"`
	AverageJobCost  decimal.Decimal `json:"averageJobCost" db:"-"`
}

type WorkerDashboard struct {
	TotalBids     int             `json:"totalBids" db:"total_bids"`
	PendingBids   int             `json:"pendingBids" db:"pending_bids"`
	AcceptedBids  int             `json:"acceptedBids" db:"accepted_bids"`
	CompletedJobs int             `json:"completedJobs" db:"completed_jobs"`
	TotalEarned   decimal.Decimal `json:"totalEarned" db:"total_earned"`
	AverageRating decimal.Decimal `json:"averageRating" db:"-"`
	TotalReviews  int             `json:"totalReviews" db:"-"`
}

// Exactly one of Employer, Worker is set, selected by AccountType.
type Dashboard struct {
	AccountType string             `json:"accountType"`
	Employer    *EmployerDashboard `json:"employer,omitempty"`
	Worker      *WorkerDashboard   `json:"worker,omitempty"`
}
