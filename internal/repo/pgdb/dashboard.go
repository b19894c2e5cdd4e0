package pgdb

import (
	"context"

	"gigmarket/internal/common"
	"gigmarket/internal/entity"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DashboardRepo struct {
	Conn
}

func NewDashboardRepo(c Conn) *DashboardRepo {
	return &DashboardRepo{c}
}

func (r *DashboardRepo) GetEmployerDashboard(ctx context.Context, employerId uuid.UUID) (*entity.EmployerDashboard, error) {
	var stats entity.EmployerDashboard
	err := r.get(ctx, &stats, r.SqlBuilder.
		Select("count(*) AS total_jobs_posted").
		Column("count(*) FILTER (WHERE status = ?) AS active_jobs", common.JobOpen).
		Column("count(*) FILTER (WHERE status = ?) AS in_progress_jobs", common.JobInProgress).
		Column("count(*) FILTER (WHERE status = ?) AS completed_jobs", common.JobCompleted).
		Column("0 AS total_spent").
		From("job").
		Where(squirrel.Eq{"employer_id": employerId}))
	if err != nil {
		return nil, err
	}

	err = r.get(ctx, &stats.TotalSpent, r.SqlBuilder.
		Select("coalesce(sum(bid.amount), 0)").
		From("bid").
		InnerJoin("job ON job.id = bid.job_id").
		Where(squirrel.Eq{"job.employer_id": employerId, "job.status": common.JobCompleted, "bid.status": common.BidAccepted}))
	if err != nil {
		return nil, err
	}

	if stats.CompletedJobs > 0 {
		stats.AverageJobCost = stats.TotalSpent.Div(decimal.NewFromInt(int64(stats.CompletedJobs))).Round(2)
	}

	return &stats, nil
}

func (r *DashboardRepo) GetWorkerDashboard(ctx context.Context, workerId uuid.UUID) (*entity.WorkerDashboard, error) {
	var stats entity.WorkerDashboard
	err := r.get(ctx, &stats, r.SqlBuilder.
		Select("count(*) AS total_bids").
		Column("count(*) FILTER (WHERE bid.status = ?) AS pending_bids", common.BidPending).
		Column("count(*) FILTER (WHERE bid.status = ?) AS accepted_bids", common.BidAccepted).
		Column("count(*) FILTER (WHERE bid.status = ? AND job.status = ?) AS completed_jobs", common.BidAccepted, common.JobCompleted).
		Column("coalesce(sum(bid.amount) FILTER (WHERE bid.status = ? AND job.status = ?), 0) AS total_earned", common.BidAccepted, common.JobCompleted).
		From("bid").
		InnerJoin("job ON job.id = bid.job_id").
		Where(squirrel.Eq{"bid.worker_id": workerId}))
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
