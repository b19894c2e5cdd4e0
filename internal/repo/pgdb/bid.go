package pgdb

import (
	"context"
	"time"

	"gigmarket/internal/common"
	"gigmarket/internal/entity"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var bidColumns = []string{
	"bid.id", "bid.job_id", "bid.worker_id", "bid.amount", "bid.message", "bid.estimated_completion_time",
	"bid.status", "bid.is_team_bid", "bid.created_at", "bid.updated_at",
}

type BidRepo struct {
	Conn
}

func NewBidRepo(c Conn) *BidRepo {
	return &BidRepo{c}
}

func (r *BidRepo) CreateBid(ctx context.Context, jobId uuid.UUID, workerId uuid.UUID, input *entity.CreateBidInput, at time.Time) (uuid.UUID, error) {
	insert := r.SqlBuilder.
		Insert("bid").
		Columns("job_id", "worker_id", "amount", "message", "estimated_completion_time", "status", "is_team_bid", "created_at", "updated_at").
		Values(jobId, workerId, input.Amount, input.Message, input.EstimatedCompletionTime, common.BidPending, input.IsTeamBid, at, at)

	var bidId uuid.UUID
	if err := r.insertReturningId(ctx, &bidId, insert); err != nil {
		return uuid.Nil, err
	}

	return bidId, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id uuid.UUID) (*entity.Bid, error) {
	var bid entity.Bid
	err := r.get(ctx, &bid, r.SqlBuilder.
		Select(bidColumns...).
		From("bid").
		Where(squirrel.Eq{"bid.id": id}))
	if err != nil {
		return nil, err
	}

	return &bid, nil
}

func (r *BidRepo) GetWorkerBidOnJob(ctx context.Context, jobId uuid.UUID, workerId uuid.UUID) (*entity.Bid, error) {
	var bid entity.Bid
	err := r.get(ctx, &bid, r.SqlBuilder.
		Select(bidColumns...).
		From("bid").
		Where(squirrel.Eq{"bid.job_id": jobId, "bid.worker_id": workerId}))
	if err != nil {
		return nil, err
	}

	return &bid, nil
}

func (r *BidRepo) EditBidById(ctx context.Context, id uuid.UUID, input *entity.UpdateBidInput, at time.Time) error {
	update := r.SqlBuilder.
		Update("bid").
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id})

	if input.Amount != nil {
		update = update.Set("amount", *input.Amount)
	}
	if input.Message != nil {
		update = update.Set("message", *input.Message)
	}
	if input.EstimatedCompletionTime != nil {
		update = update.Set("estimated_completion_time", *input.EstimatedCompletionTime)
	}

	return r.execOne(ctx, update)
}

func (r *BidRepo) UpdateBidStatusById(ctx context.Context, id uuid.UUID, newStatus string, at time.Time) error {
	return r.execOne(ctx, r.SqlBuilder.
		Update("bid").
		Set("status", newStatus).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}))
}

func (r *BidRepo) CountJobBidsByStatus(ctx context.Context, jobId uuid.UUID, status string) (int, error) {
	var cnt int
	err := r.get(ctx, &cnt, r.SqlBuilder.
		Select("count(*)").
		From("bid").
		Where(squirrel.Eq{"job_id": jobId, "status": status}))
	if err != nil {
		return 0, err
	}

	return cnt, nil
}

func (r *BidRepo) GetJobBids(ctx context.Context, jobId uuid.UUID) ([]entity.Bid, error) {
	bids := make([]entity.Bid, 0)
	err := r.selectAll(ctx, &bids, r.SqlBuilder.
		Select(bidColumns...).
		From("bid").
		Where(squirrel.Eq{"bid.job_id": jobId}).
		OrderBy("bid.amount ASC", "bid.created_at ASC"))
	if err != nil {
		return nil, err
	}

	return bids, nil
}

func (r *BidRepo) GetWorkerBids(ctx context.Context, workerId uuid.UUID, status string, pg *entity.PaginationInput) ([]entity.WorkerBid, error) {
	q := r.SqlBuilder.
		Select(bidColumns...).
		Columns("job.title AS job_title", "job.status AS job_status", "job.start_date AS job_start_date", "job.employer_id").
		From("bid").
		InnerJoin("job ON job.id = bid.job_id").
		Where(squirrel.Eq{"bid.worker_id": workerId}).
		OrderBy("bid.created_at DESC")

	if status != "" {
		q = q.Where(squirrel.Eq{"bid.status": status})
	}
	q = paginate(q, pg)

	bids := make([]entity.WorkerBid, 0)
	if err := r.selectAll(ctx, &bids, q); err != nil {
		return nil, err
	}

	return bids, nil
}

func (r *BidRepo) GetAcceptedWorkerIds(ctx context.Context, jobId uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	err := r.selectAll(ctx, &ids, r.SqlBuilder.
		Select("worker_id").
		From("bid").
		Where(squirrel.Eq{"job_id": jobId, "status": common.BidAccepted}).
		OrderBy("created_at ASC"))
	if err != nil {
		return nil, err
	}

	return ids, nil
}
