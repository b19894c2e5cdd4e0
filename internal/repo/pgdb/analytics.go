package pgdb

import (
	"context"
	"time"

	"gigmarket/internal/common"
	"gigmarket/internal/entity"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// AnalyticsRepo only fetches rows; bucketing and ratios are computed by the
// analytics package. Ranges are half-open: from <= t < to.
type AnalyticsRepo struct {
	Conn
}

func NewAnalyticsRepo(c Conn) *AnalyticsRepo {
	return &AnalyticsRepo{c}
}

func (r *AnalyticsRepo) GetCompletedJobFacts(ctx context.Context, employerId uuid.UUID, from, to time.Time) ([]entity.CompletedJobFact, error) {
	facts := make([]entity.CompletedJobFact, 0)
	err := r.selectAll(ctx, &facts, r.SqlBuilder.
		Select("job.id AS job_id", "job_category.display_name AS category", "job.start_date", "job.completion_date").
		From("job").
		LeftJoin("job_category ON job_category.id = job.category_id").
		Where(squirrel.Eq{"job.employer_id": employerId, "job.status": common.JobCompleted}).
		Where(squirrel.GtOrEq{"job.completion_date": from}).
		Where(squirrel.Lt{"job.completion_date": to}))
	if err != nil {
		return nil, err
	}

	return facts, nil
}

func (r *AnalyticsRepo) GetAcceptedBidFacts(ctx context.Context, employerId uuid.UUID, from, to time.Time) ([]entity.AcceptedBidFact, error) {
	facts := make([]entity.AcceptedBidFact, 0)
	err := r.selectAll(ctx, &facts, r.SqlBuilder.
		Select("bid.job_id", "bid.worker_id", "concat_ws(' ', users.first_name, users.last_name) AS worker_name", "bid.amount").
		From("bid").
		InnerJoin("job ON job.id = bid.job_id").
		InnerJoin("users ON users.id = bid.worker_id").
		Where(squirrel.Eq{"job.employer_id": employerId, "job.status": common.JobCompleted, "bid.status": common.BidAccepted}).
		Where(squirrel.GtOrEq{"job.completion_date": from}).
		Where(squirrel.Lt{"job.completion_date": to}))
	if err != nil {
		return nil, err
	}

	return facts, nil
}

func (r *AnalyticsRepo) GetGivenRatingFacts(ctx context.Context, employerId uuid.UUID, from, to time.Time) ([]entity.GivenRatingFact, error) {
	facts := make([]entity.GivenRatingFact, 0)
	err := r.selectAll(ctx, &facts, r.SqlBuilder.
		Select("reviewed_user_id", "overall_rating", "created_at").
		From("review").
		Where(squirrel.Eq{"reviewer_id": employerId}).
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.Lt{"created_at": to}))
	if err != nil {
		return nil, err
	}

	return facts, nil
}

func (r *AnalyticsRepo) GetPostedJobFacts(ctx context.Context, employerId uuid.UUID, from, to time.Time) ([]entity.PostedJobFact, error) {
	facts := make([]entity.PostedJobFact, 0)
	err := r.selectAll(ctx, &facts, r.SqlBuilder.
		Select("job.id AS job_id", "job.status", "job.posted_date", "count(bid.id) AS bid_count").
		From("job").
		LeftJoin("bid ON bid.job_id = job.id").
		Where(squirrel.Eq{"job.employer_id": employerId}).
		Where(squirrel.NotEq{"job.status": common.JobDraft}).
		Where(squirrel.GtOrEq{"job.posted_date": from}).
		Where(squirrel.Lt{"job.posted_date": to}).
		GroupBy("job.id"))
	if err != nil {
		return nil, err
	}

	return facts, nil
}
