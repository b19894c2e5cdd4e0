package pgdb

import (
	"context"

	"gigmarket/internal/common"
	"gigmarket/internal/entity"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var reviewColumns = []string{
	"review.id", "review.job_id", "review.reviewer_id", "review.reviewed_user_id",
	"review.quality_rating", "review.communication_rating", "review.punctuality_rating", "review.professionalism_rating",
	"review.overall_rating", "review.comment", "review.created_at", "review.updated_at",
}

type ReviewRepo struct {
	Conn
}

func NewReviewRepo(c Conn) *ReviewRepo {
	return &ReviewRepo{c}
}

func (r *ReviewRepo) CreateReview(ctx context.Context, review *entity.Review) (uuid.UUID, error) {
	insert := r.SqlBuilder.
		Insert("review").
		Columns("job_id", "reviewer_id", "reviewed_user_id",
			"quality_rating", "communication_rating", "punctuality_rating", "professionalism_rating",
			"overall_rating", "comment", "created_at", "updated_at").
		Values(review.JobId, review.ReviewerId, review.ReviewedUserId,
			review.QualityRating, review.CommunicationRating, review.PunctualityRating, review.ProfessionalismRating,
			review.OverallRating, review.Comment, review.CreatedAt, review.UpdatedAt)

	var id uuid.UUID
	if err := r.insertReturningId(ctx, &id, insert); err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

func (r *ReviewRepo) GetReviewById(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var review entity.Review
	err := r.get(ctx, &review, r.SqlBuilder.
		Select(reviewColumns...).
		From("review").
		Where(squirrel.Eq{"review.id": id}))
	if err != nil {
		return nil, err
	}

	return &review, nil
}

func (r *ReviewRepo) DoesReviewExist(ctx context.Context, jobId uuid.UUID, reviewerId uuid.UUID, reviewedUserId uuid.UUID) (bool, error) {
	var exists bool
	err := r.get(ctx, &exists, r.SqlBuilder.
		Select("count(*) > 0").
		From("review").
		Where(squirrel.Eq{"job_id": jobId, "reviewer_id": reviewerId, "reviewed_user_id": reviewedUserId}))
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *ReviewRepo) GetReceivedOverallRatings(ctx context.Context, userId uuid.UUID) ([]decimal.Decimal, error) {
	ratings := make([]decimal.Decimal, 0)
	err := r.selectAll(ctx, &ratings, r.SqlBuilder.
		Select("overall_rating").
		From("review").
		Where(squirrel.Eq{"reviewed_user_id": userId}))
	if err != nil {
		return nil, err
	}

	return ratings, nil
}

func (r *ReviewRepo) GetReceivedReviews(ctx context.Context, userId uuid.UUID, pg *entity.PaginationInput) ([]entity.Review, error) {
	return r.listReviews(ctx, squirrel.Eq{"review.reviewed_user_id": userId}, pg)
}

func (r *ReviewRepo) GetGivenReviews(ctx context.Context, userId uuid.UUID, pg *entity.PaginationInput) ([]entity.Review, error) {
	return r.listReviews(ctx, squirrel.Eq{"review.reviewer_id": userId}, pg)
}

func (r *ReviewRepo) listReviews(ctx context.Context, where squirrel.Eq, pg *entity.PaginationInput) ([]entity.Review, error) {
	q := r.SqlBuilder.
		Select(reviewColumns...).
		From("review").
		Where(where).
		OrderBy("review.created_at DESC")
	q = paginate(q, pg)

	reviews := make([]entity.Review, 0)
	if err := r.selectAll(ctx, &reviews, q); err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *ReviewRepo) GetReviewedPairs(ctx context.Context, reviewerId uuid.UUID) ([]entity.ReviewedPair, error) {
	pairs := make([]entity.ReviewedPair, 0)
	err := r.selectAll(ctx, &pairs, r.SqlBuilder.
		Select("job_id", "reviewed_user_id").
		From("review").
		Where(squirrel.Eq{"reviewer_id": reviewerId}))
	if err != nil {
		return nil, err
	}

	return pairs, nil
}

// GetParticipations lists the completed jobs the user took part in, once per
// counterpart: every accepted worker for the employer, the employer for a worker.
func (r *ReviewRepo) GetParticipations(ctx context.Context, userId uuid.UUID) ([]entity.Participation, error) {
	base := r.SqlBuilder.
		Select("job.id AS job_id", "job.title AS job_title", "job.completion_date").
		From("job").
		InnerJoin("bid ON bid.job_id = job.id").
		Where(squirrel.Eq{"job.status": common.JobCompleted, "bid.status": common.BidAccepted}).
		OrderBy("job.completion_date DESC", "job.id")

	asEmployer := make([]entity.Participation, 0)
	err := r.selectAll(ctx, &asEmployer, base.
		Column("bid.worker_id AS counterpart_id").
		Where(squirrel.Eq{"job.employer_id": userId}))
	if err != nil {
		return nil, err
	}

	asWorker := make([]entity.Participation, 0)
	err = r.selectAll(ctx, &asWorker, base.
		Column("job.employer_id AS counterpart_id").
		Where(squirrel.Eq{"bid.worker_id": userId}))
	if err != nil {
		return nil, err
	}

	return append(asEmployer, asWorker...), nil
}
