package service

import (
	"context"
	"errors"
	"log/slog"

	"gigmarket/internal/common"
	"gigmarket/internal/entity"
	"gigmarket/internal/rating"
	"gigmarket/internal/repo"
	"gigmarket/internal/repo/repo_errors"
	"gigmarket/pkg/clock"

	"github.com/google/uuid"
)

type ReviewService struct {
	reviewRepo repo.Review
	tx         repo.Transactor
	clock      clock.Clock
	log        *slog.Logger
}

func NewReviewService(deps *Dependencies) *ReviewService {
	return &ReviewService{
		reviewRepo: deps.Repos.Review,
		tx:         deps.Tx,
		clock:      deps.Clock,
		log:        deps.Logger.With(slog.String("service", "review")),
	}
}

// SubmitReview stores a review and recomputes the reviewed user's rating from
// all reviews they have received, in one transaction. A worker reviews the
// employer; the employer reviews one hired worker per review.
func (s *ReviewService) SubmitReview(ctx context.Context, p *entity.Principal, jobId uuid.UUID, input *entity.ReviewInput) (*entity.Review, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}
	for _, score := range []int{input.QualityRating, input.CommunicationRating, input.PunctualityRating, input.ProfessionalismRating} {
		if !rating.ValidScore(score) {
			return nil, ErrInvalidScore
		}
	}

	var review *entity.Review
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos *repo.Repositories) error {
		job, err := repos.Job.GetJobByIdForUpdate(ctx, jobId)
		if err != nil {
			return notFoundAs(err, ErrJobNotFound)
		}
		if job.Status != common.JobCompleted {
			return ErrJobNotCompleted
		}

		workers, err := repos.Bid.GetAcceptedWorkerIds(ctx, jobId)
		if err != nil {
			return err
		}

		reviewedId, err := reviewTarget(p, job, workers, input.ReviewedUserId)
		if err != nil {
			return err
		}

		exists, err := repos.Review.DoesReviewExist(ctx, jobId, p.Id, reviewedId)
		if err != nil {
			return err
		}
		if exists {
			return ErrReviewAlreadyExists
		}

		// serializes concurrent recomputes for the same user
		if _, err := repos.User.GetUserByIdForUpdate(ctx, reviewedId); err != nil {
			return notFoundAs(err, ErrUserNotFound)
		}

		now := s.clock.Now()
		review = &entity.Review{
			JobId:                 jobId,
			ReviewerId:            p.Id,
			ReviewedUserId:        reviewedId,
			QualityRating:         input.QualityRating,
			CommunicationRating:   input.CommunicationRating,
			PunctualityRating:     input.PunctualityRating,
			ProfessionalismRating: input.ProfessionalismRating,
			OverallRating:         rating.Overall(input.QualityRating, input.CommunicationRating, input.PunctualityRating, input.ProfessionalismRating),
			Comment:               input.Comment,
			CreatedAt:             now,
			UpdatedAt:             now,
		}

		review.Id, err = repos.Review.CreateReview(ctx, review)
		if err != nil {
			if errors.Is(err, repo_errors.ErrAlreadyExists) {
				return ErrReviewAlreadyExists
			}

			return err
		}

		if err := recomputeRating(ctx, repos, reviewedId); err != nil {
			return err
		}

		return recordEvent(ctx, repos, now, common.EventReviewSubmitted, review.Id, reviewEvent{
			ReviewId:       review.Id,
			JobId:          jobId,
			ReviewerId:     p.Id,
			ReviewedUserId: reviewedId,
			OverallRating:  review.OverallRating,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("review submitted",
		slog.String("review_id", review.Id.String()),
		slog.String("job_id", jobId.String()),
		slog.String("reviewed_user_id", review.ReviewedUserId.String()))

	return review, nil
}

func reviewTarget(p *entity.Principal, job *entity.Job, workers []uuid.UUID, requested *uuid.UUID) (uuid.UUID, error) {
	hired := func(id uuid.UUID) bool {
		for _, w := range workers {
			if w == id {
				return true
			}
		}
		return false
	}

	if p.Id == job.EmployerId {
		if requested != nil {
			if !hired(*requested) {
				return uuid.Nil, ErrInvalidReviewTarget
			}
			return *requested, nil
		}

		switch len(workers) {
		case 0:
			return uuid.Nil, ErrInvalidReviewTarget
		case 1:
			return workers[0], nil
		default:
			return uuid.Nil, ErrReviewTargetNeeded
		}
	}

	if !hired(p.Id) {
		return uuid.Nil, ErrNotJobParticipant
	}
	if requested != nil && *requested != job.EmployerId {
		return uuid.Nil, ErrInvalidReviewTarget
	}

	return job.EmployerId, nil
}

func recomputeRating(ctx context.Context, repos *repo.Repositories, userId uuid.UUID) error {
	received, err := repos.Review.GetReceivedOverallRatings(ctx, userId)
	if err != nil {
		return err
	}

	avg, total := rating.Recompute(received)
	if err := repos.User.UpdateUserRating(ctx, userId, avg, total); err != nil {
		return notFoundAs(err, ErrUserNotFound)
	}

	return nil
}

// PendingReviews lists (job, counterpart) pairs from completed jobs the user
// took part in that the user has not reviewed yet.
func (s *ReviewService) PendingReviews(ctx context.Context, p *entity.Principal) ([]entity.PendingReview, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}

	participations, err := s.reviewRepo.GetParticipations(ctx, p.Id)
	if err != nil {
		return nil, err
	}

	reviewed, err := s.reviewRepo.GetReviewedPairs(ctx, p.Id)
	if err != nil {
		return nil, err
	}

	done := make(map[entity.ReviewedPair]struct{}, len(reviewed))
	for _, pair := range reviewed {
		done[pair] = struct{}{}
	}

	pending := make([]entity.PendingReview, 0)
	for _, pt := range participations {
		if pt.Counterpart == p.Id {
			continue
		}
		if _, ok := done[entity.ReviewedPair{JobId: pt.JobId, ReviewedUserId: pt.Counterpart}]; ok {
			continue
		}
		pending = append(pending, entity.PendingReview{
			JobId:          pt.JobId,
			JobTitle:       pt.JobTitle,
			CompletionDate: pt.CompletionDate,
			ReviewedUserId: pt.Counterpart,
		})
	}

	return pending, nil
}

func (s *ReviewService) ReviewStats(ctx context.Context, p *entity.Principal, userId uuid.UUID) (*entity.ReviewStats, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}
	if userId == uuid.Nil {
		userId = p.Id
	}

	reviews, err := s.reviewRepo.GetReceivedReviews(ctx, userId, nil)
	if err != nil {
		return nil, err
	}

	return rating.Stats(reviews), nil
}

func (s *ReviewService) ReceivedReviews(ctx context.Context, p *entity.Principal, userId uuid.UUID, pg *entity.PaginationInput) ([]entity.Review, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}
	if userId == uuid.Nil {
		userId = p.Id
	}

	return s.reviewRepo.GetReceivedReviews(ctx, userId, pg)
}

func (s *ReviewService) GivenReviews(ctx context.Context, p *entity.Principal, pg *entity.PaginationInput) ([]entity.Review, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}

	return s.reviewRepo.GetGivenReviews(ctx, p.Id, pg)
}
