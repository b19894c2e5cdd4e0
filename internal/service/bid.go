package service

import (
	"context"
	"errors"
	"log/slog"

	"gigmarket/internal/common"
	"gigmarket/internal/entity"
	"gigmarket/internal/lifecycle"
	"gigmarket/internal/repo"
	"gigmarket/internal/repo/repo_errors"
	"gigmarket/pkg/clock"

	"github.com/google/uuid"
)

type BidService struct {
	jobRepo repo.Job
	bidRepo repo.Bid
	tx      repo.Transactor
	clock   clock.Clock
	log     *slog.Logger
}

func NewBidService(deps *Dependencies) *BidService {
	return &BidService{
		jobRepo: deps.Repos.Job,
		bidRepo: deps.Repos.Bid,
		tx:      deps.Tx,
		clock:   deps.Clock,
		log:     deps.Logger.With(slog.String("service", "bid")),
	}
}

func (s *BidService) CreateBid(ctx context.Context, p *entity.Principal, jobId uuid.UUID, input *entity.CreateBidInput) (*entity.Bid, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}
	if input.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	var bid *entity.Bid
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos *repo.Repositories) error {
		job, err := repos.Job.GetJobByIdForUpdate(ctx, jobId)
		if err != nil {
			return notFoundAs(err, ErrJobNotFound)
		}

		if job.Status != common.JobOpen {
			return ErrJobNotOpen
		}
		if job.EmployerId == p.Id {
			return ErrOwnJobBid
		}

		_, err = repos.Bid.GetWorkerBidOnJob(ctx, jobId, p.Id)
		if err == nil {
			return ErrBidAlreadyExists
		}
		if !errors.Is(err, repo_errors.ErrNotFound) {
			return err
		}

		bidId, err := repos.Bid.CreateBid(ctx, jobId, p.Id, input, s.clock.Now())
		if err != nil {
			if errors.Is(err, repo_errors.ErrAlreadyExists) {
				return ErrBidAlreadyExists
			}

			return err
		}

		bid, err = repos.Bid.GetBidById(ctx, bidId)
		if err != nil {
			return err
		}

		return recordEvent(ctx, repos, bid.CreatedAt, common.EventBidCreated, bid.Id, newBidEvent(bid, job.EmployerId))
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("bid created", slog.String("bid_id", bid.Id.String()), slog.String("job_id", jobId.String()))

	return bid, nil
}

func (s *BidService) UpdateBid(ctx context.Context, p *entity.Principal, bidId uuid.UUID, input *entity.UpdateBidInput) (*entity.Bid, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}
	if input.Empty() {
		return nil, ErrNoNewChanges
	}
	if input.Amount != nil && input.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	var bid *entity.Bid
	err := s.lockedBid(ctx, bidId, func(ctx context.Context, repos *repo.Repositories, job *entity.Job, b *entity.Bid) error {
		if b.WorkerId != p.Id {
			return ErrNotBidOwner
		}
		if b.Status != common.BidPending {
			return ErrBidNotPending
		}

		if err := repos.Bid.EditBidById(ctx, b.Id, input, s.clock.Now()); err != nil {
			return err
		}

		var err error
		bid, err = repos.Bid.GetBidById(ctx, b.Id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return bid, nil
}

func (s *BidService) WithdrawBid(ctx context.Context, p *entity.Principal, bidId uuid.UUID) (*entity.Bid, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}

	var bid *entity.Bid
	err := s.lockedBid(ctx, bidId, func(ctx context.Context, repos *repo.Repositories, job *entity.Job, b *entity.Bid) error {
		if b.WorkerId != p.Id {
			return ErrNotBidOwner
		}
		if !lifecycle.CanTransitionBid(b.Status, common.BidWithdrawn) {
			return ErrBidNotPending
		}

		var err error
		bid, err = s.moveBid(ctx, repos, job, b, common.BidWithdrawn, common.EventBidWithdrawn)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("bid withdrawn", slog.String("bid_id", bid.Id.String()))

	return bid, nil
}

// AcceptBid hires the bid's worker. Other pending bids stay pending so a job
// can take several workers up to NumberOfWorkers.
func (s *BidService) AcceptBid(ctx context.Context, p *entity.Principal, jobId uuid.UUID, bidId uuid.UUID) (*entity.Bid, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}

	var bid *entity.Bid
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos *repo.Repositories) error {
		job, b, err := s.jobAndBid(ctx, repos, p, jobId, bidId)
		if err != nil {
			return err
		}

		if b.Status == common.BidAccepted {
			return ErrBidAlreadyAccepted
		}
		if !lifecycle.CanTransitionBid(b.Status, common.BidAccepted) {
			return ErrBidNotPending
		}
		if !lifecycle.AcceptsBids(job.Status) {
			return ErrJobNotAcceptingBids
		}

		accepted, err := repos.Bid.CountJobBidsByStatus(ctx, job.Id, common.BidAccepted)
		if err != nil {
			return err
		}
		if accepted >= job.NumberOfWorkers {
			return ErrBidLimitReached
		}

		bid, err = s.moveBid(ctx, repos, job, b, common.BidAccepted, common.EventBidAccepted)
		if err != nil {
			return err
		}

		if next := lifecycle.JobStatusAfterAccept(job.Status); next != job.Status {
			if err := repos.Job.UpdateJobStatusById(ctx, job.Id, next); err != nil {
				return err
			}
		}
		if job.SelectedBidId == nil {
			return repos.Job.SetSelectedBid(ctx, job.Id, bid.Id)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("bid accepted", slog.String("bid_id", bid.Id.String()), slog.String("job_id", jobId.String()))

	return bid, nil
}

func (s *BidService) RejectBid(ctx context.Context, p *entity.Principal, jobId uuid.UUID, bidId uuid.UUID) (*entity.Bid, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}

	var bid *entity.Bid
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos *repo.Repositories) error {
		job, b, err := s.jobAndBid(ctx, repos, p, jobId, bidId)
		if err != nil {
			return err
		}

		if b.Status == common.BidAccepted {
			return ErrBidAlreadyAccepted
		}
		if !lifecycle.CanTransitionBid(b.Status, common.BidRejected) {
			return ErrBidNotPending
		}

		bid, err = s.moveBid(ctx, repos, job, b, common.BidRejected, common.EventBidRejected)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("bid rejected", slog.String("bid_id", bid.Id.String()), slog.String("job_id", jobId.String()))

	return bid, nil
}

// ListBidsForJob shows the employer every bid and anyone else only their own.
func (s *BidService) ListBidsForJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) ([]entity.Bid, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetJobById(ctx, jobId)
	if err != nil {
		return nil, notFoundAs(err, ErrJobNotFound)
	}

	if job.EmployerId == p.Id {
		return s.bidRepo.GetJobBids(ctx, jobId)
	}

	own, err := s.bidRepo.GetWorkerBidOnJob(ctx, jobId, p.Id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return []entity.Bid{}, nil
		}

		return nil, err
	}

	return []entity.Bid{*own}, nil
}

func (s *BidService) ListMyBids(ctx context.Context, p *entity.Principal, status string, pg *entity.PaginationInput) ([]entity.WorkerBid, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}

	return s.bidRepo.GetWorkerBids(ctx, p.Id, status, pg)
}

// jobAndBid locks the job, checks the caller owns it and loads a bid on it.
func (s *BidService) jobAndBid(ctx context.Context, repos *repo.Repositories, p *entity.Principal, jobId, bidId uuid.UUID) (*entity.Job, *entity.Bid, error) {
	job, err := repos.Job.GetJobByIdForUpdate(ctx, jobId)
	if err != nil {
		return nil, nil, notFoundAs(err, ErrJobNotFound)
	}
	if job.EmployerId != p.Id {
		return nil, nil, ErrNotJobOwner
	}

	bid, err := repos.Bid.GetBidById(ctx, bidId)
	if err != nil {
		return nil, nil, notFoundAs(err, ErrBidNotFound)
	}
	if bid.JobId != job.Id {
		return nil, nil, ErrBidNotFound
	}

	return job, bid, nil
}

// lockedBid runs fn in a transaction holding the lock on the bid's job.
// The bid is re-read after the lock is taken.
func (s *BidService) lockedBid(ctx context.Context, bidId uuid.UUID, fn func(ctx context.Context, repos *repo.Repositories, job *entity.Job, bid *entity.Bid) error) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context, repos *repo.Repositories) error {
		bid, err := repos.Bid.GetBidById(ctx, bidId)
		if err != nil {
			return notFoundAs(err, ErrBidNotFound)
		}

		job, err := repos.Job.GetJobByIdForUpdate(ctx, bid.JobId)
		if err != nil {
			return notFoundAs(err, ErrJobNotFound)
		}

		bid, err = repos.Bid.GetBidById(ctx, bidId)
		if err != nil {
			return notFoundAs(err, ErrBidNotFound)
		}

		return fn(ctx, repos, job, bid)
	})
}

func (s *BidService) moveBid(ctx context.Context, repos *repo.Repositories, job *entity.Job, b *entity.Bid, status, eventType string) (*entity.Bid, error) {
	now := s.clock.Now()
	if err := repos.Bid.UpdateBidStatusById(ctx, b.Id, status, now); err != nil {
		return nil, err
	}

	moved := *b
	moved.Status = status
	moved.UpdatedAt = now

	if err := recordEvent(ctx, repos, now, eventType, moved.Id, newBidEvent(&moved, job.EmployerId)); err != nil {
		return nil, err
	}

	return &moved, nil
}
