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

type JobService struct {
	jobRepo      repo.Job
	bidRepo      repo.Bid
	savedJobRepo repo.SavedJob
	tx           repo.Transactor
	clock        clock.Clock
	log          *slog.Logger
}

func NewJobService(deps *Dependencies) *JobService {
	return &JobService{
		jobRepo:      deps.Repos.Job,
		bidRepo:      deps.Repos.Bid,
		savedJobRepo: deps.Repos.SavedJob,
		tx:           deps.Tx,
		clock:        deps.Clock,
		log:          deps.Logger.With(slog.String("service", "job")),
	}
}

func (s *JobService) CreateJob(ctx context.Context, p *entity.Principal, input *entity.CreateJobInput) (*entity.Job, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}
	if p.AccountType != common.Employer {
		return nil, ErrNotEmployer
	}

	if input.Status == "" {
		input.Status = common.JobOpen
	}
	if input.Status != common.JobDraft && input.Status != common.JobOpen {
		return nil, ErrInvalidJobStatus
	}
	if input.NumberOfWorkers == 0 {
		input.NumberOfWorkers = 1
	}
	if input.NumberOfWorkers < 1 {
		return nil, ErrInvalidWorkers
	}
	if input.BudgetMin.IsNegative() || input.BudgetMax.IsNegative() {
		return nil, ErrInvalidBudget
	}
	if input.InstantHirePrice != nil && input.InstantHirePrice.IsNegative() {
		return nil, ErrInvalidBudget
	}

	var job *entity.Job
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos *repo.Repositories) error {
		jobId, err := repos.Job.CreateJob(ctx, p.Id, input, s.clock.Now())
		if err != nil {
			if errors.Is(err, repo_errors.ErrInvalidReference) {
				return ErrInvalidReference
			}

			return err
		}

		job, err = loadJob(ctx, repos.Job, jobId)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("job created", slog.String("job_id", job.Id.String()), slog.String("status", job.Status))

	return job, nil
}

func (s *JobService) UpdateJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID, input *entity.UpdateJobInput) (*entity.Job, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}
	if input.Empty() {
		return nil, ErrNoNewChanges
	}
	if input.NumberOfWorkers != nil && *input.NumberOfWorkers < 1 {
		return nil, ErrInvalidWorkers
	}
	if (input.BudgetMin != nil && input.BudgetMin.IsNegative()) || (input.BudgetMax != nil && input.BudgetMax.IsNegative()) {
		return nil, ErrInvalidBudget
	}

	var job *entity.Job
	err := s.ownedJob(ctx, p, jobId, func(ctx context.Context, repos *repo.Repositories, current *entity.Job) error {
		if lifecycle.IsJobTerminal(current.Status) {
			return ErrJobClosed
		}

		if input.NumberOfWorkers != nil {
			accepted, err := repos.Bid.CountJobBidsByStatus(ctx, jobId, common.BidAccepted)
			if err != nil {
				return err
			}
			if *input.NumberOfWorkers < accepted {
				return ErrBidLimitReached
			}
		}

		if err := repos.Job.EditJobById(ctx, jobId, input); err != nil {
			if errors.Is(err, repo_errors.ErrInvalidReference) {
				return ErrInvalidReference
			}

			return err
		}

		var err error
		job, err = loadJob(ctx, repos.Job, jobId)
		return err
	})
	if err != nil {
		return nil, err
	}

	return job, nil
}

func (s *JobService) DeleteJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) error {
	if err := authenticated(p); err != nil {
		return err
	}

	err := s.ownedJob(ctx, p, jobId, func(ctx context.Context, repos *repo.Repositories, current *entity.Job) error {
		if lifecycle.IsJobTerminal(current.Status) {
			return ErrJobClosed
		}
		if current.Status == common.JobInProgress {
			return ErrJobHasBids
		}

		return repos.Job.DeleteJobById(ctx, jobId)
	})
	if err != nil {
		return err
	}

	s.log.Info("job deleted", slog.String("job_id", jobId.String()))

	return nil
}

func (s *JobService) PublishJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) (*entity.Job, error) {
	return s.transition(ctx, p, jobId, common.JobOpen, "", ErrJobNotDraft)
}

// CancelJob is allowed from any non-terminal status. Accepted bids keep their status.
func (s *JobService) CancelJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) (*entity.Job, error) {
	return s.transition(ctx, p, jobId, common.JobCancelled, common.EventJobCancelled, ErrJobClosed)
}

func (s *JobService) CompleteJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) (*entity.Job, error) {
	return s.transition(ctx, p, jobId, common.JobCompleted, common.EventJobCompleted, ErrJobNotInProgress)
}

func (s *JobService) transition(ctx context.Context, p *entity.Principal, jobId uuid.UUID, to, eventType string, invalid *Error) (*entity.Job, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}

	var job *entity.Job
	err := s.ownedJob(ctx, p, jobId, func(ctx context.Context, repos *repo.Repositories, current *entity.Job) error {
		if !lifecycle.CanTransitionJob(current.Status, to) {
			return invalid
		}

		now := s.clock.Now()
		var err error
		if to == common.JobCompleted {
			err = repos.Job.MarkJobCompleted(ctx, jobId, now)
		} else {
			err = repos.Job.UpdateJobStatusById(ctx, jobId, to)
		}
		if err != nil {
			return err
		}

		if eventType != "" {
			ev := jobEvent{JobId: jobId, EmployerId: current.EmployerId, Status: to}
			if err := recordEvent(ctx, repos, now, eventType, jobId, ev); err != nil {
				return err
			}
		}

		job, err = loadJob(ctx, repos.Job, jobId)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("job status changed", slog.String("job_id", jobId.String()), slog.String("status", to))

	return job, nil
}

// ViewJob counts every fetch as a view, repeated fetches by the same user included.
func (s *JobService) ViewJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) (*entity.JobDetail, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}

	views, err := s.jobRepo.IncrementViewCount(ctx, jobId)
	if err != nil {
		return nil, notFoundAs(err, ErrJobNotFound)
	}

	item, err := s.jobRepo.GetJobListItemById(ctx, jobId)
	if err != nil {
		return nil, notFoundAs(err, ErrJobNotFound)
	}
	item.ViewCount = views

	if item.SkillIds, err = s.jobRepo.GetJobSkillIds(ctx, jobId); err != nil {
		return nil, err
	}

	detail := &entity.JobDetail{JobListItem: *item}

	own, err := s.bidRepo.GetWorkerBidOnJob(ctx, jobId, p.Id)
	switch {
	case err == nil:
		detail.UserHasBid = true
		detail.UserBid = own
	case !errors.Is(err, repo_errors.ErrNotFound):
		return nil, err
	}

	_, err = s.savedJobRepo.GetSavedJob(ctx, p.Id, jobId)
	switch {
	case err == nil:
		detail.IsSaved = true
	case !errors.Is(err, repo_errors.ErrNotFound):
		return nil, err
	}

	return detail, nil
}

func (s *JobService) ListOpenJobs(ctx context.Context, filter *entity.JobFilter) ([]entity.JobListItem, error) {
	return s.jobRepo.GetOpenJobs(ctx, filter)
}

// MyJobs is the posted jobs of an employer and the bid-on jobs of a job seeker.
func (s *JobService) MyJobs(ctx context.Context, p *entity.Principal, status string) ([]entity.JobListItem, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}

	if p.AccountType == common.Employer {
		return s.jobRepo.GetEmployerJobs(ctx, p.Id, status)
	}

	return s.jobRepo.GetWorkerJobs(ctx, p.Id, status)
}

// SaveJob bookmarks a job. Saving twice returns the existing bookmark and created=false.
func (s *JobService) SaveJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) (*entity.SavedJob, bool, error) {
	if err := authenticated(p); err != nil {
		return nil, false, err
	}

	if _, err := s.jobRepo.GetJobById(ctx, jobId); err != nil {
		return nil, false, notFoundAs(err, ErrJobNotFound)
	}

	saved, err := s.savedJobRepo.CreateSavedJob(ctx, p.Id, jobId, s.clock.Now())
	if err == nil {
		return saved, true, nil
	}
	if !errors.Is(err, repo_errors.ErrAlreadyExists) {
		return nil, false, err
	}

	saved, err = s.savedJobRepo.GetSavedJob(ctx, p.Id, jobId)
	if err != nil {
		return nil, false, err
	}

	return saved, false, nil
}

func (s *JobService) UnsaveJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) error {
	if err := authenticated(p); err != nil {
		return err
	}

	if err := s.savedJobRepo.DeleteSavedJob(ctx, p.Id, jobId); err != nil {
		return notFoundAs(err, ErrSavedJobNotFound)
	}

	return nil
}

func (s *JobService) ListSavedJobs(ctx context.Context, p *entity.Principal) ([]entity.SavedJobWithJob, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}

	saved, err := s.savedJobRepo.GetUserSavedJobs(ctx, p.Id)
	if err != nil {
		return nil, err
	}

	out := make([]entity.SavedJobWithJob, 0, len(saved))
	for _, sj := range saved {
		item, err := s.jobRepo.GetJobListItemById(ctx, sj.JobId)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.SavedJobWithJob{SavedJob: sj, Job: item})
	}

	return out, nil
}

// ownedJob runs fn in a transaction holding the job row lock, after checking
// the caller posted the job.
func (s *JobService) ownedJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID, fn func(ctx context.Context, repos *repo.Repositories, job *entity.Job) error) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context, repos *repo.Repositories) error {
		job, err := repos.Job.GetJobByIdForUpdate(ctx, jobId)
		if err != nil {
			return notFoundAs(err, ErrJobNotFound)
		}
		if job.EmployerId != p.Id {
			return ErrNotJobOwner
		}

		return fn(ctx, repos, job)
	})
}

func loadJob(ctx context.Context, jobs repo.Job, id uuid.UUID) (*entity.Job, error) {
	job, err := jobs.GetJobById(ctx, id)
	if err != nil {
		return nil, err
	}

	if job.SkillIds, err = jobs.GetJobSkillIds(ctx, id); err != nil {
		return nil, err
	}

	return job, nil
}
