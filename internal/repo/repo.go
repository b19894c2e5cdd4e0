package repo

import (
	"context"
	"time"

	"gigmarket/internal/entity"
	"gigmarket/internal/repo/pgdb"
	"gigmarket/pkg/postgres"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Diagnostics interface {
	Ping(ctx context.Context) error
}

type Job interface {
	CreateJob(ctx context.Context, employerId uuid.UUID, input *entity.CreateJobInput, postedAt time.Time) (uuid.UUID, error)
	GetJobById(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	// locks the row until the surrounding transaction ends
	GetJobByIdForUpdate(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	GetJobListItemById(ctx context.Context, id uuid.UUID) (*entity.JobListItem, error)
	GetJobSkillIds(ctx context.Context, id uuid.UUID) ([]int64, error)
	EditJobById(ctx context.Context, id uuid.UUID, input *entity.UpdateJobInput) error
	DeleteJobById(ctx context.Context, id uuid.UUID) error
	UpdateJobStatusById(ctx context.Context, id uuid.UUID, newStatus string) error
	SetSelectedBid(ctx context.Context, jobId uuid.UUID, bidId uuid.UUID) error
	MarkJobCompleted(ctx context.Context, id uuid.UUID, at time.Time) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) (int, error)
	GetOpenJobs(ctx context.Context, filter *entity.JobFilter) ([]entity.JobListItem, error)
	GetEmployerJobs(ctx context.Context, employerId uuid.UUID, status string) ([]entity.JobListItem, error)
	GetWorkerJobs(ctx context.Context, workerId uuid.UUID, status string) ([]entity.JobListItem, error)
}

type Bid interface {
	CreateBid(ctx context.Context, jobId uuid.UUID, workerId uuid.UUID, input *entity.CreateBidInput, at time.Time) (uuid.UUID, error)
	GetBidById(ctx context.Context, id uuid.UUID) (*entity.Bid, error)
	GetWorkerBidOnJob(ctx context.Context, jobId uuid.UUID, workerId uuid.UUID) (*entity.Bid, error)
	EditBidById(ctx context.Context, id uuid.UUID, input *entity.UpdateBidInput, at time.Time) error
	UpdateBidStatusById(ctx context.Context, id uuid.UUID, newStatus string, at time.Time) error
	CountJobBidsByStatus(ctx context.Context, jobId uuid.UUID, status string) (int, error)
	GetJobBids(ctx context.Context, jobId uuid.UUID) ([]entity.Bid, error)
	GetWorkerBids(ctx context.Context, workerId uuid.UUID, status string, pg *entity.PaginationInput) ([]entity.WorkerBid, error)
	GetAcceptedWorkerIds(ctx context.Context, jobId uuid.UUID) ([]uuid.UUID, error)
}

type Review interface {
	CreateReview(ctx context.Context, review *entity.Review) (uuid.UUID, error)
	GetReviewById(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	DoesReviewExist(ctx context.Context, jobId uuid.UUID, reviewerId uuid.UUID, reviewedUserId uuid.UUID) (bool, error)
	GetReceivedOverallRatings(ctx context.Context, userId uuid.UUID) ([]decimal.Decimal, error)
	// nil pg means no limit
	GetReceivedReviews(ctx context.Context, userId uuid.UUID, pg *entity.PaginationInput) ([]entity.Review, error)
	GetGivenReviews(ctx context.Context, userId uuid.UUID, pg *entity.PaginationInput) ([]entity.Review, error)
	GetReviewedPairs(ctx context.Context, reviewerId uuid.UUID) ([]entity.ReviewedPair, error)
	GetParticipations(ctx context.Context, userId uuid.UUID) ([]entity.Participation, error)
}

type User interface {
	GetUserById(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetUserByIdForUpdate(ctx context.Context, id uuid.UUID) (*entity.User, error)
	UpdateUserRating(ctx context.Context, id uuid.UUID, rating decimal.Decimal, totalReviews int) error
}

type SavedJob interface {
	CreateSavedJob(ctx context.Context, userId uuid.UUID, jobId uuid.UUID, at time.Time) (*entity.SavedJob, error)
	GetSavedJob(ctx context.Context, userId uuid.UUID, jobId uuid.UUID) (*entity.SavedJob, error)
	DeleteSavedJob(ctx context.Context, userId uuid.UUID, jobId uuid.UUID) error
	GetUserSavedJobs(ctx context.Context, userId uuid.UUID) ([]entity.SavedJob, error)
}

type Availability interface {
	GetWorkerAvailability(ctx context.Context, workerId uuid.UUID) ([]entity.WorkerAvailability, error)
	GetAvailabilityById(ctx context.Context, id uuid.UUID, workerId uuid.UUID) (*entity.WorkerAvailability, error)
	CreateAvailability(ctx context.Context, slot *entity.WorkerAvailability) (uuid.UUID, error)
	EditAvailability(ctx context.Context, slot *entity.WorkerAvailability) error
	DeleteAvailability(ctx context.Context, id uuid.UUID, workerId uuid.UUID) error
}

type Catalog interface {
	GetCategories(ctx context.Context) ([]entity.JobCategory, error)
	GetSkills(ctx context.Context, search string) ([]entity.Skill, error)
}

type Analytics interface {
	GetCompletedJobFacts(ctx context.Context, employerId uuid.UUID, from, to time.Time) ([]entity.CompletedJobFact, error)
	GetAcceptedBidFacts(ctx context.Context, employerId uuid.UUID, from, to time.Time) ([]entity.AcceptedBidFact, error)
	GetGivenRatingFacts(ctx context.Context, employerId uuid.UUID, from, to time.Time) ([]entity.GivenRatingFact, error)
	GetPostedJobFacts(ctx context.Context, employerId uuid.UUID, from, to time.Time) ([]entity.PostedJobFact, error)
}

type Dashboard interface {
	GetEmployerDashboard(ctx context.Context, employerId uuid.UUID) (*entity.EmployerDashboard, error)
	GetWorkerDashboard(ctx context.Context, workerId uuid.UUID) (*entity.WorkerDashboard, error)
}

type Outbox interface {
	AddEvent(ctx context.Context, event *entity.OutboxEvent) error
	// skips rows locked by a concurrent relay, so must be called inside WithinTx
	ClaimUnpublished(ctx context.Context, limit int) ([]entity.OutboxEvent, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

type Repositories struct {
	Diagnostics
	Job
	Bid
	Review
	User
	SavedJob
	Availability
	Catalog
	Analytics
	Dashboard
	Outbox
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return newRepositories(pgdb.NewConn(p.Database, p.SqlBuilder))
}

func newRepositories(c pgdb.Conn) *Repositories {
	return &Repositories{
		Diagnostics:  pgdb.NewDiagnosticsRepo(c),
		Job:          pgdb.NewJobRepo(c),
		Bid:          pgdb.NewBidRepo(c),
		Review:       pgdb.NewReviewRepo(c),
		User:         pgdb.NewUserRepo(c),
		SavedJob:     pgdb.NewSavedJobRepo(c),
		Availability: pgdb.NewAvailabilityRepo(c),
		Catalog:      pgdb.NewCatalogRepo(c),
		Analytics:    pgdb.NewAnalyticsRepo(c),
		Dashboard:    pgdb.NewDashboardRepo(c),
		Outbox:       pgdb.NewOutboxRepo(c),
	}
}
