package service

import (
	"context"
	"log/slog"

	"gigmarket/internal/analytics"
	"gigmarket/internal/entity"
	"gigmarket/internal/repo"
	"gigmarket/pkg/clock"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping(ctx context.Context) error
}

type Bid interface {
	CreateBid(ctx context.Context, p *entity.Principal, jobId uuid.UUID, input *entity.CreateBidInput) (*entity.Bid, error)
	UpdateBid(ctx context.Context, p *entity.Principal, bidId uuid.UUID, input *entity.UpdateBidInput) (*entity.Bid, error)
	WithdrawBid(ctx context.Context, p *entity.Principal, bidId uuid.UUID) (*entity.Bid, error)

	AcceptBid(ctx context.Context, p *entity.Principal, jobId uuid.UUID, bidId uuid.UUID) (*entity.Bid, error)
	RejectBid(ctx context.Context, p *entity.Principal, jobId uuid.UUID, bidId uuid.UUID) (*entity.Bid, error)

	ListBidsForJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) ([]entity.Bid, error)
	ListMyBids(ctx context.Context, p *entity.Principal, status string, pg *entity.PaginationInput) ([]entity.WorkerBid, error)
}

type Job interface {
	CreateJob(ctx context.Context, p *entity.Principal, input *entity.CreateJobInput) (*entity.Job, error)
	UpdateJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID, input *entity.UpdateJobInput) (*entity.Job, error)
	DeleteJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) error

	PublishJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) (*entity.Job, error)
	CancelJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) (*entity.Job, error)
	CompleteJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) (*entity.Job, error)

	ViewJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) (*entity.JobDetail, error)
	ListOpenJobs(ctx context.Context, filter *entity.JobFilter) ([]entity.JobListItem, error)
	MyJobs(ctx context.Context, p *entity.Principal, status string) ([]entity.JobListItem, error)

	SaveJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) (*entity.SavedJob, bool, error)
	UnsaveJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) error
	ListSavedJobs(ctx context.Context, p *entity.Principal) ([]entity.SavedJobWithJob, error)
}

type Catalog interface {
	ListCategories(ctx context.Context) ([]entity.JobCategory, error)
	ListSkills(ctx context.Context, search string) ([]entity.Skill, error)
}

type Review interface {
	SubmitReview(ctx context.Context, p *entity.Principal, jobId uuid.UUID, input *entity.ReviewInput) (*entity.Review, error)
	PendingReviews(ctx context.Context, p *entity.Principal) ([]entity.PendingReview, error)
	// uuid.Nil userId means the caller
	ReviewStats(ctx context.Context, p *entity.Principal, userId uuid.UUID) (*entity.ReviewStats, error)
	ReceivedReviews(ctx context.Context, p *entity.Principal, userId uuid.UUID, pg *entity.PaginationInput) ([]entity.Review, error)
	GivenReviews(ctx context.Context, p *entity.Principal, pg *entity.PaginationInput) ([]entity.Review, error)
}

type Analytics interface {
	GetAnalytics(ctx context.Context, p *entity.Principal, rng string) (*analytics.Report, error)
}

type Dashboard interface {
	DashboardStats(ctx context.Context, p *entity.Principal) (*entity.Dashboard, error)
}

type Availability interface {
	ListAvailability(ctx context.Context, p *entity.Principal) ([]entity.WorkerAvailability, error)
	CreateAvailability(ctx context.Context, p *entity.Principal, slot *entity.WorkerAvailability) (*entity.WorkerAvailability, error)
	UpdateAvailability(ctx context.Context, p *entity.Principal, id uuid.UUID, slot *entity.WorkerAvailability) (*entity.WorkerAvailability, error)
	DeleteAvailability(ctx context.Context, p *entity.Principal, id uuid.UUID) error
}

// ReportCache keeps computed analytics reports. A miss is (nil, nil).
type ReportCache interface {
	GetReport(ctx context.Context, key string) (*analytics.Report, error)
	SetReport(ctx context.Context, key string, report *analytics.Report) error
}

type Dependencies struct {
	Repos  *repo.Repositories
	Tx     repo.Transactor
	Clock  clock.Clock
	Cache  ReportCache // optional
	Logger *slog.Logger
}

type Services struct {
	Diagnostics  Diagnostics
	Bid          Bid
	Job          Job
	Catalog      Catalog
	Review       Review
	Analytics    Analytics
	Dashboard    Dashboard
	Availability Availability
}

func NewServices(deps *Dependencies) *Services {
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	return &Services{
		Diagnostics:  NewDiagnosticsService(deps),
		Bid:          NewBidService(deps),
		Job:          NewJobService(deps),
		Catalog:      NewCatalogService(deps),
		Review:       NewReviewService(deps),
		Analytics:    NewAnalyticsService(deps),
		Dashboard:    NewDashboardService(deps),
		Availability: NewAvailabilityService(deps),
	}
}
