package controller

import (
	"context"
	"errors"

	"gigmarket/internal/analytics"
	"gigmarket/internal/entity"
	"gigmarket/internal/service"

	"github.com/google/uuid"
)

// Fakes embed the service interface; calling an unstubbed method panics,
// which the recover middleware turns into a 500.

type fakeDiagnostics struct {
	err error
}

func (f *fakeDiagnostics) Ping(ctx context.Context) error {
	return f.err
}

type fakeBid struct {
	service.Bid

	principal *entity.Principal
	jobId     uuid.UUID
	bidId     uuid.UUID
	create    *entity.CreateBidInput
	update    *entity.UpdateBidInput
	status    string
	page      *entity.PaginationInput

	bid  *entity.Bid
	bids []entity.Bid
	err  error
}

func (f *fakeBid) CreateBid(ctx context.Context, p *entity.Principal, jobId uuid.UUID, input *entity.CreateBidInput) (*entity.Bid, error) {
	f.principal, f.jobId, f.create = p, jobId, input
	return f.bid, f.err
}

func (f *fakeBid) UpdateBid(ctx context.Context, p *entity.Principal, bidId uuid.UUID, input *entity.UpdateBidInput) (*entity.Bid, error) {
	f.principal, f.bidId, f.update = p, bidId, input
	return f.bid, f.err
}

func (f *fakeBid) AcceptBid(ctx context.Context, p *entity.Principal, jobId uuid.UUID, bidId uuid.UUID) (*entity.Bid, error) {
	f.principal, f.jobId, f.bidId = p, jobId, bidId
	return f.bid, f.err
}

func (f *fakeBid) ListBidsForJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) ([]entity.Bid, error) {
	f.principal, f.jobId = p, jobId
	return f.bids, f.err
}

func (f *fakeBid) ListMyBids(ctx context.Context, p *entity.Principal, status string, pg *entity.PaginationInput) ([]entity.WorkerBid, error) {
	f.principal, f.status, f.page = p, status, pg
	return []entity.WorkerBid{}, f.err
}

type fakeJob struct {
	service.Job

	filter  *entity.JobFilter
	create  *entity.CreateJobInput
	jobId   uuid.UUID
	created bool

	job *entity.Job
	err error
}

func (f *fakeJob) ListOpenJobs(ctx context.Context, filter *entity.JobFilter) ([]entity.JobListItem, error) {
	f.filter = filter
	return []entity.JobListItem{}, f.err
}

func (f *fakeJob) CreateJob(ctx context.Context, p *entity.Principal, input *entity.CreateJobInput) (*entity.Job, error) {
	f.create = input
	return f.job, f.err
}

func (f *fakeJob) DeleteJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) error {
	f.jobId = jobId
	return f.err
}

func (f *fakeJob) CompleteJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) (*entity.Job, error) {
	f.jobId = jobId
	return f.job, f.err
}

func (f *fakeJob) SaveJob(ctx context.Context, p *entity.Principal, jobId uuid.UUID) (*entity.SavedJob, bool, error) {
	f.jobId = jobId
	return &entity.SavedJob{JobId: jobId, UserId: p.Id}, f.created, f.err
}

type fakeReview struct {
	service.Review

	userId uuid.UUID
	input  *entity.ReviewInput
	err    error
}

func (f *fakeReview) SubmitReview(ctx context.Context, p *entity.Principal, jobId uuid.UUID, input *entity.ReviewInput) (*entity.Review, error) {
	f.input = input
	return &entity.Review{JobId: jobId, ReviewerId: p.Id}, f.err
}

func (f *fakeReview) ReviewStats(ctx context.Context, p *entity.Principal, userId uuid.UUID) (*entity.ReviewStats, error) {
	f.userId = userId
	return &entity.ReviewStats{}, f.err
}

type fakeAnalytics struct {
	rng string
	err error
}

func (f *fakeAnalytics) GetAnalytics(ctx context.Context, p *entity.Principal, rng string) (*analytics.Report, error) {
	f.rng = rng
	if f.err != nil {
		return nil, f.err
	}

	return &analytics.Report{Range: rng}, nil
}

type fakeCatalog struct {
	service.Catalog
}

func (f fakeCatalog) ListCategories(ctx context.Context) ([]entity.JobCategory, error) {
	return []entity.JobCategory{{Id: 1, Name: "home", DisplayName: "Home Services"}}, nil
}

type fakeAvailability struct {
	service.Availability

	slot *entity.WorkerAvailability
}

func (f *fakeAvailability) CreateAvailability(ctx context.Context, p *entity.Principal, slot *entity.WorkerAvailability) (*entity.WorkerAvailability, error) {
	f.slot = slot
	return slot, nil
}

var errDatabaseDown = errors.New("connection refused")
