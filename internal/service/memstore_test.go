package service

import (
	"context"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"gigmarket/internal/common"
	"gigmarket/internal/entity"
	"gigmarket/internal/repo"
	"gigmarket/internal/repo/repo_errors"
	"gigmarket/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memStore implements every repo interface over maps. WithinTx holds a
// single lock and restores a snapshot when fn fails, which is enough to
// observe rollback and serialization in service tests.
type memStore struct {
	mu    sync.Mutex
	state *memState
	fail  map[string]error
}

type memState struct {
	users      map[uuid.UUID]entity.User
	jobs       map[uuid.UUID]entity.Job
	jobSkills  map[uuid.UUID][]int64
	bids       map[uuid.UUID]entity.Bid
	reviews    map[uuid.UUID]entity.Review
	saved      map[uuid.UUID]entity.SavedJob
	slots      map[uuid.UUID]entity.WorkerAvailability
	categories []entity.JobCategory
	skills     []entity.Skill
	events     []entity.OutboxEvent
}

func newMemStore() *memStore {
	return &memStore{
		state: &memState{
			users:     make(map[uuid.UUID]entity.User),
			jobs:      make(map[uuid.UUID]entity.Job),
			jobSkills: make(map[uuid.UUID][]int64),
			bids:      make(map[uuid.UUID]entity.Bid),
			reviews:   make(map[uuid.UUID]entity.Review),
			saved:     make(map[uuid.UUID]entity.SavedJob),
			slots:     make(map[uuid.UUID]entity.WorkerAvailability),
			categories: []entity.JobCategory{
				{Id: 1, Name: "home", DisplayName: "Home Services"},
				{Id: 2, Name: "events", DisplayName: "Events"},
			},
			skills: []entity.Skill{
				{Id: 1, Name: "Plumbing"},
				{Id: 2, Name: "Painting"},
				{Id: 3, Name: "Catering"},
			},
		},
		fail: make(map[string]error),
	}
}

func (s *memState) clone() *memState {
	return &memState{
		users:      maps.Clone(s.users),
		jobs:       maps.Clone(s.jobs),
		jobSkills:  maps.Clone(s.jobSkills),
		bids:       maps.Clone(s.bids),
		reviews:    maps.Clone(s.reviews),
		saved:      maps.Clone(s.saved),
		slots:      maps.Clone(s.slots),
		categories: slices.Clone(s.categories),
		skills:     slices.Clone(s.skills),
		events:     slices.Clone(s.events),
	}
}

func (m *memStore) repos() *repo.Repositories {
	return &repo.Repositories{
		Diagnostics:  m,
		Job:          m,
		Bid:          m,
		Review:       m,
		User:         m,
		SavedJob:     m,
		Availability: m,
		Catalog:      m,
		Analytics:    m,
		Dashboard:    m,
		Outbox:       m,
	}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos *repo.Repositories) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.state.clone()
	if err := fn(ctx, m.repos()); err != nil {
		m.state = snapshot
		return err
	}

	return nil
}

func (m *memStore) failure(method string) error {
	return m.fail[method]
}

// fixtures

func (m *memStore) addUser(accountType, first, last string) uuid.UUID {
	id := uuid.New()
	m.state.users[id] = entity.User{
		Id:          id,
		Email:       strings.ToLower(first) + "@example.com",
		FirstName:   first,
		LastName:    last,
		AccountType: accountType,
		Rating:      decimal.Zero,
	}

	return id
}

func (m *memStore) addJob(employerId uuid.UUID, status string, workers int, mutate ...func(*entity.Job)) uuid.UUID {
	id := uuid.New()
	job := entity.Job{
		Id:              id,
		EmployerId:      employerId,
		Title:           "Fix the sink",
		City:            "Austin",
		State:           "TX",
		LocationType:    common.LocationOnsite,
		Urgency:         common.UrgencyMedium,
		BudgetMin:       decimal.NewFromInt(50),
		BudgetMax:       decimal.NewFromInt(200),
		NumberOfWorkers: workers,
		Status:          status,
		PostedDate:      testNow.Add(-48 * time.Hour),
		StartDate:       testNow.Add(-24 * time.Hour),
	}
	for _, fn := range mutate {
		fn(&job)
	}
	m.state.jobs[id] = job

	return id
}

func (m *memStore) addBid(jobId, workerId uuid.UUID, amount int64, status string) uuid.UUID {
	id := uuid.New()
	created := testNow.Add(time.Duration(len(m.state.bids)) * time.Second)
	m.state.bids[id] = entity.Bid{
		Id:        id,
		JobId:     jobId,
		WorkerId:  workerId,
		Amount:    decimal.NewFromInt(amount),
		Status:    status,
		CreatedAt: created,
		UpdatedAt: created,
	}

	return id
}

func (m *memStore) addReview(jobId, reviewerId, reviewedId uuid.UUID, overall string, at time.Time) uuid.UUID {
	id := uuid.New()
	m.state.reviews[id] = entity.Review{
		Id:                    id,
		JobId:                 jobId,
		ReviewerId:            reviewerId,
		ReviewedUserId:        reviewedId,
		QualityRating:         3,
		CommunicationRating:   3,
		PunctualityRating:     3,
		ProfessionalismRating: 3,
		OverallRating:         decimal.RequireFromString(overall),
		CreatedAt:             at,
		UpdatedAt:             at,
	}

	return id
}

func (m *memStore) eventTypes() []string {
	types := make([]string, 0, len(m.state.events))
	for _, e := range m.state.events {
		types = append(types, e.Type)
	}

	return types
}

var testNow = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

func newTestServices(t *testing.T) (*Services, *memStore) {
	t.Helper()

	store := newMemStore()
	services := NewServices(&Dependencies{
		Repos: store.repos(),
		Tx:    store,
		Clock: clock.Fixed{At: testNow},
	})

	return services, store
}

func principal(id uuid.UUID, accountType string) *entity.Principal {
	return &entity.Principal{Id: id, AccountType: accountType}
}

// Diagnostics

func (m *memStore) Ping(ctx context.Context) error {
	return m.failure("Ping")
}

// Job

func (m *memStore) CreateJob(ctx context.Context, employerId uuid.UUID, input *entity.CreateJobInput, postedAt time.Time) (uuid.UUID, error) {
	if input.CategoryId != nil && !slices.ContainsFunc(m.state.categories, func(c entity.JobCategory) bool { return c.Id == *input.CategoryId }) {
		return uuid.Nil, repo_errors.ErrInvalidReference
	}
	for _, skillId := range input.SkillIds {
		if !slices.ContainsFunc(m.state.skills, func(s entity.Skill) bool { return s.Id == skillId }) {
			return uuid.Nil, repo_errors.ErrInvalidReference
		}
	}

	id := uuid.New()
	m.state.jobs[id] = entity.Job{
		Id:                   id,
		EmployerId:           employerId,
		Title:                input.Title,
		Description:          input.Description,
		CategoryId:           input.CategoryId,
		LocationType:         input.LocationType,
		Address:              input.Address,
		City:                 input.City,
		State:                input.State,
		ZipCode:              input.ZipCode,
		PostedDate:           postedAt,
		StartDate:            input.StartDate,
		Urgency:              input.Urgency,
		BudgetMin:            input.BudgetMin,
		BudgetMax:            input.BudgetMax,
		InstantHirePrice:     input.InstantHirePrice,
		NumberOfWorkers:      input.NumberOfWorkers,
		PhysicalRequirements: input.PhysicalRequirements,
		Status:               input.Status,
	}
	if len(input.SkillIds) > 0 {
		m.state.jobSkills[id] = slices.Clone(input.SkillIds)
	}

	return id, nil
}

func (m *memStore) GetJobById(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	job, ok := m.state.jobs[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &job, nil
}

func (m *memStore) GetJobByIdForUpdate(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	return m.GetJobById(ctx, id)
}

func (m *memStore) listItem(job entity.Job) entity.JobListItem {
	item := entity.JobListItem{Job: job}
	for _, b := range m.state.bids {
		if b.JobId != job.Id {
			continue
		}
		item.BidsCount++
		if b.Status == common.BidPending && (item.LowestBid == nil || b.Amount.LessThan(*item.LowestBid)) {
			amount := b.Amount
			item.LowestBid = &amount
		}
	}

	return item
}

func (m *memStore) GetJobListItemById(ctx context.Context, id uuid.UUID) (*entity.JobListItem, error) {
	job, ok := m.state.jobs[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	item := m.listItem(job)
	return &item, nil
}

func (m *memStore) GetJobSkillIds(ctx context.Context, id uuid.UUID) ([]int64, error) {
	ids := slices.Clone(m.state.jobSkills[id])
	if ids == nil {
		ids = make([]int64, 0)
	}
	slices.Sort(ids)

	return ids, nil
}

func (m *memStore) EditJobById(ctx context.Context, id uuid.UUID, input *entity.UpdateJobInput) error {
	job, ok := m.state.jobs[id]
	if !ok {
		return repo_errors.ErrNotFound
	}

	if input.Title != nil {
		job.Title = *input.Title
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.CategoryId != nil {
		job.CategoryId = input.CategoryId
	}
	if input.City != nil {
		job.City = *input.City
	}
	if input.BudgetMin != nil {
		job.BudgetMin = *input.BudgetMin
	}
	if input.BudgetMax != nil {
		job.BudgetMax = *input.BudgetMax
	}
	if input.NumberOfWorkers != nil {
		job.NumberOfWorkers = *input.NumberOfWorkers
	}
	if input.Urgency != nil {
		job.Urgency = *input.Urgency
	}
	m.state.jobs[id] = job

	return nil
}

func (m *memStore) DeleteJobById(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.state.jobs[id]; !ok {
		return repo_errors.ErrNotFound
	}

	delete(m.state.jobs, id)
	maps.DeleteFunc(m.state.bids, func(_ uuid.UUID, b entity.Bid) bool { return b.JobId == id })
	maps.DeleteFunc(m.state.saved, func(_ uuid.UUID, s entity.SavedJob) bool { return s.JobId == id })

	return nil
}

func (m *memStore) updateJob(id uuid.UUID, fn func(*entity.Job)) error {
	job, ok := m.state.jobs[id]
	if !ok {
		return repo_errors.ErrNotFound
	}
	fn(&job)
	m.state.jobs[id] = job

	return nil
}

func (m *memStore) UpdateJobStatusById(ctx context.Context, id uuid.UUID, newStatus string) error {
	return m.updateJob(id, func(j *entity.Job) { j.Status = newStatus })
}

func (m *memStore) SetSelectedBid(ctx context.Context, jobId uuid.UUID, bidId uuid.UUID) error {
	return m.updateJob(jobId, func(j *entity.Job) { j.SelectedBidId = &bidId })
}

func (m *memStore) MarkJobCompleted(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.updateJob(id, func(j *entity.Job) {
		j.Status = common.JobCompleted
		j.CompletionDate = &at
	})
}

func (m *memStore) IncrementViewCount(ctx context.Context, id uuid.UUID) (int, error) {
	var views int
	err := m.updateJob(id, func(j *entity.Job) {
		j.ViewCount++
		views = j.ViewCount
	})

	return views, err
}

func (m *memStore) GetOpenJobs(ctx context.Context, filter *entity.JobFilter) ([]entity.JobListItem, error) {
	contains := func(s, sub string) bool { return strings.Contains(strings.ToLower(s), strings.ToLower(sub)) }

	out := make([]entity.JobListItem, 0)
	for _, job := range m.state.jobs {
		if job.Status != common.JobOpen {
			continue
		}
		if filter.Category != "" {
			if job.CategoryId == nil || !slices.ContainsFunc(m.state.categories, func(c entity.JobCategory) bool {
				return c.Id == *job.CategoryId && c.Name == filter.Category
			}) {
				continue
			}
		}
		if filter.City != "" && !contains(job.City, filter.City) {
			continue
		}
		if filter.MinPrice != nil && job.BudgetMax.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && job.BudgetMin.GreaterThan(*filter.MaxPrice) {
			continue
		}
		if filter.Urgency != "" && job.Urgency != filter.Urgency {
			continue
		}
		if filter.Physical != "" && job.PhysicalRequirements != filter.Physical {
			continue
		}
		if filter.Search != "" && !contains(job.Title, filter.Search) && !contains(job.Description, filter.Search) &&
			!contains(job.City, filter.Search) && !contains(job.State, filter.Search) {
			continue
		}
		out = append(out, m.listItem(job))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].PostedDate.After(out[j].PostedDate) })

	return page(out, filter.Page), nil
}

func (m *memStore) GetEmployerJobs(ctx context.Context, employerId uuid.UUID, status string) ([]entity.JobListItem, error) {
	out := make([]entity.JobListItem, 0)
	for _, job := range m.state.jobs {
		if job.EmployerId == employerId && (status == "" || job.Status == status) {
			out = append(out, m.listItem(job))
		}
	}

	return out, nil
}

func (m *memStore) GetWorkerJobs(ctx context.Context, workerId uuid.UUID, status string) ([]entity.JobListItem, error) {
	out := make([]entity.JobListItem, 0)
	for _, job := range m.state.jobs {
		if status != "" && job.Status != status {
			continue
		}
		for _, b := range m.state.bids {
			if b.JobId == job.Id && b.WorkerId == workerId {
				out = append(out, m.listItem(job))
				break
			}
		}
	}

	return out, nil
}

// Bid

func (m *memStore) CreateBid(ctx context.Context, jobId uuid.UUID, workerId uuid.UUID, input *entity.CreateBidInput, at time.Time) (uuid.UUID, error) {
	for _, b := range m.state.bids {
		if b.JobId == jobId && b.WorkerId == workerId {
			return uuid.Nil, repo_errors.ErrAlreadyExists
		}
	}

	id := uuid.New()
	m.state.bids[id] = entity.Bid{
		Id:                      id,
		JobId:                   jobId,
		WorkerId:                workerId,
		Amount:                  input.Amount,
		Message:                 input.Message,
		EstimatedCompletionTime: input.EstimatedCompletionTime,
		Status:                  common.BidPending,
		IsTeamBid:               input.IsTeamBid,
		CreatedAt:               at,
		UpdatedAt:               at,
	}

	return id, nil
}

func (m *memStore) GetBidById(ctx context.Context, id uuid.UUID) (*entity.Bid, error) {
	bid, ok := m.state.bids[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &bid, nil
}

func (m *memStore) GetWorkerBidOnJob(ctx context.Context, jobId uuid.UUID, workerId uuid.UUID) (*entity.Bid, error) {
	for _, b := range m.state.bids {
		if b.JobId == jobId && b.WorkerId == workerId {
			return &b, nil
		}
	}

	return nil, repo_errors.ErrNotFound
}

func (m *memStore) EditBidById(ctx context.Context, id uuid.UUID, input *entity.UpdateBidInput, at time.Time) error {
	bid, ok := m.state.bids[id]
	if !ok {
		return repo_errors.ErrNotFound
	}

	if input.Amount != nil {
		bid.Amount = *input.Amount
	}
	if input.Message != nil {
		bid.Message = *input.Message
	}
	if input.EstimatedCompletionTime != nil {
		bid.EstimatedCompletionTime = input.EstimatedCompletionTime
	}
	bid.UpdatedAt = at
	m.state.bids[id] = bid

	return nil
}

func (m *memStore) UpdateBidStatusById(ctx context.Context, id uuid.UUID, newStatus string, at time.Time) error {
	bid, ok := m.state.bids[id]
	if !ok {
		return repo_errors.ErrNotFound
	}

	bid.Status = newStatus
	bid.UpdatedAt = at
	m.state.bids[id] = bid

	return nil
}

func (m *memStore) CountJobBidsByStatus(ctx context.Context, jobId uuid.UUID, status string) (int, error) {
	cnt := 0
	for _, b := range m.state.bids {
		if b.JobId == jobId && b.Status == status {
			cnt++
		}
	}

	return cnt, nil
}

func (m *memStore) GetJobBids(ctx context.Context, jobId uuid.UUID) ([]entity.Bid, error) {
	bids := make([]entity.Bid, 0)
	for _, b := range m.state.bids {
		if b.JobId == jobId {
			bids = append(bids, b)
		}
	}
	sort.Slice(bids, func(i, j int) bool {
		if !bids[i].Amount.Equal(bids[j].Amount) {
			return bids[i].Amount.LessThan(bids[j].Amount)
		}
		return bids[i].CreatedAt.Before(bids[j].CreatedAt)
	})

	return bids, nil
}

func (m *memStore) GetWorkerBids(ctx context.Context, workerId uuid.UUID, status string, pg *entity.PaginationInput) ([]entity.WorkerBid, error) {
	out := make([]entity.WorkerBid, 0)
	for _, b := range m.state.bids {
		if b.WorkerId != workerId || (status != "" && b.Status != status) {
			continue
		}
		job := m.state.jobs[b.JobId]
		out = append(out, entity.WorkerBid{
			Bid:          b,
			JobTitle:     job.Title,
			JobStatus:    job.Status,
			JobStartDate: job.StartDate,
			EmployerId:   job.EmployerId,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (m *memStore) GetAcceptedWorkerIds(ctx context.Context, jobId uuid.UUID) ([]uuid.UUID, error) {
	bids := make([]entity.Bid, 0)
	for _, b := range m.state.bids {
		if b.JobId == jobId && b.Status == common.BidAccepted {
			bids = append(bids, b)
		}
	}
	sort.Slice(bids, func(i, j int) bool { return bids[i].CreatedAt.Before(bids[j].CreatedAt) })

	ids := make([]uuid.UUID, 0, len(bids))
	for _, b := range bids {
		ids = append(ids, b.WorkerId)
	}

	return ids, nil
}

// Review

func (m *memStore) CreateReview(ctx context.Context, review *entity.Review) (uuid.UUID, error) {
	if err := m.failure("CreateReview"); err != nil {
		return uuid.Nil, err
	}

	for _, r := range m.state.reviews {
		if r.JobId == review.JobId && r.ReviewerId == review.ReviewerId && r.ReviewedUserId == review.ReviewedUserId {
			return uuid.Nil, repo_errors.ErrAlreadyExists
		}
	}

	stored := *review
	stored.Id = uuid.New()
	m.state.reviews[stored.Id] = stored

	return stored.Id, nil
}

func (m *memStore) GetReviewById(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	r, ok := m.state.reviews[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &r, nil
}

func (m *memStore) DoesReviewExist(ctx context.Context, jobId uuid.UUID, reviewerId uuid.UUID, reviewedUserId uuid.UUID) (bool, error) {
	for _, r := range m.state.reviews {
		if r.JobId == jobId && r.ReviewerId == reviewerId && r.ReviewedUserId == reviewedUserId {
			return true, nil
		}
	}

	return false, nil
}

func (m *memStore) GetReceivedOverallRatings(ctx context.Context, userId uuid.UUID) ([]decimal.Decimal, error) {
	ratings := make([]decimal.Decimal, 0)
	for _, r := range m.state.reviews {
		if r.ReviewedUserId == userId {
			ratings = append(ratings, r.OverallRating)
		}
	}

	return ratings, nil
}

func (m *memStore) filterReviews(keep func(entity.Review) bool, pg *entity.PaginationInput) []entity.Review {
	out := make([]entity.Review, 0)
	for _, r := range m.state.reviews {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return page(out, pg)
}

func (m *memStore) GetReceivedReviews(ctx context.Context, userId uuid.UUID, pg *entity.PaginationInput) ([]entity.Review, error) {
	return m.filterReviews(func(r entity.Review) bool { return r.ReviewedUserId == userId }, pg), nil
}

func (m *memStore) GetGivenReviews(ctx context.Context, userId uuid.UUID, pg *entity.PaginationInput) ([]entity.Review, error) {
	return m.filterReviews(func(r entity.Review) bool { return r.ReviewerId == userId }, pg), nil
}

func (m *memStore) GetReviewedPairs(ctx context.Context, reviewerId uuid.UUID) ([]entity.ReviewedPair, error) {
	pairs := make([]entity.ReviewedPair, 0)
	for _, r := range m.state.reviews {
		if r.ReviewerId == reviewerId {
			pairs = append(pairs, entity.ReviewedPair{JobId: r.JobId, ReviewedUserId: r.ReviewedUserId})
		}
	}

	return pairs, nil
}

func (m *memStore) GetParticipations(ctx context.Context, userId uuid.UUID) ([]entity.Participation, error) {
	out := make([]entity.Participation, 0)
	for _, b := range m.state.bids {
		job := m.state.jobs[b.JobId]
		if b.Status != common.BidAccepted || job.Status != common.JobCompleted {
			continue
		}

		p := entity.Participation{JobId: job.Id, JobTitle: job.Title}
		if job.CompletionDate != nil {
			p.CompletionDate = *job.CompletionDate
		}

		switch userId {
		case job.EmployerId:
			p.Counterpart = b.WorkerId
		case b.WorkerId:
			p.Counterpart = job.EmployerId
		default:
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

// User

func (m *memStore) GetUserById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := m.state.users[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &u, nil
}

func (m *memStore) GetUserByIdForUpdate(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return m.GetUserById(ctx, id)
}

func (m *memStore) UpdateUserRating(ctx context.Context, id uuid.UUID, rating decimal.Decimal, totalReviews int) error {
	if err := m.failure("UpdateUserRating"); err != nil {
		return err
	}

	u, ok := m.state.users[id]
	if !ok {
		return repo_errors.ErrNotFound
	}
	u.Rating = rating
	u.TotalReviews = totalReviews
	m.state.users[id] = u

	return nil
}

// SavedJob

func (m *memStore) CreateSavedJob(ctx context.Context, userId uuid.UUID, jobId uuid.UUID, at time.Time) (*entity.SavedJob, error) {
	if _, err := m.GetSavedJob(ctx, userId, jobId); err == nil {
		return nil, repo_errors.ErrAlreadyExists
	}

	saved := entity.SavedJob{Id: uuid.New(), UserId: userId, JobId: jobId, SavedAt: at}
	m.state.saved[saved.Id] = saved

	return &saved, nil
}

func (m *memStore) GetSavedJob(ctx context.Context, userId uuid.UUID, jobId uuid.UUID) (*entity.SavedJob, error) {
	for _, s := range m.state.saved {
		if s.UserId == userId && s.JobId == jobId {
			return &s, nil
		}
	}

	return nil, repo_errors.ErrNotFound
}

func (m *memStore) DeleteSavedJob(ctx context.Context, userId uuid.UUID, jobId uuid.UUID) error {
	saved, err := m.GetSavedJob(ctx, userId, jobId)
	if err != nil {
		return err
	}
	delete(m.state.saved, saved.Id)

	return nil
}

func (m *memStore) GetUserSavedJobs(ctx context.Context, userId uuid.UUID) ([]entity.SavedJob, error) {
	out := make([]entity.SavedJob, 0)
	for _, s := range m.state.saved {
		if s.UserId == userId {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })

	return out, nil
}

// Availability

func (m *memStore) GetWorkerAvailability(ctx context.Context, workerId uuid.UUID) ([]entity.WorkerAvailability, error) {
	out := make([]entity.WorkerAvailability, 0)
	for _, s := range m.state.slots {
		if s.WorkerId == workerId {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].StartTime < out[j].StartTime
	})

	return out, nil
}

func (m *memStore) GetAvailabilityById(ctx context.Context, id uuid.UUID, workerId uuid.UUID) (*entity.WorkerAvailability, error) {
	s, ok := m.state.slots[id]
	if !ok || s.WorkerId != workerId {
		return nil, repo_errors.ErrNotFound
	}

	return &s, nil
}

func (m *memStore) slotTaken(slot *entity.WorkerAvailability) bool {
	for _, s := range m.state.slots {
		if s.Id != slot.Id && s.WorkerId == slot.WorkerId && s.DayOfWeek == slot.DayOfWeek && s.StartTime == slot.StartTime {
			return true
		}
	}

	return false
}

func (m *memStore) CreateAvailability(ctx context.Context, slot *entity.WorkerAvailability) (uuid.UUID, error) {
	if m.slotTaken(slot) {
		return uuid.Nil, repo_errors.ErrAlreadyExists
	}

	stored := *slot
	stored.Id = uuid.New()
	m.state.slots[stored.Id] = stored

	return stored.Id, nil
}

func (m *memStore) EditAvailability(ctx context.Context, slot *entity.WorkerAvailability) error {
	if _, err := m.GetAvailabilityById(ctx, slot.Id, slot.WorkerId); err != nil {
		return err
	}
	if m.slotTaken(slot) {
		return repo_errors.ErrAlreadyExists
	}
	m.state.slots[slot.Id] = *slot

	return nil
}

func (m *memStore) DeleteAvailability(ctx context.Context, id uuid.UUID, workerId uuid.UUID) error {
	if _, err := m.GetAvailabilityById(ctx, id, workerId); err != nil {
		return err
	}
	delete(m.state.slots, id)

	return nil
}

// Catalog

func (m *memStore) GetCategories(ctx context.Context) ([]entity.JobCategory, error) {
	return slices.Clone(m.state.categories), nil
}

func (m *memStore) GetSkills(ctx context.Context, search string) ([]entity.Skill, error) {
	out := make([]entity.Skill, 0)
	for _, s := range m.state.skills {
		if search == "" || strings.Contains(strings.ToLower(s.Name), strings.ToLower(search)) {
			out = append(out, s)
		}
	}

	return out, nil
}

// Analytics

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func (m *memStore) completedIn(employerId uuid.UUID, from, to time.Time) []entity.Job {
	out := make([]entity.Job, 0)
	for _, job := range m.state.jobs {
		if job.EmployerId == employerId && job.Status == common.JobCompleted &&
			job.CompletionDate != nil && inRange(*job.CompletionDate, from, to) {
			out = append(out, job)
		}
	}

	return out
}

func (m *memStore) GetCompletedJobFacts(ctx context.Context, employerId uuid.UUID, from, to time.Time) ([]entity.CompletedJobFact, error) {
	facts := make([]entity.CompletedJobFact, 0)
	for _, job := range m.completedIn(employerId, from, to) {
		fact := entity.CompletedJobFact{JobId: job.Id, StartDate: job.StartDate, CompletionDate: *job.CompletionDate}
		if job.CategoryId != nil {
			for _, c := range m.state.categories {
				if c.Id == *job.CategoryId {
					name := c.DisplayName
					fact.Category = &name
				}
			}
		}
		facts = append(facts, fact)
	}

	return facts, nil
}

func (m *memStore) GetAcceptedBidFacts(ctx context.Context, employerId uuid.UUID, from, to time.Time) ([]entity.AcceptedBidFact, error) {
	facts := make([]entity.AcceptedBidFact, 0)
	for _, job := range m.completedIn(employerId, from, to) {
		for _, b := range m.state.bids {
			if b.JobId != job.Id || b.Status != common.BidAccepted {
				continue
			}
			worker := m.state.users[b.WorkerId]
			facts = append(facts, entity.AcceptedBidFact{
				JobId:      job.Id,
				WorkerId:   b.WorkerId,
				WorkerName: worker.FullName(),
				Amount:     b.Amount,
			})
		}
	}

	return facts, nil
}

func (m *memStore) GetGivenRatingFacts(ctx context.Context, employerId uuid.UUID, from, to time.Time) ([]entity.GivenRatingFact, error) {
	facts := make([]entity.GivenRatingFact, 0)
	for _, r := range m.state.reviews {
		if r.ReviewerId == employerId && inRange(r.CreatedAt, from, to) {
			facts = append(facts, entity.GivenRatingFact{
				ReviewedUserId: r.ReviewedUserId,
				OverallRating:  r.OverallRating,
				CreatedAt:      r.CreatedAt,
			})
		}
	}

	return facts, nil
}

func (m *memStore) GetPostedJobFacts(ctx context.Context, employerId uuid.UUID, from, to time.Time) ([]entity.PostedJobFact, error) {
	facts := make([]entity.PostedJobFact, 0)
	for _, job := range m.state.jobs {
		if job.EmployerId != employerId || job.Status == common.JobDraft || !inRange(job.PostedDate, from, to) {
			continue
		}
		facts = append(facts, entity.PostedJobFact{
			JobId:      job.Id,
			Status:     job.Status,
			PostedDate: job.PostedDate,
			BidCount:   m.listItem(job).BidsCount,
		})
	}

	return facts, nil
}

// Dashboard

func (m *memStore) GetEmployerDashboard(ctx context.Context, employerId uuid.UUID) (*entity.EmployerDashboard, error) {
	stats := &entity.EmployerDashboard{TotalSpent: decimal.Zero}
	for _, job := range m.state.jobs {
		if job.EmployerId != employerId {
			continue
		}
		stats.TotalJobsPosted++
		switch job.Status {
		case common.JobOpen:
			stats.ActiveJobs++
		case common.JobInProgress:
			stats.InProgressJobs++
		case common.JobCompleted:
			stats.CompletedJobs++
			for _, b := range m.state.bids {
				if b.JobId == job.Id && b.Status == common.BidAccepted {
					stats.TotalSpent = stats.TotalSpent.Add(b.Amount)
				}
			}
		}
	}
	if stats.CompletedJobs > 0 {
		stats.AverageJobCost = stats.TotalSpent.Div(decimal.NewFromInt(int64(stats.CompletedJobs))).Round(2)
	}

	return stats, nil
}

func (m *memStore) GetWorkerDashboard(ctx context.Context, workerId uuid.UUID) (*entity.WorkerDashboard, error) {
	stats := &entity.WorkerDashboard{TotalEarned: decimal.Zero}
	for _, b := range m.state.bids {
		if b.WorkerId != workerId {
			continue
		}
		stats.TotalBids++
		switch b.Status {
		case common.BidPending:
			stats.PendingBids++
		case common.BidAccepted:
			stats.AcceptedBids++
			if m.state.jobs[b.JobId].Status == common.JobCompleted {
				stats.CompletedJobs++
				stats.TotalEarned = stats.TotalEarned.Add(b.Amount)
			}
		}
	}

	return stats, nil
}

// Outbox

func (m *memStore) AddEvent(ctx context.Context, event *entity.OutboxEvent) error {
	event.Id = uuid.New()
	m.state.events = append(m.state.events, *event)

	return nil
}

func (m *memStore) ClaimUnpublished(ctx context.Context, limit int) ([]entity.OutboxEvent, error) {
	out := make([]entity.OutboxEvent, 0)
	for _, e := range m.state.events {
		if e.PublishedAt == nil && len(out) < limit {
			out = append(out, e)
		}
	}

	return out, nil
}

func (m *memStore) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	for i, e := range m.state.events {
		if slices.Contains(ids, e.Id) {
			m.state.events[i].PublishedAt = &at
		}
	}

	return nil
}

func page[T any](items []T, pg *entity.PaginationInput) []T {
	if pg == nil {
		return items
	}
	start := min(int(pg.Offset), len(items))
	end := len(items)
	if pg.Limit > 0 {
		end = min(start+int(pg.Limit), end)
	}

	return items[start:end]
}
