package pgdb

import (
	"context"
	"strings"
	"time"

	"gigmarket/internal/common"
	"gigmarket/internal/entity"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var jobColumns = []string{
	"job.id", "job.employer_id", "job.title", "job.description", "job.category_id",
	"job.location_type", "job.address", "job.city", "job.state", "job.zip_code", "job.latitude", "job.longitude",
	"job.posted_date", "job.start_date", "job.start_time::text AS start_time", "job.end_date", "job.estimated_duration",
	"job.is_flexible", "job.urgency", "job.budget_min", "job.budget_max", "job.instant_hire_price",
	"job.number_of_workers", "job.tools_provided", "job.tools_required", "job.physical_requirements",
	"job.auto_match_enabled", "job.auto_match_min_rating", "job.auto_match_max_distance",
	"job.status", "job.selected_bid_id", "job.completion_date", "job.is_featured", "job.view_count",
}

var jobListColumns = append(append([]string{}, jobColumns...),
	"count(bid.id) AS bids_count",
	"min(bid.amount) FILTER (WHERE bid.status = 'pending') AS lowest_bid",
)

// ordering keys accepted by GetOpenJobs
var jobOrderings = map[string]string{
	"posted_date": "job.posted_date",
	"start_date":  "job.start_date",
	"budget_max":  "job.budget_max",
	"urgency":     "job.urgency",
}

type JobRepo struct {
	Conn
}

func NewJobRepo(c Conn) *JobRepo {
	return &JobRepo{c}
}

func (r *JobRepo) CreateJob(ctx context.Context, employerId uuid.UUID, input *entity.CreateJobInput, postedAt time.Time) (uuid.UUID, error) {
	insert := r.SqlBuilder.
		Insert("job").
		SetMap(map[string]any{
			"employer_id":             employerId,
			"title":                   input.Title,
			"description":             input.Description,
			"category_id":             input.CategoryId,
			"location_type":           input.LocationType,
			"address":                 input.Address,
			"city":                    input.City,
			"state":                   input.State,
			"zip_code":                input.ZipCode,
			"latitude":                input.Latitude,
			"longitude":               input.Longitude,
			"posted_date":             postedAt,
			"start_date":              input.StartDate,
			"start_time":              input.StartTime,
			"end_date":                input.EndDate,
			"estimated_duration":      input.EstimatedDuration,
			"is_flexible":             input.IsFlexible,
			"urgency":                 input.Urgency,
			"budget_min":              input.BudgetMin,
			"budget_max":              input.BudgetMax,
			"instant_hire_price":      input.InstantHirePrice,
			"number_of_workers":       input.NumberOfWorkers,
			"tools_provided":          input.ToolsProvided,
			"tools_required":          input.ToolsRequired,
			"physical_requirements":   input.PhysicalRequirements,
			"auto_match_enabled":      input.AutoMatchEnabled,
			"auto_match_min_rating":   input.AutoMatchMinRating,
			"auto_match_max_distance": input.AutoMatchMaxDistance,
			"status":                  input.Status,
		})

	var jobId uuid.UUID
	if err := r.insertReturningId(ctx, &jobId, insert); err != nil {
		return uuid.Nil, err
	}

	if len(input.SkillIds) > 0 {
		skills := r.SqlBuilder.Insert("job_skill").Columns("job_id", "skill_id")
		for _, skillId := range input.SkillIds {
			skills = skills.Values(jobId, skillId)
		}

		if _, err := r.exec(ctx, skills.Suffix("ON CONFLICT DO NOTHING")); err != nil {
			return uuid.Nil, err
		}
	}

	return jobId, nil
}

func (r *JobRepo) GetJobById(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var job entity.Job
	err := r.get(ctx, &job, r.SqlBuilder.
		Select(jobColumns...).
		From("job").
		Where(squirrel.Eq{"job.id": id}))
	if err != nil {
		return nil, err
	}

	return &job, nil
}

func (r *JobRepo) GetJobByIdForUpdate(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var job entity.Job
	err := r.get(ctx, &job, r.SqlBuilder.
		Select(jobColumns...).
		From("job").
		Where(squirrel.Eq{"job.id": id}).
		Suffix("FOR UPDATE"))
	if err != nil {
		return nil, err
	}

	return &job, nil
}

func (r *JobRepo) GetJobListItemById(ctx context.Context, id uuid.UUID) (*entity.JobListItem, error) {
	var job entity.JobListItem
	err := r.get(ctx, &job, r.listQuery().Where(squirrel.Eq{"job.id": id}))
	if err != nil {
		return nil, err
	}

	return &job, nil
}

func (r *JobRepo) GetJobSkillIds(ctx context.Context, id uuid.UUID) ([]int64, error) {
	ids := make([]int64, 0)
	err := r.selectAll(ctx, &ids, r.SqlBuilder.
		Select("skill_id").
		From("job_skill").
		Where(squirrel.Eq{"job_id": id}).
		OrderBy("skill_id"))
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *JobRepo) EditJobById(ctx context.Context, id uuid.UUID, input *entity.UpdateJobInput) error {
	set := make(map[string]any)
	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.CategoryId != nil {
		set["category_id"] = *input.CategoryId
	}
	if input.City != nil {
		set["city"] = *input.City
	}
	if input.State != nil {
		set["state"] = *input.State
	}
	if input.Address != nil {
		set["address"] = *input.Address
	}
	if input.StartDate != nil {
		set["start_date"] = *input.StartDate
	}
	if input.Urgency != nil {
		set["urgency"] = *input.Urgency
	}
	if input.BudgetMin != nil {
		set["budget_min"] = *input.BudgetMin
	}
	if input.BudgetMax != nil {
		set["budget_max"] = *input.BudgetMax
	}
	if input.InstantHirePrice != nil {
		set["instant_hire_price"] = *input.InstantHirePrice
	}
	if input.NumberOfWorkers != nil {
		set["number_of_workers"] = *input.NumberOfWorkers
	}
	if input.PhysicalRequirements != nil {
		set["physical_requirements"] = *input.PhysicalRequirements
	}
	if len(set) == 0 {
		return nil
	}

	return r.execOne(ctx, r.SqlBuilder.
		Update("job").
		SetMap(set).
		Where(squirrel.Eq{"id": id}))
}

func (r *JobRepo) DeleteJobById(ctx context.Context, id uuid.UUID) error {
	return r.execOne(ctx, r.SqlBuilder.
		Delete("job").
		Where(squirrel.Eq{"id": id}))
}

func (r *JobRepo) UpdateJobStatusById(ctx context.Context, id uuid.UUID, newStatus string) error {
	return r.execOne(ctx, r.SqlBuilder.
		Update("job").
		Set("status", newStatus).
		Where(squirrel.Eq{"id": id}))
}

func (r *JobRepo) SetSelectedBid(ctx context.Context, jobId uuid.UUID, bidId uuid.UUID) error {
	return r.execOne(ctx, r.SqlBuilder.
		Update("job").
		Set("selected_bid_id", bidId).
		Where(squirrel.Eq{"id": jobId}))
}

func (r *JobRepo) MarkJobCompleted(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.execOne(ctx, r.SqlBuilder.
		Update("job").
		Set("status", common.JobCompleted).
		Set("completion_date", at).
		Where(squirrel.Eq{"id": id}))
}

func (r *JobRepo) IncrementViewCount(ctx context.Context, id uuid.UUID) (int, error) {
	var views int
	err := r.get(ctx, &views, r.SqlBuilder.
		Update("job").
		Set("view_count", squirrel.Expr("view_count + ?", 1)).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING view_count"))
	if err != nil {
		return 0, err
	}

	return views, nil
}

func (r *JobRepo) GetOpenJobs(ctx context.Context, filter *entity.JobFilter) ([]entity.JobListItem, error) {
	q := r.listQuery().Where(squirrel.Eq{"job.status": common.JobOpen})

	if filter.Category != "" {
		q = q.Join("job_category ON job_category.id = job.category_id").
			Where(squirrel.Eq{"job_category.name": filter.Category})
	}
	if filter.City != "" {
		q = q.Where(squirrel.ILike{"job.city": "%" + filter.City + "%"})
	}
	if filter.MinPrice != nil {
		q = q.Where(squirrel.GtOrEq{"job.budget_max": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		q = q.Where(squirrel.LtOrEq{"job.budget_min": *filter.MaxPrice})
	}
	if filter.Urgency != "" {
		q = q.Where(squirrel.Eq{"job.urgency": filter.Urgency})
	}
	if filter.Physical != "" {
		q = q.Where(squirrel.Eq{"job.physical_requirements": filter.Physical})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"job.title": pattern},
			squirrel.ILike{"job.description": pattern},
			squirrel.ILike{"job.city": pattern},
			squirrel.ILike{"job.state": pattern},
		})
	}

	q = q.OrderBy(jobOrderBy(filter.Ordering), "job.id")
	q = paginate(q, filter.Page)

	jobs := make([]entity.JobListItem, 0)
	if err := r.selectAll(ctx, &jobs, q); err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *JobRepo) GetEmployerJobs(ctx context.Context, employerId uuid.UUID, status string) ([]entity.JobListItem, error) {
	q := r.listQuery().Where(squirrel.Eq{"job.employer_id": employerId})
	if status != "" {
		q = q.Where(squirrel.Eq{"job.status": status})
	}

	jobs := make([]entity.JobListItem, 0)
	if err := r.selectAll(ctx, &jobs, q.OrderBy("job.posted_date DESC", "job.id")); err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *JobRepo) GetWorkerJobs(ctx context.Context, workerId uuid.UUID, status string) ([]entity.JobListItem, error) {
	q := r.listQuery().
		Where("EXISTS (SELECT 1 FROM bid mine WHERE mine.job_id = job.id AND mine.worker_id = ?)", workerId)
	if status != "" {
		q = q.Where(squirrel.Eq{"job.status": status})
	}

	jobs := make([]entity.JobListItem, 0)
	if err := r.selectAll(ctx, &jobs, q.OrderBy("job.posted_date DESC", "job.id")); err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *JobRepo) listQuery() squirrel.SelectBuilder {
	return r.SqlBuilder.
		Select(jobListColumns...).
		From("job").
		LeftJoin("bid ON bid.job_id = job.id").
		GroupBy("job.id")
}

func jobOrderBy(ordering string) string {
	desc := strings.HasPrefix(ordering, "-")
	column, ok := jobOrderings[strings.TrimPrefix(ordering, "-")]
	if !ok {
		return "job.posted_date DESC"
	}
	if desc {
		return column + " DESC"
	}

	return column + " ASC"
}
