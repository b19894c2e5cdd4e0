package pgdb

import (
	"context"
	"time"

	"gigmarket/internal/entity"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type SavedJobRepo struct {
	Conn
}

func NewSavedJobRepo(c Conn) *SavedJobRepo {
	return &SavedJobRepo{c}
}

// CreateSavedJob returns repo_errors.ErrAlreadyExists when the bookmark is present.
func (r *SavedJobRepo) CreateSavedJob(ctx context.Context, userId uuid.UUID, jobId uuid.UUID, at time.Time) (*entity.SavedJob, error) {
	insert := r.SqlBuilder.
		Insert("saved_job").
		Columns("user_id", "job_id", "saved_at").
		Values(userId, jobId, at)

	var id uuid.UUID
	if err := r.insertReturningId(ctx, &id, insert); err != nil {
		return nil, err
	}

	return &entity.SavedJob{Id: id, UserId: userId, JobId: jobId, SavedAt: at}, nil
}

func (r *SavedJobRepo) GetSavedJob(ctx context.Context, userId uuid.UUID, jobId uuid.UUID) (*entity.SavedJob, error) {
	var saved entity.SavedJob
	err := r.get(ctx, &saved, r.SqlBuilder.
		Select("id", "user_id", "job_id", "saved_at").
		From("saved_job").
		Where(squirrel.Eq{"user_id": userId, "job_id": jobId}))
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

func (r *SavedJobRepo) DeleteSavedJob(ctx context.Context, userId uuid.UUID, jobId uuid.UUID) error {
	return r.execOne(ctx, r.SqlBuilder.
		Delete("saved_job").
		Where(squirrel.Eq{"user_id": userId, "job_id": jobId}))
}

func (r *SavedJobRepo) GetUserSavedJobs(ctx context.Context, userId uuid.UUID) ([]entity.SavedJob, error) {
	saved := make([]entity.SavedJob, 0)
	err := r.selectAll(ctx, &saved, r.SqlBuilder.
		Select("id", "user_id", "job_id", "saved_at").
		From("saved_job").
		Where(squirrel.Eq{"user_id": userId}).
		OrderBy("saved_at DESC"))
	if err != nil {
		return nil, err
	}

	return saved, nil
}
