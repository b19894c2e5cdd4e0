package pgdb

import (
	"context"

	"gigmarket/internal/entity"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var availabilityColumns = []string{
	"id", "worker_id", "day_of_week", "start_time::text AS start_time", "end_time::text AS end_time", "is_available",
}

type AvailabilityRepo struct {
	Conn
}

func NewAvailabilityRepo(c Conn) *AvailabilityRepo {
	return &AvailabilityRepo{c}
}

func (r *AvailabilityRepo) GetWorkerAvailability(ctx context.Context, workerId uuid.UUID) ([]entity.WorkerAvailability, error) {
	slots := make([]entity.WorkerAvailability, 0)
	err := r.selectAll(ctx, &slots, r.SqlBuilder.
		Select(availabilityColumns...).
		From("worker_availability").
		Where(squirrel.Eq{"worker_id": workerId}).
		OrderBy("day_of_week", "start_time"))
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *AvailabilityRepo) GetAvailabilityById(ctx context.Context, id uuid.UUID, workerId uuid.UUID) (*entity.WorkerAvailability, error) {
	var slot entity.WorkerAvailability
	err := r.get(ctx, &slot, r.SqlBuilder.
		Select(availabilityColumns...).
		From("worker_availability").
		Where(squirrel.Eq{"id": id, "worker_id": workerId}))
	if err != nil {
		return nil, err
	}

	return &slot, nil
}

func (r *AvailabilityRepo) CreateAvailability(ctx context.Context, slot *entity.WorkerAvailability) (uuid.UUID, error) {
	insert := r.SqlBuilder.
		Insert("worker_availability").
		Columns("worker_id", "day_of_week", "start_time", "end_time", "is_available").
		Values(slot.WorkerId, slot.DayOfWeek, slot.StartTime, slot.EndTime, slot.IsAvailable)

	var id uuid.UUID
	if err := r.insertReturningId(ctx, &id, insert); err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

func (r *AvailabilityRepo) EditAvailability(ctx context.Context, slot *entity.WorkerAvailability) error {
	return r.execOne(ctx, r.SqlBuilder.
		Update("worker_availability").
		Set("day_of_week", slot.DayOfWeek).
		Set("start_time", slot.StartTime).
		Set("end_time", slot.EndTime).
		Set("is_available", slot.IsAvailable).
		Where(squirrel.Eq{"id": slot.Id, "worker_id": slot.WorkerId}))
}

func (r *AvailabilityRepo) DeleteAvailability(ctx context.Context, id uuid.UUID, workerId uuid.UUID) error {
	return r.execOne(ctx, r.SqlBuilder.
		Delete("worker_availability").
		Where(squirrel.Eq{"id": id, "worker_id": workerId}))
}
