package service

import (
	"context"
	"errors"
	"time"

	"gigmarket/internal/entity"
	"gigmarket/internal/repo"
	"gigmarket/internal/repo/repo_errors"

	"github.com/google/uuid"
)

const slotTimeLayout = "15:04:05"

// AvailabilityService stores weekly slots. Nothing else reads them.
type AvailabilityService struct {
	availabilityRepo repo.Availability
}

func NewAvailabilityService(deps *Dependencies) *AvailabilityService {
	return &AvailabilityService{deps.Repos.Availability}
}

func (s *AvailabilityService) ListAvailability(ctx context.Context, p *entity.Principal) ([]entity.WorkerAvailability, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}

	return s.availabilityRepo.GetWorkerAvailability(ctx, p.Id)
}

func (s *AvailabilityService) CreateAvailability(ctx context.Context, p *entity.Principal, slot *entity.WorkerAvailability) (*entity.WorkerAvailability, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}
	if err := normalizeSlot(slot); err != nil {
		return nil, err
	}
	slot.WorkerId = p.Id

	id, err := s.availabilityRepo.CreateAvailability(ctx, slot)
	if err != nil {
		if errors.Is(err, repo_errors.ErrAlreadyExists) {
			return nil, ErrAvailabilityExists
		}

		return nil, err
	}

	return s.availabilityRepo.GetAvailabilityById(ctx, id, p.Id)
}

func (s *AvailabilityService) UpdateAvailability(ctx context.Context, p *entity.Principal, id uuid.UUID, slot *entity.WorkerAvailability) (*entity.WorkerAvailability, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}
	if err := normalizeSlot(slot); err != nil {
		return nil, err
	}
	slot.Id = id
	slot.WorkerId = p.Id

	if err := s.availabilityRepo.EditAvailability(ctx, slot); err != nil {
		if errors.Is(err, repo_errors.ErrAlreadyExists) {
			return nil, ErrAvailabilityExists
		}

		return nil, notFoundAs(err, ErrAvailabilityNotFound)
	}

	return s.availabilityRepo.GetAvailabilityById(ctx, id, p.Id)
}

// DeleteAvailability only touches the caller's own slots; another worker's
// slot id is reported as not found.
func (s *AvailabilityService) DeleteAvailability(ctx context.Context, p *entity.Principal, id uuid.UUID) error {
	if err := authenticated(p); err != nil {
		return err
	}

	if err := s.availabilityRepo.DeleteAvailability(ctx, id, p.Id); err != nil {
		return notFoundAs(err, ErrAvailabilityNotFound)
	}

	return nil
}

// normalizeSlot accepts HH:MM or HH:MM:SS and rewrites both ends as HH:MM:SS.
func normalizeSlot(slot *entity.WorkerAvailability) error {
	if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
		return ErrInvalidSlot
	}

	start, err := parseSlotTime(slot.StartTime)
	if err != nil {
		return ErrInvalidSlot
	}
	end, err := parseSlotTime(slot.EndTime)
	if err != nil {
		return ErrInvalidSlot
	}
	if !end.After(start) {
		return ErrInvalidSlot
	}

	slot.StartTime = start.Format(slotTimeLayout)
	slot.EndTime = end.Format(slotTimeLayout)

	return nil
}

func parseSlotTime(s string) (time.Time, error) {
	if t, err := time.Parse(slotTimeLayout, s); err == nil {
		return t, nil
	}

	return time.Parse("15:04", s)
}
