package service

import (
	"context"

	"gigmarket/internal/common"
	"gigmarket/internal/entity"
	"gigmarket/internal/repo"

	"github.com/google/uuid"
)

type DashboardService struct {
	dashboardRepo repo.Dashboard
	userRepo      repo.User
}

func NewDashboardService(deps *Dependencies) *DashboardService {
	return &DashboardService{
		dashboardRepo: deps.Repos.Dashboard,
		userRepo:      deps.Repos.User,
	}
}

func (s *DashboardService) DashboardStats(ctx context.Context, p *entity.Principal) (*entity.Dashboard, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}

	switch p.AccountType {
	case common.Employer:
		return s.employerDashboard(ctx, p.Id)
	case common.JobSeeker:
		return s.workerDashboard(ctx, p.Id)
	default:
		return nil, ErrNoDashboard
	}
}

func (s *DashboardService) employerDashboard(ctx context.Context, userId uuid.UUID) (*entity.Dashboard, error) {
	stats, err := s.dashboardRepo.GetEmployerDashboard(ctx, userId)
	if err != nil {
		return nil, err
	}

	return &entity.Dashboard{AccountType: common.Employer, Employer: stats}, nil
}

func (s *DashboardService) workerDashboard(ctx context.Context, userId uuid.UUID) (*entity.Dashboard, error) {
	stats, err := s.dashboardRepo.GetWorkerDashboard(ctx, userId)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserById(ctx, userId)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	stats.AverageRating = user.Rating
	stats.TotalReviews = user.TotalReviews

	return &entity.Dashboard{AccountType: common.JobSeeker, Worker: stats}, nil
}
