package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gigmarket/internal/analytics"
	"gigmarket/internal/common"
	"gigmarket/internal/entity"
	"gigmarket/internal/repo"
	"gigmarket/pkg/clock"
)

type AnalyticsService struct {
	analyticsRepo repo.Analytics
	cache         ReportCache
	clock         clock.Clock
	log           *slog.Logger
}

func NewAnalyticsService(deps *Dependencies) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: deps.Repos.Analytics,
		cache:         deps.Cache,
		clock:         deps.Clock,
		log:           deps.Logger.With(slog.String("service", "analytics")),
	}
}

// GetAnalytics reports on the employer's activity in the requested range
// against the range right before it. Reports may be served from cache.
func (s *AnalyticsService) GetAnalytics(ctx context.Context, p *entity.Principal, rng string) (*analytics.Report, error) {
	if err := authenticated(p); err != nil {
		return nil, err
	}
	if p.AccountType != common.Employer {
		return nil, ErrNotEmployer
	}
	if rng == "" {
		rng = common.RangeMonth
	}

	now := s.clock.Now()
	current, previous, err := analytics.Windows(rng, now)
	if err != nil {
		if errors.Is(err, analytics.ErrUnknownRange) {
			return nil, ErrUnknownRange
		}

		return nil, err
	}

	key := fmt.Sprintf("analytics:%s:%s:%s", p.Id, rng, now.Format("2006-01-02"))
	if s.cache != nil {
		cached, err := s.cache.GetReport(ctx, key)
		if err != nil {
			s.log.Warn("analytics cache read failed", slog.Any("error", err))
		}
		if cached != nil {
			return cached, nil
		}
	}

	facts, err := s.loadFacts(ctx, p, analytics.Window{Start: previous.Start, End: current.End})
	if err != nil {
		return nil, err
	}

	report, err := analytics.Build(rng, now, facts)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetReport(ctx, key, report); err != nil {
			s.log.Warn("analytics cache write failed", slog.Any("error", err))
		}
	}

	return report, nil
}

// the aggregates are read separately; they need not agree on one snapshot
func (s *AnalyticsService) loadFacts(ctx context.Context, p *entity.Principal, span analytics.Window) (*entity.AnalyticsFacts, error) {
	var facts entity.AnalyticsFacts
	var err error

	if facts.Completed, err = s.analyticsRepo.GetCompletedJobFacts(ctx, p.Id, span.Start, span.End); err != nil {
		return nil, fmt.Errorf("completed jobs: %w", err)
	}
	if facts.Bids, err = s.analyticsRepo.GetAcceptedBidFacts(ctx, p.Id, span.Start, span.End); err != nil {
		return nil, fmt.Errorf("accepted bids: %w", err)
	}
	if facts.Ratings, err = s.analyticsRepo.GetGivenRatingFacts(ctx, p.Id, span.Start, span.End); err != nil {
		return nil, fmt.Errorf("given ratings: %w", err)
	}
	if facts.Posted, err = s.analyticsRepo.GetPostedJobFacts(ctx, p.Id, span.Start, span.End); err != nil {
		return nil, fmt.Errorf("posted jobs: %w", err)
	}

	return &facts, nil
}
