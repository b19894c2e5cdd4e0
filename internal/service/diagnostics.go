package service

import (
	"context"

	"gigmarket/internal/repo"
)

type DiagnosticsService struct {
	diagnosticsRepo repo.Diagnostics
}

func NewDiagnosticsService(deps *Dependencies) *DiagnosticsService {
	return &DiagnosticsService{deps.Repos.Diagnostics}
}

func (s *DiagnosticsService) Ping(ctx context.Context) error {
	if err := s.diagnosticsRepo.Ping(ctx); err != nil {
		return err
	}

	return nil
}
