package service

import (
	"context"

	"gigmarket/internal/entity"
	"gigmarket/internal/repo"
)

type CatalogService struct {
	catalogRepo repo.Catalog
}

func NewCatalogService(deps *Dependencies) *CatalogService {
	return &CatalogService{deps.Repos.Catalog}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.JobCategory, error) {
	return s.catalogRepo.GetCategories(ctx)
}

func (s *CatalogService) ListSkills(ctx context.Context, search string) ([]entity.Skill, error) {
	return s.catalogRepo.GetSkills(ctx, search)
}
