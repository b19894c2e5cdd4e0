package pgdb

import (
	"context"

	"gigmarket/internal/entity"

	"github.com/Masterminds/squirrel"
)

type CatalogRepo struct {
	Conn
}

func NewCatalogRepo(c Conn) *CatalogRepo {
	return &CatalogRepo{c}
}

func (r *CatalogRepo) GetCategories(ctx context.Context) ([]entity.JobCategory, error) {
	categories := make([]entity.JobCategory, 0)
	err := r.selectAll(ctx, &categories, r.SqlBuilder.
		Select("id", "name", "display_name", "icon", "description").
		From("job_category").
		OrderBy("display_name"))
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *CatalogRepo) GetSkills(ctx context.Context, search string) ([]entity.Skill, error) {
	q := r.SqlBuilder.
		Select("id", "name", "category_id").
		From("skill").
		OrderBy("name")
	if search != "" {
		q = q.Where(squirrel.ILike{"name": "%" + search + "%"})
	}

	skills := make([]entity.Skill, 0)
	if err := r.selectAll(ctx, &skills, q); err != nil {
		return nil, err
	}

	return skills, nil
}
