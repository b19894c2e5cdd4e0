package pgdb

import (
	"context"

	"gigmarket/internal/entity"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserRepo struct {
	Conn
}

func NewUserRepo(c Conn) *UserRepo {
	return &UserRepo{c}
}

var userColumns = []string{
	"id", "email", "first_name", "last_name", "account_type", "company_name",
	"hourly_rate", "rating", "total_reviews", "date_joined",
}

func (r *UserRepo) GetUserById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.get(ctx, &user, r.SqlBuilder.
		Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepo) GetUserByIdForUpdate(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.get(ctx, &user, r.SqlBuilder.
		Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE"))
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepo) UpdateUserRating(ctx context.Context, id uuid.UUID, rating decimal.Decimal, totalReviews int) error {
	return r.execOne(ctx, r.SqlBuilder.
		Update("users").
		Set("rating", rating).
		Set("total_reviews", totalReviews).
		Where(squirrel.Eq{"id": id}))
}
