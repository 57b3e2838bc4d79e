package repository

import (
	"context"

	"chefbazaar/internal/domain/model"
)

// 一覧検索
type MealListQuery struct {
	Page      int
	Limit     int
	Search    string
	Sort      string
	ChefEmail string
}

type MealRepository interface {
	List(ctx context.Context, q MealListQuery) ([]model.Meal, int64, error)
	Latest(ctx context.Context, limit int) ([]model.Meal, error)
	FindByID(ctx context.Context, mealID string) (model.Meal, error)
	Create(ctx context.Context, meal model.Meal) error
	Update(ctx context.Context, meal model.Meal) error
	Delete(ctx context.Context, mealID string) error
}
