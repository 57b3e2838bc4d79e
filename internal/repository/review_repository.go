package repository

import (
	"context"

	"chefbazaar/internal/domain/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review model.Review) error
	FindByID(ctx context.Context, reviewID string) (model.Review, error)
	ListByMeal(ctx context.Context, mealID string) ([]model.Review, error)
	ListByUser(ctx context.Context, email string) ([]model.Review, error)
	Latest(ctx context.Context, limit int) ([]model.Review, error)
	Update(ctx context.Context, review model.Review) error
	Delete(ctx context.Context, reviewID string) error
}
