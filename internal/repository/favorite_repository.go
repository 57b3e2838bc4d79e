package repository

import (
	"context"

	"chefbazaar/internal/domain/model"
)

type FavoriteRepository interface {
	//同じ (user_email, meal_id) は ErrDuplicate
	Create(ctx context.Context, fav model.Favorite) error
	FindByID(ctx context.Context, favoriteID string) (model.Favorite, error)
	List(ctx context.Context, email string) ([]model.Favorite, error)
	Delete(ctx context.Context, favoriteID string) error
}
