package usecase

import (
	"context"
	"errors"
	"net/http"

	"chefbazaar/internal/domain/model"
	repo "chefbazaar/internal/repository"
	"chefbazaar/internal/validator"
)

type FavoriteUsecase struct {
	meals     repo.MealRepository
	favorites repo.FavoriteRepository
	ids       IDGenerator
	clock     Clock
}

func NewFavoriteUsecase(meals repo.MealRepository, favorites repo.FavoriteRepository, ids IDGenerator, clock Clock) *FavoriteUsecase {
	return &FavoriteUsecase{meals: meals, favorites: favorites, ids: ids, clock: clock}
}

func (u *FavoriteUsecase) List(ctx context.Context, email string) ([]model.Favorite, error) {
	items, err := u.favorites.List(ctx, email)
	if err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

// お気に入り追加（同じ料理は 409）
func (u *FavoriteUsecase) Add(ctx context.Context, email string, mealID string) (model.Favorite, error) {
	// 形式チェックを先に（DBは見ない）
	if !validator.IsValidID(mealID) {
		return model.Favorite{}, NewHTTPError(http.StatusBadRequest, "invalid meal id")
	}
	meal, err := u.meals.FindByID(ctx, mealID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Favorite{}, NewHTTPError(http.StatusNotFound, "meal not found")
	}
	if err != nil {
		return model.Favorite{}, storeError(err)
	}

	fav := model.Favorite{
		ID:        u.ids.NewID(),
		UserEmail: email,
		MealID:    meal.ID,
		MealName:  meal.Name,
		ChefName:  meal.ChefName,
		Price:     meal.Price,
		CreatedAt: u.clock.Now(),
	}
	if err := u.favorites.Create(ctx, fav); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return model.Favorite{}, NewHTTPError(http.StatusConflict, "already in favorites")
		}
		return model.Favorite{}, storeError(err)
	}
	return fav, nil
}

func (u *FavoriteUsecase) Remove(ctx context.Context, email string, favoriteID string) error {
	if !validator.IsValidID(favoriteID) {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	fav, err := u.favorites.FindByID(ctx, favoriteID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "favorite not found")
	}
	if err != nil {
		return storeError(err)
	}
	if fav.UserEmail != email {
		return NewHTTPError(http.StatusForbidden, "not your favorite")
	}
	if err := u.favorites.Delete(ctx, favoriteID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "favorite not found")
		}
		return storeError(err)
	}
	return nil
}
