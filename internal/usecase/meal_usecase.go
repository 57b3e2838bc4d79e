package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"chefbazaar/internal/domain/model"
	repo "chefbazaar/internal/repository"
	"chefbazaar/internal/validator"

	"github.com/shopspring/decimal"
)

const latestLimit = 8

type MealUsecase struct {
	users repo.UserRepository
	meals repo.MealRepository
	ids   IDGenerator
	clock Clock
}

func NewMealUsecase(users repo.UserRepository, meals repo.MealRepository, ids IDGenerator, clock Clock) *MealUsecase {
	return &MealUsecase{users: users, meals: meals, ids: ids, clock: clock}
}

// GET /meals の入力
type ListMealsInput struct {
	Page      int
	Limit     int
	Search    string
	Sort      string
	ChefEmail string
}

type MealListOutput struct {
	Items []model.Meal `json:"meals"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type MealInput struct {
	Name                  string
	Description           string
	Ingredients           []string
	ImageURL              string
	Price                 decimal.Decimal
	DeliveryArea          string
	EstimatedDeliveryTime string
	Rating                float64
}

func (u *MealUsecase) List(ctx context.Context, in ListMealsInput) (MealListOutput, error) {
	if in.Page < 1 {
		return MealListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return MealListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Search) > 100 {
		return MealListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid search")
	}
	switch in.Sort {
	case "", "low", "high":
	default:
		return MealListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.meals.List(ctx, repo.MealListQuery{
		Page:      in.Page,
		Limit:     in.Limit,
		Search:    strings.TrimSpace(in.Search),
		Sort:      in.Sort,
		ChefEmail: strings.TrimSpace(in.ChefEmail),
	})
	if err != nil {
		return MealListOutput{}, storeError(err)
	}
	return MealListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *MealUsecase) Latest(ctx context.Context) ([]model.Meal, error) {
	items, err := u.meals.Latest(ctx, latestLimit)
	if err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

func (u *MealUsecase) Get(ctx context.Context, mealID string) (model.Meal, error) {
	if !validator.IsValidID(mealID) {
		return model.Meal{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	meal, err := u.meals.FindByID(ctx, mealID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Meal{}, NewHTTPError(http.StatusNotFound, "meal not found")
	}
	if err != nil {
		return model.Meal{}, storeError(err)
	}
	return meal, nil
}

// 料理登録（シェフ本人の情報はユーザーレコードから取る）
func (u *MealUsecase) Create(ctx context.Context, chefEmail string, in MealInput) (model.Meal, error) {
	if err := validateMealInput(in); err != nil {
		return model.Meal{}, err
	}

	chef, err := u.users.FindByEmail(ctx, chefEmail)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Meal{}, NewHTTPError(http.StatusForbidden, "forbidden access")
	}
	if err != nil {
		return model.Meal{}, storeError(err)
	}
	if err := EnsureNotFraud(chef); err != nil {
		return model.Meal{}, err
	}
	if chef.ChefID == nil || *chef.ChefID == "" {
		return model.Meal{}, NewHTTPError(http.StatusForbidden, "chef only")
	}

	now := u.clock.Now()
	meal := model.Meal{
		ID:                    u.ids.NewID(),
		ChefEmail:             chef.Email,
		ChefID:                *chef.ChefID,
		ChefName:              chef.Name,
		Name:                  strings.TrimSpace(in.Name),
		Description:           strings.TrimSpace(in.Description),
		Ingredients:           cleanList(in.Ingredients),
		ImageURL:              strings.TrimSpace(in.ImageURL),
		Price:                 in.Price,
		DeliveryArea:          strings.TrimSpace(in.DeliveryArea),
		EstimatedDeliveryTime: strings.TrimSpace(in.EstimatedDeliveryTime),
		Rating:                in.Rating,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := u.meals.Create(ctx, meal); err != nil {
		return model.Meal{}, storeError(err)
	}
	return meal, nil
}

func (u *MealUsecase) Update(ctx context.Context, chefEmail string, mealID string, in MealInput) (model.Meal, error) {
	if err := validateMealInput(in); err != nil {
		return model.Meal{}, err
	}
	meal, err := u.ownedMeal(ctx, chefEmail, mealID)
	if err != nil {
		return model.Meal{}, err
	}

	meal.Name = strings.TrimSpace(in.Name)
	meal.Description = strings.TrimSpace(in.Description)
	meal.Ingredients = cleanList(in.Ingredients)
	meal.ImageURL = strings.TrimSpace(in.ImageURL)
	meal.Price = in.Price
	meal.DeliveryArea = strings.TrimSpace(in.DeliveryArea)
	meal.EstimatedDeliveryTime = strings.TrimSpace(in.EstimatedDeliveryTime)
	meal.Rating = in.Rating
	meal.UpdatedAt = u.clock.Now()

	if err := u.meals.Update(ctx, meal); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Meal{}, NewHTTPError(http.StatusNotFound, "meal not found")
		}
		return model.Meal{}, storeError(err)
	}
	return meal, nil
}

func (u *MealUsecase) Delete(ctx context.Context, chefEmail string, mealID string) error {
	if _, err := u.ownedMeal(ctx, chefEmail, mealID); err != nil {
		return err
	}
	if err := u.meals.Delete(ctx, mealID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "meal not found")
		}
		return storeError(err)
	}
	return nil
}

func (u *MealUsecase) ownedMeal(ctx context.Context, chefEmail string, mealID string) (model.Meal, error) {
	meal, err := u.Get(ctx, mealID)
	if err != nil {
		return model.Meal{}, err
	}
	if meal.ChefEmail != chefEmail {
		return model.Meal{}, NewHTTPError(http.StatusForbidden, "not your meal")
	}
	return meal, nil
}

func validateMealInput(in MealInput) error {
	if _, err := validator.RequireText(in.Name, 255); err != nil {
		return NewHTTPError(http.StatusBadRequest, "invalid meal name")
	}
	if !in.Price.IsPositive() {
		return NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.Rating < 0 || in.Rating > 5 {
		return NewHTTPError(http.StatusBadRequest, "invalid rating")
	}
	return nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
