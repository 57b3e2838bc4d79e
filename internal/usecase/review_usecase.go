package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"chefbazaar/internal/domain/model"
	repo "chefbazaar/internal/repository"
	"chefbazaar/internal/validator"
)

type ReviewUsecase struct {
	users   repo.UserRepository
	meals   repo.MealRepository
	reviews repo.ReviewRepository
	ids     IDGenerator
	clock   Clock
}

func NewReviewUsecase(users repo.UserRepository, meals repo.MealRepository, reviews repo.ReviewRepository, ids IDGenerator, clock Clock) *ReviewUsecase {
	return &ReviewUsecase{users: users, meals: meals, reviews: reviews, ids: ids, clock: clock}
}

type ReviewInput struct {
	MealID string
	Text   string
	Rating int
}

func (u *ReviewUsecase) ListByMeal(ctx context.Context, mealID string) ([]model.Review, error) {
	if !validator.IsValidID(mealID) {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid meal id")
	}
	items, err := u.reviews.ListByMeal(ctx, mealID)
	if err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

func (u *ReviewUsecase) ListByUser(ctx context.Context, email string) ([]model.Review, error) {
	items, err := u.reviews.ListByUser(ctx, email)
	if err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

func (u *ReviewUsecase) Latest(ctx context.Context) ([]model.Review, error) {
	items, err := u.reviews.Latest(ctx, latestLimit)
	if err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

// 投稿者名・写真はユーザーレコードから取る
func (u *ReviewUsecase) Create(ctx context.Context, email string, in ReviewInput) (model.Review, error) {
	if !validator.IsValidID(in.MealID) {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid meal id")
	}
	text, err := validator.RequireText(in.Text, 2000)
	if err != nil {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid text")
	}
	if !validator.IsValidRating(in.Rating) {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid rating")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Review{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return model.Review{}, storeError(err)
	}
	meal, err := u.meals.FindByID(ctx, in.MealID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Review{}, NewHTTPError(http.StatusNotFound, "meal not found")
	}
	if err != nil {
		return model.Review{}, storeError(err)
	}

	now := u.clock.Now()
	review := model.Review{
		ID:        u.ids.NewID(),
		MealID:    meal.ID,
		MealName:  meal.Name,
		UserEmail: user.Email,
		UserName:  user.Name,
		UserPhoto: user.PhotoURL,
		Text:      text,
		Rating:    in.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.reviews.Create(ctx, review); err != nil {
		return model.Review{}, storeError(err)
	}
	return review, nil
}

func (u *ReviewUsecase) Update(ctx context.Context, email string, reviewID string, in ReviewInput) (model.Review, error) {
	text, err := validator.RequireText(in.Text, 2000)
	if err != nil {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid text")
	}
	if !validator.IsValidRating(in.Rating) {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid rating")
	}

	review, err := u.ownedReview(ctx, email, reviewID)
	if err != nil {
		return model.Review{}, err
	}
	review.Text = strings.TrimSpace(text)
	review.Rating = in.Rating
	review.UpdatedAt = u.clock.Now()

	if err := u.reviews.Update(ctx, review); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Review{}, NewHTTPError(http.StatusNotFound, "review not found")
		}
		return model.Review{}, storeError(err)
	}
	return review, nil
}

func (u *ReviewUsecase) Delete(ctx context.Context, email string, reviewID string) error {
	if _, err := u.ownedReview(ctx, email, reviewID); err != nil {
		return err
	}
	if err := u.reviews.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "review not found")
		}
		return storeError(err)
	}
	return nil
}

func (u *ReviewUsecase) ownedReview(ctx context.Context, email string, reviewID string) (model.Review, error) {
	if !validator.IsValidID(reviewID) {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	review, err := u.reviews.FindByID(ctx, reviewID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Review{}, NewHTTPError(http.StatusNotFound, "review not found")
	}
	if err != nil {
		return model.Review{}, storeError(err)
	}
	if review.UserEmail != email {
		return model.Review{}, NewHTTPError(http.StatusForbidden, "not your review")
	}
	return review, nil
}
