package repository

import (
	"context"

	"chefbazaar/internal/domain/model"
	repo "chefbazaar/internal/repository"

	"gorm.io/gorm"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) Create(ctx context.Context, review model.Review) error {
	return translateError(r.db.WithContext(ctx).Create(&review).Error)
}

func (r *ReviewGormRepository) FindByID(ctx context.Context, reviewID string) (model.Review, error) {
	var rv model.Review
	if err := r.db.WithContext(ctx).Where("id = ?", reviewID).First(&rv).Error; err != nil {
		return model.Review{}, translateError(err)
	}
	return rv, nil
}

func (r *ReviewGormRepository) ListByMeal(ctx context.Context, mealID string) ([]model.Review, error) {
	var items []model.Review
	err := r.db.WithContext(ctx).Where("meal_id = ?", mealID).Order("created_at desc").Find(&items).Error
	if err != nil {
		return []model.Review{}, err
	}
	return items, nil
}

func (r *ReviewGormRepository) ListByUser(ctx context.Context, email string) ([]model.Review, error) {
	q := r.db.WithContext(ctx).Model(&model.Review{})
	if email != "" {
		q = q.Where("user_email = ?", email)
	}

	var items []model.Review
	if err := q.Order("created_at desc").Find(&items).Error; err != nil {
		return []model.Review{}, err
	}
	return items, nil
}

func (r *ReviewGormRepository) Latest(ctx context.Context, limit int) ([]model.Review, error) {
	var items []model.Review
	if err := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&items).Error; err != nil {
		return []model.Review{}, err
	}
	return items, nil
}

// 本文と評価だけ更新
func (r *ReviewGormRepository) Update(ctx context.Context, review model.Review) error {
	res := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]interface{}{
			"text":       review.Text,
			"rating":     review.Rating,
			"updated_at": review.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ReviewGormRepository) Delete(ctx context.Context, reviewID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", reviewID).Delete(&model.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
