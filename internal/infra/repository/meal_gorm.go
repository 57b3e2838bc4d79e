package repository

import (
	"context"
	"strings"

	"chefbazaar/internal/domain/model"
	repo "chefbazaar/internal/repository"

	"gorm.io/gorm"
)

type MealGormRepository struct {
	db *gorm.DB
}

// DI
func NewMealGormRepository(db *gorm.DB) *MealGormRepository {
	return &MealGormRepository{db: db}
}

// 検索/ソート/ページング付きで返す。
func (r *MealGormRepository) List(ctx context.Context, q repo.MealListQuery) ([]model.Meal, int64, error) {
	var meals []model.Meal
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Meal{})

	if q.ChefEmail != "" {
		tx = tx.Where("chef_email = ?", q.ChefEmail)
	}

	// シェフ名かシェフIDの部分一致（大文字小文字は区別しない）
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(chef_name) LIKE ? OR LOWER(chef_id) LIKE ?", like, like)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Meal{}, 0, err
	}

	switch q.Sort {
	case "low":
		tx = tx.Order("price asc").Order("id asc")
	case "high":
		tx = tx.Order("price desc").Order("id desc")
	default:
		tx = tx.Order("created_at desc").Order("id desc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&meals).Error; err != nil {
		return []model.Meal{}, 0, err
	}

	return meals, total, nil
}

func (r *MealGormRepository) Latest(ctx context.Context, limit int) ([]model.Meal, error) {
	var meals []model.Meal
	err := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&meals).Error
	if err != nil {
		return []model.Meal{}, err
	}
	return meals, nil
}

// IDで料理を取得
func (r *MealGormRepository) FindByID(ctx context.Context, mealID string) (model.Meal, error) {
	var m model.Meal
	err := r.db.WithContext(ctx).Where("id = ?", mealID).First(&m).Error
	if err != nil {
		return model.Meal{}, translateError(err)
	}
	return m, nil
}

func (r *MealGormRepository) Create(ctx context.Context, meal model.Meal) error {
	return translateError(r.db.WithContext(ctx).Create(&meal).Error)
}

// 作成者・作成日時以外を更新（ingredients は serializer を通すため struct で渡す）
func (r *MealGormRepository) Update(ctx context.Context, meal model.Meal) error {
	res := r.db.WithContext(ctx).
		Model(&model.Meal{}).
		Where("id = ?", meal.ID).
		Select("meal_name", "description", "ingredients", "image_url", "price",
			"delivery_area", "estimated_delivery_time", "rating", "updated_at").
		Updates(&meal)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *MealGormRepository) Delete(ctx context.Context, mealID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", mealID).Delete(&model.Meal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
