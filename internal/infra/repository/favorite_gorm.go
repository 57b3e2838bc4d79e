package repository

import (
	"context"

	"chefbazaar/internal/domain/model"
	repo "chefbazaar/internal/repository"

	"gorm.io/gorm"
)

type FavoriteGormRepository struct {
	db *gorm.DB
}

func NewFavoriteGormRepository(db *gorm.DB) *FavoriteGormRepository {
	return &FavoriteGormRepository{db: db}
}

func (r *FavoriteGormRepository) Create(ctx context.Context, fav model.Favorite) error {
	return translateError(r.db.WithContext(ctx).Create(&fav).Error)
}

func (r *FavoriteGormRepository) FindByID(ctx context.Context, favoriteID string) (model.Favorite, error) {
	var f model.Favorite
	if err := r.db.WithContext(ctx).Where("id = ?", favoriteID).First(&f).Error; err != nil {
		return model.Favorite{}, translateError(err)
	}
	return f, nil
}

func (r *FavoriteGormRepository) List(ctx context.Context, email string) ([]model.Favorite, error) {
	q := r.db.WithContext(ctx).Model(&model.Favorite{})
	if email != "" {
		q = q.Where("user_email = ?", email)
	}

	var items []model.Favorite
	if err := q.Order("created_at desc").Find(&items).Error; err != nil {
		return []model.Favorite{}, err
	}
	return items, nil
}

func (r *FavoriteGormRepository) Delete(ctx context.Context, favoriteID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", favoriteID).Delete(&model.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
