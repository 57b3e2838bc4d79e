package repository

import (
	"context"
	"errors"
	"time"

	"chefbazaar/internal/domain/model"
	repo "chefbazaar/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CounterGormRepository struct {
	db *gorm.DB
}

func NewCounterGormRepository(db *gorm.DB) *CounterGormRepository {
	return &CounterGormRepository{db: db}
}

// 加算と読み出しを1文で行う（読んでから書く、はしない）
func (r *CounterGormRepository) Next(ctx context.Context, name string) (int64, error) {
	var seq int64
	res := r.db.WithContext(ctx).
		Raw("UPDATE counters SET seq = seq + 1, updated_at = ? WHERE name = ? RETURNING seq", time.Now(), name).
		Scan(&seq)

	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, repo.ErrCounterNotProvisioned
	}
	return seq, nil
}

func (r *CounterGormRepository) Current(ctx context.Context, name string) (int64, error) {
	var c model.Counter
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, repo.ErrCounterNotProvisioned
	}
	if err != nil {
		return 0, err
	}
	return c.Seq, nil
}

// 既存の値は上書きしない
func (r *CounterGormRepository) Provision(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Counter{Name: name, Seq: 0, UpdatedAt: time.Now()}).Error
}
