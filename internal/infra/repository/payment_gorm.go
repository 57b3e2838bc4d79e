package repository

import (
	"context"
	"errors"

	"chefbazaar/internal/domain/model"

	"gorm.io/gorm"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

// transaction_id のユニーク違反は ErrDuplicate
func (r *PaymentGormRepository) Create(ctx context.Context, payment model.Payment) error {
	return translateError(r.db.WithContext(ctx).Create(&payment).Error)
}

func (r *PaymentGormRepository) FindByTransactionID(ctx context.Context, transactionID string) (model.Payment, bool, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Payment{}, false, nil
	}
	if err != nil {
		return model.Payment{}, false, err
	}
	return p, true, nil
}

func (r *PaymentGormRepository) List(ctx context.Context, email string) ([]model.Payment, error) {
	q := r.db.WithContext(ctx).Model(&model.Payment{})
	if email != "" {
		q = q.Where("customer_email = ?", email)
	}

	var items []model.Payment
	if err := q.Order("paid_at desc").Find(&items).Error; err != nil {
		return []model.Payment{}, err
	}
	return items, nil
}
