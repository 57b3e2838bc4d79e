package repository

import (
	"context"
	"time"

	"chefbazaar/internal/domain/model"
	repo "chefbazaar/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) error {
	return translateError(r.db.WithContext(ctx).Create(&order).Error)
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if err != nil {
		return model.Order{}, translateError(err)
	}
	return o, nil
}

func (r *OrderGormRepository) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})

	if f.UserEmail != "" {
		q = q.Where("user_email = ?", f.UserEmail)
	}
	if f.MealID != "" {
		q = q.Where("meal_id = ?", f.MealID)
	}
	if f.ChefID != "" {
		q = q.Where("chef_id = ?", f.ChefID)
	}

	var items []model.Order
	if err := q.Order("order_time desc").Find(&items).Error; err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

// 条件付き更新。同時に別の遷移が走っても片方しか通らない
func (r *OrderGormRepository) UpdateStatusIf(ctx context.Context, orderID string, from []model.OrderStatus, to model.OrderStatus, payment *model.PaymentStatus) (bool, error) {
	updates := map[string]interface{}{
		"order_status": to,
		"updated_at":   time.Now(),
	}
	if payment != nil {
		updates["payment_status"] = *payment
	}

	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND order_status IN ?", orderID, from).
		Updates(updates)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *OrderGormRepository) UpdatePaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"payment_status": status,
			"updated_at":     time.Now(),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) Stats(ctx context.Context) (repo.OrderStats, error) {
	var out repo.OrderStats

	//支払い済み注文の合計（単価 × 数量）
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(price * quantity), 0) AS total FROM orders WHERE payment_status = ?", model.PaymentStatusPaid).
		Scan(&row).Error
	if err != nil {
		return repo.OrderStats{}, err
	}
	out.TotalPayment = row.Total

	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_status = ?", model.OrderStatusDelivered).
		Count(&out.DeliveredOrders).Error; err != nil {
		return repo.OrderStats{}, err
	}

	//未配達（キャンセルも含む）
	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_status <> ?", model.OrderStatusDelivered).
		Count(&out.PendingOrders).Error; err != nil {
		return repo.OrderStats{}, err
	}

	return out, nil
}
