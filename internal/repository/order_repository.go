package repository

import (
	"context"

	"chefbazaar/internal/domain/model"

	"github.com/shopspring/decimal"
)

type OrderListFilter struct {
	UserEmail string
	MealID    string
	ChefID    string
}

type OrderStats struct {
	TotalPayment    decimal.Decimal
	DeliveredOrders int64
	PendingOrders   int64
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) error
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	List(ctx context.Context, f OrderListFilter) ([]model.Order, error)

	// 現在のステータスが from のどれかのときだけ更新（payment が nil なら支払い状態は触らない）
	UpdateStatusIf(ctx context.Context, orderID string, from []model.OrderStatus, to model.OrderStatus, payment *model.PaymentStatus) (bool, error)
	UpdatePaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) error

	//管理画面の集計
	Stats(ctx context.Context) (OrderStats, error)
}
