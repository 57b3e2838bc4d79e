package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusDelivered OrderStatus = "delivered"
)

// delivered / cancelled は終端
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	//シェフが受注して支払い待ち
	PaymentStatusPayment   PaymentStatus = "payment"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

type Order struct {
	ID              string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserEmail       string          `gorm:"column:user_email;not null;index" json:"userEmail"`
	MealID          string          `gorm:"column:meal_id;type:uuid;not null;index" json:"mealId"`
	MealName        string          `gorm:"column:meal_name;type:varchar(255)" json:"mealName"`
	ChefID          string          `gorm:"column:chef_id;type:varchar(20);not null;index" json:"chefId"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity        int64           `gorm:"not null" json:"quantity"`
	DeliveryAddress string          `gorm:"column:delivery_address;type:text" json:"deliveryAddress"`
	OrderStatus     OrderStatus     `gorm:"column:order_status;type:varchar(20);not null;index" json:"orderStatus"`
	PaymentStatus   PaymentStatus   `gorm:"column:payment_status;type:varchar(20);not null;index" json:"paymentStatus"`
	OrderTime       time.Time       `gorm:"column:order_time;not null;index" json:"orderTime"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updatedAt"`
}

// 支払い総額（単価 × 数量）
func (o Order) Total() decimal.Decimal {
	return o.Price.Mul(decimal.NewFromInt(o.Quantity))
}
