package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 決済記録。外部決済1件につき1行、作成後は変更しない。
// transaction_id が冪等キー。
type Payment struct {
	ID            string          `gorm:"type:uuid;primaryKey" json:"id"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency      string          `gorm:"type:varchar(10);not null" json:"currency"`
	CustomerEmail string          `gorm:"column:customer_email;not null;index" json:"customerEmail"`
	OrderID       string          `gorm:"column:order_id;type:uuid;not null;index" json:"orderId"`
	MealName      string          `gorm:"column:meal_name;type:varchar(255)" json:"mealName"`
	TransactionID string          `gorm:"column:transaction_id;type:varchar(255);not null;uniqueIndex" json:"transactionId"`
	SessionID     string          `gorm:"column:session_id;type:varchar(255)" json:"sessionId"`
	PaymentStatus string          `gorm:"column:payment_status;type:varchar(20);not null" json:"paymentStatus"`
	PaidAt        time.Time       `gorm:"column:paid_at;not null" json:"paidAt"`
}
