package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Favorite struct {
	ID        string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserEmail string          `gorm:"column:user_email;not null;uniqueIndex:idx_favorites_user_meal" json:"userEmail"`
	MealID    string          `gorm:"column:meal_id;type:uuid;not null;uniqueIndex:idx_favorites_user_meal" json:"mealId"`
	MealName  string          `gorm:"column:meal_name;type:varchar(255)" json:"mealName"`
	ChefName  string          `gorm:"column:chef_name;type:varchar(255)" json:"chefName"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	CreatedAt time.Time       `gorm:"not null;index" json:"createdAt"`
}
