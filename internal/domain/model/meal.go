package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Meal struct {
	ID                    string          `gorm:"type:uuid;primaryKey" json:"id"`
	ChefEmail             string          `gorm:"column:chef_email;not null;index" json:"chefEmail"`
	ChefID                string          `gorm:"column:chef_id;type:varchar(20);not null;index" json:"chefId"`
	ChefName              string          `gorm:"column:chef_name;type:varchar(255)" json:"chefName"`
	Name                  string          `gorm:"column:meal_name;type:varchar(255);not null" json:"mealName"`
	Description           string          `gorm:"type:text" json:"description"`
	Ingredients           []string        `gorm:"serializer:json;type:text" json:"ingredients"`
	ImageURL              string          `gorm:"column:image_url;type:text" json:"foodImage"`
	Price                 decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	DeliveryArea          string          `gorm:"column:delivery_area;type:varchar(255)" json:"deliveryArea"`
	EstimatedDeliveryTime string          `gorm:"column:estimated_delivery_time;type:varchar(100)" json:"estimatedDeliveryTime"`
	Rating                float64         `gorm:"not null;default:0" json:"rating"`
	CreatedAt             time.Time       `gorm:"not null;index" json:"createdAt"`
	UpdatedAt             time.Time       `gorm:"not null" json:"updatedAt"`
}
