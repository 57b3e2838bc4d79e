package model

import "time"

type Review struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	MealID    string    `gorm:"column:meal_id;type:uuid;not null;index" json:"mealId"`
	MealName  string    `gorm:"column:meal_name;type:varchar(255)" json:"mealName"`
	UserEmail string    `gorm:"column:user_email;not null;index" json:"userEmail"`
	UserName  string    `gorm:"column:user_name;type:varchar(255)" json:"userName"`
	UserPhoto string    `gorm:"column:user_photo;type:text" json:"userPhoto"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
