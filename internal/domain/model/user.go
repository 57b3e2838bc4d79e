package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleChef  Role = "chef"
	RoleAdmin Role = "admin"
	// 初期データの管理者は "Admin" 表記で登録されている
	RoleAdminLegacy Role = "Admin"
)

// 管理者ロールか（admin / Admin の両方を許可）
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleAdminLegacy
}

type UserStatus string

const (
	UserStatusActive UserStatus = "active"
	//不正ユーザー（注文・料理登録を禁止）
	UserStatusFraud UserStatus = "fraud"
)

type User struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string     `gorm:"uniqueIndex;not null" json:"email"`
	Name       string     `gorm:"type:varchar(255)" json:"name"`
	PhotoURL   string     `gorm:"column:photo_url;type:text" json:"photoURL"`
	Role       Role       `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	UserStatus UserStatus `gorm:"column:user_status;type:varchar(20);not null;default:'active'" json:"userStatus"`
	//一度だけ割り当てる（CHEF_001 など）
	ChefID    *string   `gorm:"column:chef_id;type:varchar(20);uniqueIndex" json:"chefId,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
