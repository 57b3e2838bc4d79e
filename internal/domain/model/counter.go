package model

import "time"

// 連番カウンター。名前ごとに1行（事前に作成しておく）
type Counter struct {
	Name      string    `gorm:"type:varchar(50);primaryKey" json:"name"`
	Seq       int64     `gorm:"not null;default:0" json:"seq"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
