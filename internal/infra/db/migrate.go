package db

import (
	"context"

	"chefbazaar/internal/domain/model"

	"gorm.io/gorm"
)

// 未処理の申請は (user_email, request_type) ごとに1件
const outstandingRequestIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_role_requests_outstanding
ON role_requests (user_email, request_type) WHERE request_status = 'pending'`

// Migrate はテーブルとインデックスを作成する。
func Migrate(ctx context.Context, gormDB *gorm.DB) error {
	tx := gormDB.WithContext(ctx)
	if err := tx.AutoMigrate(
		&model.User{},
		&model.RoleRequest{},
		&model.Counter{},
		&model.Meal{},
		&model.Order{},
		&model.Payment{},
		&model.Favorite{},
		&model.Review{},
		&model.AuditLog{},
	); err != nil {
		return err
	}
	return tx.Exec(outstandingRequestIndex).Error
}
