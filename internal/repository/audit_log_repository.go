package repository

import (
	"context"
	"time"

	"chefbazaar/internal/domain/model"
)

// 空・nil の項目は条件に入れない
type AuditLogFilter struct {
	ActorEmail   string
	Action       *model.AuditAction
	ResourceType *model.AuditResourceType
	ResourceID   string
	Since        *time.Time
	Until        *time.Time
	Limit        int
	Offset       int
}

type AuditLogRepository interface {
	// tx 内で業務更新と一緒に書く
	Create(ctx context.Context, log model.AuditLog) error
	// 新しい順
	List(ctx context.Context, f AuditLogFilter) ([]model.AuditLog, error)
}
