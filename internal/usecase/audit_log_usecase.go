package usecase

import (
	"context"
	"net/http"
	"strings"

	"chefbazaar/internal/domain/model"
	repo "chefbazaar/internal/repository"
)

type AuditLogUsecase struct {
	logs repo.AuditLogRepository
}

func NewAuditLogUsecase(logs repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{logs: logs}
}

type ListAuditLogsInput struct {
	ActorEmail   string
	Action       string
	ResourceType string
	ResourceID   string
	Limit        int
	Offset       int
}

// 管理者向けの監査ログ一覧（新しい順）
func (u *AuditLogUsecase) List(ctx context.Context, in ListAuditLogsInput) ([]model.AuditLog, error) {
	if in.Limit < 0 || in.Limit > 200 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if in.Offset < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid offset")
	}

	f := repo.AuditLogFilter{
		ActorEmail: strings.TrimSpace(in.ActorEmail),
		ResourceID: strings.TrimSpace(in.ResourceID),
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	if v := strings.TrimSpace(in.Action); v != "" {
		a := model.AuditAction(v)
		f.Action = &a
	}
	if v := strings.TrimSpace(in.ResourceType); v != "" {
		rt := model.AuditResourceType(v)
		f.ResourceType = &rt
	}

	logs, err := u.logs.List(ctx, f)
	if err != nil {
		return nil, storeError(err)
	}
	return logs, nil
}
