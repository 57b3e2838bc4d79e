package usecase

import (
	"encoding/json"
	"time"

	"chefbazaar/internal/domain/model"
)

// 監査ログ用にJSON文字列へ
func auditJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func newAuditLog(actor string, action model.AuditAction, rt model.AuditResourceType, id string, before, after any, at time.Time) model.AuditLog {
	return model.AuditLog{
		ActorEmail:   actor,
		Action:       action,
		ResourceType: rt,
		ResourceID:   id,
		BeforeJSON:   auditJSON(before),
		AfterJSON:    auditJSON(after),
		CreatedAt:    at,
	}
}
