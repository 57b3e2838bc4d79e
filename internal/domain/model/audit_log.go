package model

import "time"

// 管理者・シェフ操作の種類
type AuditAction string

const (
	//ロール申請の承認/却下
	AuditActionDecideRoleRequest AuditAction = "DECIDE_ROLE_REQUEST"
	//ユーザー状態（active/fraud）の変更
	AuditActionUpdateUserStatus AuditAction = "UPDATE_USER_STATUS"
	//注文ステータスの変更
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceRoleRequest AuditResourceType = "role_request"
	AuditResourceUser        AuditResourceType = "user"
	AuditResourceOrder       AuditResourceType = "order"
)

// 監査ログ。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作したユーザーのemail
	ActorEmail string `gorm:"column:actor_email;not null;index" json:"actorEmail"`

	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resourceType"`

	ResourceID string `gorm:"type:varchar(64);not null;index" json:"resourceId"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"beforeJson"`
	AfterJSON  string `gorm:"type:text" json:"afterJson"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}
