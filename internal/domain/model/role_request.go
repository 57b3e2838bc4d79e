package model

import "time"

type RequestType string

const (
	RequestTypeChef  RequestType = "chef"
	RequestTypeAdmin RequestType = "admin"
)

func (t RequestType) Valid() bool {
	return t == RequestTypeChef || t == RequestTypeAdmin
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// ロール昇格の申請。
// pending は (user_email, request_type) ごとに1件だけ（部分ユニークインデックス）
type RoleRequest struct {
	ID            string        `gorm:"type:uuid;primaryKey" json:"id"`
	UserEmail     string        `gorm:"column:user_email;not null;index" json:"userEmail"`
	UserName      string        `gorm:"column:user_name;type:varchar(255)" json:"userName"`
	RequestType   RequestType   `gorm:"column:request_type;type:varchar(20);not null" json:"requestType"`
	RequestStatus RequestStatus `gorm:"column:request_status;type:varchar(20);not null;index" json:"requestStatus"`
	RequestTime   time.Time     `gorm:"column:request_time;not null;index" json:"requestTime"`
	DecidedAt     *time.Time    `gorm:"column:decided_at" json:"decidedAt,omitempty"`
	DecidedBy     string        `gorm:"column:decided_by;type:varchar(255)" json:"decidedBy,omitempty"`
}
