package repository

import (
	"context"
	"time"

	"chefbazaar/internal/domain/model"
)

type RoleRequestRepository interface {
	//pending の重複は ErrDuplicate
	Create(ctx context.Context, req model.RoleRequest) error
	FindByID(ctx context.Context, requestID string) (model.RoleRequest, error)
	FindPending(ctx context.Context, email string, requestType model.RequestType) (model.RoleRequest, bool, error)
	//email が空なら全件（新しい順）
	List(ctx context.Context, email string) ([]model.RoleRequest, error)
	// pending のときだけ終端状態にする。更新できなければ false
	Decide(ctx context.Context, requestID string, status model.RequestStatus, decidedBy string, at time.Time) (bool, error)
}
