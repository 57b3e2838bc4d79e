package repository

import (
	"context"
	"errors"
	"time"

	"chefbazaar/internal/domain/model"
	repo "chefbazaar/internal/repository"

	"gorm.io/gorm"
)

type RoleRequestGormRepository struct {
	db *gorm.DB
}

func NewRoleRequestGormRepository(db *gorm.DB) *RoleRequestGormRepository {
	return &RoleRequestGormRepository{db: db}
}

var _ repo.RoleRequestRepository = (*RoleRequestGormRepository)(nil)

// pending の重複は部分ユニークインデックスで弾かれる
func (r *RoleRequestGormRepository) Create(ctx context.Context, req model.RoleRequest) error {
	return translateError(r.db.WithContext(ctx).Create(&req).Error)
}

func (r *RoleRequestGormRepository) FindByID(ctx context.Context, requestID string) (model.RoleRequest, error) {
	var req model.RoleRequest
	err := r.db.WithContext(ctx).Where("id = ?", requestID).First(&req).Error
	if err != nil {
		return model.RoleRequest{}, translateError(err)
	}
	return req, nil
}

func (r *RoleRequestGormRepository) FindPending(ctx context.Context, email string, requestType model.RequestType) (model.RoleRequest, bool, error) {
	var req model.RoleRequest
	err := r.db.WithContext(ctx).
		Where("user_email = ? AND request_type = ? AND request_status = ?", email, requestType, model.RequestStatusPending).
		First(&req).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.RoleRequest{}, false, nil
	}
	if err != nil {
		return model.RoleRequest{}, false, err
	}
	return req, true, nil
}

func (r *RoleRequestGormRepository) List(ctx context.Context, email string) ([]model.RoleRequest, error) {
	q := r.db.WithContext(ctx).Model(&model.RoleRequest{})
	if email != "" {
		q = q.Where("user_email = ?", email)
	}

	var items []model.RoleRequest
	if err := q.Order("request_time desc").Find(&items).Error; err != nil {
		return []model.RoleRequest{}, err
	}
	return items, nil
}

// pending のときだけ更新（判定済みなら false）
func (r *RoleRequestGormRepository) Decide(ctx context.Context, requestID string, status model.RequestStatus, decidedBy string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.RoleRequest{}).
		Where("id = ? AND request_status = ?", requestID, model.RequestStatusPending).
		Updates(map[string]interface{}{
			"request_status": status,
			"decided_by":     decidedBy,
			"decided_at":     at,
		})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
