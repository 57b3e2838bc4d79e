package repository

import (
	"context"
	"time"

	"chefbazaar/internal/domain/model"
	domainrepo "chefbazaar/internal/repository"

	"gorm.io/gorm"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserGormRepository(db *gorm.DB) domainrepo.UserRepository {
	return &userGormRepository{db: db}
}

// Create はユーザーを新規作成
func (r *userGormRepository) Create(ctx context.Context, user model.User) error {
	return translateError(r.db.WithContext(ctx).Create(&user).Error)
}

// IDでユーザーを1件取得
func (r *userGormRepository) FindByID(ctx context.Context, userID string) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&u).Error
	if err != nil {
		return model.User{}, translateError(err)
	}
	return u, nil
}

// emailでユーザーを1件取得
func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		return model.User{}, translateError(err)
	}
	return u, nil
}

func (r *userGormRepository) List(ctx context.Context, f domainrepo.UserListFilter) ([]model.User, error) {
	q := r.db.WithContext(ctx).Model(&model.User{})
	if f.Email != "" {
		q = q.Where("email = ?", f.Email)
	}

	var users []model.User
	if err := q.Order("created_at desc").Find(&users).Error; err != nil {
		return []model.User{}, err
	}
	return users, nil
}

// ロール更新。chef_id はユニークなので重複は ErrDuplicate
func (r *userGormRepository) UpdateRole(ctx context.Context, email string, role model.Role, chefID *string) error {
	updates := map[string]interface{}{
		"role":       role,
		"updated_at": time.Now(),
	}
	if chefID != nil {
		updates["chef_id"] = *chefID
	}

	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("email = ?", email).
		Updates(updates)
	if res.Error != nil {
		return translateError(res.Error)
	}
	// 0件更新は「対象がない」
	if res.RowsAffected == 0 {
		return domainrepo.ErrNotFound
	}
	return nil
}

func (r *userGormRepository) UpdateStatus(ctx context.Context, userID string, status model.UserStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"user_status": status,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrNotFound
	}
	return nil
}

func (r *userGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
