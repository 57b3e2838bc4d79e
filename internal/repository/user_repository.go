package repository

import (
	"context"

	"chefbazaar/internal/domain/model"
)

type UserListFilter struct {
	Email string
}

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（email重複は ErrDuplicate）
	Create(ctx context.Context, user model.User) error
	FindByID(ctx context.Context, userID string) (model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (model.User, error)
	List(ctx context.Context, f UserListFilter) ([]model.User, error)
	//ロールとシェフIDを更新（chefIDがnilならロールだけ）
	UpdateRole(ctx context.Context, email string, role model.Role, chefID *string) error
	UpdateStatus(ctx context.Context, userID string, status model.UserStatus) error
	Count(ctx context.Context) (int64, error)
}
