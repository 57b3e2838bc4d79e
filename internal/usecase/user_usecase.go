package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"chefbazaar/internal/domain/model"
	repo "chefbazaar/internal/repository"
	"chefbazaar/internal/validator"

	"github.com/shopspring/decimal"
)

type UserUsecase struct {
	tx     repo.TransactionManager
	users  repo.UserRepository
	orders repo.OrderRepository
	ids    IDGenerator
	clock  Clock
}

func NewUserUsecase(tx repo.TransactionManager, users repo.UserRepository, orders repo.OrderRepository, ids IDGenerator, clock Clock) *UserUsecase {
	return &UserUsecase{tx: tx, users: users, orders: orders, ids: ids, clock: clock}
}

type SignInInput struct {
	Name     string
	PhotoURL string
}

type AdminStats struct {
	TotalPayment    decimal.Decimal `json:"totalPayment"`
	TotalUsers      int64           `json:"totalUsers"`
	DeliveredOrders int64           `json:"deliveredOrders"`
	PendingOrders   int64           `json:"pendingOrders"`
}

// FindOrCreate は初回サインインでユーザーを作る（2回目以降は既存を返す）
func (u *UserUsecase) FindOrCreate(ctx context.Context, email string, in SignInInput) (model.User, bool, error) {
	if email == "" {
		return model.User{}, false, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.User{}, false, storeError(err)
	}

	now := u.clock.Now()
	user = model.User{
		ID:         u.ids.NewID(),
		Email:      email,
		Name:       strings.TrimSpace(in.Name),
		PhotoURL:   strings.TrimSpace(in.PhotoURL),
		Role:       model.RoleUser,
		UserStatus: model.UserStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := u.users.Create(ctx, user); err != nil {
		// 同時サインインで先に作られた
		if errors.Is(err, repo.ErrDuplicate) {
			existing, ferr := u.users.FindByEmail(ctx, email)
			if ferr != nil {
				return model.User{}, false, storeError(ferr)
			}
			return existing, false, nil
		}
		return model.User{}, false, storeError(err)
	}
	return user, true, nil
}

// 本人か管理者だけ参照できる
func (u *UserUsecase) GetByEmail(ctx context.Context, callerEmail string, email string) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		email = callerEmail
	}
	if email != callerEmail {
		caller, err := u.users.FindByEmail(ctx, callerEmail)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return model.User{}, storeError(err)
		}
		if err != nil || !caller.Role.IsAdmin() {
			return model.User{}, NewHTTPError(http.StatusForbidden, "forbidden access")
		}
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return model.User{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return model.User{}, storeError(err)
	}
	return user, nil
}

// 未登録なら user 扱い
func (u *UserUsecase) Role(ctx context.Context, email string) (model.Role, error) {
	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repo.ErrNotFound) {
		return model.RoleUser, nil
	}
	if err != nil {
		return "", storeError(err)
	}
	return user.Role, nil
}

func (u *UserUsecase) List(ctx context.Context, f repo.UserListFilter) ([]model.User, error) {
	f.Email = strings.TrimSpace(f.Email)
	users, err := u.users.List(ctx, f)
	if err != nil {
		return nil, storeError(err)
	}
	return users, nil
}

// 管理者がユーザー状態を変える（監査ログ付き）
func (u *UserUsecase) UpdateStatus(ctx context.Context, actorEmail string, userID string, status string) (model.User, error) {
	if !validator.IsValidID(userID) {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	newStatus := model.UserStatus(strings.TrimSpace(status))
	if newStatus != model.UserStatusActive && newStatus != model.UserStatusFraud {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out model.User
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "user not found")
		}
		if err != nil {
			return storeError(err)
		}
		if user.Role.IsAdmin() && newStatus == model.UserStatusFraud {
			return NewHTTPError(http.StatusBadRequest, "cannot mark admin as fraud")
		}

		out = user
		if user.UserStatus == newStatus {
			return nil
		}

		if err := r.Users().UpdateStatus(ctx, userID, newStatus); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "user not found")
			}
			return storeError(err)
		}

		now := u.clock.Now()
		if err := r.AuditLogs().Create(ctx, newAuditLog(
			actorEmail, model.AuditActionUpdateUserStatus, model.AuditResourceUser, userID,
			map[string]any{"userStatus": user.UserStatus},
			map[string]any{"userStatus": newStatus},
			now,
		)); err != nil {
			return storeError(err)
		}

		out.UserStatus = newStatus
		out.UpdatedAt = now
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return out, nil
}

// 管理画面の集計
func (u *UserUsecase) Stats(ctx context.Context) (AdminStats, error) {
	total, err := u.users.Count(ctx)
	if err != nil {
		return AdminStats{}, storeError(err)
	}
	st, err := u.orders.Stats(ctx)
	if err != nil {
		return AdminStats{}, storeError(err)
	}
	return AdminStats{
		TotalPayment:    st.TotalPayment,
		TotalUsers:      total,
		DeliveredOrders: st.DeliveredOrders,
		PendingOrders:   st.PendingOrders,
	}, nil
}
