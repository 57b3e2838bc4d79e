package usecase

import (
	"context"
	"errors"

	"chefbazaar/internal/domain/model"
	repo "chefbazaar/internal/repository"
)

type Capability string

const (
	CapabilityAdmin Capability = "admin"
	CapabilityChef  Capability = "chef"
)

type AccessResult int

const (
	AccessGranted AccessResult = iota
	AccessUnauthenticated
	AccessForbidden
)

// 認可の判定結果
type AccessDecision struct {
	Result AccessResult
	User   model.User
	Reason string
}

func (d AccessDecision) Allowed() bool {
	return d.Result == AccessGranted
}

type AccessUsecase struct {
	users repo.UserRepository
}

func NewAccessUsecase(users repo.UserRepository) *AccessUsecase {
	return &AccessUsecase{users: users}
}

// Authorize は確認済みemailのユーザーが capability を持つか判定する。
// ユーザーがいない場合は Forbidden
func (u *AccessUsecase) Authorize(ctx context.Context, email string, capability Capability) (AccessDecision, error) {
	if email == "" {
		return AccessDecision{Result: AccessUnauthenticated, Reason: "unauthorized"}, nil
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return AccessDecision{Result: AccessForbidden, Reason: "forbidden access"}, nil
	}
	if err != nil {
		return AccessDecision{}, storeError(err)
	}

	switch capability {
	case CapabilityAdmin:
		if user.Role.IsAdmin() {
			return AccessDecision{Result: AccessGranted, User: user}, nil
		}
		return AccessDecision{Result: AccessForbidden, User: user, Reason: "admin only"}, nil
	case CapabilityChef:
		if user.Role == model.RoleChef {
			return AccessDecision{Result: AccessGranted, User: user}, nil
		}
		return AccessDecision{Result: AccessForbidden, User: user, Reason: "chef only"}, nil
	default:
		return AccessDecision{Result: AccessForbidden, User: user, Reason: "forbidden access"}, nil
	}
}
