package usecase

import (
	"net/http"

	"chefbazaar/internal/domain/model"
)

// 不正ユーザーは注文・料理登録をできない。
// 直前に読み直したユーザーで判定すること
func EnsureNotFraud(user model.User) error {
	if user.UserStatus == model.UserStatusFraud {
		return NewHTTPError(http.StatusForbidden, "fraud user")
	}
	return nil
}
