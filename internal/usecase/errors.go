package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

type HTTPError struct {
	Status  int
	Message string
	// 500 系のときだけ入れる（ログ用、レスポンスには出さない）
	Err error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// DB・外部サービスの失敗をHTTPエラーにする。
// 期限切れは 503（再試行可）、それ以外は 500
func storeError(err error) error {
	if he, ok := AsHTTPError(err); ok {
		return he
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrGatewayTimeout) {
		return &HTTPError{Status: http.StatusServiceUnavailable, Message: "temporarily unavailable", Err: err}
	}
	return &HTTPError{Status: http.StatusInternalServerError, Message: "internal error", Err: err}
}
