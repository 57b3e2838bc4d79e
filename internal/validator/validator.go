package validator

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// 簡易メール形式をチェック
func IsEmailLike(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// IDはUUID形式（ハイフン付き36文字）だけ受け付ける
func IsValidID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// 評価は1〜5
func IsValidRating(r int) bool {
	return r >= 1 && r <= 5
}

// 必須文字列（空白のみは不可、最大長あり）
func RequireText(s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > max {
		return "", ErrInvalidInput
	}
	return s, nil
}
