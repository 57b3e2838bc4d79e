package repository

import "errors"

var (
	// 対象が見つからない
	ErrNotFound = errors.New("not found")
	// ユニーク制約違反（同じキーの行がすでにある）
	ErrDuplicate = errors.New("duplicate")
	// カウンターが未作成（migrate --seed で作る）
	ErrCounterNotProvisioned = errors.New("counter not provisioned")
)
