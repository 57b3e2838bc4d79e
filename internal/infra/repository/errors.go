package repository

import (
	"errors"
	"strings"

	repo "chefbazaar/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres の unique_violation
const pgUniqueViolation = "23505"

// gorm / ドライバのエラーを repository のエラーに寄せる
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	if isUniqueViolation(err) {
		return repo.ErrDuplicate
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// SQLite（テスト）
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
