package repository

import (
	"context"

	repo "chefbazaar/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	users        repo.UserRepository
	roleRequests repo.RoleRequestRepository
	counters     repo.CounterRepository
	meals        repo.MealRepository
	orders       repo.OrderRepository
	payments     repo.PaymentRepository
	auditLogs    repo.AuditLogRepository
}

func (r *txReposGorm) Users() repo.UserRepository               { return r.users }
func (r *txReposGorm) RoleRequests() repo.RoleRequestRepository { return r.roleRequests }
func (r *txReposGorm) Counters() repo.CounterRepository         { return r.counters }
func (r *txReposGorm) Meals() repo.MealRepository               { return r.meals }
func (r *txReposGorm) Orders() repo.OrderRepository             { return r.orders }
func (r *txReposGorm) Payments() repo.PaymentRepository         { return r.payments }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository       { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
	// nil ならDBのカウンターをtx内で使う
	sequencer repo.CounterRepository
}

type TxOption func(*TxManagerGorm)

// 外部のシーケンサー（Redis）で連番を払い出す。
// tx をロールバックしても払い出した番号は戻らない（欠番になるだけ）
func WithSequencer(seq repo.CounterRepository) TxOption {
	return func(tm *TxManagerGorm) {
		tm.sequencer = seq
	}
}

func NewTxManagerGorm(db *gorm.DB, opts ...TxOption) *TxManagerGorm {
	tm := &TxManagerGorm{db: db}
	for _, opt := range opts {
		opt(tm)
	}
	return tm
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			users:        NewUserGormRepository(tx),
			roleRequests: NewRoleRequestGormRepository(tx),
			counters:     NewCounterGormRepository(tx),
			meals:        NewMealGormRepository(tx),
			orders:       NewOrderGormRepository(tx),
			payments:     NewPaymentGormRepository(tx),
			auditLogs:    NewAuditLogGormRepository(tx),
		}
		if tm.sequencer != nil {
			r.counters = tm.sequencer
		}
		return fn(r)
	})
}
