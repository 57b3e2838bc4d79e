package repository

import "context"

// 連番の払い出し。Next は1回のアトミック操作で加算と読み出しを行う。
type CounterRepository interface {
	Next(ctx context.Context, name string) (int64, error)
	Current(ctx context.Context, name string) (int64, error)
	//なければ 0 で作成（既存の値は変えない）
	Provision(ctx context.Context, name string) error
}
