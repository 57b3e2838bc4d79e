package usecase

import (
	"context"
	"errors"
	"fmt"

	repo "chefbazaar/internal/repository"
)

// 連番の名前と表示用の接頭辞
type Sequence struct {
	Name   string
	Prefix string
}

var ChefIDSequence = Sequence{Name: "chefId", Prefix: "CHEF_"}

// 起動時に存在を確認する連番
var RequiredSequences = []Sequence{ChefIDSequence}

// 3桁ゼロ埋め（1000以上はそのまま伸びる）
func (s Sequence) Format(seq int64) string {
	return fmt.Sprintf("%s%03d", s.Prefix, seq)
}

// 次の番号を払い出して整形する
func nextFormattedID(ctx context.Context, counters repo.CounterRepository, s Sequence) (string, error) {
	n, err := counters.Next(ctx, s.Name)
	if err != nil {
		return "", err
	}
	return s.Format(n), nil
}

type CounterUsecase struct {
	counters repo.CounterRepository
}

func NewCounterUsecase(counters repo.CounterRepository) *CounterUsecase {
	return &CounterUsecase{counters: counters}
}

// EnsureProvisioned は必要な連番がすべて作成済みか確認する（serve 起動時）
func (u *CounterUsecase) EnsureProvisioned(ctx context.Context) error {
	for _, s := range RequiredSequences {
		if _, err := u.counters.Current(ctx, s.Name); err != nil {
			if errors.Is(err, repo.ErrCounterNotProvisioned) {
				return fmt.Errorf("sequence %q: %w (run `api migrate --seed`)", s.Name, err)
			}
			return err
		}
	}
	return nil
}

// Provision は未作成の連番を 0 で作る（既存の値は変えない）
func (u *CounterUsecase) Provision(ctx context.Context) error {
	for _, s := range RequiredSequences {
		if err := u.counters.Provision(ctx, s.Name); err != nil {
			return fmt.Errorf("provision %q: %w", s.Name, err)
		}
	}
	return nil
}
