package sequencer

import (
	"context"
	"errors"
	"strconv"

	repo "chefbazaar/internal/repository"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "chefbazaar:counter:"

// キーがなければエラー（暗黙に 0 から始めない）
var nextScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
  return redis.error_reply("NOT_PROVISIONED")
end
return redis.call("INCR", KEYS[1])
`)

// RedisSequencer は Redis の INCR で連番を払い出す
type RedisSequencer struct {
	client redis.UniversalClient
}

func NewRedisSequencer(client redis.UniversalClient) *RedisSequencer {
	return &RedisSequencer{client: client}
}

var _ repo.CounterRepository = (*RedisSequencer)(nil)

func (s *RedisSequencer) Next(ctx context.Context, name string) (int64, error) {
	n, err := nextScript.Run(ctx, s.client, []string{keyPrefix + name}).Int64()
	if err != nil {
		if isNotProvisioned(err) {
			return 0, repo.ErrCounterNotProvisioned
		}
		return 0, err
	}
	return n, nil
}

func (s *RedisSequencer) Current(ctx context.Context, name string) (int64, error) {
	v, err := s.client.Get(ctx, keyPrefix+name).Result()
	if errors.Is(err, redis.Nil) {
		return 0, repo.ErrCounterNotProvisioned
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

func (s *RedisSequencer) Provision(ctx context.Context, name string) error {
	return s.client.SetNX(ctx, keyPrefix+name, 0, 0).Err()
}

func isNotProvisioned(err error) bool {
	var rerr redis.Error
	if errors.As(err, &rerr) {
		return rerr.Error() == "NOT_PROVISIONED"
	}
	return false
}
