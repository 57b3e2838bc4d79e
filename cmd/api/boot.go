package main

import (
	"context"
	"fmt"

	"chefbazaar/internal/config"
	"chefbazaar/internal/infra/db"
	infraRepo "chefbazaar/internal/infra/repository"
	"chefbazaar/internal/infra/sequencer"
	"chefbazaar/internal/logger"
	repo "chefbazaar/internal/repository"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type app struct {
	cfg      config.Config
	log      zerolog.Logger
	db       *gorm.DB
	counters repo.CounterRepository
	// Redis を使うときだけ
	sequencer repo.CounterRepository
	closeFns  []func() error
}

// 設定を読み込んで DB（と Redis）に接続する
func boot(ctx context.Context) (*app, error) {
	// .env は無くてもよい（本番は環境変数）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.GoEnv, cfg.LogLevel)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	a := &app{cfg: cfg, log: log, db: gormDB}
	if sqlDB, err := gormDB.DB(); err == nil {
		a.closeFns = append(a.closeFns, sqlDB.Close)
	}

	switch cfg.CounterBackend {
	case config.CounterBackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			a.close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closeFns = append(a.closeFns, client.Close)
		a.sequencer = sequencer.NewRedisSequencer(client)
		a.counters = a.sequencer
	default:
		a.counters = infraRepo.NewCounterGormRepository(gormDB)
	}

	return a, nil
}

func (a *app) close() {
	for i := len(a.closeFns) - 1; i >= 0; i-- {
		_ = a.closeFns[i]()
	}
}
