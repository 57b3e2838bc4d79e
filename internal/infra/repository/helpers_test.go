package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"chefbazaar/internal/domain/model"
	"chefbazaar/internal/infra/db"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// テストごとに独立したインメモリDB
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)

	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(context.Background(), gormDB))
	return gormDB
}

func seedUser(t *testing.T, gormDB *gorm.DB, email string, role model.Role) model.User {
	t.Helper()
	now := time.Now().UTC()
	u := model.User{
		ID:         uuid.NewString(),
		Email:      email,
		Name:       strings.Split(email, "@")[0],
		Role:       role,
		UserStatus: model.UserStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, NewUserGormRepository(gormDB).Create(context.Background(), u))
	return u
}

func seedOrder(t *testing.T, gormDB *gorm.DB, email string, chefID string, status model.OrderStatus, payment model.PaymentStatus) model.Order {
	t.Helper()
	now := time.Now().UTC()
	o := model.Order{
		ID:            uuid.NewString(),
		UserEmail:     email,
		MealID:        uuid.NewString(),
		MealName:      "Biryani",
		ChefID:        chefID,
		Price:         decimal.NewFromInt(10),
		Quantity:      1,
		OrderStatus:   status,
		PaymentStatus: payment,
		OrderTime:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, NewOrderGormRepository(gormDB).Create(context.Background(), o))
	return o
}
