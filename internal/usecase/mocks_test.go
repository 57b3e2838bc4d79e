package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"chefbazaar/internal/domain/model"
	repo "chefbazaar/internal/repository"
	"chefbazaar/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	users        repo.UserRepository
	roleRequests repo.RoleRequestRepository
	counters     repo.CounterRepository
	meals        repo.MealRepository
	orders       repo.OrderRepository
	payments     repo.PaymentRepository
	auditLogs    repo.AuditLogRepository
}

func (r *TxReposMock) Users() repo.UserRepository               { return r.users }
func (r *TxReposMock) RoleRequests() repo.RoleRequestRepository { return r.roleRequests }
func (r *TxReposMock) Counters() repo.CounterRepository         { return r.counters }
func (r *TxReposMock) Meals() repo.MealRepository               { return r.meals }
func (r *TxReposMock) Orders() repo.OrderRepository             { return r.orders }
func (r *TxReposMock) Payments() repo.PaymentRepository         { return r.payments }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository       { return r.auditLogs }

// =====================
// Repository mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID string) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) List(ctx context.Context, f repo.UserListFilter) ([]model.User, error) {
	args := m.Called(ctx, f)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *UserRepoMock) UpdateRole(ctx context.Context, email string, role model.Role, chefID *string) error {
	return m.Called(ctx, email, role, chefID).Error(0)
}

func (m *UserRepoMock) UpdateStatus(ctx context.Context, userID string, status model.UserStatus) error {
	return m.Called(ctx, userID, status).Error(0)
}

func (m *UserRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type RoleRequestRepoMock struct{ mock.Mock }

func (m *RoleRequestRepoMock) Create(ctx context.Context, req model.RoleRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *RoleRequestRepoMock) FindByID(ctx context.Context, requestID string) (model.RoleRequest, error) {
	args := m.Called(ctx, requestID)
	r, _ := args.Get(0).(model.RoleRequest)
	return r, args.Error(1)
}

func (m *RoleRequestRepoMock) FindPending(ctx context.Context, email string, rt model.RequestType) (model.RoleRequest, bool, error) {
	args := m.Called(ctx, email, rt)
	r, _ := args.Get(0).(model.RoleRequest)
	return r, args.Bool(1), args.Error(2)
}

func (m *RoleRequestRepoMock) List(ctx context.Context, email string) ([]model.RoleRequest, error) {
	args := m.Called(ctx, email)
	items, _ := args.Get(0).([]model.RoleRequest)
	return items, args.Error(1)
}

func (m *RoleRequestRepoMock) Decide(ctx context.Context, requestID string, status model.RequestStatus, decidedBy string, at time.Time) (bool, error) {
	args := m.Called(ctx, requestID, status, decidedBy, at)
	return args.Bool(0), args.Error(1)
}

type CounterRepoMock struct{ mock.Mock }

func (m *CounterRepoMock) Next(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CounterRepoMock) Current(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CounterRepoMock) Provision(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

type MealRepoMock struct{ mock.Mock }

func (m *MealRepoMock) List(ctx context.Context, q repo.MealListQuery) ([]model.Meal, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Meal)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MealRepoMock) Latest(ctx context.Context, limit int) ([]model.Meal, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]model.Meal)
	return items, args.Error(1)
}

func (m *MealRepoMock) FindByID(ctx context.Context, mealID string) (model.Meal, error) {
	args := m.Called(ctx, mealID)
	meal, _ := args.Get(0).(model.Meal)
	return meal, args.Error(1)
}

func (m *MealRepoMock) Create(ctx context.Context, meal model.Meal) error {
	return m.Called(ctx, meal).Error(0)
}

func (m *MealRepoMock) Update(ctx context.Context, meal model.Meal) error {
	return m.Called(ctx, meal).Error(0)
}

func (m *MealRepoMock) Delete(ctx context.Context, mealID string) error {
	return m.Called(ctx, mealID).Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatusIf(ctx context.Context, orderID string, from []model.OrderStatus, to model.OrderStatus, payment *model.PaymentStatus) (bool, error) {
	args := m.Called(ctx, orderID, from, to, payment)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) UpdatePaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *OrderRepoMock) Stats(ctx context.Context) (repo.OrderStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(repo.OrderStats), args.Error(1)
}

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) Create(ctx context.Context, p model.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *PaymentRepoMock) FindByTransactionID(ctx context.Context, txID string) (model.Payment, bool, error) {
	args := m.Called(ctx, txID)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Bool(1), args.Error(2)
}

func (m *PaymentRepoMock) List(ctx context.Context, email string) ([]model.Payment, error) {
	args := m.Called(ctx, email)
	items, _ := args.Get(0).([]model.Payment)
	return items, args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, f)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) CreateSession(ctx context.Context, in usecase.CheckoutSessionInput) (usecase.CheckoutSession, error) {
	args := m.Called(ctx, in)
	s, _ := args.Get(0).(usecase.CheckoutSession)
	return s, args.Error(1)
}

func (m *GatewayMock) RetrieveSession(ctx context.Context, sessionID string) (usecase.SessionResult, error) {
	args := m.Called(ctx, sessionID)
	s, _ := args.Get(0).(usecase.SessionResult)
	return s, args.Error(1)
}

// =====================
// helpers
// =====================

type seqIDs struct {
	ids []string
	i   int
}

func (g *seqIDs) NewID() string {
	id := g.ids[g.i%len(g.ids)]
	g.i++
	return id
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

const (
	idA = "11111111-1111-4111-8111-111111111111"
	idB = "22222222-2222-4222-8222-222222222222"
	idC = "33333333-3333-4333-8333-333333333333"
)

func assertHTTPError(t *testing.T, err error, status int, contains string) {
	t.Helper()
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "not HTTPError: %v", err)
	assert.Equal(t, status, he.Status)
	if contains != "" {
		assert.True(t, strings.Contains(he.Message, contains), "message=%q want contains %q", he.Message, contains)
	}
}

func strPtr(s string) *string { return &s }

type ReviewRepoMock struct{ mock.Mock }

func (m *ReviewRepoMock) Create(ctx context.Context, review model.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *ReviewRepoMock) FindByID(ctx context.Context, reviewID string) (model.Review, error) {
	args := m.Called(ctx, reviewID)
	r, _ := args.Get(0).(model.Review)
	return r, args.Error(1)
}

func (m *ReviewRepoMock) ListByMeal(ctx context.Context, mealID string) ([]model.Review, error) {
	args := m.Called(ctx, mealID)
	items, _ := args.Get(0).([]model.Review)
	return items, args.Error(1)
}

func (m *ReviewRepoMock) ListByUser(ctx context.Context, email string) ([]model.Review, error) {
	args := m.Called(ctx, email)
	items, _ := args.Get(0).([]model.Review)
	return items, args.Error(1)
}

func (m *ReviewRepoMock) Latest(ctx context.Context, limit int) ([]model.Review, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]model.Review)
	return items, args.Error(1)
}

func (m *ReviewRepoMock) Update(ctx context.Context, review model.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *ReviewRepoMock) Delete(ctx context.Context, reviewID string) error {
	return m.Called(ctx, reviewID).Error(0)
}

type FavoriteRepoMock struct{ mock.Mock }

func (m *FavoriteRepoMock) Create(ctx context.Context, fav model.Favorite) error {
	return m.Called(ctx, fav).Error(0)
}

func (m *FavoriteRepoMock) FindByID(ctx context.Context, favoriteID string) (model.Favorite, error) {
	args := m.Called(ctx, favoriteID)
	f, _ := args.Get(0).(model.Favorite)
	return f, args.Error(1)
}

func (m *FavoriteRepoMock) List(ctx context.Context, email string) ([]model.Favorite, error) {
	args := m.Called(ctx, email)
	items, _ := args.Get(0).([]model.Favorite)
	return items, args.Error(1)
}

func (m *FavoriteRepoMock) Delete(ctx context.Context, favoriteID string) error {
	return m.Called(ctx, favoriteID).Error(0)
}
