package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"chefbazaar/internal/domain/model"
	repo "chefbazaar/internal/repository"
	"chefbazaar/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserUsecase() (*usecase.UserUsecase, *UserRepoMock, *OrderRepoMock, *AuditRepoMock) {
	users := &UserRepoMock{}
	orders := &OrderRepoMock{}
	audit := &AuditRepoMock{}
	tx := &TxManagerMock{Repos: &TxReposMock{users: users, orders: orders, auditLogs: audit}}
	tx.On("WithinTx", mock.Anything).Return(nil).Maybe()
	return usecase.NewUserUsecase(tx, users, orders, &seqIDs{ids: []string{idA}}, fixedClock{t: testNow}), users, orders, audit
}

func TestFindOrCreate_NewUser(t *testing.T) {
	uc, users, _, _ := newUserUsecase()
	users.On("FindByEmail", mock.Anything, "new@example.com").Return(model.User{}, repo.ErrNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.ID == idA && u.Role == model.RoleUser && u.UserStatus == model.UserStatusActive && u.ChefID == nil
	})).Return(nil)

	u, created, err := uc.FindOrCreate(context.Background(), "new@example.com", usecase.SignInInput{Name: " New "})

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "New", u.Name)
}

func TestFindOrCreate_ConcurrentSignInReturnsExisting(t *testing.T) {
	uc, users, _, _ := newUserUsecase()
	existing := model.User{ID: idB, Email: "new@example.com", Role: model.RoleUser}
	users.On("FindByEmail", mock.Anything, "new@example.com").Return(model.User{}, repo.ErrNotFound).Once()
	users.On("FindByEmail", mock.Anything, "new@example.com").Return(existing, nil).Once()
	users.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicate)

	u, created, err := uc.FindOrCreate(context.Background(), "new@example.com", usecase.SignInInput{})

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, idB, u.ID)
}

func TestRole_UnknownUserIsUser(t *testing.T) {
	uc, users, _, _ := newUserUsecase()
	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(model.User{}, repo.ErrNotFound)

	role, err := uc.Role(context.Background(), "ghost@example.com")

	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, role)
}

func TestGetByEmail_OtherUserNeedsAdmin(t *testing.T) {
	uc, users, _, _ := newUserUsecase()
	users.On("FindByEmail", mock.Anything, "me@example.com").Return(model.User{Email: "me@example.com", Role: model.RoleUser}, nil)

	_, err := uc.GetByEmail(context.Background(), "me@example.com", "you@example.com")

	assertHTTPError(t, err, http.StatusForbidden, "")
}

func TestUpdateUserStatus_MarkFraud(t *testing.T) {
	uc, users, _, audit := newUserUsecase()
	users.On("FindByID", mock.Anything, idB).Return(model.User{ID: idB, Role: model.RoleUser, UserStatus: model.UserStatusActive}, nil)
	users.On("UpdateStatus", mock.Anything, idB, model.UserStatusFraud).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateUserStatus && l.ResourceID == idB
	})).Return(nil)

	u, err := uc.UpdateStatus(context.Background(), "admin@example.com", idB, "fraud")

	require.NoError(t, err)
	assert.Equal(t, model.UserStatusFraud, u.UserStatus)
	audit.AssertExpectations(t)
}

func TestUpdateUserStatus_AdminCannotBeFraud(t *testing.T) {
	uc, users, _, _ := newUserUsecase()
	users.On("FindByID", mock.Anything, idB).Return(model.User{ID: idB, Role: model.RoleAdminLegacy}, nil)

	_, err := uc.UpdateStatus(context.Background(), "admin@example.com", idB, "fraud")

	assertHTTPError(t, err, http.StatusBadRequest, "admin")
	users.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUserStatus_InvalidStatus(t *testing.T) {
	uc, _, _, _ := newUserUsecase()

	_, err := uc.UpdateStatus(context.Background(), "admin@example.com", idB, "banned")

	assertHTTPError(t, err, http.StatusBadRequest, "invalid status")
}

func TestStats(t *testing.T) {
	uc, users, orders, _ := newUserUsecase()
	users.On("Count", mock.Anything).Return(int64(4), nil)
	orders.On("Stats", mock.Anything).Return(repo.OrderStats{TotalPayment: decimal.NewFromInt(30), DeliveredOrders: 1, PendingOrders: 2}, nil)

	st, err := uc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), st.TotalUsers)
	assert.True(t, st.TotalPayment.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, int64(1), st.DeliveredOrders)
	assert.Equal(t, int64(2), st.PendingOrders)
}
