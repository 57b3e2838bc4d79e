package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"chefbazaar/internal/domain/model"
	repo "chefbazaar/internal/repository"
	"chefbazaar/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type roleRequestFixture struct {
	uc       *usecase.RoleRequestUsecase
	tx       *TxManagerMock
	users    *UserRepoMock
	requests *RoleRequestRepoMock
	counters *CounterRepoMock
	audit    *AuditRepoMock
}

func newRoleRequestFixture() roleRequestFixture {
	users := &UserRepoMock{}
	requests := &RoleRequestRepoMock{}
	counters := &CounterRepoMock{}
	audit := &AuditRepoMock{}
	tx := &TxManagerMock{Repos: &TxReposMock{
		users:        users,
		roleRequests: requests,
		counters:     counters,
		auditLogs:    audit,
	}}
	tx.On("WithinTx", mock.Anything).Return(nil).Maybe()

	return roleRequestFixture{
		uc:       usecase.NewRoleRequestUsecase(tx, users, requests, &seqIDs{ids: []string{idA}}, fixedClock{t: testNow}),
		tx:       tx,
		users:    users,
		requests: requests,
		counters: counters,
		audit:    audit,
	}
}

func pendingRequest(rt model.RequestType) model.RoleRequest {
	return model.RoleRequest{
		ID:            idB,
		UserEmail:     "cook@example.com",
		UserName:      "cook",
		RequestType:   rt,
		RequestStatus: model.RequestStatusPending,
		RequestTime:   testNow,
	}
}

// =====================
// Submit
// =====================

func TestSubmit_InvalidType(t *testing.T) {
	f := newRoleRequestFixture()

	_, err := f.uc.Submit(context.Background(), "cook@example.com", usecase.SubmitRoleRequestInput{RequestType: "owner"})

	assertHTTPError(t, err, http.StatusBadRequest, "invalid request type")
	f.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestSubmit_UnknownUser(t *testing.T) {
	f := newRoleRequestFixture()
	f.users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(model.User{}, repo.ErrNotFound)

	_, err := f.uc.Submit(context.Background(), "ghost@example.com", usecase.SubmitRoleRequestInput{RequestType: "chef"})

	assertHTTPError(t, err, http.StatusNotFound, "user not found")
}

func TestSubmit_DuplicatePendingIsConflictWithoutInsert(t *testing.T) {
	f := newRoleRequestFixture()
	f.users.On("FindByEmail", mock.Anything, "cook@example.com").Return(model.User{Email: "cook@example.com", Role: model.RoleUser}, nil)
	f.requests.On("FindPending", mock.Anything, "cook@example.com", model.RequestTypeChef).Return(pendingRequest(model.RequestTypeChef), true, nil)

	_, err := f.uc.Submit(context.Background(), "cook@example.com", usecase.SubmitRoleRequestInput{RequestType: "chef"})

	assertHTTPError(t, err, http.StatusConflict, "Already requested")
	f.requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_IndexViolationIsConflict(t *testing.T) {
	f := newRoleRequestFixture()
	f.users.On("FindByEmail", mock.Anything, "cook@example.com").Return(model.User{Email: "cook@example.com", Role: model.RoleUser}, nil)
	f.requests.On("FindPending", mock.Anything, "cook@example.com", model.RequestTypeChef).Return(model.RoleRequest{}, false, nil)
	f.requests.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicate)

	_, err := f.uc.Submit(context.Background(), "cook@example.com", usecase.SubmitRoleRequestInput{RequestType: "chef"})

	assertHTTPError(t, err, http.StatusConflict, "Already requested")
}

func TestSubmit_AlreadyHasRole(t *testing.T) {
	f := newRoleRequestFixture()
	f.users.On("FindByEmail", mock.Anything, "boss@example.com").Return(model.User{Email: "boss@example.com", Role: model.RoleAdminLegacy}, nil)
	f.requests.On("FindPending", mock.Anything, "boss@example.com", model.RequestTypeAdmin).Return(model.RoleRequest{}, false, nil)

	_, err := f.uc.Submit(context.Background(), "boss@example.com", usecase.SubmitRoleRequestInput{RequestType: "admin"})

	assertHTTPError(t, err, http.StatusConflict, "already has role")
	f.requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_OK(t *testing.T) {
	f := newRoleRequestFixture()
	f.users.On("FindByEmail", mock.Anything, "cook@example.com").Return(model.User{Email: "cook@example.com", Name: "Cook", Role: model.RoleUser}, nil)
	f.requests.On("FindPending", mock.Anything, "cook@example.com", model.RequestTypeChef).Return(model.RoleRequest{}, false, nil)
	f.requests.On("Create", mock.Anything, mock.MatchedBy(func(r model.RoleRequest) bool {
		return r.ID == idA && r.UserEmail == "cook@example.com" && r.UserName == "Cook" &&
			r.RequestStatus == model.RequestStatusPending && r.RequestTime.Equal(testNow)
	})).Return(nil)

	out, err := f.uc.Submit(context.Background(), "cook@example.com", usecase.SubmitRoleRequestInput{RequestType: "chef"})

	require.NoError(t, err)
	assert.Equal(t, model.RequestTypeChef, out.RequestType)
	f.requests.AssertExpectations(t)
}

// =====================
// Decide
// =====================

func TestDecide_InvalidAction(t *testing.T) {
	f := newRoleRequestFixture()

	_, err := f.uc.Decide(context.Background(), "admin@example.com", idB, "approve")

	assertHTTPError(t, err, http.StatusBadRequest, "invalid action")
	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestDecide_MissingRequest(t *testing.T) {
	f := newRoleRequestFixture()
	f.requests.On("FindByID", mock.Anything, idB).Return(model.RoleRequest{}, repo.ErrNotFound)

	_, err := f.uc.Decide(context.Background(), "admin@example.com", idB, "accept")

	assertHTTPError(t, err, http.StatusNotFound, "request not found")
}

func TestDecide_AlreadyProcessedIsNoop(t *testing.T) {
	f := newRoleRequestFixture()
	req := pendingRequest(model.RequestTypeChef)
	req.RequestStatus = model.RequestStatusApproved
	f.requests.On("FindByID", mock.Anything, idB).Return(req, nil)

	out, err := f.uc.Decide(context.Background(), "admin@example.com", idB, "reject")

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "Already processed", out.Message)
	f.requests.AssertNotCalled(t, "Decide", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.users.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDecide_AcceptChefAllocatesID(t *testing.T) {
	f := newRoleRequestFixture()
	f.requests.On("FindByID", mock.Anything, idB).Return(pendingRequest(model.RequestTypeChef), nil)
	f.users.On("FindByEmail", mock.Anything, "cook@example.com").Return(model.User{Email: "cook@example.com", Role: model.RoleUser}, nil)
	f.counters.On("Next", mock.Anything, "chefId").Return(int64(1), nil)
	f.users.On("UpdateRole", mock.Anything, "cook@example.com", model.RoleChef, mock.MatchedBy(func(p *string) bool {
		return p != nil && *p == "CHEF_001"
	})).Return(nil)
	f.requests.On("Decide", mock.Anything, idB, model.RequestStatusApproved, "admin@example.com", testNow).Return(true, nil)
	f.audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionDecideRoleRequest && l.ResourceID == idB && l.ActorEmail == "admin@example.com"
	})).Return(nil)

	out, err := f.uc.Decide(context.Background(), "admin@example.com", idB, "accept")

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "CHEF_001", out.ChefID)
	assert.Equal(t, model.RequestStatusApproved, out.Request.RequestStatus)
	f.users.AssertExpectations(t)
	f.requests.AssertExpectations(t)
	f.audit.AssertExpectations(t)
}

func TestDecide_AcceptChefReusesExistingID(t *testing.T) {
	f := newRoleRequestFixture()
	f.requests.On("FindByID", mock.Anything, idB).Return(pendingRequest(model.RequestTypeChef), nil)
	f.users.On("FindByEmail", mock.Anything, "cook@example.com").Return(model.User{Email: "cook@example.com", Role: model.RoleUser, ChefID: strPtr("CHEF_007")}, nil)
	f.users.On("UpdateRole", mock.Anything, "cook@example.com", model.RoleChef, mock.MatchedBy(func(p *string) bool {
		return p != nil && *p == "CHEF_007"
	})).Return(nil)
	f.requests.On("Decide", mock.Anything, idB, model.RequestStatusApproved, "admin@example.com", testNow).Return(true, nil)
	f.audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := f.uc.Decide(context.Background(), "admin@example.com", idB, "accept")

	require.NoError(t, err)
	assert.Equal(t, "CHEF_007", out.ChefID)
	f.counters.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
}

func TestDecide_AcceptAdmin(t *testing.T) {
	f := newRoleRequestFixture()
	f.requests.On("FindByID", mock.Anything, idB).Return(pendingRequest(model.RequestTypeAdmin), nil)
	f.users.On("FindByEmail", mock.Anything, "cook@example.com").Return(model.User{Email: "cook@example.com", Role: model.RoleUser}, nil)
	f.users.On("UpdateRole", mock.Anything, "cook@example.com", model.RoleAdmin, (*string)(nil)).Return(nil)
	f.requests.On("Decide", mock.Anything, idB, model.RequestStatusApproved, "admin@example.com", testNow).Return(true, nil)
	f.audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := f.uc.Decide(context.Background(), "admin@example.com", idB, "accept")

	require.NoError(t, err)
	assert.Empty(t, out.ChefID)
	f.users.AssertExpectations(t)
}

func TestDecide_RejectDoesNotTouchUser(t *testing.T) {
	f := newRoleRequestFixture()
	f.requests.On("FindByID", mock.Anything, idB).Return(pendingRequest(model.RequestTypeChef), nil)
	f.requests.On("Decide", mock.Anything, idB, model.RequestStatusRejected, "admin@example.com", testNow).Return(true, nil)
	f.audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := f.uc.Decide(context.Background(), "admin@example.com", idB, "reject")

	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusRejected, out.Request.RequestStatus)
	f.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	f.counters.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
}

func TestDecide_DeletedUserLeavesRequestPending(t *testing.T) {
	f := newRoleRequestFixture()
	f.requests.On("FindByID", mock.Anything, idB).Return(pendingRequest(model.RequestTypeChef), nil)
	f.users.On("FindByEmail", mock.Anything, "cook@example.com").Return(model.User{}, repo.ErrNotFound)

	_, err := f.uc.Decide(context.Background(), "admin@example.com", idB, "accept")

	assertHTTPError(t, err, http.StatusNotFound, "user not found")
	f.requests.AssertNotCalled(t, "Decide", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.counters.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
}

func TestDecide_CounterMissingIsInternal(t *testing.T) {
	f := newRoleRequestFixture()
	f.requests.On("FindByID", mock.Anything, idB).Return(pendingRequest(model.RequestTypeChef), nil)
	f.users.On("FindByEmail", mock.Anything, "cook@example.com").Return(model.User{Email: "cook@example.com", Role: model.RoleUser}, nil)
	f.counters.On("Next", mock.Anything, "chefId").Return(int64(0), repo.ErrCounterNotProvisioned)

	_, err := f.uc.Decide(context.Background(), "admin@example.com", idB, "accept")

	assertHTTPError(t, err, http.StatusInternalServerError, "")
	assert.True(t, errors.Is(err, repo.ErrCounterNotProvisioned))
	f.users.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDecide_LostRaceReportsAlreadyProcessed(t *testing.T) {
	f := newRoleRequestFixture()
	decided := pendingRequest(model.RequestTypeChef)
	decided.RequestStatus = model.RequestStatusRejected

	// tx 内では pending、負けた後の再読込では判定済み
	f.requests.On("FindByID", mock.Anything, idB).Return(pendingRequest(model.RequestTypeChef), nil).Once()
	f.requests.On("FindByID", mock.Anything, idB).Return(decided, nil).Once()
	f.requests.On("Decide", mock.Anything, idB, model.RequestStatusRejected, "admin@example.com", testNow).Return(false, nil)

	out, err := f.uc.Decide(context.Background(), "admin@example.com", idB, "reject")

	require.NoError(t, err)
	assert.Equal(t, "Already processed", out.Message)
	assert.Equal(t, model.RequestStatusRejected, out.Request.RequestStatus)
	f.audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDecide_StoreTimeoutIsUnavailable(t *testing.T) {
	f := newRoleRequestFixture()
	f.requests.On("FindByID", mock.Anything, idB).Return(model.RoleRequest{}, context.DeadlineExceeded)

	_, err := f.uc.Decide(context.Background(), "admin@example.com", idB, "accept")

	assertHTTPError(t, err, http.StatusServiceUnavailable, "temporarily unavailable")
}
