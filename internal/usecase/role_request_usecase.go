package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"chefbazaar/internal/domain/model"
	"chefbazaar/internal/metrics"
	repo "chefbazaar/internal/repository"
	"chefbazaar/internal/validator"

	"github.com/rs/zerolog"
)

const (
	DecisionAccept = "accept"
	DecisionReject = "reject"

	msgAlreadyRequested = "Already requested"
	msgAlreadyProcessed = "Already processed"
)

// 他の処理が先に確定させた（tx をロールバックして no-op 扱い）
var errAlreadyDecided = errors.New("role request already decided")

type RoleRequestUsecase struct {
	tx       repo.TransactionManager
	users    repo.UserRepository
	requests repo.RoleRequestRepository
	ids      IDGenerator
	clock    Clock
}

func NewRoleRequestUsecase(
	tx repo.TransactionManager,
	users repo.UserRepository,
	requests repo.RoleRequestRepository,
	ids IDGenerator,
	clock Clock,
) *RoleRequestUsecase {
	return &RoleRequestUsecase{tx: tx, users: users, requests: requests, ids: ids, clock: clock}
}

type SubmitRoleRequestInput struct {
	RequestType string
}

type DecideRoleRequestOutput struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Request model.RoleRequest `json:"request"`
	ChefID  string            `json:"chefId,omitempty"`
}

// Submit は確認済みemailのユーザーとして申請を作る
func (u *RoleRequestUsecase) Submit(ctx context.Context, email string, in SubmitRoleRequestInput) (model.RoleRequest, error) {
	if email == "" {
		return model.RoleRequest{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	rt := model.RequestType(strings.TrimSpace(in.RequestType))
	if !rt.Valid() {
		return model.RoleRequest{}, NewHTTPError(http.StatusBadRequest, "invalid request type")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return model.RoleRequest{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return model.RoleRequest{}, storeError(err)
	}

	// 重複チェック（最終的にはユニークインデックスで守る）
	_, exists, err := u.requests.FindPending(ctx, email, rt)
	if err != nil {
		return model.RoleRequest{}, storeError(err)
	}
	if exists {
		return model.RoleRequest{}, NewHTTPError(http.StatusConflict, msgAlreadyRequested)
	}

	if hasRole(user, rt) {
		return model.RoleRequest{}, NewHTTPError(http.StatusConflict, "already has role")
	}

	req := model.RoleRequest{
		ID:            u.ids.NewID(),
		UserEmail:     email,
		UserName:      user.Name,
		RequestType:   rt,
		RequestStatus: model.RequestStatusPending,
		RequestTime:   u.clock.Now(),
	}
	if err := u.requests.Create(ctx, req); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return model.RoleRequest{}, NewHTTPError(http.StatusConflict, msgAlreadyRequested)
		}
		return model.RoleRequest{}, storeError(err)
	}
	return req, nil
}

func (u *RoleRequestUsecase) List(ctx context.Context, email string) ([]model.RoleRequest, error) {
	reqs, err := u.requests.List(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, storeError(err)
	}
	return reqs, nil
}

// Decide は管理者が申請を承認/却下する。
// 番号払い出し・ユーザー更新・申請更新・監査ログを1つの tx で行う
func (u *RoleRequestUsecase) Decide(ctx context.Context, actorEmail string, requestID string, action string) (DecideRoleRequestOutput, error) {
	if !validator.IsValidID(requestID) {
		return DecideRoleRequestOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	action = strings.TrimSpace(action)
	if action != DecisionAccept && action != DecisionReject {
		return DecideRoleRequestOutput{}, NewHTTPError(http.StatusBadRequest, "invalid action")
	}

	var out DecideRoleRequestOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		req, err := r.RoleRequests().FindByID(ctx, requestID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "request not found")
		}
		if err != nil {
			return storeError(err)
		}

		// 処理済みなら何もしない
		if req.RequestStatus != model.RequestStatusPending {
			out = DecideRoleRequestOutput{Success: true, Message: msgAlreadyProcessed, Request: req}
			return nil
		}

		now := u.clock.Now()
		before := map[string]any{"requestStatus": req.RequestStatus}
		after := map[string]any{}

		status := model.RequestStatusRejected
		if action == DecisionAccept {
			status = model.RequestStatusApproved

			user, err := r.Users().FindByEmail(ctx, req.UserEmail)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "user not found")
			}
			if err != nil {
				return storeError(err)
			}

			switch req.RequestType {
			case model.RequestTypeChef:
				// 既に番号があれば再利用
				chefID := ""
				if user.ChefID != nil && *user.ChefID != "" {
					chefID = *user.ChefID
				} else {
					chefID, err = nextFormattedID(ctx, r.Counters(), ChefIDSequence)
					if err != nil {
						return storeError(err)
					}
				}
				if err := r.Users().UpdateRole(ctx, user.Email, model.RoleChef, &chefID); err != nil {
					if errors.Is(err, repo.ErrNotFound) {
						return NewHTTPError(http.StatusNotFound, "user not found")
					}
					return storeError(err)
				}
				out.ChefID = chefID
				after["role"] = model.RoleChef
				after["chefId"] = chefID
			case model.RequestTypeAdmin:
				if err := r.Users().UpdateRole(ctx, user.Email, model.RoleAdmin, nil); err != nil {
					if errors.Is(err, repo.ErrNotFound) {
						return NewHTTPError(http.StatusNotFound, "user not found")
					}
					return storeError(err)
				}
				after["role"] = model.RoleAdmin
			default:
				return NewHTTPError(http.StatusBadRequest, "invalid request type")
			}
			before["role"] = user.Role
		}

		ok, err := r.RoleRequests().Decide(ctx, req.ID, status, actorEmail, now)
		if err != nil {
			return storeError(err)
		}
		if !ok {
			return errAlreadyDecided
		}
		after["requestStatus"] = status

		if err := r.AuditLogs().Create(ctx, newAuditLog(
			actorEmail, model.AuditActionDecideRoleRequest, model.AuditResourceRoleRequest, req.ID, before, after, now,
		)); err != nil {
			return storeError(err)
		}

		req.RequestStatus = status
		req.DecidedAt = &now
		req.DecidedBy = actorEmail
		out.Success = true
		out.Message = "Request " + string(status)
		out.Request = req
		return nil
	})

	if errors.Is(err, errAlreadyDecided) {
		req, ferr := u.requests.FindByID(ctx, requestID)
		if ferr != nil {
			return DecideRoleRequestOutput{}, storeError(ferr)
		}
		return DecideRoleRequestOutput{Success: true, Message: msgAlreadyProcessed, Request: req}, nil
	}
	if err != nil {
		return DecideRoleRequestOutput{}, err
	}

	if out.Message != msgAlreadyProcessed {
		metrics.RoleDecisions.WithLabelValues(string(out.Request.RequestType), string(out.Request.RequestStatus)).Inc()
		zerolog.Ctx(ctx).Info().
			Str("request_id", out.Request.ID).
			Str("user_email", out.Request.UserEmail).
			Str("type", string(out.Request.RequestType)).
			Str("status", string(out.Request.RequestStatus)).
			Str("chef_id", out.ChefID).
			Msg("role request decided")
	}
	return out, nil
}

func hasRole(user model.User, rt model.RequestType) bool {
	switch rt {
	case model.RequestTypeChef:
		return user.Role == model.RoleChef
	case model.RequestTypeAdmin:
		return user.Role.IsAdmin()
	}
	return false
}
