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
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	users  repo.UserRepository
	meals  repo.MealRepository
	orders repo.OrderRepository
	ids    IDGenerator
	clock  Clock
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	users repo.UserRepository,
	meals repo.MealRepository,
	orders repo.OrderRepository,
	ids IDGenerator,
	clock Clock,
) *OrderUsecase {
	return &OrderUsecase{tx: tx, users: users, meals: meals, orders: orders, ids: ids, clock: clock}
}

type CreateOrderInput struct {
	MealID          string
	Quantity        int64
	DeliveryAddress string
}

type UpdateOrderStatusOutput struct {
	Success bool        `json:"success"`
	Changed bool        `json:"changed"`
	Order   model.Order `json:"order"`
}

// 遷移表：to ごとに許可する from と、支払い状態の更新先（nil なら触らない）
type orderTransition struct {
	from    []model.OrderStatus
	payment *model.PaymentStatus
}

func paymentPtr(s model.PaymentStatus) *model.PaymentStatus { return &s }

var orderTransitions = map[model.OrderStatus]orderTransition{
	model.OrderStatusAccepted: {
		from:    []model.OrderStatus{model.OrderStatusPending},
		payment: paymentPtr(model.PaymentStatusPayment),
	},
	model.OrderStatusCancelled: {
		from:    []model.OrderStatus{model.OrderStatusPending, model.OrderStatusAccepted},
		payment: paymentPtr(model.PaymentStatusCancelled),
	},
	model.OrderStatusDelivered: {
		from: []model.OrderStatus{model.OrderStatusAccepted},
	},
}

func (t orderTransition) allows(s model.OrderStatus) bool {
	for _, f := range t.from {
		if f == s {
			return true
		}
	}
	return false
}

// 注文作成（価格・シェフ・料理名は料理レコードから取る）
func (u *OrderUsecase) Create(ctx context.Context, email string, in CreateOrderInput) (model.Order, error) {
	if email == "" {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Quantity < 1 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}
	if !validator.IsValidID(in.MealID) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid meal id")
	}
	address := strings.TrimSpace(in.DeliveryAddress)
	if len(address) > 500 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid delivery address")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return model.Order{}, storeError(err)
	}
	if err := EnsureNotFraud(user); err != nil {
		return model.Order{}, err
	}

	meal, err := u.meals.FindByID(ctx, in.MealID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "meal not found")
	}
	if err != nil {
		return model.Order{}, storeError(err)
	}

	now := u.clock.Now()
	order := model.Order{
		ID:              u.ids.NewID(),
		UserEmail:       user.Email,
		MealID:          meal.ID,
		MealName:        meal.Name,
		ChefID:          meal.ChefID,
		Price:           meal.Price,
		Quantity:        in.Quantity,
		DeliveryAddress: address,
		OrderStatus:     model.OrderStatusPending,
		PaymentStatus:   model.PaymentStatusPending,
		OrderTime:       now,
		UpdatedAt:       now,
	}
	if err := u.orders.Create(ctx, order); err != nil {
		return model.Order{}, storeError(err)
	}
	return order, nil
}

// 一覧。管理者以外は自分の注文か、自分の chefId 宛ての注文だけ
func (u *OrderUsecase) List(ctx context.Context, callerEmail string, f repo.OrderListFilter) ([]model.Order, error) {
	caller, err := u.users.FindByEmail(ctx, callerEmail)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusForbidden, "forbidden access")
	}
	if err != nil {
		return nil, storeError(err)
	}

	f.UserEmail = strings.TrimSpace(f.UserEmail)
	f.ChefID = strings.TrimSpace(f.ChefID)
	f.MealID = strings.TrimSpace(f.MealID)
	if f.MealID != "" && !validator.IsValidID(f.MealID) {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid meal id")
	}

	if !caller.Role.IsAdmin() {
		switch {
		case f.ChefID != "":
			if caller.ChefID == nil || *caller.ChefID != f.ChefID {
				return nil, NewHTTPError(http.StatusForbidden, "forbidden access")
			}
		case f.UserEmail != "" && f.UserEmail != caller.Email:
			return nil, NewHTTPError(http.StatusForbidden, "forbidden access")
		default:
			f.UserEmail = caller.Email
		}
	}

	orders, err := u.orders.List(ctx, f)
	if err != nil {
		return nil, storeError(err)
	}
	return orders, nil
}

// 詳細（注文者・担当シェフ・管理者のみ）
func (u *OrderUsecase) Get(ctx context.Context, callerEmail string, orderID string) (model.Order, error) {
	if !validator.IsValidID(orderID) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	order, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Order{}, storeError(err)
	}
	if order.UserEmail == callerEmail {
		return order, nil
	}

	caller, err := u.users.FindByEmail(ctx, callerEmail)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusForbidden, "forbidden access")
	}
	if err != nil {
		return model.Order{}, storeError(err)
	}
	if caller.Role.IsAdmin() || (caller.ChefID != nil && *caller.ChefID == order.ChefID) {
		return order, nil
	}
	return model.Order{}, NewHTTPError(http.StatusForbidden, "forbidden access")
}

// UpdateStatus はシェフが自分宛ての注文を遷移させる。
// 表にない遷移・不明な値は何もしない（changed=false）
func (u *OrderUsecase) UpdateStatus(ctx context.Context, chefEmail string, orderID string, status string) (UpdateOrderStatusOutput, error) {
	if !validator.IsValidID(orderID) {
		return UpdateOrderStatusOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	to := model.OrderStatus(strings.TrimSpace(status))

	var out UpdateOrderStatusOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		chef, err := r.Users().FindByEmail(ctx, chefEmail)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusForbidden, "forbidden access")
		}
		if err != nil {
			return storeError(err)
		}
		if chef.ChefID == nil || *chef.ChefID == "" {
			return NewHTTPError(http.StatusForbidden, "chef only")
		}

		order, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return storeError(err)
		}
		if order.ChefID != *chef.ChefID {
			return NewHTTPError(http.StatusForbidden, "not your order")
		}

		out = UpdateOrderStatusOutput{Success: true, Order: order}

		tr, ok := orderTransitions[to]
		if !ok || !tr.allows(order.OrderStatus) {
			return nil
		}

		changed, err := r.Orders().UpdateStatusIf(ctx, order.ID, tr.from, to, tr.payment)
		if err != nil {
			return storeError(err)
		}
		if !changed {
			return nil
		}

		before := map[string]any{"orderStatus": order.OrderStatus, "paymentStatus": order.PaymentStatus}
		order.OrderStatus = to
		if tr.payment != nil {
			order.PaymentStatus = *tr.payment
		}
		order.UpdatedAt = u.clock.Now()
		after := map[string]any{"orderStatus": order.OrderStatus, "paymentStatus": order.PaymentStatus}

		if err := r.AuditLogs().Create(ctx, newAuditLog(
			chefEmail, model.AuditActionUpdateOrderStatus, model.AuditResourceOrder, order.ID, before, after, order.UpdatedAt,
		)); err != nil {
			return storeError(err)
		}

		out.Changed = true
		out.Order = order
		return nil
	})
	if err != nil {
		return UpdateOrderStatusOutput{}, err
	}

	if out.Changed {
		metrics.OrderTransitions.WithLabelValues(string(out.Order.OrderStatus)).Inc()
	}
	return out, nil
}
