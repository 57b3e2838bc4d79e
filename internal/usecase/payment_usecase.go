package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"chefbazaar/internal/domain/model"
	"chefbazaar/internal/metrics"
	repo "chefbazaar/internal/repository"
	"chefbazaar/internal/validator"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	paymentStatusPaid = "paid"

	msgPaymentReplay = "already processed"
)

// 同じ transaction_id の挿入に負けた（tx をロールバックして勝者を返す）
var errPaymentReplay = errors.New("payment already recorded")

type PaymentUsecase struct {
	tx       repo.TransactionManager
	users    repo.UserRepository
	orders   repo.OrderRepository
	payments repo.PaymentRepository
	gateway  PaymentGateway
	ids      IDGenerator
	clock    Clock

	siteDomain     string
	currency       string
	gatewayTimeout time.Duration
}

type PaymentConfig struct {
	SiteDomain     string
	Currency       string
	GatewayTimeout time.Duration
}

func NewPaymentUsecase(
	tx repo.TransactionManager,
	users repo.UserRepository,
	orders repo.OrderRepository,
	payments repo.PaymentRepository,
	gateway PaymentGateway,
	ids IDGenerator,
	clock Clock,
	cfg PaymentConfig,
) *PaymentUsecase {
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = 8 * time.Second
	}
	return &PaymentUsecase{
		tx:             tx,
		users:          users,
		orders:         orders,
		payments:       payments,
		gateway:        gateway,
		ids:            ids,
		clock:          clock,
		siteDomain:     strings.TrimRight(cfg.SiteDomain, "/"),
		currency:       cfg.Currency,
		gatewayTimeout: cfg.GatewayTimeout,
	}
}

type ConfirmPaymentOutput struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Payment *model.Payment `json:"payment,omitempty"`
}

// CreateCheckoutSession は注文者本人の、支払い待ち（payment）の注文だけ受け付ける
func (u *PaymentUsecase) CreateCheckoutSession(ctx context.Context, email string, orderID string) (CheckoutSession, error) {
	if email == "" {
		return CheckoutSession{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !validator.IsValidID(orderID) {
		return CheckoutSession{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return CheckoutSession{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return CheckoutSession{}, storeError(err)
	}
	if order.UserEmail != email {
		return CheckoutSession{}, NewHTTPError(http.StatusForbidden, "not your order")
	}

	switch order.PaymentStatus {
	case model.PaymentStatusPayment:
		// OK
	case model.PaymentStatusPaid:
		return CheckoutSession{}, NewHTTPError(http.StatusConflict, "already paid")
	default:
		return CheckoutSession{}, NewHTTPError(http.StatusConflict, "order is not awaiting payment")
	}

	// 合計額を1明細で請求（セント単位）
	amount := order.Total().Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	gctx, cancel := context.WithTimeout(ctx, u.gatewayTimeout)
	defer cancel()

	session, err := u.gateway.CreateSession(gctx, CheckoutSessionInput{
		OrderID:       order.ID,
		MealName:      order.MealName,
		CustomerEmail: order.UserEmail,
		UnitAmount:    amount,
		Quantity:      1,
		Currency:      u.currency,
		SuccessURL:    u.siteDomain + "/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     u.siteDomain + "/dashboard/orders",
	})
	if err != nil {
		return CheckoutSession{}, storeError(err)
	}
	return session, nil
}

// ConfirmPayment は決済セッションの結果を記録する。同じ取引は何度呼んでも1件
func (u *PaymentUsecase) ConfirmPayment(ctx context.Context, sessionID string) (ConfirmPaymentOutput, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ConfirmPaymentOutput{}, NewHTTPError(http.StatusBadRequest, "session_id is required")
	}

	gctx, cancel := context.WithTimeout(ctx, u.gatewayTimeout)
	session, err := u.gateway.RetrieveSession(gctx, sessionID)
	cancel()
	if errors.Is(err, ErrSessionNotFound) {
		return ConfirmPaymentOutput{}, NewHTTPError(http.StatusNotFound, "session not found")
	}
	if err != nil {
		return ConfirmPaymentOutput{}, storeError(err)
	}

	// 未払いなら何も書かない
	if !session.Paid {
		metrics.Reconciliations.WithLabelValues("unpaid").Inc()
		return ConfirmPaymentOutput{Success: false, Message: "payment not completed"}, nil
	}
	if session.TransactionID == "" {
		return ConfirmPaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid session")
	}
	orderID := session.Metadata["orderId"]
	if !validator.IsValidID(orderID) {
		return ConfirmPaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	existing, found, err := u.payments.FindByTransactionID(ctx, session.TransactionID)
	if err != nil {
		return ConfirmPaymentOutput{}, storeError(err)
	}
	if found {
		metrics.Reconciliations.WithLabelValues("replayed").Inc()
		return ConfirmPaymentOutput{Success: true, Message: msgPaymentReplay, Payment: &existing}, nil
	}

	var created model.Payment
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return storeError(err)
		}

		if err := r.Orders().UpdatePaymentStatus(ctx, order.ID, model.PaymentStatusPaid); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return storeError(err)
		}

		mealName := session.Metadata["mealName"]
		if mealName == "" {
			mealName = order.MealName
		}
		customer := session.CustomerEmail
		if customer == "" {
			customer = order.UserEmail
		}
		currency := strings.ToLower(session.Currency)
		if currency == "" {
			currency = u.currency
		}

		created = model.Payment{
			ID:            u.ids.NewID(),
			// AmountTotal は最小単位。PAYMENT_CURRENCY は小数2桁の通貨に限る（config で検証）
			Amount:        decimal.New(session.AmountTotal, -2),
			Currency:      currency,
			CustomerEmail: customer,
			OrderID:       order.ID,
			MealName:      mealName,
			TransactionID: session.TransactionID,
			SessionID:     session.SessionID,
			PaymentStatus: paymentStatusPaid,
			PaidAt:        u.clock.Now(),
		}
		if err := r.Payments().Create(ctx, created); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return errPaymentReplay
			}
			return storeError(err)
		}
		return nil
	})

	if errors.Is(err, errPaymentReplay) {
		winner, found, ferr := u.payments.FindByTransactionID(ctx, session.TransactionID)
		if ferr != nil {
			return ConfirmPaymentOutput{}, storeError(ferr)
		}
		if !found {
			return ConfirmPaymentOutput{}, storeError(errPaymentReplay)
		}
		metrics.Reconciliations.WithLabelValues("replayed").Inc()
		return ConfirmPaymentOutput{Success: true, Message: msgPaymentReplay, Payment: &winner}, nil
	}
	if err != nil {
		return ConfirmPaymentOutput{}, err
	}

	metrics.Reconciliations.WithLabelValues("created").Inc()
	zerolog.Ctx(ctx).Info().
		Str("order_id", created.OrderID).
		Str("transaction_id", created.TransactionID).
		Str("amount", created.Amount.StringFixed(2)).
		Msg("payment reconciled")

	return ConfirmPaymentOutput{Success: true, Message: "payment recorded", Payment: &created}, nil
}

// List は自分の支払い一覧。管理者は email 指定、空なら全件
func (u *PaymentUsecase) List(ctx context.Context, callerEmail string, email string) ([]model.Payment, error) {
	email = strings.TrimSpace(email)
	if email == "" || email != callerEmail {
		caller, err := u.users.FindByEmail(ctx, callerEmail)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, storeError(err)
		}
		if err != nil || !caller.Role.IsAdmin() {
			if email != "" {
				return nil, NewHTTPError(http.StatusForbidden, "forbidden access")
			}
			email = callerEmail
		}
	}

	payments, err := u.payments.List(ctx, email)
	if err != nil {
		return nil, storeError(err)
	}
	return payments, nil
}
