package usecase

import (
	"context"
	"errors"
	"time"
)

var (
	// 決済サービスが時間内に応答しない
	ErrGatewayTimeout = errors.New("payment gateway timeout")
	// セッションが存在しない
	ErrSessionNotFound = errors.New("checkout session not found")
	// 資格情報が不正（署名・期限・形式）
	ErrInvalidCredential = errors.New("invalid credential")
)

// IDトークンを検証して、確認済みのemailを返す
type TokenVerifier interface {
	Verify(ctx context.Context, credential string) (string, error)
}

type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

type CheckoutSessionInput struct {
	OrderID       string
	MealName      string
	CustomerEmail string
	// 最小通貨単位（セント）
	UnitAmount int64
	Quantity   int64
	Currency   string
	SuccessURL string
	CancelURL  string
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// 決済セッションの照会結果
type SessionResult struct {
	SessionID     string
	Paid          bool
	TransactionID string
	AmountTotal   int64
	Currency      string
	CustomerEmail string
	Metadata      map[string]string
}

// ホスト型決済（Stripe Checkout）
type PaymentGateway interface {
	CreateSession(ctx context.Context, in CheckoutSessionInput) (CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (SessionResult, error)
}
