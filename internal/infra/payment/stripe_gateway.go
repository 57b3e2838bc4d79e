package payment

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"chefbazaar/internal/usecase"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeGateway は Stripe Checkout でセッションを作成・照会する
type StripeGateway struct {
	sc *client.API
}

func NewStripeGateway(secretKey string, timeout time.Duration) *StripeGateway {
	httpClient := &http.Client{Timeout: timeout}
	return &StripeGateway{sc: client.New(secretKey, stripe.NewBackends(httpClient))}
}

var _ usecase.PaymentGateway = (*StripeGateway)(nil)

func (g *StripeGateway) CreateSession(ctx context.Context, in usecase.CheckoutSessionInput) (usecase.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		Mode:   stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(in.Currency),
					UnitAmount: stripe.Int64(in.UnitAmount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(in.MealName),
					},
				},
				Quantity: stripe.Int64(in.Quantity),
			},
		},
		CustomerEmail: stripe.String(in.CustomerEmail),
		SuccessURL:    stripe.String(in.SuccessURL),
		CancelURL:     stripe.String(in.CancelURL),
	}
	params.AddMetadata("orderId", in.OrderID)
	params.AddMetadata("mealName", in.MealName)

	s, err := g.sc.CheckoutSessions.New(params)
	if err != nil {
		return usecase.CheckoutSession{}, mapStripeError(ctx, err)
	}
	return usecase.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (g *StripeGateway) RetrieveSession(ctx context.Context, sessionID string) (usecase.SessionResult, error) {
	params := &stripe.CheckoutSessionParams{Params: stripe.Params{Context: ctx}}

	s, err := g.sc.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return usecase.SessionResult{}, mapStripeError(ctx, err)
	}

	out := usecase.SessionResult{
		SessionID:     s.ID,
		Paid:          s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		CustomerEmail: s.CustomerEmail,
		Metadata:      s.Metadata,
	}
	if s.PaymentIntent != nil {
		out.TransactionID = s.PaymentIntent.ID
	}
	if out.CustomerEmail == "" && s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	return out, nil
}

func mapStripeError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeout(err) {
		return errors.Join(usecase.ErrGatewayTimeout, err)
	}
	var se *stripe.Error
	if errors.As(err, &se) && se.HTTPStatusCode == http.StatusNotFound {
		return usecase.ErrSessionNotFound
	}
	return err
}

func isTimeout(err error) bool {
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "Client.Timeout exceeded")
}
