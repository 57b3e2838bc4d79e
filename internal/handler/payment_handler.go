package handler

import (
	"net/http"

	"chefbazaar/internal/usecase"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	uc *usecase.PaymentUsecase
}

func NewPaymentHandler(uc *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

type CheckoutRequest struct {
	OrderID string `json:"orderId"`
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, g Gates) {
	e.POST("/create-checkout-session", h.createCheckout, g.PaymentLimit, g.Auth)
	// 決済サービスからの戻り（トークンなし、session_id で照会）
	e.PATCH("/payment-success", h.confirm, g.PaymentLimit)
	e.GET("/payments", h.list, g.Auth)
}

func (h *PaymentHandler) createCheckout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.CreateCheckoutSession(c.Request().Context(), currentEmail(c), req.OrderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) confirm(c echo.Context) error {
	out, err := h.uc.ConfirmPayment(c.Request().Context(), c.QueryParam("session_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), currentEmail(c), c.QueryParam("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
