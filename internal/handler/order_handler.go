package handler

import (
	"net/http"

	"chefbazaar/internal/repository"
	"chefbazaar/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderCreateRequest struct {
	MealID          string `json:"mealId"`
	Quantity        int64  `json:"quantity"`
	DeliveryAddress string `json:"deliveryAddress"`
}

type OrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, g Gates) {
	e.POST("/orders", h.create, g.Auth)
	e.GET("/orders", h.list, g.Auth)
	e.GET("/orders/:id", h.detail, g.Auth)
	e.PATCH("/orders/:id", h.updateStatus, g.Auth, g.Chef)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Create(c.Request().Context(), currentEmail(c), usecase.CreateOrderInput{
		MealID:          req.MealID,
		Quantity:        req.Quantity,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), currentEmail(c), repository.OrderListFilter{
		UserEmail: c.QueryParam("email"),
		MealID:    c.QueryParam("mealId"),
		ChefID:    c.QueryParam("chefId"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), currentEmail(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	var req OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), currentEmail(c), c.Param("id"), req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
