package handler

import (
	"net/http"

	"chefbazaar/internal/usecase"

	"github.com/labstack/echo/v4"
)

type FavoriteHandler struct {
	uc *usecase.FavoriteUsecase
}

func NewFavoriteHandler(uc *usecase.FavoriteUsecase) *FavoriteHandler {
	return &FavoriteHandler{uc: uc}
}

type AddFavoriteRequest struct {
	MealID string `json:"mealId"`
}

func (h *FavoriteHandler) RegisterRoutes(e *echo.Echo, g Gates) {
	e.GET("/favorites", h.list, g.Auth)
	e.POST("/favorites", h.add, g.Auth)
	e.DELETE("/favorites/:id", h.remove, g.Auth)
}

func (h *FavoriteHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), currentEmail(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FavoriteHandler) add(c echo.Context) error {
	var req AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Add(c.Request().Context(), currentEmail(c), req.MealID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *FavoriteHandler) remove(c echo.Context) error {
	if err := h.uc.Remove(c.Request().Context(), currentEmail(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "deleted"})
}
