package handler

import (
	"net/http"

	"chefbazaar/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	uc *usecase.ReviewUsecase
}

func NewReviewHandler(uc *usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

type ReviewRequest struct {
	MealID string `json:"mealId"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

func (h *ReviewHandler) RegisterRoutes(e *echo.Echo, g Gates) {
	e.GET("/latest-reviews", h.latest)
	e.GET("/meals-reviews", h.mine, g.Auth)
	e.GET("/meals-reviews/:mealId", h.byMeal, g.Auth)
	e.POST("/meals-reviews", h.create, g.Auth)
	e.PATCH("/meals-reviews/:id", h.update, g.Auth)
	e.DELETE("/meals-reviews/:id", h.delete, g.Auth)
}

func (h *ReviewHandler) latest(c echo.Context) error {
	out, err := h.uc.Latest(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 自分のレビュー一覧
func (h *ReviewHandler) mine(c echo.Context) error {
	out, err := h.uc.ListByUser(c.Request().Context(), currentEmail(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) byMeal(c echo.Context) error {
	out, err := h.uc.ListByMeal(c.Request().Context(), c.Param("mealId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) create(c echo.Context) error {
	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Create(c.Request().Context(), currentEmail(c), usecase.ReviewInput{
		MealID: req.MealID,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ReviewHandler) update(c echo.Context) error {
	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Update(c.Request().Context(), currentEmail(c), c.Param("id"), usecase.ReviewInput{
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), currentEmail(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "deleted"})
}
