package handler

import (
	"net/http"
	"strconv"

	"chefbazaar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type MealHandler struct {
	uc *usecase.MealUsecase
}

func NewMealHandler(uc *usecase.MealUsecase) *MealHandler {
	return &MealHandler{uc: uc}
}

type MealRequest struct {
	MealName              string          `json:"mealName"`
	Description           string          `json:"description"`
	Ingredients           []string        `json:"ingredients"`
	FoodImage             string          `json:"foodImage"`
	Price                 decimal.Decimal `json:"price"`
	DeliveryArea          string          `json:"deliveryArea"`
	EstimatedDeliveryTime string          `json:"estimatedDeliveryTime"`
	Rating                float64         `json:"rating"`
}

func (r MealRequest) toInput() usecase.MealInput {
	return usecase.MealInput{
		Name:                  r.MealName,
		Description:           r.Description,
		Ingredients:           r.Ingredients,
		ImageURL:              r.FoodImage,
		Price:                 r.Price,
		DeliveryArea:          r.DeliveryArea,
		EstimatedDeliveryTime: r.EstimatedDeliveryTime,
		Rating:                r.Rating,
	}
}

func (h *MealHandler) RegisterRoutes(e *echo.Echo, g Gates) {
	e.GET("/meals", h.list)
	e.GET("/latest-meals", h.latest)
	e.GET("/meals/:id", h.detail, g.Auth)
	e.POST("/meals", h.create, g.Auth, g.Chef)
	e.PATCH("/meals/:id", h.update, g.Auth, g.Chef)
	e.DELETE("/meals/:id", h.delete, g.Auth, g.Chef)
}

func (h *MealHandler) list(c echo.Context) error {
	// page（default 1）
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "invalid page")
		}
		page = p
	}

	// limit（default 10）
	limit := 10
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "invalid limit")
		}
		limit = l
	}

	// "none" は並び替えなし
	sort := c.QueryParam("sort")
	if sort == "none" {
		sort = ""
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListMealsInput{
		Page:      page,
		Limit:     limit,
		Search:    c.QueryParam("search"),
		Sort:      sort,
		ChefEmail: c.QueryParam("email"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MealHandler) latest(c echo.Context) error {
	out, err := h.uc.Latest(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MealHandler) detail(c echo.Context) error {
	meal, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) create(c echo.Context) error {
	var req MealRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	meal, err := h.uc.Create(c.Request().Context(), currentEmail(c), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, meal)
}

func (h *MealHandler) update(c echo.Context) error {
	var req MealRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	meal, err := h.uc.Update(c.Request().Context(), currentEmail(c), c.Param("id"), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), currentEmail(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "deleted"})
}
