package handler

import (
	"net/http"

	"chefbazaar/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /requests（ロール昇格の申請）
type RoleRequestHandler struct {
	uc *usecase.RoleRequestUsecase
}

func NewRoleRequestHandler(uc *usecase.RoleRequestUsecase) *RoleRequestHandler {
	return &RoleRequestHandler{uc: uc}
}

type SubmitRoleRequestRequest struct {
	RequestType string `json:"requestType"`
}

type DecideRoleRequestRequest struct {
	Action string `json:"action"`
}

func (h *RoleRequestHandler) RegisterRoutes(e *echo.Echo, g Gates) {
	e.POST("/requests", h.submit, g.Auth)
	e.GET("/requests", h.list, g.Auth, g.Admin)
	e.PATCH("/requests/:id", h.decide, g.Auth, g.Admin)
}

func (h *RoleRequestHandler) submit(c echo.Context) error {
	var req SubmitRoleRequestRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	// 申請者はトークンのemail（bodyのemailは使わない）
	out, err := h.uc.Submit(c.Request().Context(), currentEmail(c), usecase.SubmitRoleRequestInput{
		RequestType: req.RequestType,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *RoleRequestHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RoleRequestHandler) decide(c echo.Context) error {
	var req DecideRoleRequestRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Decide(c.Request().Context(), currentEmail(c), c.Param("id"), req.Action)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
