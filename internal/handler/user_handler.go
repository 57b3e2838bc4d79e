package handler

import (
	"net/http"

	"chefbazaar/internal/repository"
	"chefbazaar/internal/usecase"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	uc *usecase.UserUsecase
}

func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

type SignInRequest struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

type UpdateUserStatusRequest struct {
	UserStatus string `json:"userStatus"`
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo, g Gates) {
	e.POST("/api/users", h.signIn, g.Auth)
	e.GET("/api/users", h.list, g.Auth, g.Admin)
	e.GET("/api/users/email", h.byEmail, g.Auth)
	e.GET("/api/users/:email/role", h.role, g.Auth)
	e.PATCH("/api/users/:id/status", h.updateStatus, g.Auth, g.Admin)
	e.GET("/admin-stats", h.stats, g.Auth, g.Admin)
}

// 初回サインインで作成（既存ならそのまま返す）
func (h *UserHandler) signIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	user, created, err := h.uc.FindOrCreate(c.Request().Context(), currentEmail(c), usecase.SignInInput{
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	if created {
		return c.JSON(http.StatusCreated, user)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) list(c echo.Context) error {
	users, err := h.uc.List(c.Request().Context(), repository.UserListFilter{Email: c.QueryParam("email")})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) byEmail(c echo.Context) error {
	user, err := h.uc.GetByEmail(c.Request().Context(), currentEmail(c), c.QueryParam("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) role(c echo.Context) error {
	role, err := h.uc.Role(c.Request().Context(), c.Param("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"role": string(role)})
}

func (h *UserHandler) updateStatus(c echo.Context) error {
	var req UpdateUserStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	user, err := h.uc.UpdateStatus(c.Request().Context(), currentEmail(c), c.Param("id"), req.UserStatus)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) stats(c echo.Context) error {
	out, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
