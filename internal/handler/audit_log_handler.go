package handler

import (
	"net/http"
	"strconv"

	"chefbazaar/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuditLogHandler struct {
	uc *usecase.AuditLogUsecase
}

func NewAuditLogHandler(uc *usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{uc: uc}
}

func (h *AuditLogHandler) RegisterRoutes(e *echo.Echo, g Gates) {
	e.GET("/admin/audit-logs", h.list, g.Auth, g.Admin)
}

func (h *AuditLogHandler) list(c echo.Context) error {
	in := usecase.ListAuditLogsInput{
		ActorEmail:   c.QueryParam("actor"),
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resourceType"),
		ResourceID:   c.QueryParam("resourceId"),
	}
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "invalid limit")
		}
		in.Limit = l
	}
	if v := c.QueryParam("offset"); v != "" {
		o, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "invalid offset")
		}
		in.Offset = o
	}

	out, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
