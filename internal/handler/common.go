package handler

import (
	"net/http"

	"chefbazaar/internal/middleware"
	"chefbazaar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ルートに付けるミドルウェア一式
type Gates struct {
	Auth         echo.MiddlewareFunc
	Admin        echo.MiddlewareFunc
	Chef         echo.MiddlewareFunc
	PaymentLimit echo.MiddlewareFunc
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status >= http.StatusInternalServerError {
			zerolog.Ctx(c.Request().Context()).Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Int("status", he.Status).
				Msg("request failed")
		}
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	zerolog.Ctx(c.Request().Context()).Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// AuthToken が入れた確認済みemail
func currentEmail(c echo.Context) string {
	return middleware.UserEmail(c)
}
