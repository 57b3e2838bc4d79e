package middleware

import (
	"context"
	"net/http"

	"chefbazaar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type Authorizer interface {
	Authorize(ctx context.Context, email string, capability usecase.Capability) (usecase.AccessDecision, error)
}

// ロールを確認してから次へ（判定が終わるまで処理は始めない）
func RequireCapability(authz Authorizer, capability usecase.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision, err := authz.Authorize(c.Request().Context(), UserEmail(c), capability)
			if err != nil {
				status := http.StatusInternalServerError
				msg := "internal error"
				if he, ok := usecase.AsHTTPError(err); ok {
					status, msg = he.Status, he.Message
				}
				zerolog.Ctx(c.Request().Context()).Error().Err(err).Str("capability", string(capability)).Msg("access check failed")
				return c.JSON(status, errorJSON(msg))
			}

			switch decision.Result {
			case usecase.AccessGranted:
				c.Set(CtxAccessUserKey, decision.User)
				return next(c)
			case usecase.AccessUnauthenticated:
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized access"))
			default:
				return c.JSON(http.StatusForbidden, errorJSON(decision.Reason))
			}
		}
	}
}
