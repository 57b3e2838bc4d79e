package middleware

import (
	"net/http"
	"strings"

	"chefbazaar/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserEmailKey  = "user_email"  // string（確認済み）
	CtxAccessUserKey = "access_user" // model.User（ガード通過時）
)

// bearer のIDトークンを検証して、確認済みemailを context に入れる
func AuthToken(verifier usecase.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized access"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized access"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized access"))
			}

			email, err := verifier.Verify(c.Request().Context(), rawToken)
			if err != nil || email == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized access"))
			}

			c.Set(CtxUserEmailKey, email)
			return next(c)
		}
	}
}

// 確認済みemail（AuthToken を通っていなければ空）
func UserEmail(c echo.Context) string {
	email, _ := c.Get(CtxUserEmailKey).(string)
	return email
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
