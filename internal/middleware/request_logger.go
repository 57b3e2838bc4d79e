package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const HeaderRequestID = "X-Request-ID"

// リクエストIDを付けて、リクエスト単位のロガーを context に入れる
func RequestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			requestID := req.Header.Get(HeaderRequestID)
			if requestID == "" || len(requestID) > 128 {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(HeaderRequestID, requestID)

			l := logger.With().Str("request_id", requestID).Logger()
			c.SetRequest(req.WithContext(l.WithContext(req.Context())))

			err := next(c)
			if err != nil {
				//echo の HTTPError などはここでレスポンスにする
				c.Error(err)
			}

			l.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", c.Response().Status).
				Dur("duration", time.Since(start)).
				Msg("request completed")
			return nil
		}
	}
}
