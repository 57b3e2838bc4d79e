package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"chefbazaar/internal/config"
	"chefbazaar/internal/metrics"
	"chefbazaar/internal/middleware"
	repo "chefbazaar/internal/repository"
	"chefbazaar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// サーバーが使う部品（テストでは差し替える）
type Deps struct {
	DB        *gorm.DB
	TxManager repo.TransactionManager
	Verifier  usecase.TokenVerifier
	Gateway   usecase.PaymentGateway
	IDs       usecase.IDGenerator
	Clock     usecase.Clock
	Logger    zerolog.Logger
}

// New は echo を組み立ててルートを登録する
func New(cfg config.Config, d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(metrics.Middleware())
	e.Use(middleware.Deadline(cfg.RequestTimeout))

	registerRoutes(e, cfg, d)
	return e
}

// CORS を外側に付ける
func Handler(cfg config.Config, e *echo.Echo) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders:   []string{middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           86400,
	})
	return c.Handler(e)
}

// Start は ctx がキャンセルされるまで待って、graceful shutdown する
func Start(ctx context.Context, addr string, h http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
