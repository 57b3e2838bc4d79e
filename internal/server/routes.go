package server

import (
	"net/http"

	"chefbazaar/internal/config"
	"chefbazaar/internal/handler"
	infraRepo "chefbazaar/internal/infra/repository"
	"chefbazaar/internal/metrics"
	"chefbazaar/internal/middleware"
	"chefbazaar/internal/usecase"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, cfg config.Config, d Deps) {
	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	requestRepo := infraRepo.NewRoleRequestGormRepository(d.DB)
	mealRepo := infraRepo.NewMealGormRepository(d.DB)
	orderRepo := infraRepo.NewOrderGormRepository(d.DB)
	paymentRepo := infraRepo.NewPaymentGormRepository(d.DB)
	favoriteRepo := infraRepo.NewFavoriteGormRepository(d.DB)
	reviewRepo := infraRepo.NewReviewGormRepository(d.DB)
	auditRepo := infraRepo.NewAuditLogGormRepository(d.DB)

	//Usecase生成
	accessUC := usecase.NewAccessUsecase(userRepo)
	userUC := usecase.NewUserUsecase(d.TxManager, userRepo, orderRepo, d.IDs, d.Clock)
	requestUC := usecase.NewRoleRequestUsecase(d.TxManager, userRepo, requestRepo, d.IDs, d.Clock)
	mealUC := usecase.NewMealUsecase(userRepo, mealRepo, d.IDs, d.Clock)
	reviewUC := usecase.NewReviewUsecase(userRepo, mealRepo, reviewRepo, d.IDs, d.Clock)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)
	favoriteUC := usecase.NewFavoriteUsecase(mealRepo, favoriteRepo, d.IDs, d.Clock)
	orderUC := usecase.NewOrderUsecase(d.TxManager, userRepo, mealRepo, orderRepo, d.IDs, d.Clock)
	paymentUC := usecase.NewPaymentUsecase(d.TxManager, userRepo, orderRepo, paymentRepo, d.Gateway, d.IDs, d.Clock, usecase.PaymentConfig{
		SiteDomain:     cfg.SiteDomain,
		Currency:       cfg.PaymentCurrency,
		GatewayTimeout: cfg.GatewayTimeout,
	})

	// 認証 → ロール確認 の順
	gates := handler.Gates{
		Auth:         middleware.AuthToken(d.Verifier),
		Admin:        middleware.RequireCapability(accessUC, usecase.CapabilityAdmin),
		Chef:         middleware.RequireCapability(accessUC, usecase.CapabilityChef),
		PaymentLimit: middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware(),
	}

	handler.NewUserHandler(userUC).RegisterRoutes(e, gates)
	handler.NewRoleRequestHandler(requestUC).RegisterRoutes(e, gates)
	handler.NewMealHandler(mealUC).RegisterRoutes(e, gates)
	handler.NewReviewHandler(reviewUC).RegisterRoutes(e, gates)
	handler.NewFavoriteHandler(favoriteUC).RegisterRoutes(e, gates)
	handler.NewOrderHandler(orderUC).RegisterRoutes(e, gates)
	handler.NewPaymentHandler(paymentUC).RegisterRoutes(e, gates)
	handler.NewAuditLogHandler(auditUC).RegisterRoutes(e, gates)

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request().Context())
		}
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, handler.ErrorResponse{Error: "database unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
