package main

import (
	"os/signal"
	"syscall"

	"chefbazaar/internal/infra/auth"
	"chefbazaar/internal/infra/payment"
	infraRepo "chefbazaar/internal/infra/repository"
	"chefbazaar/internal/server"
	"chefbazaar/internal/usecase"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := boot(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		// カウンターが無いなら起動しない
		if err := usecase.NewCounterUsecase(a.counters).EnsureProvisioned(ctx); err != nil {
			a.log.Error().Err(err).Msg("counter check failed")
			return err
		}

		var opts []infraRepo.TxOption
		if a.sequencer != nil {
			opts = append(opts, infraRepo.WithSequencer(a.sequencer))
		}

		e := server.New(a.cfg, server.Deps{
			DB:        a.db,
			TxManager: infraRepo.NewTxManagerGorm(a.db, opts...),
			Verifier:  auth.NewJWTVerifier(a.cfg.AuthSecret, a.cfg.AuthIssuer, a.cfg.AuthAudience),
			Gateway:   payment.NewStripeGateway(a.cfg.StripeKey, a.cfg.GatewayTimeout),
			IDs:       &uuidGenerator{},
			Clock:     &realClock{},
			Logger:    a.log,
		})

		addr := a.cfg.Port
		if addr == "" || addr[0] != ':' {
			addr = ":" + addr
		}
		return server.Start(ctx, addr, server.Handler(a.cfg, e), a.log)
	},
}
