package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/sergeybanach/wallet-app-1/internal/api"
	"github.com/sergeybanach/wallet-app-1/internal/config"
	"github.com/sergeybanach/wallet-app-1/internal/handler"
	"github.com/sergeybanach/wallet-app-1/internal/log"
)

var serve = cli.Command{
	Name:   "serve",
	Usage:  "run the HTTP API",
	Action: serveAction,
}

func serveAction(*cli.Context) error {
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := config.Get()
	router := api.SetupRouter(handler.NewTonHandler(svc, cfg.DefaultNetwork(), log.API), log.API)
	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.API.Info().Str("addr", srv.Addr).Str("network", string(cfg.DefaultNetwork())).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.API.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
