package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/sergeybanach/wallet-app-1/docs"
	"github.com/sergeybanach/wallet-app-1/internal/handler"
)

// SetupRouter sets up router with handlers
func SetupRouter(tonHandler *handler.TonHandler, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// TON endpoints
	mux.HandleFunc("/ton/wallet", tonHandler.Wallet)
	mux.HandleFunc("/ton/wallet/import", tonHandler.ImportWallet)
	mux.HandleFunc("/ton/balance", tonHandler.GetBalance)
	mux.HandleFunc("/ton/send", tonHandler.Send)
	mux.HandleFunc("/ton/transactions", tonHandler.TransactionHistory)
	mux.HandleFunc("/ton/refresh", tonHandler.Refresh)
	mux.HandleFunc("/ton/address", tonHandler.Receive)

	return accessLog(logger)(mux)
}

// accessLog logs one line per request at debug level.
func accessLog(logger zerolog.Logger) func(http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, took time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("took", took).
			Msg("request")
	})
	return func(next http.Handler) http.Handler {
		return hlog.NewHandler(logger)(access(next))
	}
}
