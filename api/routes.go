package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/budget-ledger/internal/auth"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/account"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/admin"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/category"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/status"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/transaction"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/transfer"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/service"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger   *logrus.Logger
	Port     int
	Storage  *storage.Storage
	Service  *service.Service
	Resolver auth.Resolver
}

// Handler builds the router: /status on the plain mux, everything else as
// authenticated huma operations.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("Budget Ledger", "1.0.0"))
	api.UseMiddleware(logging.Middleware(r.Logger))
	api.UseMiddleware(auth.Middleware(api, r.Resolver, r.Logger))

	account.NewHandler(r.Service.Account).Register(api)
	category.NewHandler(r.Service.Category).Register(api)
	transaction.NewHandler(r.Service.Transaction).Register(api)
	transfer.NewHandler(r.Service.Transfer).Register(api)
	admin.NewHandler(r.Service.Admin).Register(api)

	return mux
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              ":" + strconv.Itoa(r.Port),
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		r.Logger.Info("HttpServer.Serve.shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
