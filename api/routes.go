package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/account-service/internal/handlers/v1/account"
	"github.com/carson-networks/account-service/internal/handlers/v1/status"
	"github.com/carson-networks/account-service/internal/logging"
	"github.com/carson-networks/account-service/internal/metrics"
	"github.com/carson-networks/account-service/internal/rest"
	"github.com/carson-networks/account-service/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
}

// Router builds the HTTP routes. Account ids only match digits, so any other
// id answers 404 without reaching a handler.
func (r *Rest) Router() http.Handler {
	statusHandler := status.NewHandler()
	createAccount := account.NewCreateAccountHandler(r.Service.Account)
	listAccounts := account.NewListAccountsHandler(r.Service.Account)
	getAccount := account.NewGetAccountHandler(r.Service.Account)
	updateAccount := account.NewUpdateAccountHandler(r.Service.Account)
	deleteAccount := account.NewDeleteAccountHandler(r.Service.Account)

	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(rest.Recoverer(r.Logger))
	router.Use(metrics.InstrumentHandler)

	router.NotFound(rest.NotFoundHandler)
	router.MethodNotAllowed(rest.MethodNotAllowedHandler)

	router.Get("/", r.wrap("Index", statusHandler.Index))
	router.Get("/health", r.wrap("Health", statusHandler.Health))
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.Post("/accounts", r.wrap("CreateAccount", createAccount.Handle))
	router.Get("/accounts", r.wrap("ListAccounts", listAccounts.Handle))
	router.Get("/accounts/{id:[0-9]+}", r.wrap("GetAccount", getAccount.Handle))
	router.Put("/accounts/{id:[0-9]+}", r.wrap("UpdateAccount", updateAccount.Handle))
	router.Delete("/accounts/{id:[0-9]+}", r.wrap("DeleteAccount", deleteAccount.Handle))

	return router
}

func (r *Rest) wrap(name string, handler rest.Handler) http.HandlerFunc {
	return logging.LoggingWrapper(name, r.Logger, rest.Adapt(handler))
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Router(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		return err
	}
	return nil
}
