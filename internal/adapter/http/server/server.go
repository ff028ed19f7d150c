package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/steadyapp/steady-backend/config"
	"github.com/steadyapp/steady-backend/internal/adapter/http/handler"
	"github.com/steadyapp/steady-backend/internal/adapter/http/middleware"
	"github.com/steadyapp/steady-backend/pkg/logger"
	wrap "github.com/steadyapp/steady-backend/pkg/logger/wrapper"
)

const serviceName = "steady-backend"

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	steadiness *handler.Steadiness
	health     *handler.Health
}

func New(
	cfg config.Config,
	steadinessService handler.SteadinessService,
	log logger.Logger,
) (*API, error) {
	if steadinessService == nil {
		return nil, errors.New("steadiness service is required")
	}

	routes := &handlers{
		steadiness: handler.NewSteadiness(steadinessService, cfg.Engine.City, log),
		health:     handler.NewHealth(serviceName, log),
	}

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      middleware.NewMiddleware(log),
		addr:   fmt.Sprintf("0.0.0.0:%s", cfg.Server.Port),
		cfg:    cfg,
		log:    log,
	}

	setupRoutes(api.mux, api.routes)

	api.server = &http.Server{
		Addr:    api.addr,
		Handler: api.withMiddleware(),
	}

	return api, nil
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// withMiddleware applies the middleware chain to the mux.
func (a *API) withMiddleware() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Logging(a.m.Metrics(serviceName)(a.mux))))
}
