package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/steadyapp/steady-backend/config"
	"github.com/steadyapp/steady-backend/internal/adapter/http/server"
	"github.com/steadyapp/steady-backend/internal/adapter/sessionfile"
	"github.com/steadyapp/steady-backend/internal/service/steadiness"
	"github.com/steadyapp/steady-backend/pkg/logger"
)

type App struct {
	engine     *steadiness.Service
	httpServer *server.API

	cfg config.Config
	log logger.Logger
}

func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	engine := steadiness.New(steadiness.Config{
		City:                   cfg.Engine.City,
		CVScalingFactor:        cfg.Engine.CVScalingFactor,
		MaxCVForScoring:        cfg.Engine.MaxCVForScoring,
		MinSessionsForAnalysis: cfg.Engine.MinSessionsForAnalysis,
		RollingWindowWeeks:     cfg.Engine.RollingWindowWeeks,
		LookbackDays:           cfg.Engine.LookbackDays,
		DefaultTrendWeeks:      cfg.Engine.DefaultTrendWeeks,
	}, log)

	// Seed the engine from the session history file when one is configured.
	if cfg.Data.SessionsFile != "" {
		source, err := sessionfile.New(ctx, cfg.Data.SessionsFile, log)
		if err != nil {
			log.Error(ctx, "failed to read session history", err)
			return nil, err
		}
		if err := engine.LoadBulk(ctx, source.SessionsByDriver()); err != nil {
			log.Error(ctx, "failed to load session history", err)
			return nil, err
		}
	}

	httpServer, err := server.New(cfg, engine, log)
	if err != nil {
		log.Error(ctx, "failed to setup http server", err)
		return nil, fmt.Errorf("failed to setup http server: %w", err)
	}

	return &App{
		engine:     engine,
		httpServer: httpServer,
		cfg:        cfg,
		log:        log,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.httpServer.Run(ctx, errCh)
	defer func() {
		a.close(ctx)
		a.log.Info(ctx, "steadiness service closed")
	}()

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	a.log.Info(ctx, "steadiness service started")

	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		a.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	}
}

func (a *App) close(ctx context.Context) {
	if a.httpServer != nil {
		if err := a.httpServer.Stop(ctx); err != nil {
			a.log.Warn(ctx, "failed to gracefully close http server", "error", err.Error())
		}
	}
}
