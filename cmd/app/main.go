package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusdelivery/cmd"
	httpin "campusdelivery/internal/adapters/in/http"
	"campusdelivery/internal/adapters/out/postgres"
	"campusdelivery/internal/pkg/metrics"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs, err := cmd.LoadConfig("")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configs, logger); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	metrics.Register()

	gormDB, err := postgres.Open(configs.Postgres())
	if err != nil {
		return err
	}
	if err := postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("closing adapters", "error", err)
		}
	}()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := httpin.NewRouter(app.CreateHTTPServer(), app.CreateAuthenticator())
	e.HideBanner = true

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server starting", "port", configs.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("http server stopping")
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
