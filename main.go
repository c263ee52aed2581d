package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/echoflaresat/midnightline/clock"
	"github.com/echoflaresat/midnightline/colors"
	"github.com/echoflaresat/midnightline/config"
	"github.com/echoflaresat/midnightline/logger"
	"github.com/echoflaresat/midnightline/metrics"
	"github.com/echoflaresat/midnightline/midnight"
	"github.com/echoflaresat/midnightline/server"
	"github.com/echoflaresat/midnightline/view"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("midnightline exited", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	m, err := metrics.New(nil)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	calc, err := midnight.NewFromName(log.Named("midnight"), cfg.Midnight.Strategy)
	if err != nil {
		return err
	}
	calc.SetObserver(m)
	source, err := midnight.Cached(calc, cfg.Midnight.CacheSize)
	if err != nil {
		return fmt.Errorf("midnight cache: %w", err)
	}

	lineColor, err := colors.Parse(cfg.Overlay.Color)
	if err != nil {
		return fmt.Errorf("overlay.color: %w", err)
	}
	line := view.MidnightLine{Samples: cfg.Overlay.Samples, Color: lineColor, Width: cfg.Overlay.Width}

	clk := clock.New(time.Now(), cfg.Clock.Multiplier)
	clk.Threshold = cfg.Clock.SyncThreshold

	host := server.NewHost(log.Named("host"), clk, source, line, m, server.Options{
		Tick:             cfg.Clock.Tick,
		Sync:             cfg.Clock.Sync,
		Following:        cfg.Follow.Enabled,
		FollowTransition: cfg.Follow.Transition,
	})
	hub := server.NewHub(log.Named("hub"), host.Commands(), m)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.NewHandler(log.Named("http"), host, hub, calc, m),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return host.Run(ctx, hub)
	})
	g.Go(func() error {
		log.Info("serving globe viewer",
			zap.String("addr", cfg.Server.Addr),
			zap.Strings("strategies", calc.Strategies()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
