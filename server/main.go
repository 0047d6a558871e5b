package main

import (
	"context"
	"errors"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go-currency-converter/config"
	"go-currency-converter/domain"
	"go-currency-converter/http"
	"go-currency-converter/rates"
	"golang.org/x/sync/errgroup"
	"os"
	"os/signal"
	"syscall"
	"time"

	nhttp "net/http"
)

func main() {
	w := log.NewSyncWriter(os.Stderr)
	logger := log.NewLogfmtLogger(w)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	cfg, err := config.Load(log.With(logger, "component", "config"))
	if err != nil {
		level.Error(logger).Log("msg", "loading config", "err", err)
		os.Exit(1)
	}
	logger = level.NewFilter(logger, cfg.LevelOption())

	ratesService := rates.NewFallbackService(
		rates.NewService(cfg.ApiUrl, cfg.HTTPTimeout),
		rates.NewService(cfg.FallbackUrl, cfg.HTTPTimeout),
	)
	ratesService = rates.NewLoggingService(log.With(logger, "component", "currency_api"), ratesService)

	loader := rates.NewLoader(domain.Currency(cfg.Base), ratesService, log.With(logger, "component", "rates"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// fetched once at startup; without rates the server still answers, with 503s
	if err := loader.Refresh(ctx); err != nil {
		level.Error(logger).Log("msg", "initial rate load failed", "err", err)
	}

	handler := http.NewServer(loader, domain.Currency(cfg.DefaultTarget), log.With(logger, "component", "http"))
	server := &nhttp.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		level.Info(logger).Log("msg", "listening", "addr", cfg.ListenAddr)
		if err := server.ListenAndServe(); !errors.Is(err, nhttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdown)
	})

	if err := g.Wait(); err != nil {
		level.Error(logger).Log("msg", "server stopped", "err", err)
		os.Exit(1)
	}
}
