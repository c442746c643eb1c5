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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"storefront/pkg/catalog"
	"storefront/pkg/checkout"
	"storefront/pkg/config"
	"storefront/pkg/discount"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"storefront/pkg/otel"
	"storefront/pkg/override"
)

// @title Storefront API
// @version 1.0
// @description Cart pricing, discount codes and order status for the storefront
// @host localhost:8443
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(os.Stdout, logger.ParseLevel(cfg.LogLevel), cfg.ServiceName, otel.GetTraceID)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(context.Background(), "server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *logger.Logger) error {
	tp, shutdown, err := otel.InitTracing(log, otel.Config{
		ServiceName: cfg.ServiceName,
		Host:        cfg.OTELHost,
		Probability: cfg.TraceSampleRatio,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer shutdown(context.Background())

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	manager := checkout.NewManager(checkout.Deps{
		Store:       b.kv,
		Validator:   discount.NewValidator(b.discounts, log),
		Policy:      cfg.Shipping,
		Log:         log,
		IdleTimeout: cfg.CartIdleTimeout,
	})
	defer manager.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a := &app{
		log:        log,
		tracer:     tp.Tracer(cfg.ServiceName),
		sessions:   b.sessions,
		catalog:    catalog.NewMemory(cfg.Products),
		checkout:   manager,
		orders:     b.orders,
		overrides:  override.NewStore(b.kv, log),
		events:     b.events,
		metrics:    metrics.New(reg),
		gatherer:   reg,
		adminToken: cfg.AdminToken,
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", cfg.Addr, "kv_backend", cfg.KVBackend)
		errc <- srv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info(context.Background(), "shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	}
}
