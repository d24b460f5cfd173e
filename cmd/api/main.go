package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/namefreezers/forecast-qr-api/internal/config"
	"github.com/namefreezers/forecast-qr-api/internal/handlers"
	"github.com/namefreezers/forecast-qr-api/internal/qrcode"
	"github.com/namefreezers/forecast-qr-api/internal/tracing"
)

func main() {
	// 1) Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	// 2) Initialize structured logger
	var logger *zap.Logger
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer logger.Sync()

	// 3) Tracing (no-op unless ZIPKIN_URL is set)
	shutdownTracing, err := tracing.Init(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}

	// 4) Build the QR generator (with optional Redis cache)
	gen, err := qrcode.Build(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize qr generator", zap.Error(err))
	}

	// 5) Set up Gin router, middleware and handlers
	router, err := handlers.NewRouter(handlers.Deps{
		Config:    cfg,
		Logger:    logger,
		Generator: gen,
	})
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}

	// 6) Start HTTP (and HTTPS) servers
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	servers := []*http.Server{{Addr: ":" + cfg.Port, Handler: router}}
	if cfg.TLSEnabled() {
		servers = append(servers, &http.Server{Addr: ":" + cfg.HTTPSPort, Handler: router})
	}

	errCh := make(chan error, len(servers))
	for i, srv := range servers {
		tls := i > 0
		go func() {
			logger.Info("starting API server", zap.String("address", srv.Addr), zap.Bool("tls", tls))
			var err error
			if tls {
				err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			} else {
				err = srv.ListenAndServe()
			}
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	// 7) Drain in-flight requests and flush spans
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.String("address", srv.Addr), zap.Error(err))
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing shutdown", zap.Error(err))
	}
}
